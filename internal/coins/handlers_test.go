package coins

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"cryptopulse-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCoinsApp(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.TrackedCoin{}))

	h := &Handlers{Service: &Service{DB: db}}
	app := fiber.New()
	app.Get("/coins", h.List)
	app.Post("/coins/add", h.Add)
	app.Post("/coins/remove", h.Remove)
	return app
}

func postCoin(t *testing.T, app *fiber.App, path, coinID string) (int, map[string]interface{}) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"coin_id": coinID})
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func TestAddEndpoint_NormalizesAndAppends(t *testing.T) {
	app := setupCoinsApp(t)

	status, result := postCoin(t, app, "/coins/add", "  Bitcoin ")
	assert.Equal(t, 200, status)
	assert.Equal(t, "bitcoin", result["coin_id"])

	req := httptest.NewRequest("GET", "/coins", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	var list map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	coins, _ := list["coins"].([]interface{})
	assert.Equal(t, []interface{}{"bitcoin"}, coins)
}

func TestAddEndpoint_InvalidSlug(t *testing.T) {
	app := setupCoinsApp(t)

	status, result := postCoin(t, app, "/coins/add", "not a slug!")
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid coin ID", result["error"])
}

func TestAddEndpoint_Duplicate(t *testing.T) {
	app := setupCoinsApp(t)

	status, _ := postCoin(t, app, "/coins/add", "bitcoin")
	require.Equal(t, 200, status)
	status, result := postCoin(t, app, "/coins/add", "bitcoin")
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid coin ID", result["error"])
}

func TestRemoveEndpoint_Untracked(t *testing.T) {
	app := setupCoinsApp(t)

	status, result := postCoin(t, app, "/coins/remove", "bitcoin")
	assert.Equal(t, 400, status)
	assert.Equal(t, "Coin not found", result["error"])
}
