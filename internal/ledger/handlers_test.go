package ledger

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"cryptopulse-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupHandlerTest(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Portfolio{}, &domain.Transaction{}))

	svc := &Service{
		DB: db,
		Quotes: &fakeQuotes{prices: map[string]decimal.Decimal{
			"bitcoin": decimal.RequireFromString("50000"),
		}},
	}
	h := &Handlers{Service: svc}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": "u-1",
			"email":   "alice@example.com",
			"role":    "user",
		})
		return c.Next()
	})
	app.Post("/buy", h.Buy)
	app.Post("/sell", h.Sell)
	app.Get("/portfolio", h.Portfolio)
	app.Get("/transactions", h.Transactions)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload map[string]interface{}) (int, map[string]interface{}) {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func TestBuyEndpoint_Success(t *testing.T) {
	app := setupHandlerTest(t)

	status, result := postJSON(t, app, "/buy", map[string]interface{}{
		"coin_id": "bitcoin",
		"amount":  1000.0,
	})
	assert.Equal(t, 200, status)
	assert.Equal(t, true, result["success"])

	txn, _ := result["transaction"].(map[string]interface{})
	require.NotNil(t, txn)
	assert.Equal(t, "buy", txn["type"])
	assert.Equal(t, "bitcoin", txn["coin_id"])
}

func TestBuyEndpoint_InvalidAmount(t *testing.T) {
	app := setupHandlerTest(t)

	status, result := postJSON(t, app, "/buy", map[string]interface{}{
		"coin_id": "bitcoin",
		"amount":  -10.0,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid amount", result["error"])
}

func TestBuyEndpoint_UnknownCoin(t *testing.T) {
	app := setupHandlerTest(t)

	status, result := postJSON(t, app, "/buy", map[string]interface{}{
		"coin_id": "notacoin",
		"amount":  100.0,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Coin not found", result["error"])
}

func TestBuyEndpoint_InsufficientBalance(t *testing.T) {
	app := setupHandlerTest(t)

	status, result := postJSON(t, app, "/buy", map[string]interface{}{
		"coin_id": "bitcoin",
		"amount":  20000.0,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Insufficient balance", result["error"])
}

func TestSellEndpoint_InsufficientHoldings(t *testing.T) {
	app := setupHandlerTest(t)

	status, result := postJSON(t, app, "/sell", map[string]interface{}{
		"coin_id":  "bitcoin",
		"quantity": 1.0,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Insufficient holdings", result["error"])
}

func TestSellEndpoint_RoundTrip(t *testing.T) {
	app := setupHandlerTest(t)

	status, _ := postJSON(t, app, "/buy", map[string]interface{}{
		"coin_id": "bitcoin",
		"amount":  1000.0,
	})
	require.Equal(t, 200, status)

	status, result := postJSON(t, app, "/sell", map[string]interface{}{
		"coin_id":  "bitcoin",
		"quantity": 0.02,
	})
	assert.Equal(t, 200, status)
	assert.Equal(t, true, result["success"])
}

func TestPortfolioEndpoint(t *testing.T) {
	app := setupHandlerTest(t)

	req := httptest.NewRequest("GET", "/portfolio", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, true, result["success"])

	valuation, _ := result["valuation"].(map[string]interface{})
	require.NotNil(t, valuation)
	assert.Equal(t, "usd", valuation["currency"])
	assert.Equal(t, "$", result["currency_symbol"])
}

func TestTransactionsEndpoint_Unauthenticated(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Portfolio{}, &domain.Transaction{}))
	h := &Handlers{Service: &Service{DB: db, Quotes: &fakeQuotes{}}}

	app := fiber.New()
	app.Get("/transactions", h.Transactions)

	req := httptest.NewRequest("GET", "/transactions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
