package middleware

import (
	"net/http/httptest"
	"testing"

	"cryptopulse-backend/internal/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appWithRole(role string, permission string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("user", map[string]interface{}{
				"user_id": "u-1",
				"email":   "someone@example.com",
				"role":    role,
			})
		}
		return c.Next()
	})
	app.Get("/protected", RequireAuth(), AuthorizePermission(permission), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func request(t *testing.T, app *fiber.App) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthorizePermission_NoSession(t *testing.T) {
	app := appWithRole("", constants.ViewPrices)
	assert.Equal(t, 401, request(t, app))
}

func TestAuthorizePermission_RoleMatrix(t *testing.T) {
	cases := []struct {
		role       string
		permission string
		status     int
	}{
		{"user", constants.ViewPrices, 200},
		{"user", constants.TradeCoins, 200},
		{"user", constants.ViewPortfolio, 200},
		{"user", constants.ManageCoins, 403},
		{"user", constants.ViewAdminStats, 403},
		{"user", constants.ViewMarketStats, 403},
		{"user", constants.ViewActivityFeed, 403},

		{"admin", constants.ManageCoins, 200},
		{"admin", constants.ManageUsers, 200},
		{"admin", constants.ViewAdminStats, 200},
		{"admin", constants.ViewMarketStats, 200},
		{"admin", constants.ViewActivityFeed, 200},
		{"admin", constants.TradeCoins, 403},
		{"admin", constants.ViewPortfolio, 403},

		{"analyst", constants.ViewMarketStats, 200},
		{"analyst", constants.ViewPrices, 200},
		{"analyst", constants.TradeCoins, 403},
		{"analyst", constants.ViewActivityFeed, 403},

		{"moderator", constants.ViewActivityFeed, 200},
		{"moderator", constants.ViewPrices, 200},
		{"moderator", constants.TradeCoins, 403},
		{"moderator", constants.ViewAdminStats, 403},
	}
	for _, tc := range cases {
		app := appWithRole(tc.role, tc.permission)
		assert.Equal(t, tc.status, request(t, app), "%s + %s", tc.role, tc.permission)
	}
}

func TestAuthorizePermission_UnknownPermission(t *testing.T) {
	app := appWithRole("admin", "not_a_permission")
	assert.Equal(t, 500, request(t, app))
}

func TestGetActor(t *testing.T) {
	app := fiber.New()
	app.Get("/actor", func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": "u-1",
			"email":   "alice@example.com",
			"role":    "analyst",
		})
		actor := GetActor(c)
		require.NotNil(t, actor)
		assert.Equal(t, "alice@example.com", actor.Email)
		assert.Equal(t, "analyst", actor.Role)
		return c.SendStatus(200)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/actor", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestGetActor_MissingEmail(t *testing.T) {
	app := fiber.New()
	app.Get("/actor", func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": "u-1"})
		assert.Nil(t, GetActor(c))
		return c.SendStatus(200)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/actor", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
