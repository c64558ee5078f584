package middleware

import (
	"cryptopulse-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. Returns 401 if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// Actor is the resolved (user, role) pair handlers operate on.
type Actor struct {
	UserID string
	Email  string
	Role   string
}

// GetActor extracts the authenticated principal from the session user.
// Returns nil when no valid user is in the session.
func GetActor(c *fiber.Ctx) *Actor {
	u := GetUser(c)
	if u == nil {
		return nil
	}
	m, ok := u.(map[string]interface{})
	if !ok {
		return nil
	}
	email, _ := m["email"].(string)
	if email == "" {
		return nil
	}
	userID, _ := m["user_id"].(string)
	role, _ := m["role"].(string)
	return &Actor{UserID: userID, Email: email, Role: role}
}
