package users

import (
	"errors"

	"cryptopulse-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// Create POST /api/v1/users {email, password, role} (admin only).
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid email format", fiber.StatusBadRequest)
	}
	u, err := h.Service.CreateUser(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail),
			errors.Is(err, ErrInvalidPassword),
			errors.Is(err, ErrInvalidRole),
			errors.Is(err, ErrAlreadyRegistered):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
		}
	}
	return response.Success(c, fiber.Map{"user": u})
}

// List GET /api/v1/users (admin only).
func (h *Handlers) List(c *fiber.Ctx) error {
	users, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, fiber.Map{"users": users})
}
