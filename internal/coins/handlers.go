package coins

import (
	"errors"
	"strings"

	"cryptopulse-backend/internal/pkg/response"
	"cryptopulse-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// List GET /api/v1/coins
func (h *Handlers) List(c *fiber.Ctx) error {
	ids, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, fiber.Map{"coins": ids})
}

// Add POST /api/v1/coins/add {coin_id} (admin only).
func (h *Handlers) Add(c *fiber.Ctx) error {
	coinID, ok := parseCoinID(c)
	if !ok {
		return response.Error(c, "Invalid coin ID", fiber.StatusBadRequest)
	}
	if err := h.Service.Add(c.Context(), coinID); err != nil {
		if errors.Is(err, ErrInvalidCoinID) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, fiber.Map{"coin_id": coinID})
}

// Remove POST /api/v1/coins/remove {coin_id} (admin only).
func (h *Handlers) Remove(c *fiber.Ctx) error {
	coinID, ok := parseCoinID(c)
	if !ok {
		return response.Error(c, "Coin not found", fiber.StatusBadRequest)
	}
	if err := h.Service.Remove(c.Context(), coinID); err != nil {
		if errors.Is(err, ErrNotTracked) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, fiber.Map{"coin_id": coinID})
}

func parseCoinID(c *fiber.Ctx) (string, bool) {
	var body struct {
		CoinID string `json:"coin_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return "", false
	}
	coinID := strings.ToLower(strings.TrimSpace(body.CoinID))
	if !validation.IsValidCoinID(coinID) {
		return "", false
	}
	return coinID, true
}
