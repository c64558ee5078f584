package reports

import (
	"cryptopulse-backend/internal/currency"
	"cryptopulse-backend/internal/middleware"
	"cryptopulse-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// AdminStats GET /api/v1/admin/stats (admin only).
func (h *Handlers) AdminStats(c *fiber.Ctx) error {
	stats, err := h.Service.Admin(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, fiber.Map{"stats": stats})
}

// AnalystStats GET /api/v1/analyst/stats?currency= (analyst or admin).
func (h *Handlers) AnalystStats(c *fiber.Ctx) error {
	cur := c.Query("currency")
	if cur == "" {
		cur = middleware.GetSessionCurrency(c)
	}
	cur = currency.Normalize(cur)

	stats, err := h.Service.Analyst(c.Context(), cur)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, fiber.Map{"stats": stats})
}

// ModeratorFeed GET /api/v1/moderator/feed?limit= (moderator or admin).
func (h *Handlers) ModeratorFeed(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	feed, err := h.Service.Feed(c.Context(), limit)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, fiber.Map{"feed": feed})
}
