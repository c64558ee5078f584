package market

import (
	"context"
	"strings"

	"cryptopulse-backend/internal/currency"
	"cryptopulse-backend/internal/middleware"
	"cryptopulse-backend/internal/pkg/response"
	"cryptopulse-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// CoinLister supplies the ordered tracked-coin list for quote batches.
type CoinLister interface {
	List(ctx context.Context) ([]string, error)
}

type Handlers struct {
	Service *Service
	Coins   CoinLister
}

// GetPrices GET /api/v1/prices?currency= returns quotes for every tracked coin.
// Currency resolution: query param, then session preference, then usd.
func (h *Handlers) GetPrices(c *fiber.Ctx) error {
	cur := c.Query("currency")
	if cur == "" {
		cur = middleware.GetSessionCurrency(c)
	}
	cur = currency.Normalize(cur)

	ids, err := h.Coins.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	quotes := h.Service.Quotes(c.Context(), ids, cur)

	return response.Success(c, fiber.Map{
		"prices":          quotes,
		"currency":        cur,
		"currency_symbol": currency.Symbol(cur),
	})
}

// GetHistorical GET /api/v1/historical/:coin_id?days=&currency=
func (h *Handlers) GetHistorical(c *fiber.Ctx) error {
	coinID := strings.ToLower(c.Params("coin_id"))
	if !validation.IsValidCoinID(coinID) {
		return response.Error(c, "Invalid coin ID", fiber.StatusBadRequest)
	}
	days := c.QueryInt("days", 7)
	cur := c.Query("currency")
	if cur == "" {
		cur = middleware.GetSessionCurrency(c)
	}
	cur = currency.Normalize(cur)

	data := h.Service.History(c.Context(), coinID, days, cur)
	return response.Success(c, fiber.Map{
		"data":            data,
		"currency":        cur,
		"currency_symbol": currency.Symbol(cur),
	})
}

// GetCurrencies GET /api/v1/currencies lists supported display currencies.
func (h *Handlers) GetCurrencies(c *fiber.Ctx) error {
	return response.Success(c, fiber.Map{"currencies": currency.Supported})
}

// SetCurrency POST /api/v1/currency stores the display currency preference
// in the session. Unlike quote requests, an unsupported code here is an error.
func (h *Handlers) SetCurrency(c *fiber.Ctx) error {
	var body struct {
		Currency string `json:"currency"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Unsupported currency", fiber.StatusBadRequest)
	}
	cur := strings.ToLower(body.Currency)
	if !currency.IsSupported(cur) {
		return response.Error(c, "Unsupported currency", fiber.StatusBadRequest)
	}
	middleware.SetSessionCurrency(c, cur)
	return response.Success(c, fiber.Map{
		"currency":        cur,
		"currency_symbol": currency.Symbol(cur),
	})
}
