package ledger

import (
	"errors"
	"strings"

	"cryptopulse-backend/internal/currency"
	"cryptopulse-backend/internal/middleware"
	"cryptopulse-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *Service
}

// Buy POST /api/v1/buy {coin_id, amount}. Amount is in the settlement currency.
func (h *Handlers) Buy(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var body struct {
		CoinID string  `json:"coin_id"`
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid amount", fiber.StatusBadRequest)
	}
	coinID := strings.ToLower(strings.TrimSpace(body.CoinID))

	txn, err := h.Service.Buy(c.Context(), actor.Email, coinID, decimal.NewFromFloat(body.Amount))
	if err != nil {
		return tradeError(c, err)
	}
	return response.Success(c, fiber.Map{"transaction": txn})
}

// Sell POST /api/v1/sell {coin_id, quantity}
func (h *Handlers) Sell(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var body struct {
		CoinID   string  `json:"coin_id"`
		Quantity float64 `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid quantity", fiber.StatusBadRequest)
	}
	coinID := strings.ToLower(strings.TrimSpace(body.CoinID))

	txn, err := h.Service.Sell(c.Context(), actor.Email, coinID, decimal.NewFromFloat(body.Quantity))
	if err != nil {
		return tradeError(c, err)
	}
	return response.Success(c, fiber.Map{"transaction": txn})
}

// Portfolio GET /api/v1/portfolio?currency= returns balance, holdings, valuation
// and the ten most recent transactions.
func (h *Handlers) Portfolio(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	cur := c.Query("currency")
	if cur == "" {
		cur = middleware.GetSessionCurrency(c)
	}
	cur = currency.Normalize(cur)

	p, err := h.Service.GetOrCreatePortfolio(c.Context(), actor.Email)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	valuation, err := h.Service.Value(c.Context(), actor.Email, cur)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	txs, err := h.Service.Transactions(c.Context(), actor.Email, 10)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}

	return response.Success(c, fiber.Map{
		"portfolio":       p,
		"valuation":       valuation,
		"transactions":    txs,
		"currency_symbol": currency.Symbol(cur),
	})
}

// Transactions GET /api/v1/transactions?limit=
func (h *Handlers) Transactions(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	limit := c.QueryInt("limit", 10)
	txs, err := h.Service.Transactions(c.Context(), actor.Email, limit)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, fiber.Map{"transactions": txs})
}

func tradeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrCoinNotFound),
		errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrInsufficientHoldings):
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	default:
		return response.Error(c, "Transaction failed", fiber.StatusInternalServerError)
	}
}
