package market

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCoinList struct {
	ids []string
}

func (f *fakeCoinList) List(ctx context.Context) ([]string, error) {
	return f.ids, nil
}

func setupMarketApp(t *testing.T) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	h := &Handlers{
		Service: &Service{Client: NewClient(srv.URL, time.Second)},
		Coins:   &fakeCoinList{ids: []string{"bitcoin", "ethereum"}},
	}

	app := fiber.New()
	app.Get("/prices", h.GetPrices)
	app.Get("/historical/:coin_id", h.GetHistorical)
	app.Get("/currencies", h.GetCurrencies)
	app.Post("/currency", h.SetCurrency)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func TestGetPrices_ReturnsQuotePerTrackedCoin(t *testing.T) {
	app := setupMarketApp(t)

	status, result := getJSON(t, app, "/prices")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "usd", result["currency"])
	assert.Equal(t, "$", result["currency_symbol"])

	prices, _ := result["prices"].(map[string]interface{})
	require.NotNil(t, prices)
	assert.Len(t, prices, 2)
}

func TestGetPrices_UnsupportedCurrencyFallsBackToUSD(t *testing.T) {
	app := setupMarketApp(t)

	status, result := getJSON(t, app, "/prices?currency=doubloons")
	assert.Equal(t, 200, status)
	assert.Equal(t, "usd", result["currency"])
}

func TestGetPrices_SupportedCurrency(t *testing.T) {
	app := setupMarketApp(t)

	status, result := getJSON(t, app, "/prices?currency=EUR")
	assert.Equal(t, 200, status)
	assert.Equal(t, "eur", result["currency"])
	assert.Equal(t, "€", result["currency_symbol"])
}

func TestGetHistorical_InvalidCoinID(t *testing.T) {
	app := setupMarketApp(t)

	status, result := getJSON(t, app, "/historical/NOT_A_SLUG!")
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid coin ID", result["error"])
}

func TestGetHistorical_FallbackSeries(t *testing.T) {
	app := setupMarketApp(t)

	status, result := getJSON(t, app, "/historical/bitcoin?days=2")
	assert.Equal(t, 200, status)
	data, _ := result["data"].([]interface{})
	assert.Len(t, data, 48)
}

func TestGetCurrencies(t *testing.T) {
	app := setupMarketApp(t)

	status, result := getJSON(t, app, "/currencies")
	assert.Equal(t, 200, status)
	currencies, _ := result["currencies"].(map[string]interface{})
	require.NotNil(t, currencies)
	assert.Contains(t, currencies, "usd")
	assert.Contains(t, currencies, "jpy")
	assert.Len(t, currencies, 10)
}

func TestSetCurrency_Unsupported(t *testing.T) {
	app := setupMarketApp(t)

	body, _ := json.Marshal(map[string]string{"currency": "doubloons"})
	req := httptest.NewRequest("POST", "/currency", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Unsupported currency", result["error"])
}

func TestSetCurrency_Supported(t *testing.T) {
	app := setupMarketApp(t)

	body, _ := json.Marshal(map[string]string{"currency": "GBP"})
	req := httptest.NewRequest("POST", "/currency", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "gbp", result["currency"])
	assert.Equal(t, "£", result["currency_symbol"])
}
