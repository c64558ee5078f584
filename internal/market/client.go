package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Quote is a transient price snapshot in one display currency. Never persisted.
type Quote struct {
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
	MarketCap float64 `json:"market_cap"`
}

// PricePoint is one point of a historical series, shaped for Chart.js.
type PricePoint struct {
	X int64   `json:"x"` // unix milliseconds
	Y float64 `json:"y"`
}

// Client talks to the CoinGecko HTTP API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient builds a client with the bounded upstream timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// SimplePrice fetches quotes for all ids in one request
// (GET /simple/price?ids=...&vs_currencies=...).
func (c *Client) SimplePrice(ctx context.Context, ids []string, cur string) (map[string]Quote, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", cur)
	q.Set("include_24hr_change", "true")
	q.Set("include_market_cap", "true")

	var raw map[string]map[string]float64
	if err := c.getJSON(ctx, "/simple/price?"+q.Encode(), &raw); err != nil {
		return nil, err
	}

	out := make(map[string]Quote, len(raw))
	for id, fields := range raw {
		price, ok := fields[cur]
		if !ok {
			continue
		}
		out[id] = Quote{
			Price:     price,
			Change24h: fields[cur+"_24h_change"],
			MarketCap: fields[cur+"_market_cap"],
		}
	}
	return out, nil
}

// MarketChart fetches a historical series
// (GET /coins/{id}/market_chart?vs_currency=...&days=...). Hourly granularity
// for ranges up to 30 days, daily beyond that.
func (c *Client) MarketChart(ctx context.Context, coinID string, days int, cur string) ([]PricePoint, error) {
	interval := "hourly"
	if days > 30 {
		interval = "daily"
	}
	q := url.Values{}
	q.Set("vs_currency", cur)
	q.Set("days", strconv.Itoa(days))
	q.Set("interval", interval)

	var raw struct {
		Prices [][]float64 `json:"prices"`
	}
	if err := c.getJSON(ctx, "/coins/"+url.PathEscape(coinID)+"/market_chart?"+q.Encode(), &raw); err != nil {
		return nil, err
	}

	points := make([]PricePoint, 0, len(raw.Prices))
	for _, p := range raw.Prices {
		if len(p) < 2 {
			continue
		}
		points = append(points, PricePoint{X: int64(p[0]), Y: p[1]})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("market chart for %s: empty series", coinID)
	}
	return points, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
