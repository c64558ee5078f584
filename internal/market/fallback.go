package market

import (
	"math"
	"math/rand"
	"time"

	"cryptopulse-backend/internal/currency"
)

// Static per-coin USD base prices for the synthetic feed. Coins not listed
// fall back to defaultBaseUSD.
var basePricesUSD = map[string]float64{
	"bitcoin":   45000,
	"ethereum":  2500,
	"solana":    100,
	"cardano":   0.5,
	"polkadot":  7,
	"chainlink": 15,
	"litecoin":  70,
	"dogecoin":  0.08,
}

const defaultBaseUSD = 1000

// MockQuotes produces synthetic quotes when the upstream API is unavailable:
// static USD base price times a static currency multiplier, with an
// independent +/-10% jitter per call. Demo data, not reproducible between
// calls and not a source of truth.
func MockQuotes(ids []string, cur string) map[string]Quote {
	rate := currency.Rate(cur)
	out := make(map[string]Quote, len(ids))
	for _, id := range ids {
		base, ok := basePricesUSD[id]
		if !ok {
			base = defaultBaseUSD
		}
		price := base * rate * (1 + (rand.Float64()*0.2 - 0.1))
		out[id] = Quote{
			Price:     price,
			Change24h: rand.Float64()*20 - 10,
			MarketCap: price * float64(rand.Intn(99_000_000)+1_000_000),
		}
	}
	return out
}

// MockHistory produces a synthetic hourly series ending now: a random walk
// where each point is the previous price +/- up to 5%. Seeded only by the
// previous value, so runs are not reproducible. Known limitation, acceptable
// for a demo feed.
func MockHistory(coinID string, days int, cur string) []PricePoint {
	base, ok := basePricesUSD[coinID]
	if !ok {
		base = defaultBaseUSD
	}
	price := base * currency.Rate(cur)

	n := days * 24
	now := time.Now()
	points := make([]PricePoint, 0, n)
	for i := 0; i < n; i++ {
		ts := now.Add(-time.Duration(n-i) * time.Hour).UnixMilli()
		price = price * (1 + (rand.Float64()*0.1 - 0.05))
		points = append(points, PricePoint{X: ts, Y: round6(price)})
	}
	return points
}

func round6(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}
