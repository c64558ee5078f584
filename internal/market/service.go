package market

import (
	"context"
	"strings"
	"sync"
	"time"

	"cryptopulse-backend/internal/currency"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TrackedChecker reports whether a coin is on the tracked list. The gateway
// only settles trades for tracked coins.
type TrackedChecker interface {
	IsTracked(ctx context.Context, coinID string) bool
}

// Service is the price gateway: it wraps the upstream API and absorbs every
// upstream failure with the synthetic fallback generator, so callers never
// see an error. Quote batches are cached for a short TTL to bound upstream
// request volume; caching is an optimization, not a correctness requirement.
type Service struct {
	Client   *Client
	Tracked  TrackedChecker
	CacheTTL time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	quotes  map[string]Quote
	expires time.Time
}

// Quotes returns a quote per requested coin in the given display currency.
// Coins the upstream does not know stay absent from the result; when the
// upstream call fails entirely, every requested coin gets a fallback quote.
func (s *Service) Quotes(ctx context.Context, ids []string, cur string) map[string]Quote {
	cur = currency.Normalize(cur)
	if len(ids) == 0 {
		return map[string]Quote{}
	}

	key := strings.Join(ids, ",") + "|" + cur
	if quotes, ok := s.cached(key); ok {
		return quotes
	}

	quotes, err := s.Client.SimplePrice(ctx, ids, cur)
	if err != nil {
		log.Warn().Err(err).Str("currency", cur).Msg("price upstream unavailable, serving fallback quotes")
		quotes = MockQuotes(ids, cur)
	}
	s.store(key, quotes)
	return quotes
}

// History returns a historical series for one coin. days is clamped to at
// least 1; upstream failure yields the synthetic random walk.
func (s *Service) History(ctx context.Context, coinID string, days int, cur string) []PricePoint {
	cur = currency.Normalize(cur)
	if days < 1 {
		days = 7
	}
	points, err := s.Client.MarketChart(ctx, coinID, days, cur)
	if err != nil {
		log.Warn().Err(err).Str("coin_id", coinID).Msg("history upstream unavailable, serving fallback series")
		return MockHistory(coinID, days, cur)
	}
	return points
}

// USDPrice resolves the settlement unit price for one tracked coin. Returns
// false for untracked coins or coins missing from the quote batch.
func (s *Service) USDPrice(ctx context.Context, coinID string) (decimal.Decimal, bool) {
	if s.Tracked != nil && !s.Tracked.IsTracked(ctx, coinID) {
		return decimal.Zero, false
	}
	q, ok := s.Quotes(ctx, []string{coinID}, "usd")[coinID]
	if !ok || q.Price <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(q.Price), true
}

func (s *Service) cached(key string) (map[string]Quote, bool) {
	if s.CacheTTL <= 0 {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.cache[key]
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.quotes, true
}

func (s *Service) store(key string, quotes map[string]Quote) {
	if s.CacheTTL <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		s.cache = make(map[string]cacheEntry)
	}
	s.cache[key] = cacheEntry{quotes: quotes, expires: time.Now().Add(s.CacheTTL)}
}
