package reports

import (
	"context"
	"sort"

	"cryptopulse-backend/internal/constants"
	"cryptopulse-backend/internal/domain"
	"cryptopulse-backend/internal/market"

	"gorm.io/gorm"
)

// QuoteBatcher supplies the latest quote batch for the analyst view.
type QuoteBatcher interface {
	Quotes(ctx context.Context, ids []string, cur string) map[string]market.Quote
}

// CoinLister supplies the tracked-coin list.
type CoinLister interface {
	List(ctx context.Context) ([]string, error)
}

// Service derives read-side projections from the ledger and the price
// gateway. No independent state.
type Service struct {
	DB     *gorm.DB
	Market QuoteBatcher
	Coins  CoinLister
}

// AdminStats counts users by role plus ledger totals.
type AdminStats struct {
	TotalUsers        int64            `json:"total_users"`
	UsersByRole       map[string]int64 `json:"users_by_role"`
	TrackedCoins      int64            `json:"tracked_coins"`
	TotalPortfolios   int64            `json:"total_portfolios"`
	TotalTransactions int64            `json:"total_transactions"`
}

// CoinChange is one entry of the analyst gainers/losers boards.
type CoinChange struct {
	CoinID    string  `json:"coin_id"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
}

// AnalystStats is the market breakdown over the tracked set.
type AnalystStats struct {
	CoinsUp        int          `json:"coins_up"`
	CoinsDown      int          `json:"coins_down"`
	TotalMarketCap float64      `json:"total_market_cap"`
	AvgChange24h   float64      `json:"avg_change_24h"`
	TopGainers     []CoinChange `json:"top_gainers"`
	TopLosers      []CoinChange `json:"top_losers"`
	Currency       string       `json:"currency"`
}

// Admin aggregates counts across users, portfolios and the transaction log.
func (s *Service) Admin(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{UsersByRole: make(map[string]int64)}

	type roleCount struct {
		Role  string
		Count int64
	}
	var rows []roleCount
	if err := s.DB.WithContext(ctx).Model(&domain.User{}).
		Select("role, COUNT(*) AS count").Group("role").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, role := range constants.ValidRoles {
		stats.UsersByRole[role] = 0
	}
	for _, r := range rows {
		stats.UsersByRole[r.Role] = r.Count
		stats.TotalUsers += r.Count
	}

	if err := s.DB.WithContext(ctx).Model(&domain.TrackedCoin{}).Count(&stats.TrackedCoins).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Portfolio{}).Count(&stats.TotalPortfolios).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Transaction{}).Count(&stats.TotalTransactions).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// Analyst computes the market breakdown from the latest quote batch. Ties in
// the gainers/losers boards break by coin_id ascending so output is
// deterministic for a fixed batch.
func (s *Service) Analyst(ctx context.Context, cur string) (*AnalystStats, error) {
	ids, err := s.Coins.List(ctx)
	if err != nil {
		return nil, err
	}
	quotes := s.Market.Quotes(ctx, ids, cur)

	stats := &AnalystStats{Currency: cur}
	changes := make([]CoinChange, 0, len(quotes))
	for _, id := range ids {
		q, ok := quotes[id]
		if !ok {
			continue
		}
		if q.Change24h > 0 {
			stats.CoinsUp++
		} else if q.Change24h < 0 {
			stats.CoinsDown++
		}
		stats.TotalMarketCap += q.MarketCap
		stats.AvgChange24h += q.Change24h
		changes = append(changes, CoinChange{CoinID: id, Price: q.Price, Change24h: q.Change24h})
	}
	if len(changes) > 0 {
		stats.AvgChange24h /= float64(len(changes))
	}

	desc := make([]CoinChange, len(changes))
	copy(desc, changes)
	sort.Slice(desc, func(i, j int) bool {
		if desc[i].Change24h != desc[j].Change24h {
			return desc[i].Change24h > desc[j].Change24h
		}
		return desc[i].CoinID < desc[j].CoinID
	})
	stats.TopGainers = topN(desc, 5)

	asc := make([]CoinChange, len(changes))
	copy(asc, changes)
	sort.Slice(asc, func(i, j int) bool {
		if asc[i].Change24h != asc[j].Change24h {
			return asc[i].Change24h < asc[j].Change24h
		}
		return asc[i].CoinID < asc[j].CoinID
	})
	stats.TopLosers = topN(asc, 5)

	return stats, nil
}

// Feed returns the most recent transactions across all users, newest first.
func (s *Service) Feed(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var txs []domain.Transaction
	err := s.DB.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

func topN(entries []CoinChange, n int) []CoinChange {
	if len(entries) < n {
		n = len(entries)
	}
	out := make([]CoinChange, n)
	copy(out, entries[:n])
	return out
}
