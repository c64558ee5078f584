package ledger

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"cryptopulse-backend/internal/domain"
	"cryptopulse-backend/internal/market"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuoteSource is the gateway contract the ledger depends on. USDPrice is the
// settlement unit price; Quotes backs display-currency valuation.
type QuoteSource interface {
	USDPrice(ctx context.Context, coinID string) (decimal.Decimal, bool)
	Quotes(ctx context.Context, ids []string, cur string) map[string]market.Quote
}

// StartingBalance is the simulated cash every new portfolio opens with.
var StartingBalance = decimal.RequireFromString("10000.00")

// Service applies buy/sell operations atomically per user and appends to the
// transaction log. Mutations for one user are serialized by a per-user mutex;
// users never share state, so cross-user operations need no coordination.
type Service struct {
	DB     *gorm.DB
	Quotes QuoteSource

	locks sync.Map // email -> *sync.Mutex
}

// Valuation is the read-side portfolio summary. Cash stays in the settlement
// currency; holdings are valued at the latest quote batch in the display
// currency, with coins absent from the batch contributing 0.
type Valuation struct {
	Cash          decimal.Decimal `json:"cash"`
	HoldingsValue decimal.Decimal `json:"holdings_value"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
}

func (s *Service) lockUser(email string) func() {
	v, _ := s.locks.LoadOrStore(email, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// GetOrCreatePortfolio returns the user's portfolio, creating it with the
// starting balance and empty holdings on first access. Idempotent.
func (s *Service) GetOrCreatePortfolio(ctx context.Context, email string) (*domain.Portfolio, error) {
	unlock := s.lockUser(email)
	defer unlock()
	return s.getOrCreate(s.DB.WithContext(ctx), email)
}

func (s *Service) getOrCreate(db *gorm.DB, email string) (*domain.Portfolio, error) {
	var p domain.Portfolio
	err := db.Where("email = ?", email).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	p = domain.Portfolio{Email: email, Balance: StartingBalance}
	if err := p.SetHoldings(map[string]decimal.Decimal{}); err != nil {
		return nil, err
	}
	if err := db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Buy debits amount (settlement USD) from the balance and credits
// amount/unit_price coins to holdings, appending a buy transaction. The whole
// mutation is all-or-nothing.
func (s *Service) Buy(ctx context.Context, email, coinID string, amount decimal.Decimal) (*domain.Transaction, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	price, ok := s.Quotes.USDPrice(ctx, coinID)
	if !ok {
		return nil, ErrCoinNotFound
	}

	unlock := s.lockUser(email)
	defer unlock()

	var txn *domain.Transaction
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.getOrCreate(tx, email)
		if err != nil {
			return err
		}
		if p.Balance.LessThan(amount) {
			return ErrInsufficientBalance
		}
		holdings, err := p.HoldingsMap()
		if err != nil {
			return err
		}

		quantity := amount.Div(price)
		holdings[coinID] = holdings[coinID].Add(quantity)
		p.Balance = p.Balance.Sub(amount)
		if err := p.SetHoldings(holdings); err != nil {
			return err
		}
		if err := tx.Save(p).Error; err != nil {
			return err
		}

		txn = &domain.Transaction{
			Email:     email,
			Type:      domain.TxTypeBuy,
			CoinID:    coinID,
			Quantity:  quantity,
			Price:     price,
			Amount:    amount,
			Timestamp: time.Now().UTC(),
		}
		return tx.Create(txn).Error
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Sell credits quantity*unit_price to the balance and debits holdings,
// removing the coin entirely when the remainder reaches zero (exact decimal
// comparison), appending a sell transaction.
func (s *Service) Sell(ctx context.Context, email, coinID string, quantity decimal.Decimal) (*domain.Transaction, error) {
	if quantity.Sign() <= 0 {
		return nil, ErrInvalidQuantity
	}

	unlock := s.lockUser(email)
	defer unlock()

	// Pre-checks outside the DB transaction: the per-user lock already
	// serializes same-user mutations, and the quote lookup may hit the
	// network.
	p, err := s.getOrCreate(s.DB.WithContext(ctx), email)
	if err != nil {
		return nil, err
	}
	holdings, err := p.HoldingsMap()
	if err != nil {
		return nil, err
	}
	if holdings[coinID].LessThan(quantity) {
		return nil, ErrInsufficientHoldings
	}
	price, ok := s.Quotes.USDPrice(ctx, coinID)
	if !ok {
		return nil, ErrCoinNotFound
	}

	amount := quantity.Mul(price)
	var txn *domain.Transaction
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		remaining := holdings[coinID].Sub(quantity)
		if remaining.Sign() <= 0 {
			delete(holdings, coinID)
		} else {
			holdings[coinID] = remaining
		}
		p.Balance = p.Balance.Add(amount)
		if err := p.SetHoldings(holdings); err != nil {
			return err
		}
		if err := tx.Save(p).Error; err != nil {
			return err
		}

		txn = &domain.Transaction{
			Email:     email,
			Type:      domain.TxTypeSell,
			CoinID:    coinID,
			Quantity:  quantity,
			Price:     price,
			Amount:    amount,
			Timestamp: time.Now().UTC(),
		}
		return tx.Create(txn).Error
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Value computes the portfolio summary in the given display currency.
func (s *Service) Value(ctx context.Context, email, cur string) (*Valuation, error) {
	p, err := s.GetOrCreatePortfolio(ctx, email)
	if err != nil {
		return nil, err
	}
	holdings, err := p.HoldingsMap()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(holdings))
	for coinID := range holdings {
		ids = append(ids, coinID)
	}
	sort.Strings(ids)

	quotes := s.Quotes.Quotes(ctx, ids, cur)
	holdingsValue := decimal.Zero
	for _, coinID := range ids {
		q, ok := quotes[coinID]
		if !ok {
			continue
		}
		holdingsValue = holdingsValue.Add(holdings[coinID].Mul(decimal.NewFromFloat(q.Price)))
	}

	return &Valuation{
		Cash:          p.Balance,
		HoldingsValue: holdingsValue,
		Total:         p.Balance.Add(holdingsValue),
		Currency:      cur,
	}, nil
}

// Transactions returns the user's most recent transactions, newest first.
func (s *Service) Transactions(ctx context.Context, email string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	var txs []domain.Transaction
	err := s.DB.WithContext(ctx).
		Where("email = ?", email).
		Order("timestamp DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}
