package coins

import (
	"context"
	"errors"

	"cryptopulse-backend/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrInvalidCoinID = errors.New("Invalid coin ID")
	ErrNotTracked    = errors.New("Coin not found")
)

// DefaultCoins seeds the registry on first run.
var DefaultCoins = []string{
	"bitcoin", "ethereum", "solana", "cardano", "polkadot",
	"chainlink", "litecoin", "bitcoin-cash", "stellar", "dogecoin",
	"polygon", "avalanche-2", "cosmos", "algorand", "tezos",
	"filecoin", "vechain", "theta-token", "elrond-erd-2", "hedera-hashgraph",
}

// Service manages the ordered tracked-coin registry.
type Service struct {
	DB *gorm.DB
}

// Seed inserts the default coin list when the registry is empty.
func (s *Service) Seed(ctx context.Context) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.TrackedCoin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	rows := make([]domain.TrackedCoin, len(DefaultCoins))
	for i, id := range DefaultCoins {
		rows[i] = domain.TrackedCoin{CoinID: id, Position: i}
	}
	return s.DB.WithContext(ctx).Create(&rows).Error
}

// List returns tracked coin ids in admin insertion order.
func (s *Service) List(ctx context.Context) ([]string, error) {
	var rows []domain.TrackedCoin
	if err := s.DB.WithContext(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.CoinID
	}
	return ids, nil
}

// IsTracked reports whether coinID is on the list.
func (s *Service) IsTracked(ctx context.Context, coinID string) bool {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.TrackedCoin{}).Where("coin_id = ?", coinID).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// Add appends coinID at the end of the list. Duplicates are rejected.
func (s *Service) Add(ctx context.Context, coinID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.TrackedCoin{}).Where("coin_id = ?", coinID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrInvalidCoinID
		}
		var maxPos int
		row := tx.Model(&domain.TrackedCoin{}).Select("COALESCE(MAX(position), -1)").Row()
		if err := row.Scan(&maxPos); err != nil {
			return err
		}
		return tx.Create(&domain.TrackedCoin{CoinID: coinID, Position: maxPos + 1}).Error
	})
}

// Remove deletes coinID from the list.
func (s *Service) Remove(ctx context.Context, coinID string) error {
	result := s.DB.WithContext(ctx).Where("coin_id = ?", coinID).Delete(&domain.TrackedCoin{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotTracked
	}
	return nil
}
