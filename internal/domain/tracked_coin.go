package domain

import "time"

// TrackedCoin is one entry of the ordered tracked-coin list. Position
// preserves admin insertion order.
type TrackedCoin struct {
	CoinID    string    `gorm:"column:coin_id;primaryKey" json:"coin_id"`
	Position  int       `gorm:"column:position;not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (TrackedCoin) TableName() string {
	return "TrackedCoins"
}
