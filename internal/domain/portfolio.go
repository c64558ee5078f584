package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Portfolio holds a user's simulated cash balance and coin holdings, keyed by
// the user's email. Holdings is a coin_id -> quantity map stored as JSON;
// every present key has quantity > 0.
type Portfolio struct {
	Email     string          `gorm:"column:email;primaryKey" json:"email"`
	Balance   decimal.Decimal `gorm:"column:balance;type:decimal(32,12);not null" json:"balance"`
	Holdings  datatypes.JSON  `gorm:"column:holdings" json:"holdings"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Portfolio) TableName() string {
	return "Portfolios"
}

// HoldingsMap decodes the holdings JSON column. An empty column decodes to an
// empty map, never nil.
func (p *Portfolio) HoldingsMap() (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	if len(p.Holdings) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(p.Holdings, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetHoldings encodes the holdings map back into the JSON column.
func (p *Portfolio) SetHoldings(h map[string]decimal.Decimal) error {
	b, err := json.Marshal(h)
	if err != nil {
		return err
	}
	p.Holdings = datatypes.JSON(b)
	return nil
}
