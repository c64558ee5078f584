package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TxTypeBuy  = "buy"
	TxTypeSell = "sell"
)

// Transaction is an immutable, append-only trade record. Price and Amount are
// denominated in the settlement currency (USD).
type Transaction struct {
	TxID      uuid.UUID       `gorm:"column:tx_id;type:uuid;primaryKey" json:"tx_id"`
	Email     string          `gorm:"column:email;not null;index" json:"email"`
	Type      string          `gorm:"column:type;type:varchar(10);not null" json:"type"`
	CoinID    string          `gorm:"column:coin_id;not null" json:"coin_id"`
	Quantity  decimal.Decimal `gorm:"column:quantity;type:decimal(32,12);not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(32,12);not null" json:"price"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(32,12);not null" json:"amount"`
	Timestamp time.Time       `gorm:"column:timestamp;not null;index" json:"timestamp"`
}

func (Transaction) TableName() string {
	return "Transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TxID == uuid.Nil {
		t.TxID = uuid.New()
	}
	return nil
}
