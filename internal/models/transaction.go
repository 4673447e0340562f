package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

// Supported currencies
const (
	CurrencyUSD  = "USD"
	CurrencyUSDC = "USDC"
)

func init() {
	// Amounts are rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is an append-only money-movement record. Region is copied from
// the sender at creation time.
type Transaction struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	SenderID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Sender     *User             `gorm:"foreignKey:SenderID"`
	ReceiverID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Receiver   *User             `gorm:"foreignKey:ReceiverID"`
	Amount     decimal.Decimal   `gorm:"type:numeric(18,2);not null"`
	Currency   string            `gorm:"type:varchar(8);not null"`
	Status     TransactionStatus `gorm:"type:varchar(16);not null;default:'pending';index"`
	Region     string            `gorm:"type:varchar(16);not null;index"`
	Timestamp  time.Time         `gorm:"not null;index"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	return nil
}

// IsSupportedCurrency reports whether c is one of the fixed currencies.
func IsSupportedCurrency(c string) bool {
	return c == CurrencyUSD || c == CurrencyUSDC
}
