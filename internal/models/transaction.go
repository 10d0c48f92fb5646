package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

// Payment methods.
const (
	PaymentCash          = "CASH"
	PaymentCreditCard    = "CREDIT_CARD"
	PaymentDebitCard     = "DEBIT_CARD"
	PaymentBankTransfer  = "BANK_TRANSFER"
	PaymentDigitalWallet = "DIGITAL_WALLET"
	PaymentOther         = "OTHER"
)

// Transaction represents a single income or expense movement.
// Amounts are stored as decimals, never floats.
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"-"`
	Description     string          `gorm:"size:255;not null" json:"description"`
	Amount          decimal.Decimal `gorm:"type:DECIMAL(20,2);not null" json:"amount"`
	Type            string          `gorm:"size:16;index;not null" json:"type"` // INCOME / EXPENSE
	CategoryID      *uint           `gorm:"index" json:"category_id"`
	PaymentMethod   string          `gorm:"size:32" json:"payment_method"`
	TransactionDate time.Time       `gorm:"index;not null" json:"transaction_date"` // effective date
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"-"`

	Category *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
}
