package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recurrence frequencies.
const (
	FrequencyDaily   = "DAILY"
	FrequencyWeekly  = "WEEKLY"
	FrequencyMonthly = "MONTHLY"
	FrequencyYearly  = "YEARLY"
)

// ValidFrequency reports whether f is one of the supported frequencies.
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// RecurringTransaction is a template that periodically spawns
// transactions. NextRunDate is a calendar date; the scheduler picks up
// every active rule whose NextRunDate is on or before the tick date.
type RecurringTransaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"-"`
	Description   string          `gorm:"size:255;not null" json:"description"`
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,2);not null" json:"amount"`
	Type          string          `gorm:"size:16;not null" json:"type"`
	Frequency     string          `gorm:"size:16;not null" json:"frequency"`
	NextRunDate   time.Time       `gorm:"index;not null" json:"next_run_date"`
	CategoryID    *uint           `gorm:"index" json:"category_id"`
	PaymentMethod string          `gorm:"size:32" json:"payment_method"`
	Active        bool            `gorm:"index;not null;default:true" json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"-"`
}
