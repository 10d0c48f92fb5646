package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending cap over a date window, optionally limited to a
// single category. Budgets with a missing start or end date are never
// considered for adherence.
type Budget struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"index;not null" json:"-"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,2);not null" json:"amount"`
	StartDate  *time.Time      `json:"start_date"`
	EndDate    *time.Time      `json:"end_date"`
	CategoryID *uint           `gorm:"index" json:"category_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"-"`

	Category *Category `gorm:"constraint:OnDelete:CASCADE" json:"category,omitempty"`
}
