package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings goal. A goal counts as completed once
// CurrentAmount reaches TargetAmount.
type Goal struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"-"`
	Name          string          `gorm:"size:128;not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(20,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,2);not null" json:"current_amount"`
	Deadline      *time.Time      `json:"deadline"`
	Color         string          `gorm:"size:16" json:"color"`
	Icon          string          `gorm:"size:32" json:"icon"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"-"`
}

// Completed reports whether the goal has been reached.
func (g *Goal) Completed() bool {
	return g.CurrentAmount.Cmp(g.TargetAmount) >= 0
}
