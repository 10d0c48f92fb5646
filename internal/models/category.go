package models

import "time"

// Category represents income/expense category. UserID 0 marks a
// global default category visible to everyone.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"-"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Emoji     string    `gorm:"size:16" json:"emoji"`
	Color     string    `gorm:"size:16" json:"color"` // hex code
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
