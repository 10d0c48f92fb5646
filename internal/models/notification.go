package models

import "time"

// Notification severities.
const (
	SeverityInfo    = "INFO"
	SeveritySuccess = "SUCCESS"
	SeverityWarning = "WARNING"
)

// Notification is a user-facing message, e.g. an unlocked achievement.
type Notification struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"` // UUID
	UserID    uint      `gorm:"index;not null" json:"-"`
	Title     string    `gorm:"size:128;not null" json:"title"`
	Message   string    `gorm:"size:512" json:"message"`
	Type      string    `gorm:"size:16;not null" json:"type"`
	Read      bool      `gorm:"index;not null" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
