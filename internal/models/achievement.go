package models

import "time"

// Achievement rule kinds.
const (
	RuleCountEntries    = "COUNT_ENTRIES"
	RuleGoalsCompleted  = "GOALS_COMPLETED"
	RuleBudgetAdherence = "BUDGET_ADHERENCE"
	RuleStreak          = "STREAK"
)

// Achievement is an immutable catalog entry, seeded at startup and
// never mutated at runtime.
type Achievement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Icon        string    `gorm:"size:32;not null" json:"icon"` // Lucide icon name, e.g. "Award"
	Type        string    `gorm:"size:32;not null" json:"type"`
	Threshold   int       `gorm:"not null" json:"threshold"`
	CreatedAt   time.Time `json:"-"`
}

// UserAchievement records that a user has unlocked an achievement.
// The composite unique index makes duplicate unlocks impossible at the
// storage layer, which is what keeps concurrent evaluations correct.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"-"`
	AchievementID uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"achievement_id"`
	UnlockedAt    time.Time `gorm:"autoCreateTime" json:"unlocked_at"`

	Achievement Achievement `gorm:"constraint:OnDelete:CASCADE" json:"achievement"`
}
