package database

import (
	"fmt"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"

	"gorm.io/gorm"
)

// Seed inserts default categories and the achievement catalog if the
// tables are empty. The achievement catalog is process-wide static
// data: it is only ever written here, at startup.
func Seed(db *gorm.DB) error {
	if err := seedCategories(db); err != nil {
		return err
	}
	return seedAchievements(db)
}

func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Housing", Emoji: "🏠", Color: "#FF5733"},
		{Name: "Transportation", Emoji: "🚗", Color: "#33FF57"},
		{Name: "Food", Emoji: "🍔", Color: "#3357FF"},
		{Name: "Utilities", Emoji: "💡", Color: "#F3FF33"},
		{Name: "Healthcare", Emoji: "🏥", Color: "#FF33F3"},
		{Name: "Entertainment", Emoji: "🎬", Color: "#33FFF3"},
		{Name: "Shopping", Emoji: "🛍️", Color: "#FF8333"},
		{Name: "Personal Care", Emoji: "💅", Color: "#8333FF"},
		{Name: "Education", Emoji: "🎓", Color: "#33FF83"},
		{Name: "Savings", Emoji: "💰", Color: "#3383FF"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}

func seedAchievements(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Achievement{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count achievements: %w", err)
	}
	if count > 0 {
		return nil
	}

	achievements := []models.Achievement{
		{Name: "First Steps", Description: "Create your first transaction", Icon: "Footprints", Type: models.RuleCountEntries, Threshold: 1},
		{Name: "Regular Saver", Description: "Create 10 transactions", Icon: "Coins", Type: models.RuleCountEntries, Threshold: 10},
		{Name: "Budget Master", Description: "Create 50 transactions", Icon: "Trophy", Type: models.RuleCountEntries, Threshold: 50},
		{Name: "Century Club", Description: "Create 100 transactions", Icon: "Crown", Type: models.RuleCountEntries, Threshold: 100},
		{Name: "Goal Getter", Description: "Complete your first savings goal", Icon: "Target", Type: models.RuleGoalsCompleted, Threshold: 1},
		{Name: "Dream Chaser", Description: "Complete 5 savings goals", Icon: "Rocket", Type: models.RuleGoalsCompleted, Threshold: 5},
		{Name: "Penny Wise", Description: "Stay within budget 3 times", Icon: "PiggyBank", Type: models.RuleBudgetAdherence, Threshold: 3},
		{Name: "Habit Builder", Description: "Record transactions 3 days in a row", Icon: "Repeat", Type: models.RuleStreak, Threshold: 3},
		{Name: "On Fire", Description: "Record transactions 7 days in a row", Icon: "Flame", Type: models.RuleStreak, Threshold: 7},
	}
	if err := db.Create(&achievements).Error; err != nil {
		return fmt.Errorf("seed achievements: %w", err)
	}
	return nil
}
