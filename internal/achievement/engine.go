package achievement

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/notification"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Engine evaluates the achievement catalog against a user's history
// and grants unlocks. Unlocks are monotonic: once granted an
// achievement is never revisited or revoked, and the composite unique
// index on user_achievements guarantees at most one record per pair
// even under concurrent evaluation.
type Engine struct {
	db       *gorm.DB
	notifier *notification.Service
	now      func() time.Time
}

func NewEngine(db *gorm.DB, notifier *notification.Service) *Engine {
	return &Engine{db: db, notifier: notifier, now: time.Now}
}

// Evaluate checks every catalog achievement the user has not yet
// unlocked, and unlocks those whose rule is satisfied. It is safe to
// call redundantly: with no new satisfying data it changes nothing.
func (e *Engine) Evaluate(user *models.User) error {
	var catalog []models.Achievement
	if err := e.db.Order("id ASC").Find(&catalog).Error; err != nil {
		return fmt.Errorf("load achievement catalog: %w", err)
	}

	for i := range catalog {
		a := &catalog[i]

		var unlocked int64
		if err := e.db.Model(&models.UserAchievement{}).
			Where("user_id = ? AND achievement_id = ?", user.ID, a.ID).
			Count(&unlocked).Error; err != nil {
			return fmt.Errorf("check unlock %q: %w", a.Name, err)
		}
		if unlocked > 0 {
			continue
		}

		satisfied, err := e.satisfied(user, a)
		if err != nil {
			return err
		}
		if !satisfied {
			continue
		}
		if err := e.unlock(user, a); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) satisfied(user *models.User, a *models.Achievement) (bool, error) {
	if a.Threshold <= 0 {
		return false, fmt.Errorf("achievement %q: non-positive threshold: %w", a.Name, models.ErrValidation)
	}

	switch a.Type {
	case models.RuleCountEntries:
		var count int64
		if err := e.db.Model(&models.Transaction{}).
			Where("user_id = ?", user.ID).
			Count(&count).Error; err != nil {
			return false, fmt.Errorf("count transactions: %w", err)
		}
		return count >= int64(a.Threshold), nil

	case models.RuleGoalsCompleted:
		completed, err := e.completedGoals(user.ID)
		if err != nil {
			return false, err
		}
		return completed >= a.Threshold, nil

	case models.RuleBudgetAdherence:
		adherent, err := e.adherentBudgets(user.ID)
		if err != nil {
			return false, err
		}
		return adherent >= a.Threshold, nil

	case models.RuleStreak:
		streak, err := e.currentStreak(user.ID)
		if err != nil {
			return false, err
		}
		return streak >= a.Threshold, nil
	}

	// unknown kinds never unlock
	return false, nil
}

// completedGoals counts the user's goals whose current amount has
// reached the target.
func (e *Engine) completedGoals(userID uint) (int, error) {
	var goals []models.Goal
	if err := e.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return 0, fmt.Errorf("load goals: %w", err)
	}
	completed := 0
	for i := range goals {
		if goals[i].Completed() {
			completed++
		}
	}
	return completed, nil
}

// adherentBudgets counts budgets whose in-window expenses stayed at or
// under the budgeted amount. Spending exactly the budget still counts
// as adherent. Budgets missing a start or end date are skipped.
func (e *Engine) adherentBudgets(userID uint) (int, error) {
	var budgets []models.Budget
	if err := e.db.Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		return 0, fmt.Errorf("load budgets: %w", err)
	}

	adherent := 0
	for i := range budgets {
		b := &budgets[i]
		if b.StartDate == nil || b.EndDate == nil {
			continue
		}

		// window bounds are calendar dates: the whole end day is
		// inside the window regardless of an expense's time of day
		start := dayStart(*b.StartDate)
		end := dayStart(*b.EndDate).AddDate(0, 0, 1)

		q := e.db.Model(&models.Transaction{}).
			Where("user_id = ? AND type = ?", userID, models.TypeExpense).
			Where("transaction_date >= ? AND transaction_date < ?", start, end)
		if b.CategoryID != nil {
			q = q.Where("category_id = ?", *b.CategoryID)
		}

		var expenses []models.Transaction
		if err := q.Find(&expenses).Error; err != nil {
			return 0, fmt.Errorf("load budget expenses: %w", err)
		}

		spent := decimal.Zero
		for j := range expenses {
			spent = spent.Add(expenses[j].Amount)
		}
		if spent.Cmp(b.Amount) <= 0 {
			adherent++
		}
	}
	return adherent, nil
}

// currentStreak returns the run of consecutive calendar days, counted
// backward from today, that each contain at least one transaction. A
// user with no transaction today has streak 0 regardless of history.
func (e *Engine) currentStreak(userID uint) (int, error) {
	var dates []time.Time
	if err := e.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Pluck("transaction_date", &dates).Error; err != nil {
		return 0, fmt.Errorf("load transaction dates: %w", err)
	}

	// both sides bucket in UTC, so a timestamped entry near midnight
	// lands in the same calendar day as its date-only siblings
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		seen[d.In(time.UTC).Format("2006-01-02")] = true
	}

	streak := 0
	now := e.now().In(time.UTC)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for seen[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// unlock inserts the unlock record and notifies the user. The two
// writes commit together: a failed notification must not leave a
// silent unlock behind, or later evaluations would skip the
// achievement and the notification would be lost for good. A duplicate
// key error means a concurrent evaluation won the race; that is
// treated as already-unlocked, not as a failure.
func (e *Engine) unlock(user *models.User, a *models.Achievement) error {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		record := models.UserAchievement{
			UserID:        user.ID,
			AchievementID: a.ID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return e.notifier.CreateIn(tx, user.ID,
			"Achievement Unlocked: "+a.Name, a.Description, models.SeveritySuccess)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unlock %q: %w", a.Name, err)
	}

	log.Printf("achievement: user %d unlocked %q", user.ID, a.Name)
	return nil
}

// Unlocked returns the user's unlock records with the catalog entries
// preloaded, newest first.
func (e *Engine) Unlocked(user *models.User) ([]models.UserAchievement, error) {
	var records []models.UserAchievement
	if err := e.db.Preload("Achievement").
		Where("user_id = ?", user.ID).
		Order("unlocked_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load unlocks: %w", err)
	}
	return records, nil
}

// Catalog returns all achievement definitions.
func (e *Engine) Catalog() ([]models.Achievement, error) {
	var catalog []models.Achievement
	if err := e.db.Order("id ASC").Find(&catalog).Error; err != nil {
		return nil, fmt.Errorf("load achievement catalog: %w", err)
	}
	return catalog, nil
}
