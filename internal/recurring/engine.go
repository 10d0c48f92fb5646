package recurring

import (
	"errors"
	"fmt"
	"time"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Engine materializes due recurring transactions into real ones.
//
// A tick selects every active rule whose next run date is on or before
// the tick date, creates exactly one transaction per rule and advances
// the rule by a single period. A rule that missed several ticks is NOT
// back-filled: it emits one transaction per tick and simply stays due
// until it catches up.
//
// The whole tick runs inside one database transaction. If any rule in
// the batch fails, nothing from the batch is committed and every rule
// stays due for the next tick.
type Engine struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEngine returns an engine backed by db.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db, now: time.Now}
}

// Tick processes every rule due on or before today and returns how
// many transactions were created. today may be any date, which lets
// tests and administrative re-runs drive the engine deterministically;
// ticking twice with the same date is harmless because processed rules
// have already been advanced past it.
func (e *Engine) Tick(today time.Time) (int, error) {
	day := DateOnly(today)
	processed := 0

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var rules []models.RecurringTransaction
		if err := tx.
			Where("active = ? AND next_run_date <= ?", true, day).
			Order("id ASC").
			Find(&rules).Error; err != nil {
			return fmt.Errorf("load due rules: %w", err)
		}

		for i := range rules {
			if err := e.materialize(tx, &rules[i]); err != nil {
				return err
			}
			processed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return processed, nil
}

// materialize creates one transaction from the rule and advances its
// next run date by a single period.
func (e *Engine) materialize(tx *gorm.DB, rule *models.RecurringTransaction) error {
	if rule.Amount.Cmp(decimal.Zero) <= 0 {
		return fmt.Errorf("rule %d: amount must be positive: %w", rule.ID, models.ErrValidation)
	}
	if !models.ValidFrequency(rule.Frequency) {
		return fmt.Errorf("rule %d: invalid frequency %q: %w", rule.ID, rule.Frequency, models.ErrValidation)
	}
	if rule.CategoryID != nil {
		var category models.Category
		if err := tx.First(&category, *rule.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("rule %d: category %d: %w", rule.ID, *rule.CategoryID, models.ErrNotFound)
			}
			return fmt.Errorf("rule %d: load category: %w", rule.ID, err)
		}
	}

	// the generated transaction is dated at the instant of processing,
	// not at the rule's (possibly overdue) next run date
	now := e.now()
	entry := models.Transaction{
		UserID:          rule.UserID,
		Description:     rule.Description,
		Amount:          rule.Amount,
		Type:            rule.Type,
		CategoryID:      rule.CategoryID,
		PaymentMethod:   rule.PaymentMethod,
		TransactionDate: now,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("rule %d: create transaction: %w", rule.ID, err)
	}

	rule.NextRunDate = AddPeriod(rule.NextRunDate, rule.Frequency)
	if err := tx.Save(rule).Error; err != nil {
		return fmt.Errorf("rule %d: advance next run date: %w", rule.ID, err)
	}
	return nil
}
