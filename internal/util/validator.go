package util

import (
	"fmt"
	"time"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"

	"github.com/shopspring/decimal"
)

var maxAmount = decimal.NewFromInt(10_000_000)

// ValidateAmount checks that an amount is positive and below the cap.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Cmp(decimal.Zero) <= 0 {
		return fmt.Errorf("amount must be positive, got %s: %w", amount, models.ErrValidation)
	}
	if amount.Cmp(maxAmount) >= 0 {
		return fmt.Errorf("amount too large, got %s: %w", amount, models.ErrValidation)
	}
	return nil
}

// ValidateType checks the transaction direction.
func ValidateType(txType string) error {
	if txType != models.TypeIncome && txType != models.TypeExpense {
		return fmt.Errorf("invalid transaction type %q: %w", txType, models.ErrValidation)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", models.ErrValidation)
	}
	return t, nil
}

// ValidateFrequency checks a recurrence frequency.
func ValidateFrequency(frequency string) error {
	if !models.ValidFrequency(frequency) {
		return fmt.Errorf("invalid frequency %q: %w", frequency, models.ErrValidation)
	}
	return nil
}
