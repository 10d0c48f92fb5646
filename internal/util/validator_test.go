package util

import (
	"errors"
	"testing"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"

	"github.com/shopspring/decimal"
)

func TestValidateAmount_Positive(t *testing.T) {
	testCases := []string{"0.01", "1.00", "100.50", "9999999.99"}

	for _, amount := range testCases {
		err := ValidateAmount(decimal.RequireFromString(amount))
		if err != nil {
			t.Errorf("ValidateAmount(%s) error = %v, want nil", amount, err)
		}
	}
}

func TestValidateAmount_NonPositive(t *testing.T) {
	testCases := []string{"0", "-0.01", "-100", "-9999.99"}

	for _, amount := range testCases {
		err := ValidateAmount(decimal.RequireFromString(amount))
		if !errors.Is(err, models.ErrValidation) {
			t.Errorf("ValidateAmount(%s) error = %v, want ErrValidation", amount, err)
		}
	}
}

func TestValidateAmount_TooLarge(t *testing.T) {
	err := ValidateAmount(decimal.NewFromInt(100_000_000))
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("ValidateAmount(100000000) error = %v, want ErrValidation", err)
	}
}

func TestValidateType(t *testing.T) {
	if err := ValidateType(models.TypeIncome); err != nil {
		t.Errorf("ValidateType(INCOME) error = %v, want nil", err)
	}
	if err := ValidateType(models.TypeExpense); err != nil {
		t.Errorf("ValidateType(EXPENSE) error = %v, want nil", err)
	}
	if err := ValidateType("TRANSFER"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("ValidateType(TRANSFER) error = %v, want ErrValidation", err)
	}
}

func TestParseDate_Valid(t *testing.T) {
	testCases := []string{"2024-01-01", "2024-12-31", "2025-06-15"}

	for _, date := range testCases {
		if _, err := ParseDate(date); err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", date, err)
		}
	}
}

func TestParseDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, date := range testCases {
		if _, err := ParseDate(date); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateFrequency(t *testing.T) {
	for _, f := range []string{"DAILY", "WEEKLY", "MONTHLY", "YEARLY"} {
		if err := ValidateFrequency(f); err != nil {
			t.Errorf("ValidateFrequency(%q) error = %v, want nil", f, err)
		}
	}
	for _, f := range []string{"", "HOURLY", "daily", "BIWEEKLY"} {
		if err := ValidateFrequency(f); !errors.Is(err, models.ErrValidation) {
			t.Errorf("ValidateFrequency(%q) error = %v, want ErrValidation", f, err)
		}
	}
}
