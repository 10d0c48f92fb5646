package recurring

import (
	"time"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"
)

// DateOnly truncates t to midnight in its own location. Rule due dates
// carry calendar-date semantics, so every comparison against "today"
// goes through this first.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddPeriod advances a date by exactly one period of the given
// frequency. Month and year steps clamp to the last valid day of the
// target month (Jan 31 + 1 month = Feb 28, Feb 29 + 1 year = Feb 28),
// rather than Go's AddDate overflow normalization which would roll
// Jan 31 into early March.
func AddPeriod(d time.Time, frequency string) time.Time {
	switch frequency {
	case models.FrequencyDaily:
		return d.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return d.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return addMonths(d, 1)
	case models.FrequencyYearly:
		return addMonths(d, 12)
	}
	return d
}

func addMonths(d time.Time, months int) time.Time {
	// first day of the target month, then clamp the day
	first := time.Date(d.Year(), d.Month()+time.Month(months), 1, 0, 0, 0, 0, d.Location())
	day := d.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}
