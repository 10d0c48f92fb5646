package recurring

import (
	"errors"
	"testing"
	"time"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/database"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// a single connection keeps the in-memory database alive
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newRule(db *gorm.DB, t *testing.T, frequency string, nextRun time.Time) *models.RecurringTransaction {
	t.Helper()
	rule := models.RecurringTransaction{
		UserID:        1,
		Description:   "Rent",
		Amount:        decimal.RequireFromString("750.00"),
		Type:          models.TypeExpense,
		Frequency:     frequency,
		NextRunDate:   nextRun,
		PaymentMethod: models.PaymentBankTransfer,
		Active:        true,
	}
	if err := db.Create(&rule).Error; err != nil {
		t.Fatalf("create rule: %v", err)
	}
	return &rule
}

func countTransactions(db *gorm.DB, t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return count
}

// Three separate daily ticks produce exactly one transaction each.
func TestTickOncePerDay(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	newRule(db, t, models.FrequencyDaily, day(2025, time.March, 1))

	for i := 0; i < 3; i++ {
		n, err := engine.Tick(day(2025, time.March, 1+i))
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if n != 1 {
			t.Errorf("tick %d processed %d rules, want 1", i, n)
		}
	}

	if got := countTransactions(db, t); got != 3 {
		t.Errorf("transactions = %d, want 3", got)
	}
}

// A single tick after several missed days emits exactly one
// transaction and leaves the rule still due: missed occurrences are
// never back-filled in one run.
func TestTickNoBackfill(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	rule := newRule(db, t, models.FrequencyDaily, day(2025, time.March, 1))

	n, err := engine.Tick(day(2025, time.March, 4))
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if n != 1 {
		t.Errorf("processed %d rules, want 1", n)
	}
	if got := countTransactions(db, t); got != 1 {
		t.Errorf("transactions = %d, want 1", got)
	}

	if err := db.First(rule, rule.ID).Error; err != nil {
		t.Fatalf("reload rule: %v", err)
	}
	next := rule.NextRunDate
	if !next.Equal(day(2025, time.March, 2)) {
		t.Errorf("next run date = %v, want %v", next, day(2025, time.March, 2))
	}
	// still due: a later tick picks it up again
	n, err = engine.Tick(day(2025, time.March, 4))
	if err != nil {
		t.Fatalf("second tick: %v", err)
	}
	if n != 1 {
		t.Errorf("second tick processed %d rules, want 1", n)
	}
}

// A rule already advanced past the tick date is not selected again.
func TestTickSameDayTwice(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	newRule(db, t, models.FrequencyDaily, day(2025, time.March, 1))

	if _, err := engine.Tick(day(2025, time.March, 1)); err != nil {
		t.Fatalf("tick: %v", err)
	}
	n, err := engine.Tick(day(2025, time.March, 1))
	if err != nil {
		t.Fatalf("second tick: %v", err)
	}
	if n != 0 {
		t.Errorf("second tick processed %d rules, want 0", n)
	}
	if got := countTransactions(db, t); got != 1 {
		t.Errorf("transactions = %d, want 1", got)
	}
}

func TestTickSkipsInactiveRules(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	rule := newRule(db, t, models.FrequencyDaily, day(2025, time.March, 1))
	if err := db.Model(rule).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate rule: %v", err)
	}

	n, err := engine.Tick(day(2025, time.March, 5))
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if n != 0 {
		t.Errorf("processed %d rules, want 0", n)
	}
	if got := countTransactions(db, t); got != 0 {
		t.Errorf("transactions = %d, want 0", got)
	}
}

// Generated transactions are dated at the instant of processing, not
// at the rule's (possibly overdue) next run date.
func TestTickUsesProcessingInstant(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	instant := time.Date(2025, time.June, 10, 14, 30, 0, 0, time.UTC)
	engine.now = func() time.Time { return instant }

	newRule(db, t, models.FrequencyMonthly, day(2025, time.January, 15))

	if _, err := engine.Tick(day(2025, time.June, 10)); err != nil {
		t.Fatalf("tick: %v", err)
	}

	var entry models.Transaction
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}
	if !entry.TransactionDate.Equal(instant) {
		t.Errorf("transaction date = %v, want processing instant %v", entry.TransactionDate, instant)
	}
}

// One bad rule rolls back the entire tick: no transactions are
// committed and no rule is advanced.
func TestTickRollsBackWholeBatch(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)

	good := newRule(db, t, models.FrequencyDaily, day(2025, time.March, 1))

	missing := uint(999)
	bad := models.RecurringTransaction{
		UserID:      1,
		Description: "Gym",
		Amount:      decimal.RequireFromString("30.00"),
		Type:        models.TypeExpense,
		Frequency:   models.FrequencyWeekly,
		NextRunDate: day(2025, time.March, 1),
		CategoryID:  &missing,
		Active:      true,
	}
	if err := db.Create(&bad).Error; err != nil {
		t.Fatalf("create bad rule: %v", err)
	}

	_, err := engine.Tick(day(2025, time.March, 1))
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("tick error = %v, want ErrNotFound", err)
	}

	if got := countTransactions(db, t); got != 0 {
		t.Errorf("transactions = %d, want 0 after rollback", got)
	}
	if err := db.First(good, good.ID).Error; err != nil {
		t.Fatalf("reload good rule: %v", err)
	}
	if !good.NextRunDate.Equal(day(2025, time.March, 1)) {
		t.Errorf("good rule advanced to %v despite rollback", good.NextRunDate)
	}
}

// A zero-amount rule is a validation error and also aborts the batch.
func TestTickRejectsNonPositiveAmount(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)

	rule := models.RecurringTransaction{
		UserID:      1,
		Description: "Broken",
		Amount:      decimal.Zero,
		Type:        models.TypeExpense,
		Frequency:   models.FrequencyDaily,
		NextRunDate: day(2025, time.March, 1),
		Active:      true,
	}
	if err := db.Create(&rule).Error; err != nil {
		t.Fatalf("create rule: %v", err)
	}

	_, err := engine.Tick(day(2025, time.March, 1))
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("tick error = %v, want ErrValidation", err)
	}
	if got := countTransactions(db, t); got != 0 {
		t.Errorf("transactions = %d, want 0", got)
	}
}

func TestAddPeriod(t *testing.T) {
	cases := []struct {
		name      string
		frequency string
		from      time.Time
		want      time.Time
	}{
		{"daily", models.FrequencyDaily, day(2025, time.March, 31), day(2025, time.April, 1)},
		{"weekly", models.FrequencyWeekly, day(2025, time.February, 26), day(2025, time.March, 5)},
		{"monthly", models.FrequencyMonthly, day(2025, time.February, 15), day(2025, time.March, 15)},
		{"monthly clamps to feb 28", models.FrequencyMonthly, day(2025, time.January, 31), day(2025, time.February, 28)},
		{"monthly clamps to feb 29 in leap year", models.FrequencyMonthly, day(2024, time.January, 31), day(2024, time.February, 29)},
		{"monthly clamps mar 31 to apr 30", models.FrequencyMonthly, day(2025, time.March, 31), day(2025, time.April, 30)},
		{"monthly across year end", models.FrequencyMonthly, day(2025, time.December, 31), day(2026, time.January, 31)},
		{"yearly", models.FrequencyYearly, day(2025, time.July, 4), day(2026, time.July, 4)},
		{"yearly clamps feb 29", models.FrequencyYearly, day(2024, time.February, 29), day(2025, time.February, 28)},
	}

	for _, tc := range cases {
		if got := AddPeriod(tc.from, tc.frequency); !got.Equal(tc.want) {
			t.Errorf("%s: AddPeriod(%v) = %v, want %v", tc.name, tc.from, got, tc.want)
		}
	}
}
