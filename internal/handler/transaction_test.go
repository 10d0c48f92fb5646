package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/achievement"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/database"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/notification"

	"github.com/gin-gonic/gin"
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

func setupTransactionRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)

	user := models.User{Email: "ada@example.com", PasswordHash: "x", Name: "Ada"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("currentUser", &user) })

	h := NewTransactionHandler(db, achievement.NewEngine(db, notification.NewService(db)))
	r.POST("/api/transactions", h.CreateTransaction)
	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// A bad frequency on a recurring create rejects the whole request
// before anything is persisted; a client retry cannot duplicate the
// entry.
func TestCreateTransactionRejectsBadFrequencyBeforePersisting(t *testing.T) {
	r, db := setupTransactionRouter(t)

	body := `{"description":"Rent","amount":"750.00","type":"EXPENSE","recurring":true,"frequency":"FORTNIGHTLY"}`
	w := postJSON(t, r, "/api/transactions", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var count int64
	if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if count != 0 {
		t.Errorf("transactions = %d, want 0 when the request is rejected", count)
	}
	if err := db.Model(&models.RecurringTransaction{}).Count(&count).Error; err != nil {
		t.Fatalf("count rules: %v", err)
	}
	if count != 0 {
		t.Errorf("rules = %d, want 0 when the request is rejected", count)
	}
}

// A valid recurring create persists the entry and a rule due one
// period after the entry's date.
func TestCreateTransactionWithRecurringRule(t *testing.T) {
	r, db := setupTransactionRouter(t)

	body := `{"description":"Rent","amount":"750.00","type":"EXPENSE","recurring":true,"frequency":"MONTHLY","transaction_date":"2025-03-15"}`
	w := postJSON(t, r, "/api/transactions", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if count != 1 {
		t.Errorf("transactions = %d, want 1", count)
	}

	var rule models.RecurringTransaction
	if err := db.First(&rule).Error; err != nil {
		t.Fatalf("load rule: %v", err)
	}
	want := time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)
	if !rule.NextRunDate.Equal(want) {
		t.Errorf("next run date = %v, want %v", rule.NextRunDate, want)
	}
}
