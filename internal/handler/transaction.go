package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/achievement"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/recurring"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionHandler serves the ledger-entry endpoints.
type TransactionHandler struct {
	DB           *gorm.DB
	Achievements *achievement.Engine
}

func NewTransactionHandler(db *gorm.DB, achievements *achievement.Engine) *TransactionHandler {
	return &TransactionHandler{DB: db, Achievements: achievements}
}

type transactionReq struct {
	Description     string          `json:"description" binding:"required,max=255"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Type            string          `json:"type" binding:"required"`
	CategoryID      *uint           `json:"category_id"`
	PaymentMethod   string          `json:"payment_method"`
	TransactionDate string          `json:"transaction_date"` // YYYY-MM-DD, defaults to today
	Recurring       bool            `json:"recurring"`
	Frequency       string          `json:"frequency"` // required when recurring
}

// resolveCategory loads a category and checks the user may use it
// (own or global). Returns nil for a nil ID.
func (h *TransactionHandler) resolveCategory(userID uint, categoryID *uint) (*models.Category, error) {
	if categoryID == nil {
		return nil, nil
	}
	var category models.Category
	if err := h.DB.First(&category, *categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	if category.UserID != 0 && category.UserID != userID {
		return nil, models.ErrNotFound
	}
	return &category, nil
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must be positive")
		return
	}
	if err := util.ValidateType(req.Type); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "type must be INCOME or EXPENSE")
		return
	}
	// a bad frequency must reject the whole request before the entry is
	// persisted, or a retrying client would duplicate it
	if req.Recurring {
		if err := util.ValidateFrequency(req.Frequency); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "frequency must be DAILY, WEEKLY, MONTHLY or YEARLY")
			return
		}
	}
	if _, err := h.resolveCategory(user.ID, req.CategoryID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load category")
		}
		return
	}

	txDate := time.Now()
	if req.TransactionDate != "" {
		parsed, err := util.ParseDate(req.TransactionDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "transaction date must be YYYY-MM-DD")
			return
		}
		txDate = parsed
	}

	entry := models.Transaction{
		UserID:          user.ID,
		Description:     req.Description,
		Amount:          req.Amount,
		Type:            req.Type,
		CategoryID:      req.CategoryID,
		PaymentMethod:   req.PaymentMethod,
		TransactionDate: txDate,
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save transaction")
		return
	}

	// optionally register a recurring rule seeded one period after the
	// transaction's date
	if req.Recurring {
		rule := models.RecurringTransaction{
			UserID:        user.ID,
			Description:   req.Description,
			Amount:        req.Amount,
			Type:          req.Type,
			Frequency:     req.Frequency,
			NextRunDate:   recurring.AddPeriod(recurring.DateOnly(txDate), req.Frequency),
			CategoryID:    req.CategoryID,
			PaymentMethod: req.PaymentMethod,
			Active:        true,
		}
		if err := h.DB.Create(&rule).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save recurring rule")
			return
		}
	}

	// the entry is committed at this point; a failed evaluation must
	// never fail or roll back the financial record, so it is only logged
	if err := h.Achievements.Evaluate(user); err != nil {
		log.Printf("achievement: evaluate after transaction %d: %v", entry.ID, err)
	}

	util.Success(c, util.Response{"transaction": entry})
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}

	base := h.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query transactions")
		return
	}

	var transactions []models.Transaction
	if err := base.Session(&gorm.Session{}).
		Preload("Category").
		Order("transaction_date DESC, id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query transactions")
		return
	}

	util.Success(c, util.Response{
		"items": transactions,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

// RecentTransactions returns the six most recent entries for the
// dashboard overview.
func (h *TransactionHandler) RecentTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var transactions []models.Transaction
	if err := h.DB.Preload("Category").
		Where("user_id = ?", user.ID).
		Order("transaction_date DESC, id DESC").
		Limit(6).
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query transactions")
		return
	}

	util.Success(c, util.Response{"items": transactions})
}

// TransactionStats returns income/expense totals, balance and count.
func (h *TransactionHandler) TransactionStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var transactions []models.Transaction
	if err := h.DB.Where("user_id = ?", user.ID).Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query transactions")
		return
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	for i := range transactions {
		if transactions[i].Type == models.TypeIncome {
			totalIncome = totalIncome.Add(transactions[i].Amount)
		} else {
			totalExpenses = totalExpenses.Add(transactions[i].Amount)
		}
	}

	util.Success(c, util.Response{
		"total_income":      totalIncome,
		"total_expenses":    totalExpenses,
		"balance":           totalIncome.Sub(totalExpenses),
		"transaction_count": len(transactions),
	})
}

type updateTransactionReq struct {
	Description string          `json:"description" binding:"required,max=255"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  *uint           `json:"category_id"`
}

// UpdateTransaction corrects description, amount or category of an
// existing entry. The effective date is immutable after creation.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req updateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must be positive")
		return
	}
	if _, err := h.resolveCategory(user.ID, req.CategoryID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load category")
		}
		return
	}

	var entry models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query transactions")
		}
		return
	}

	entry.Description = req.Description
	entry.Amount = req.Amount
	entry.CategoryID = req.CategoryID

	if err := h.DB.Save(&entry).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save transaction")
		return
	}

	util.Success(c, util.Response{"transaction": entry})
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Transaction{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete transaction")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		return
	}

	util.Success(c, util.Response{"message": "deleted"})
}
