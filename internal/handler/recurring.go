package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/recurring"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringHandler serves recurring-rule endpoints.
type RecurringHandler struct {
	DB     *gorm.DB
	Engine *recurring.Engine
}

func NewRecurringHandler(db *gorm.DB, engine *recurring.Engine) *RecurringHandler {
	return &RecurringHandler{DB: db, Engine: engine}
}

type recurringReq struct {
	Description   string          `json:"description" binding:"required,max=255"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Type          string          `json:"type" binding:"required"`
	Frequency     string          `json:"frequency" binding:"required"`
	NextRunDate   string          `json:"next_run_date"` // YYYY-MM-DD, defaults to today
	CategoryID    *uint           `json:"category_id"`
	PaymentMethod string          `json:"payment_method"`
}

func (h *RecurringHandler) CreateRule(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req recurringReq
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
	if err := util.ValidateFrequency(req.Frequency); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "frequency must be DAILY, WEEKLY, MONTHLY or YEARLY")
		return
	}

	nextRun := recurring.DateOnly(time.Now())
	if req.NextRunDate != "" {
		t, err := util.ParseDate(req.NextRunDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "next run date must be YYYY-MM-DD")
			return
		}
		// the next due date can never precede the rule's creation
		if t.Before(nextRun) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "next run date cannot be in the past")
			return
		}
		nextRun = t
	}

	rule := models.RecurringTransaction{
		UserID:        user.ID,
		Description:   req.Description,
		Amount:        req.Amount,
		Type:          req.Type,
		Frequency:     req.Frequency,
		NextRunDate:   nextRun,
		CategoryID:    req.CategoryID,
		PaymentMethod: req.PaymentMethod,
		Active:        true,
	}
	if err := h.DB.Create(&rule).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create rule")
		return
	}

	util.Success(c, util.Response{"rule": rule})
}

func (h *RecurringHandler) ListRules(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var rules []models.RecurringTransaction
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("id ASC").
		Find(&rules).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query rules")
		return
	}

	util.Success(c, util.Response{"items": rules})
}

// UpdateRule rewrites a rule's template fields. The next run date is
// only moved when the request supplies one.
func (h *RecurringHandler) UpdateRule(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req recurringReq
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
	if err := util.ValidateFrequency(req.Frequency); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "frequency must be DAILY, WEEKLY, MONTHLY or YEARLY")
		return
	}

	var rule models.RecurringTransaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&rule).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "rule not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query rules")
		}
		return
	}

	rule.Description = req.Description
	rule.Amount = req.Amount
	rule.Type = req.Type
	rule.Frequency = req.Frequency
	rule.CategoryID = req.CategoryID
	rule.PaymentMethod = req.PaymentMethod
	if req.NextRunDate != "" {
		t, err := util.ParseDate(req.NextRunDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "next run date must be YYYY-MM-DD")
			return
		}
		if t.Before(recurring.DateOnly(time.Now())) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "next run date cannot be in the past")
			return
		}
		rule.NextRunDate = t
	}

	if err := h.DB.Save(&rule).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save rule")
		return
	}

	util.Success(c, util.Response{"rule": rule})
}

type setActiveReq struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive flips a rule's active flag. Inactive rules are never
// picked up by the scheduler.
func (h *RecurringHandler) SetActive(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req setActiveReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	res := h.DB.Model(&models.RecurringTransaction{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("active", *req.Active)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update rule")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "rule not found")
		return
	}

	util.Success(c, util.Response{"message": "updated"})
}

// RunTick triggers the schedule engine by hand, optionally with a
// ?date=YYYY-MM-DD override. Re-running the current date is harmless:
// rules already advanced past it are not selected again.
func (h *RecurringHandler) RunTick(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		t, err := util.ParseDate(dateStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date must be YYYY-MM-DD")
			return
		}
		day = t
	}

	n, err := h.Engine.Tick(day)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "tick failed, no rules were processed")
		return
	}
	util.Success(c, util.Response{"processed": n})
}

func (h *RecurringHandler) DeleteRule(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.RecurringTransaction{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete rule")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "rule not found")
		return
	}

	util.Success(c, util.Response{"message": "deleted"})
}
