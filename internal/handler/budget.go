package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetHandler serves budget endpoints.
type BudgetHandler struct {
	DB *gorm.DB
}

func NewBudgetHandler(db *gorm.DB) *BudgetHandler {
	return &BudgetHandler{DB: db}
}

type budgetReq struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	StartDate  string          `json:"start_date"` // YYYY-MM-DD
	EndDate    string          `json:"end_date"`
	CategoryID *uint           `json:"category_id"`
}

// parseWindow resolves the budget window, defaulting to the current
// calendar month when both dates are omitted.
func parseWindow(startStr, endStr string) (*time.Time, *time.Time, error) {
	if startStr == "" && endStr == "" {
		now := time.Now()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, -1)
		return &start, &end, nil
	}

	var start, end *time.Time
	if startStr != "" {
		t, err := util.ParseDate(startStr)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if endStr != "" {
		t, err := util.ParseDate(endStr)
		if err != nil {
			return nil, nil, err
		}
		end = &t
	}
	return start, end, nil
}

func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must be positive")
		return
	}

	if req.CategoryID != nil {
		var count int64
		if err := h.DB.Model(&models.Budget{}).
			Where("user_id = ? AND category_id = ?", user.ID, *req.CategoryID).
			Count(&count).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query budgets")
			return
		}
		if count > 0 {
			util.Error(c, http.StatusConflict, util.CodeConflict, "budget already exists for this category")
			return
		}
	}

	start, end, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "dates must be YYYY-MM-DD")
		return
	}

	budget := models.Budget{
		UserID:     user.ID,
		Amount:     req.Amount,
		StartDate:  start,
		EndDate:    end,
		CategoryID: req.CategoryID,
	}
	if err := h.DB.Create(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create budget")
		return
	}

	util.Success(c, util.Response{"budget": budget})
}

func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var budgets []models.Budget
	if err := h.DB.Preload("Category").
		Where("user_id = ?", user.ID).
		Order("id ASC").
		Find(&budgets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query budgets")
		return
	}

	util.Success(c, util.Response{"items": budgets})
}

func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must be positive")
		return
	}

	var budget models.Budget
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&budget).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "budget not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query budgets")
		}
		return
	}

	budget.Amount = req.Amount
	if req.StartDate != "" {
		t, err := util.ParseDate(req.StartDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "dates must be YYYY-MM-DD")
			return
		}
		budget.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := util.ParseDate(req.EndDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "dates must be YYYY-MM-DD")
			return
		}
		budget.EndDate = &t
	}

	if err := h.DB.Save(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save budget")
		return
	}

	util.Success(c, util.Response{"budget": budget})
}

func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Budget{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete budget")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "budget not found")
		return
	}

	util.Success(c, util.Response{"message": "deleted"})
}
