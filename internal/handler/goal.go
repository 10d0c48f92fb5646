package handler

import (
	"net/http"
	"strconv"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GoalHandler serves savings-goal endpoints.
type GoalHandler struct {
	DB *gorm.DB
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{DB: db}
}

type goalReq struct {
	Name         string          `json:"name" binding:"required,max=128"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	Deadline     string          `json:"deadline"` // YYYY-MM-DD
	Color        string          `json:"color" binding:"max=16"`
	Icon         string          `json:"icon" binding:"max=32"`
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateAmount(req.TargetAmount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "target amount must be positive")
		return
	}

	goal := models.Goal{
		UserID:        user.ID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: decimal.Zero,
		Color:         req.Color,
		Icon:          req.Icon,
	}
	if req.Deadline != "" {
		t, err := util.ParseDate(req.Deadline)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "deadline must be YYYY-MM-DD")
			return
		}
		goal.Deadline = &t
	}

	if err := h.DB.Create(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create goal")
		return
	}

	util.Success(c, util.Response{"goal": goal})
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var goals []models.Goal
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query goals")
		return
	}

	util.Success(c, util.Response{"items": goals})
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateAmount(req.TargetAmount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "target amount must be positive")
		return
	}

	var goal models.Goal
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&goal).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "goal not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query goals")
		}
		return
	}

	goal.Name = req.Name
	goal.TargetAmount = req.TargetAmount
	goal.Color = req.Color
	goal.Icon = req.Icon
	if req.Deadline != "" {
		t, err := util.ParseDate(req.Deadline)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "deadline must be YYYY-MM-DD")
			return
		}
		goal.Deadline = &t
	}

	if err := h.DB.Save(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save goal")
		return
	}

	util.Success(c, util.Response{"goal": goal})
}

type contributionReq struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// AddContribution adds money towards a goal.
func (h *GoalHandler) AddContribution(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req contributionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must be positive")
		return
	}

	var goal models.Goal
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&goal).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "goal not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query goals")
		}
		return
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(req.Amount)
	if err := h.DB.Save(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save goal")
		return
	}

	util.Success(c, util.Response{"goal": goal})
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Goal{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete goal")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "goal not found")
		return
	}

	util.Success(c, util.Response{"message": "deleted"})
}
