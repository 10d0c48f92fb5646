package handler

import (
	"net/http"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/achievement"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/util"

	"github.com/gin-gonic/gin"
)

// AchievementHandler exposes the achievement catalog and the user's
// unlock state.
type AchievementHandler struct {
	Engine *achievement.Engine
}

func NewAchievementHandler(engine *achievement.Engine) *AchievementHandler {
	return &AchievementHandler{Engine: engine}
}

func (h *AchievementHandler) ListAchievements(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	catalog, err := h.Engine.Catalog()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load achievements")
		return
	}
	util.Success(c, util.Response{"items": catalog})
}

func (h *AchievementHandler) MyAchievements(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	unlocked, err := h.Engine.Unlocked(user)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load achievements")
		return
	}
	util.Success(c, util.Response{"items": unlocked})
}

// Progress re-evaluates the catalog and reports the unlock ratio.
// Querying achievement status is one of the engine's trigger points,
// so pending unlocks are granted here before counting.
func (h *AchievementHandler) Progress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Engine.Evaluate(user); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to evaluate achievements")
		return
	}

	catalog, err := h.Engine.Catalog()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load achievements")
		return
	}
	unlocked, err := h.Engine.Unlocked(user)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load achievements")
		return
	}

	percentage := 0
	if len(catalog) > 0 {
		percentage = len(unlocked) * 100 / len(catalog)
	}

	util.Success(c, util.Response{
		"unlocked_count": len(unlocked),
		"total_count":    len(catalog),
		"percentage":     percentage,
	})
}
