package handler

import (
	"errors"
	"net/http"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/notification"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/util"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the notification endpoints.
type NotificationHandler struct {
	Service *notification.Service
}

func NewNotificationHandler(service *notification.Service) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.Service.ListForUser(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load notifications")
		return
	}
	util.Success(c, util.Response{"items": items})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	count, err := h.Service.UnreadCount(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to count notifications")
		return
	}
	util.Success(c, util.Response{"count": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Service.MarkRead(user.ID, c.Param("id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "notification not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update notification")
		}
		return
	}
	util.Success(c, util.Response{"message": "updated"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Service.MarkAllRead(user.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update notifications")
		return
	}
	util.Success(c, util.Response{"message": "updated"})
}
