package notification

import (
	"fmt"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service persists user-facing notifications.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create stores a new unread notification for the user.
func (s *Service) Create(userID uint, title, message, severity string) error {
	return s.CreateIn(s.db, userID, title, message, severity)
}

// CreateIn stores the notification through the given handle, so a
// caller can commit it together with its own writes.
func (s *Service) CreateIn(db *gorm.DB, userID uint, title, message, severity string) error {
	n := models.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    severity,
	}
	if err := db.Create(&n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListForUser returns the user's notifications, newest first.
func (s *Service) ListForUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns how many unread notifications the user has.
func (s *Service) UnreadCount(userID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks a single notification as read. Returns
// models.ErrNotFound if the notification does not belong to the user.
func (s *Service) MarkRead(userID uint, id string) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("mark read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// MarkAllRead marks every notification of the user as read.
func (s *Service) MarkAllRead(userID uint) error {
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error; err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}
