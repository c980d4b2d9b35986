package repositories

import (
	"errors"
	"fmt"

	"habit-tracker-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	CreateNotification(notification *models.Notification) (*models.Notification, error)
	GetUserNotifications(userID uuid.UUID, includeRead bool) ([]models.Notification, error)
	CountUnread(userID uuid.UUID) (int64, error)
	MarkAsRead(id uuid.UUID) (*models.Notification, error)
	MarkAllAsRead(userID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// CreateNotification persists a notification together with its actions in
// one transaction, so a failure rolls back the whole notice and nothing
// else.
func (r *notificationRepository) CreateNotification(notification *models.Notification) (*models.Notification, error) {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	for i := range notification.Actions {
		if notification.Actions[i].ID == uuid.Nil {
			notification.Actions[i].ID = uuid.New()
		}
		notification.Actions[i].NotificationID = notification.ID
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(notification).Error
	})
	if err != nil {
		return nil, err
	}
	return notification, nil
}

// GetUserNotifications returns a user's notifications newest first, with
// their actions preloaded.
func (r *notificationRepository) GetUserNotifications(userID uuid.UUID, includeRead bool) ([]models.Notification, error) {
	query := r.db.
		Preload("Actions").
		Where("user_id = ?", userID)
	if !includeRead {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkAsRead(id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.Preload("Actions").First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotificationNotFound, id)
		}
		return nil, err
	}

	if err := r.db.Model(&notification).Update("is_read", true).Error; err != nil {
		return nil, err
	}
	notification.IsRead = true
	return &notification, nil
}

// MarkAllAsRead flips every unread notification for the user and reports
// how many were updated.
func (r *notificationRepository) MarkAllAsRead(userID uuid.UUID) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}
