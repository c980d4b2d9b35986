package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationActionType tags what a follow-up action does on the client.
type NotificationActionType string

const (
	DownloadActionType NotificationActionType = "download"
	DeleteActionType   NotificationActionType = "delete"
)

// Notification is a message addressed to one user. Upload completions
// create these as a side effect; they can also be created directly.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title   string    `gorm:"type:varchar(100);not null" json:"title"`
	Message string    `gorm:"type:varchar(255);not null" json:"message"`
	IsRead  bool      `gorm:"default:false;not null" json:"is_read"`

	Actions []NotificationAction `gorm:"foreignKey:NotificationID" json:"actions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// NotificationAction is an actionable follow-up attached to a notification,
// e.g. download or delete the file the notification refers to.
type NotificationAction struct {
	ID             uuid.UUID              `gorm:"type:uuid;primary_key;" json:"id"`
	NotificationID uuid.UUID              `gorm:"type:uuid;not null;index" json:"notification_id"`
	ActionType     NotificationActionType `gorm:"type:varchar(30);not null" json:"action_type"`
	Label          string                 `gorm:"type:varchar(100);not null" json:"label"`
	Payload        string                 `gorm:"type:varchar(255)" json:"payload"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
