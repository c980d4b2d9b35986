package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account that owns habits and receives notifications.
// Account management itself lives outside this service; the ingestion
// pipeline only ever looks users up by id.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Username string    `gorm:"type:varchar(100);unique;not null;index" json:"username"`
	Email    string    `gorm:"type:varchar(255);unique;not null;index" json:"email"`
	Password string    `json:"-"` // Never include in JSON responses

	Active bool `gorm:"default:true" json:"active"`

	Notifications []Notification `gorm:"foreignKey:UserID" json:"notifications,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
