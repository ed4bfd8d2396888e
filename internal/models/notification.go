package models

import "time"

type NotificationType string

const (
	NotifInfo    NotificationType = "info"
	NotifSuccess NotificationType = "success"
	NotifWarning NotificationType = "warning"
	NotifError   NotificationType = "error"
)

type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Title   string           `gorm:"size:100;not null" json:"title"`
	Message string           `gorm:"size:500;not null" json:"message"`
	Type    NotificationType `gorm:"size:20;default:'info'" json:"type"`

	Read bool `gorm:"default:false" json:"read"`

	RideID *uint `json:"related_ride_id"`

	CreatedAt time.Time `json:"date"`
}
