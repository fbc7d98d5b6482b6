// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// NotificationType categorizes the event that produced a notification.
type NotificationType string

const (
	// NotificationTypePhotoPost is created when a friend shares a photo.
	NotificationTypePhotoPost NotificationType = "photo_post"
	// NotificationTypeComment is created when someone comments on your photo.
	NotificationTypeComment NotificationType = "comment"
	// NotificationTypeFriendRequest is created when someone sends or accepts
	// a friend request.
	NotificationTypeFriendRequest NotificationType = "friend_request"
)

// Notification is a persisted activity record for a single recipient.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message   string           `gorm:"not null" json:"message"`
	PhotoID   *uint            `json:"photo_id,omitempty"`
	Read      bool             `gorm:"default:false" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
