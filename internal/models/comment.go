// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment represents a comment on a photo.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PhotoID   uint      `gorm:"not null;index" json:"photo_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"user"`
	Photo Photo `gorm:"foreignKey:PhotoID" json:"photo,omitempty"`
}
