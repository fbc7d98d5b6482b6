// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Photo represents a shared photo in the Glimpse application. Photos are
// immutable after creation.
type Photo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	Caption   string    `gorm:"type:varchar(2200)" json:"caption"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// MaxCaptionLength is the longest caption accepted on photo creation.
const MaxCaptionLength = 2200
