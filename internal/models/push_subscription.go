// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// PushSubscription stores a browser push endpoint and its key material for
// one user. The endpoint is globally unique; re-registering an endpoint
// updates the keys in place.
type PushSubscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Endpoint  string    `gorm:"unique;not null" json:"endpoint"`
	P256dh    string    `gorm:"not null" json:"p256dh"`
	Auth      string    `gorm:"not null" json:"auth"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
