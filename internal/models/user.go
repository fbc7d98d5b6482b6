// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a user in the Glimpse application. Users are created on
// first sign-in through the identity provider; Username stays nil until the
// user completes their profile.
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Email    string  `gorm:"unique;not null" json:"email"`
	Username *string `gorm:"uniqueIndex" json:"username"`
	Name     string  `json:"name"`
	Bio      string  `json:"bio"`
	Color    string  `gorm:"type:varchar(7);default:'#000000'" json:"color"`
	Avatar   string  `json:"avatar"`

	// Per-category notification preferences.
	PostNotifications          bool `gorm:"default:true" json:"post_notifications"`
	CommentNotifications       bool `gorm:"default:true" json:"comment_notifications"`
	FriendRequestNotifications bool `gorm:"default:true" json:"friend_request_notifications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileComplete reports whether the user has finished profile setup.
// Handlers that require a username must consult this instead of checking
// the field directly.
func (u *User) ProfileComplete() bool {
	return u.Username != nil && *u.Username != ""
}

// DisplayName returns the name shown in notifications: username first,
// then name, then a generic fallback.
func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	if u.Name != "" {
		return u.Name
	}
	return "Someone"
}

// PublicProfile is the subset of user fields exposed to other users.
type PublicProfile struct {
	ID       uint    `json:"id"`
	Username *string `json:"username"`
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Avatar   string  `json:"avatar"`
}

// Public returns the user's public profile fields.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Color:    u.Color,
		Avatar:   u.Avatar,
	}
}

// NotificationPreferences groups the per-category notification flags.
type NotificationPreferences struct {
	PostNotifications          bool `json:"post_notifications"`
	CommentNotifications       bool `json:"comment_notifications"`
	FriendRequestNotifications bool `json:"friend_request_notifications"`
}

// Preferences returns the user's notification preference flags.
func (u *User) Preferences() NotificationPreferences {
	return NotificationPreferences{
		PostNotifications:          u.PostNotifications,
		CommentNotifications:       u.CommentNotifications,
		FriendRequestNotifications: u.FriendRequestNotifications,
	}
}
