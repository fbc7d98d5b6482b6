// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// FriendRequest is a directional proposal from one user to another. A row's
// existence means the request is pending; accepting or declining deletes it.
type FriendRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequesterID uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"requester_id"`
	RequestedID uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"requested_id"`
	CreatedAt   time.Time `json:"created_at"`

	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Requested User `gorm:"foreignKey:RequestedID" json:"requested,omitempty"`
}

// Friendship is a confirmed, symmetric relation between two users.
// User1ID is always the smaller ID so the unordered pair is unique under
// the composite index.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User1ID   uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"user1_id"`
	User2ID   uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`

	User1 User `gorm:"foreignKey:User1ID" json:"user1,omitempty"`
	User2 User `gorm:"foreignKey:User2ID" json:"user2,omitempty"`
}

// NewFriendship builds a Friendship with the pair in canonical order.
func NewFriendship(userA, userB uint) *Friendship {
	if userB < userA {
		userA, userB = userB, userA
	}
	return &Friendship{User1ID: userA, User2ID: userB}
}

// OtherUser returns the friend of userID in this friendship.
func (f *Friendship) OtherUser(userID uint) User {
	if f.User1ID == userID {
		return f.User2
	}
	return f.User1
}
