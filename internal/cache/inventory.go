package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	FeedKeyPrefix    = "feed:%d"
	PhotoKeyPrefix   = "photo:%d"
	FriendsKeyPrefix = "user:%d:friends"
)

const (
	UserTTL    = 5 * time.Minute
	FeedTTL    = 1 * time.Minute
	PhotoTTL   = 30 * time.Minute
	FriendsTTL = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func FeedKey(userID uint) string {
	return fmt.Sprintf(FeedKeyPrefix, userID)
}

func PhotoKey(photoID uint) string {
	return fmt.Sprintf(PhotoKeyPrefix, photoID)
}

func FriendsKey(userID uint) string {
	return fmt.Sprintf(FriendsKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePhoto(ctx context.Context, photoID uint) {
	Invalidate(ctx, PhotoKey(photoID))
}

// InvalidateFriends drops the cached friend list and the feed for a user.
// Feeds are friend-scoped, so any friendship change makes both stale.
func InvalidateFriends(ctx context.Context, userID uint) {
	Invalidate(ctx, FriendsKey(userID))
	Invalidate(ctx, FeedKey(userID))
}

func InvalidateFeed(ctx context.Context, userID uint) {
	Invalidate(ctx, FeedKey(userID))
}
