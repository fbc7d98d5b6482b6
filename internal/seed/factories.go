// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"glimpse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much demo data is generated.
type Options struct {
	Users            int
	PhotosPerUser    int
	CommentsPerPhoto int
	// MaxDays bounds how far back generated timestamps are spread.
	MaxDays int
}

// DefaultOptions returns a small but usable demo dataset.
func DefaultOptions() Options {
	return Options{
		Users:            12,
		PhotosPerUser:    4,
		CommentsPerPhoto: 3,
		MaxDays:          30,
	}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Tables are cleared children-first so
// foreign keys never block the delete.
func ClearAll(db *gorm.DB) error {
	tables := []any{
		&models.Notification{},
		&models.PushSubscription{},
		&models.Comment{},
		&models.Photo{},
		&models.Friendship{},
		&models.FriendRequest{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// spreadCreatedAt returns a timestamp randomly placed in the recent past.
func (f *Factory) spreadCreatedAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample user with a completed profile.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
	user := &models.User{
		Email:     gofakeit.Email(),
		Username:  &username,
		Name:      gofakeit.Name(),
		Bio:       gofakeit.Sentence(8),
		Color:     gofakeit.HexColor(),
		Avatar:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		CreatedAt: f.spreadCreatedAt(),

		PostNotifications:          true,
		CommentNotifications:       true,
		FriendRequestNotifications: true,
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePhoto persists a sample photo owned by the given user.
func (f *Factory) CreatePhoto(user *models.User, overrides ...func(*models.Photo)) (*models.Photo, error) {
	photo := &models.Photo{
		UserID:    user.ID,
		ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/1080/1080", gofakeit.UUID()),
		Caption:   gofakeit.Sentence(6),
		CreatedAt: f.spreadCreatedAt(),
	}
	for _, override := range overrides {
		override(photo)
	}
	if err := f.db.Create(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}

// CreateComment persists a sample comment by the given user on the given photo.
func (f *Factory) CreateComment(user *models.User, photo *models.Photo) (*models.Comment, error) {
	comment := &models.Comment{
		PhotoID:   photo.ID,
		UserID:    user.ID,
		Content:   gofakeit.Sentence(f.rand.Intn(10) + 3),
		CreatedAt: photo.CreatedAt.Add(time.Duration(f.rand.Intn(120)) * time.Minute),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateFriendship persists a confirmed friendship between two users.
func (f *Factory) CreateFriendship(a, b *models.User) (*models.Friendship, error) {
	friendship := models.NewFriendship(a.ID, b.ID)
	if err := f.db.Create(friendship).Error; err != nil {
		return nil, err
	}
	return friendship, nil
}

// CreateFriendRequest persists a pending friend request.
func (f *Factory) CreateFriendRequest(requester, requested *models.User) (*models.FriendRequest, error) {
	request := &models.FriendRequest{
		RequesterID: requester.ID,
		RequestedID: requested.ID,
		CreatedAt:   f.spreadCreatedAt(),
	}
	if err := f.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// Run generates a connected demo dataset: users, friendships between
// neighbouring users, photos with comments from friends, and a few pending
// friend requests.
func (f *Factory) Run() error {
	users := make([]*models.User, 0, f.opts.Users)
	for i := 0; i < f.opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	// Chain friendships so every user has at least one friend, then add a
	// few random extras.
	for i := 1; i < len(users); i++ {
		if _, err := f.CreateFriendship(users[i-1], users[i]); err != nil {
			return fmt.Errorf("seed friendship: %w", err)
		}
	}
	for i := 0; i < len(users)/3; i++ {
		a := users[f.rand.Intn(len(users))]
		b := users[f.rand.Intn(len(users))]
		if a.ID == b.ID {
			continue
		}
		// Random pairs can collide with existing rows; the unique index
		// makes the insert a no-op failure we can skip.
		if _, err := f.CreateFriendship(a, b); err != nil {
			continue
		}
	}

	photos := 0
	comments := 0
	for _, user := range users {
		for i := 0; i < f.opts.PhotosPerUser; i++ {
			photo, err := f.CreatePhoto(user)
			if err != nil {
				return fmt.Errorf("seed photo: %w", err)
			}
			photos++
			for j := 0; j < f.opts.CommentsPerPhoto; j++ {
				commenter := users[f.rand.Intn(len(users))]
				if _, err := f.CreateComment(commenter, photo); err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
				comments++
			}
		}
	}
	log.Printf("seeded %d photos, %d comments", photos, comments)

	// A few pending requests between users two apart in the chain.
	requests := 0
	for i := 0; i+2 < len(users); i += 3 {
		if _, err := f.CreateFriendRequest(users[i], users[i+2]); err != nil {
			continue
		}
		requests++
	}
	log.Printf("seeded %d pending friend requests", requests)

	return nil
}
