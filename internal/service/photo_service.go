package service

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"glimpse/internal/cache"
	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// PhotoService provides photo posting and feed business logic.
type PhotoService struct {
	photoRepo  repository.PhotoRepository
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	notifier   *NotificationService
}

// NewPhotoService returns a new PhotoService.
func NewPhotoService(photoRepo repository.PhotoRepository, friendRepo repository.FriendRepository, userRepo repository.UserRepository, notifier *NotificationService) *PhotoService {
	return &PhotoService{
		photoRepo:  photoRepo,
		friendRepo: friendRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// CreatePhoto posts a new photo and notifies the poster's friends.
func (s *PhotoService) CreatePhoto(ctx context.Context, userID uint, imageURL, caption string) (*models.Photo, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, models.NewValidationError("Image URL is required")
	}
	if parsed, err := url.ParseRequestURI(imageURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, models.NewValidationError("Image URL must be a valid URL")
	}
	if utf8.RuneCountInString(caption) > models.MaxCaptionLength {
		return nil, models.NewValidationError("Caption is too long")
	}

	poster, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		UserID:   userID,
		ImageURL: imageURL,
		Caption:  caption,
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, err
	}
	photo.User = *poster

	// The new photo appears in the poster's and every friend's feed
	cache.InvalidateFeed(ctx, userID)
	if friendIDs, err := s.friendRepo.FriendIDs(ctx, userID); err == nil {
		for _, id := range friendIDs {
			cache.InvalidateFeed(ctx, id)
		}
	}

	s.notifier.Dispatch(func(ctx context.Context) {
		s.notifier.NotifyPhotoPosted(ctx, poster, photo)
	})

	return photo, nil
}

// GetFeed returns the viewer's photos and their friends' photos, newest first.
func (s *PhotoService) GetFeed(ctx context.Context, userID uint) ([]models.Photo, error) {
	photos := []models.Photo{}
	key := cache.FeedKey(userID)

	err := cache.CacheAside(ctx, key, &photos, cache.FeedTTL, func() error {
		friendIDs, err := s.friendRepo.FriendIDs(ctx, userID)
		if err != nil {
			return err
		}
		authorIDs := append(friendIDs, userID)

		photos, err = s.photoRepo.ListByAuthors(ctx, authorIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// GetPhoto returns a single photo with its author.
func (s *PhotoService) GetPhoto(ctx context.Context, id uint) (*models.Photo, error) {
	return s.photoRepo.GetByID(ctx, id)
}
