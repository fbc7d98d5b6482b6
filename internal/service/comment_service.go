package service

import (
	"context"
	"strings"

	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// CommentService provides comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	photoRepo   repository.PhotoRepository
	userRepo    repository.UserRepository
	notifier    *NotificationService
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, photoRepo repository.PhotoRepository, userRepo repository.UserRepository, notifier *NotificationService) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		photoRepo:   photoRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// CreateComment adds a comment to a photo and notifies the photo's owner.
func (s *CommentService) CreateComment(ctx context.Context, userID, photoID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment cannot be empty")
	}

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	commenter, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PhotoID: photoID,
		UserID:  userID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(func(ctx context.Context) {
		s.notifier.NotifyComment(ctx, commenter, photo)
	})

	return comment, nil
}

// GetComments returns a photo's comments oldest first.
func (s *CommentService) GetComments(ctx context.Context, photoID uint) ([]models.Comment, error) {
	if _, err := s.photoRepo.GetByID(ctx, photoID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPhoto(ctx, photoID)
}
