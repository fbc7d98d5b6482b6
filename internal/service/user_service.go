package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"glimpse/internal/models"
	"glimpse/internal/repository"
	"glimpse/internal/validation"
)

// ProfileUpdate carries the optional profile fields of an update request.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Username *string `json:"username"`
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	Color    *string `json:"color"`
	Avatar   *string `json:"avatar"`
}

// PreferencesUpdate carries optional notification preference toggles.
type PreferencesUpdate struct {
	PostNotifications          *bool `json:"post_notifications"`
	CommentNotifications       *bool `json:"comment_notifications"`
	FriendRequestNotifications *bool `json:"friend_request_notifications"`
}

// UserService provides profile and user lookup business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID returns the user with the given ID.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile validates and applies a partial profile update. Setting a
// username for the first time completes the profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if err := validation.ValidateUsername(username); err != nil {
			fields["username"] = err.Error()
		} else {
			existing, err := s.userRepo.GetByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != userID {
				return nil, models.NewConflictError("Username is already taken")
			}
			user.Username = &username
		}
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if err := validation.ValidateName(name); err != nil {
			fields["name"] = err.Error()
		} else {
			user.Name = name
		}
	}
	if update.Bio != nil {
		if err := validation.ValidateBio(*update.Bio); err != nil {
			fields["bio"] = err.Error()
		} else {
			user.Bio = *update.Bio
		}
	}
	if update.Color != nil {
		if err := validation.ValidateColor(*update.Color); err != nil {
			fields["color"] = err.Error()
		} else {
			user.Color = *update.Color
		}
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}

	if len(fields) > 0 {
		return nil, models.NewFieldValidationError("Invalid profile fields", fields)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CompleteProfile performs the one-time initial profile setup. It requires a
// username and is rejected once the profile is already complete.
func (s *UserService) CompleteProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ProfileComplete() {
		return nil, models.NewValidationError("Profile is already complete")
	}
	if update.Username == nil || strings.TrimSpace(*update.Username) == "" {
		return nil, models.NewFieldValidationError("Invalid profile fields",
			map[string]string{"username": "Username is required"})
	}
	return s.UpdateProfile(ctx, userID, update)
}

// UpdatePreferences applies the provided notification preference toggles.
func (s *UserService) UpdatePreferences(ctx context.Context, userID uint, update PreferencesUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.PostNotifications != nil {
		user.PostNotifications = *update.PostNotifications
	}
	if update.CommentNotifications != nil {
		user.CommentNotifications = *update.CommentNotifications
	}
	if update.FriendRequestNotifications != nil {
		user.FriendRequestNotifications = *update.FriendRequestNotifications
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// MaxSearchQueryLength caps the accepted search query length.
const MaxSearchQueryLength = 50

// Search finds users by username or name. Blank or oversized queries are
// rejected.
func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	if utf8.RuneCountInString(query) > MaxSearchQueryLength {
		return nil, models.NewValidationError("Search query is too long")
	}
	return s.userRepo.Search(ctx, query)
}
