package repository

import (
	"context"
	"errors"

	"glimpse/internal/cache"
	"glimpse/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines persistence operations for friend requests and friendships.
type FriendRepository interface {
	CreateRequest(ctx context.Context, request *models.FriendRequest) error
	GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	GetRequestBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error)
	GetIncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	GetSentRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	DeleteRequest(ctx context.Context, id uint) error
	AcceptRequest(ctx context.Context, request *models.FriendRequest) (*models.Friendship, error)
	GetFriendshipBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error)
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	FriendIDs(ctx context.Context, userID uint) ([]uint, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository returns a new FriendRepository implementation.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) CreateRequest(ctx context.Context, request *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Friend request already sent")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Requested").
		First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

// GetRequestBetweenUsers finds a pending request in either direction.
func (r *friendRepository) GetRequestBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND requested_id = ?) OR (requester_id = ? AND requested_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendRepository) GetIncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	requests := []models.FriendRequest{}
	if err := r.db.WithContext(ctx).
		Where("requested_id = ?", userID).
		Preload("Requester").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *friendRepository) GetSentRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	requests := []models.FriendRequest{}
	if err := r.db.WithContext(ctx).
		Where("requester_id = ?", userID).
		Preload("Requested").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *friendRepository) DeleteRequest(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.FriendRequest{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// AcceptRequest creates the friendship and removes the request in a single
// transaction, so a crash cannot leave the request accepted but unfriended.
func (r *friendRepository) AcceptRequest(ctx context.Context, request *models.FriendRequest) (*models.Friendship, error) {
	friendship := models.NewFriendship(request.RequesterID, request.RequestedID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(friendship).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError("Already friends")
			}
			return err
		}
		return tx.Delete(&models.FriendRequest{}, request.ID).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateFriends(ctx, request.RequesterID)
	cache.InvalidateFriends(ctx, request.RequestedID)
	return friendship, nil
}

// GetFriendshipBetweenUsers looks up a friendship regardless of argument order.
func (r *friendRepository) GetFriendshipBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	if userID1 > userID2 {
		userID1, userID2 = userID2, userID1
	}
	var friendship models.Friendship
	if err := r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", userID1, userID2).
		First(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

func (r *friendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON (users.id = f.user1_id OR users.id = f.user2_id)").
		Where("(f.user1_id = ? OR f.user2_id = ?) AND users.id != ?", userID, userID, userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// FriendIDs returns the IDs of a user's friends, cached.
func (r *friendRepository) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	key := cache.FriendsKey(userID)

	err := cache.CacheAside(ctx, key, &ids, cache.FriendsTTL, func() error {
		rows := []models.Friendship{}
		if err := r.db.WithContext(ctx).
			Where("user1_id = ? OR user2_id = ?", userID, userID).
			Find(&rows).Error; err != nil {
			return models.NewInternalError(err)
		}
		for _, f := range rows {
			if f.User1ID == userID {
				ids = append(ids, f.User2ID)
			} else {
				ids = append(ids, f.User1ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
