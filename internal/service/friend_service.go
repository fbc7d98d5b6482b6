package service

import (
	"context"

	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	notifier   *NotificationService
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository, notifier *NotificationService) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// SendRequest sends a friend request to the target user.
func (s *FriendService) SendRequest(ctx context.Context, userID, targetUserID uint) (*models.FriendRequest, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("Cannot send a friend request to yourself")
	}

	requester, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	friendship, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if friendship != nil {
		return nil, models.NewConflictError("You are already friends")
	}

	existing, err := s.friendRepo.GetRequestBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.RequesterID == userID {
			return nil, models.NewConflictError("Friend request already sent")
		}
		return nil, models.NewConflictError("This user already sent you a friend request")
	}

	request := &models.FriendRequest{
		RequesterID: userID,
		RequestedID: targetUserID,
	}
	if err := s.friendRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(func(ctx context.Context) {
		s.notifier.NotifyFriendRequest(ctx, requester, target)
	})

	return s.friendRepo.GetRequestByID(ctx, request.ID)
}

// AcceptRequest accepts a friend request addressed to the user, creating the
// friendship and removing the request.
func (s *FriendService) AcceptRequest(ctx context.Context, userID, requestID uint) (*models.Friendship, error) {
	request, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.RequestedID != userID {
		return nil, models.NewForbiddenError("You can only accept friend requests sent to you")
	}

	friendship, err := s.friendRepo.AcceptRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	accepter := request.Requested
	requester := request.Requester
	s.notifier.Dispatch(func(ctx context.Context) {
		s.notifier.NotifyFriendAccepted(ctx, &accepter, &requester)
	})

	return friendship, nil
}

// DeclineRequest removes a pending request. Only the addressee may decline.
func (s *FriendService) DeclineRequest(ctx context.Context, userID, requestID uint) error {
	request, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.RequestedID != userID {
		return models.NewForbiddenError("You can only decline friend requests sent to you")
	}
	return s.friendRepo.DeleteRequest(ctx, request.ID)
}

// GetFriends returns the user's friends.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.GetFriends(ctx, userID)
}

// GetIncomingRequests returns pending requests addressed to the user.
func (s *FriendService) GetIncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.GetIncomingRequests(ctx, userID)
}

// GetSentRequests returns pending requests the user has sent.
func (s *FriendService) GetSentRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.GetSentRequests(ctx, userID)
}
