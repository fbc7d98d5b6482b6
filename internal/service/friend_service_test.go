package service

import (
	"context"
	"errors"
	"testing"

	"glimpse/internal/models"
)

func TestFriendServiceSendRequestSelf(t *testing.T) {
	svc := NewFriendService(noopFriendRepo(), noopUserRepo(), noopNotifier())
	_, err := svc.SendRequest(context.Background(), 3, 3)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestFriendServiceSendRequestAlreadyFriends(t *testing.T) {
	repo := noopFriendRepo()
	repo.getFriendshipBetweenUsersFn = func(context.Context, uint, uint) (*models.Friendship, error) {
		return models.NewFriendship(1, 2), nil
	}

	svc := NewFriendService(repo, noopUserRepo(), noopNotifier())
	_, err := svc.SendRequest(context.Background(), 1, 2)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
}

func TestFriendServiceSendRequestDuplicate(t *testing.T) {
	repo := noopFriendRepo()
	repo.getRequestBetweenUsersFn = func(context.Context, uint, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 7, RequesterID: 1, RequestedID: 2}, nil
	}

	svc := NewFriendService(repo, noopUserRepo(), noopNotifier())
	_, err := svc.SendRequest(context.Background(), 1, 2)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
}

func TestFriendServiceSendRequestReversePending(t *testing.T) {
	// Target already sent us a request; a new one in the other direction
	// conflicts rather than silently duplicating.
	repo := noopFriendRepo()
	repo.getRequestBetweenUsersFn = func(context.Context, uint, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 7, RequesterID: 2, RequestedID: 1}, nil
	}

	svc := NewFriendService(repo, noopUserRepo(), noopNotifier())
	_, err := svc.SendRequest(context.Background(), 1, 2)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
}

func TestFriendServiceSendRequestTargetMissing(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 2 {
			return nil, models.NewNotFoundError("User", id)
		}
		return &models.User{ID: id}, nil
	}

	svc := NewFriendService(noopFriendRepo(), userRepo, noopNotifier())
	_, err := svc.SendRequest(context.Background(), 1, 2)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestFriendServiceAcceptNotAddressee(t *testing.T) {
	repo := noopFriendRepo()
	repo.getRequestByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 5, RequesterID: 10, RequestedID: 11}, nil
	}

	svc := NewFriendService(repo, noopUserRepo(), noopNotifier())
	_, err := svc.AcceptRequest(context.Background(), 12, 5)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestFriendServiceAcceptCreatesFriendship(t *testing.T) {
	repo := noopFriendRepo()
	repo.getRequestByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 5, RequesterID: 11, RequestedID: 10}, nil
	}

	svc := NewFriendService(repo, noopUserRepo(), noopNotifier())
	friendship, err := svc.AcceptRequest(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if friendship.User1ID != 10 || friendship.User2ID != 11 {
		t.Fatalf("expected canonical user order (10, 11), got (%d, %d)", friendship.User1ID, friendship.User2ID)
	}
}

func TestFriendServiceDeclineByStranger(t *testing.T) {
	repo := noopFriendRepo()
	repo.getRequestByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 5, RequesterID: 10, RequestedID: 11}, nil
	}

	svc := NewFriendService(repo, noopUserRepo(), noopNotifier())
	err := svc.DeclineRequest(context.Background(), 12, 5)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestFriendServiceDeclineByRequesterForbidden(t *testing.T) {
	repo := noopFriendRepo()
	repo.getRequestByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 5, RequesterID: 10, RequestedID: 11}, nil
	}
	repo.deleteRequestFn = func(_ context.Context, id uint) error {
		t.Fatal("requester must not be able to delete the request")
		return nil
	}

	svc := NewFriendService(repo, noopUserRepo(), noopNotifier())
	err := svc.DeclineRequest(context.Background(), 10, 5)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestFriendServiceDeclineByAddressee(t *testing.T) {
	deleted := uint(0)
	repo := noopFriendRepo()
	repo.getRequestByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{ID: 5, RequesterID: 10, RequestedID: 11}, nil
	}
	repo.deleteRequestFn = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}

	svc := NewFriendService(repo, noopUserRepo(), noopNotifier())
	if err := svc.DeclineRequest(context.Background(), 11, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 5 {
		t.Fatalf("expected request 5 deleted, got %d", deleted)
	}
}
