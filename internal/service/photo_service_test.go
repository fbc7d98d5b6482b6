package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"glimpse/internal/models"
)

func TestPhotoServiceCreatePhotoMissingURL(t *testing.T) {
	svc := NewPhotoService(noopPhotoRepo(), noopFriendRepo(), noopUserRepo(), noopNotifier())
	_, err := svc.CreatePhoto(context.Background(), 1, "  ", "hello")
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestPhotoServiceCreatePhotoMalformedURL(t *testing.T) {
	svc := NewPhotoService(noopPhotoRepo(), noopFriendRepo(), noopUserRepo(), noopNotifier())
	for _, imageURL := range []string{"not a url at all", "/relative/path.webp", "example.com/p.webp"} {
		_, err := svc.CreatePhoto(context.Background(), 1, imageURL, "hello")
		if err == nil {
			t.Fatalf("expected validation error for %q", imageURL)
		}
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation app error for %q, got %#v", imageURL, err)
		}
	}
}

func TestPhotoServiceCreatePhotoCaptionTooLong(t *testing.T) {
	svc := NewPhotoService(noopPhotoRepo(), noopFriendRepo(), noopUserRepo(), noopNotifier())
	_, err := svc.CreatePhoto(context.Background(), 1, "https://cdn.example.com/p.webp", strings.Repeat("a", models.MaxCaptionLength+1))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestPhotoServiceCreatePhotoMaxCaption(t *testing.T) {
	svc := NewPhotoService(noopPhotoRepo(), noopFriendRepo(), noopUserRepo(), noopNotifier())
	photo, err := svc.CreatePhoto(context.Background(), 1, "https://cdn.example.com/p.webp", strings.Repeat("a", models.MaxCaptionLength))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if photo.UserID != 1 {
		t.Fatalf("expected photo owned by user 1, got %d", photo.UserID)
	}
}

func TestPhotoServiceGetFeedScopedToFriendsAndSelf(t *testing.T) {
	friendRepo := noopFriendRepo()
	friendRepo.friendIDsFn = func(context.Context, uint) ([]uint, error) {
		return []uint{2, 3}, nil
	}

	var gotAuthors []uint
	photoRepo := noopPhotoRepo()
	photoRepo.listByAuthorsFn = func(_ context.Context, authorIDs []uint) ([]models.Photo, error) {
		gotAuthors = authorIDs
		return []models.Photo{{ID: 1, UserID: 2}}, nil
	}

	svc := NewPhotoService(photoRepo, friendRepo, noopUserRepo(), noopNotifier())
	photos, err := svc.GetFeed(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(photos))
	}

	want := map[uint]bool{1: true, 2: true, 3: true}
	if len(gotAuthors) != 3 {
		t.Fatalf("expected 3 author IDs, got %v", gotAuthors)
	}
	for _, id := range gotAuthors {
		if !want[id] {
			t.Fatalf("unexpected author ID %d in %v", id, gotAuthors)
		}
	}
}

func TestPhotoServiceGetFeedNoFriends(t *testing.T) {
	var gotAuthors []uint
	photoRepo := noopPhotoRepo()
	photoRepo.listByAuthorsFn = func(_ context.Context, authorIDs []uint) ([]models.Photo, error) {
		gotAuthors = authorIDs
		return []models.Photo{}, nil
	}

	svc := NewPhotoService(photoRepo, noopFriendRepo(), noopUserRepo(), noopNotifier())
	photos, err := svc.GetFeed(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if photos == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(gotAuthors) != 1 || gotAuthors[0] != 7 {
		t.Fatalf("expected own photos only, got authors %v", gotAuthors)
	}
}
