// Package service implements the application's business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"glimpse/internal/middleware"
	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/push"
	"glimpse/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// dispatchTimeout bounds background notification fan-out.
const dispatchTimeout = 30 * time.Second

// NotificationService persists notifications and delivers them via web push.
type NotificationService struct {
	notifRepo  repository.NotificationRepository
	subRepo    repository.SubscriptionRepository
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	sender     push.Sender
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(
	notifRepo repository.NotificationRepository,
	subRepo repository.SubscriptionRepository,
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
	sender push.Sender,
) *NotificationService {
	return &NotificationService{
		notifRepo:  notifRepo,
		subRepo:    subRepo,
		friendRepo: friendRepo,
		userRepo:   userRepo,
		sender:     sender,
	}
}

// GetNotifications returns the user's recent notifications, newest first.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID, limit)
}

// MarkAllRead marks all of the user's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

// Notify persists a notification for one user and pushes it to all of their
// registered subscriptions. Push delivery is best-effort, a failed endpoint
// never fails the notification.
func (s *NotificationService) Notify(ctx context.Context, userID uint, notifType models.NotificationType, message string, photoID *uint) error {
	span, ctx := observability.NewSpan(ctx, "notification.notify")
	defer span.End()
	span.AddAttributes(
		attribute.Int("notification.recipient_id", int(userID)),
		attribute.String("notification.type", string(notifType)),
	)

	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Message: message,
		PhotoID: photoID,
	}
	if err := s.notifRepo.Create(ctx, notification); err != nil {
		span.SetError(err)
		return err
	}
	middleware.NotificationsCreated.WithLabelValues(string(notifType)).Inc()

	if s.sender == nil {
		return nil
	}

	subs, err := s.subRepo.ListByUser(ctx, userID)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "failed to load push subscriptions",
			"error", err, "user_id", userID)
		return nil
	}

	payload := push.Payload{
		Title: "Glimpse",
		Body:  message,
	}
	if photoID != nil {
		payload.URL = fmt.Sprintf("/photos/%d", *photoID)
	}

	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(sub models.PushSubscription) {
			defer wg.Done()
			if err := s.sender.Send(ctx, sub, payload); err != nil {
				middleware.Logger.WarnContext(ctx, "push delivery failed",
					"error", err, "endpoint", sub.Endpoint)
			}
		}(sub)
	}
	wg.Wait()
	return nil
}

// notifyEach delivers one notification per recipient concurrently. One
// recipient's failure never affects the others.
func (s *NotificationService) notifyEach(ctx context.Context, recipients []uint, notifType models.NotificationType, message string, photoID *uint) {
	var wg sync.WaitGroup
	for _, id := range recipients {
		wg.Add(1)
		go func(recipientID uint) {
			defer wg.Done()
			if err := s.Notify(ctx, recipientID, notifType, message, photoID); err != nil {
				middleware.Logger.WarnContext(ctx, "notification failed",
					"error", err, "recipient_id", recipientID, "type", string(notifType))
			}
		}(id)
	}
	wg.Wait()
}

// NotifyPhotoPosted fans a new-photo notification out to the poster's friends.
// Friends who disabled post notifications are skipped.
func (s *NotificationService) NotifyPhotoPosted(ctx context.Context, poster *models.User, photo *models.Photo) {
	friends, err := s.friendRepo.GetFriends(ctx, poster.ID)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to load friends for photo fan-out",
			"error", err, "user_id", poster.ID)
		return
	}

	message := fmt.Sprintf("%s posted a new photo", poster.DisplayName())
	if photo.Caption != "" {
		message = fmt.Sprintf("%s: %s", message, photo.Caption)
	}

	recipients := make([]uint, 0, len(friends))
	for _, friend := range friends {
		if friend.PostNotifications {
			recipients = append(recipients, friend.ID)
		}
	}
	s.notifyEach(ctx, recipients, models.NotificationTypePhotoPost, message, &photo.ID)
}

// Broadcast notifies every user except the one given. Used for announcements
// that do not target a friend set.
func (s *NotificationService) Broadcast(ctx context.Context, exceptUserID uint, notifType models.NotificationType, message string, photoID *uint) error {
	ids, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		return err
	}

	recipients := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != exceptUserID {
			recipients = append(recipients, id)
		}
	}
	s.notifyEach(ctx, recipients, notifType, message, photoID)
	return nil
}

// NotifyComment tells a photo's owner about a new comment. Self-comments and
// owners who disabled comment notifications are skipped.
func (s *NotificationService) NotifyComment(ctx context.Context, commenter *models.User, photo *models.Photo) {
	if photo.UserID == commenter.ID {
		return
	}
	if !photo.User.CommentNotifications {
		return
	}

	message := fmt.Sprintf("%s commented on your photo", commenter.DisplayName())
	if err := s.Notify(ctx, photo.UserID, models.NotificationTypeComment, message, &photo.ID); err != nil {
		middleware.Logger.WarnContext(ctx, "comment notification failed",
			"error", err, "recipient_id", photo.UserID)
	}
}

// NotifyFriendRequest tells a user about an incoming friend request, unless
// they disabled friend request notifications.
func (s *NotificationService) NotifyFriendRequest(ctx context.Context, requester *models.User, requested *models.User) {
	if !requested.FriendRequestNotifications {
		return
	}

	message := fmt.Sprintf("%s sent you a friend request", requester.DisplayName())
	if err := s.Notify(ctx, requested.ID, models.NotificationTypeFriendRequest, message, nil); err != nil {
		middleware.Logger.WarnContext(ctx, "friend request notification failed",
			"error", err, "recipient_id", requested.ID)
	}
}

// NotifyFriendAccepted tells a requester their friend request was accepted,
// unless they disabled friend request notifications.
func (s *NotificationService) NotifyFriendAccepted(ctx context.Context, accepter *models.User, requester *models.User) {
	if !requester.FriendRequestNotifications {
		return
	}

	message := fmt.Sprintf("%s accepted your friend request", accepter.DisplayName())
	if err := s.Notify(ctx, requester.ID, models.NotificationTypeFriendRequest, message, nil); err != nil {
		middleware.Logger.WarnContext(ctx, "friend accepted notification failed",
			"error", err, "recipient_id", requester.ID)
	}
}

// Dispatch runs fn in the background with its own deadline, detached from the
// request so fan-out survives the handler returning. Panics are recovered.
func (s *NotificationService) Dispatch(fn func(ctx context.Context)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				middleware.Logger.Error("panic in notification dispatch",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		fn(ctx)
	}()
}
