package service

import (
	"context"

	"glimpse/internal/models"
	"glimpse/internal/push"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	searchFn        func(context.Context, string) ([]models.User, error)
	listIDsFn       func(context.Context) ([]uint, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Search(ctx context.Context, query string) ([]models.User, error) {
	return s.searchFn(ctx, query)
}
func (s *userRepoStub) ListIDs(ctx context.Context) ([]uint, error) {
	return s.listIDsFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		searchFn:        func(context.Context, string) ([]models.User, error) { return nil, nil },
		listIDsFn:       func(context.Context) ([]uint, error) { return nil, nil },
	}
}

type friendRepoStub struct {
	createRequestFn             func(context.Context, *models.FriendRequest) error
	getRequestByIDFn            func(context.Context, uint) (*models.FriendRequest, error)
	getRequestBetweenUsersFn    func(context.Context, uint, uint) (*models.FriendRequest, error)
	getIncomingRequestsFn       func(context.Context, uint) ([]models.FriendRequest, error)
	getSentRequestsFn           func(context.Context, uint) ([]models.FriendRequest, error)
	deleteRequestFn             func(context.Context, uint) error
	acceptRequestFn             func(context.Context, *models.FriendRequest) (*models.Friendship, error)
	getFriendshipBetweenUsersFn func(context.Context, uint, uint) (*models.Friendship, error)
	getFriendsFn                func(context.Context, uint) ([]models.User, error)
	friendIDsFn                 func(context.Context, uint) ([]uint, error)
}

func (s *friendRepoStub) CreateRequest(ctx context.Context, request *models.FriendRequest) error {
	return s.createRequestFn(ctx, request)
}
func (s *friendRepoStub) GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	return s.getRequestByIDFn(ctx, id)
}
func (s *friendRepoStub) GetRequestBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	return s.getRequestBetweenUsersFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) GetIncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.getIncomingRequestsFn(ctx, userID)
}
func (s *friendRepoStub) GetSentRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.getSentRequestsFn(ctx, userID)
}
func (s *friendRepoStub) DeleteRequest(ctx context.Context, id uint) error {
	return s.deleteRequestFn(ctx, id)
}
func (s *friendRepoStub) AcceptRequest(ctx context.Context, request *models.FriendRequest) (*models.Friendship, error) {
	return s.acceptRequestFn(ctx, request)
}
func (s *friendRepoStub) GetFriendshipBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	return s.getFriendshipBetweenUsersFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFriendsFn(ctx, userID)
}
func (s *friendRepoStub) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.friendIDsFn(ctx, userID)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createRequestFn: func(context.Context, *models.FriendRequest) error { return nil },
		getRequestByIDFn: func(_ context.Context, id uint) (*models.FriendRequest, error) {
			return &models.FriendRequest{ID: id}, nil
		},
		getRequestBetweenUsersFn: func(context.Context, uint, uint) (*models.FriendRequest, error) { return nil, nil },
		getIncomingRequestsFn:    func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		getSentRequestsFn:        func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		deleteRequestFn:          func(context.Context, uint) error { return nil },
		acceptRequestFn: func(_ context.Context, r *models.FriendRequest) (*models.Friendship, error) {
			return models.NewFriendship(r.RequesterID, r.RequestedID), nil
		},
		getFriendshipBetweenUsersFn: func(context.Context, uint, uint) (*models.Friendship, error) { return nil, nil },
		getFriendsFn:                func(context.Context, uint) ([]models.User, error) { return nil, nil },
		friendIDsFn:                 func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

type photoRepoStub struct {
	createFn        func(context.Context, *models.Photo) error
	getByIDFn       func(context.Context, uint) (*models.Photo, error)
	listByAuthorsFn func(context.Context, []uint) ([]models.Photo, error)
}

func (s *photoRepoStub) Create(ctx context.Context, photo *models.Photo) error {
	return s.createFn(ctx, photo)
}
func (s *photoRepoStub) GetByID(ctx context.Context, id uint) (*models.Photo, error) {
	return s.getByIDFn(ctx, id)
}
func (s *photoRepoStub) ListByAuthors(ctx context.Context, authorIDs []uint) ([]models.Photo, error) {
	return s.listByAuthorsFn(ctx, authorIDs)
}

func noopPhotoRepo() *photoRepoStub {
	return &photoRepoStub{
		createFn:        func(context.Context, *models.Photo) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Photo, error) { return &models.Photo{ID: id}, nil },
		listByAuthorsFn: func(context.Context, []uint) ([]models.Photo, error) { return []models.Photo{}, nil },
	}
}

type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	listByPhotoFn func(context.Context, uint) ([]models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPhoto(ctx context.Context, photoID uint) ([]models.Comment, error) {
	return s.listByPhotoFn(ctx, photoID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(context.Context, *models.Comment) error { return nil },
		listByPhotoFn: func(context.Context, uint) ([]models.Comment, error) { return []models.Comment{}, nil },
	}
}

type notificationRepoStub struct {
	createFn      func(context.Context, *models.Notification) error
	listByUserFn  func(context.Context, uint, int) ([]models.Notification, error)
	markAllReadFn func(context.Context, uint) error
}

func (s *notificationRepoStub) Create(ctx context.Context, notification *models.Notification) error {
	return s.createFn(ctx, notification)
}
func (s *notificationRepoStub) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	return s.listByUserFn(ctx, userID, limit)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, userID uint) error {
	return s.markAllReadFn(ctx, userID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn:      func(context.Context, *models.Notification) error { return nil },
		listByUserFn:  func(context.Context, uint, int) ([]models.Notification, error) { return nil, nil },
		markAllReadFn: func(context.Context, uint) error { return nil },
	}
}

type subscriptionRepoStub struct {
	upsertFn                  func(context.Context, *models.PushSubscription) error
	deleteByUserAndEndpointFn func(context.Context, uint, string) error
	listByUserFn              func(context.Context, uint) ([]models.PushSubscription, error)
}

func (s *subscriptionRepoStub) Upsert(ctx context.Context, sub *models.PushSubscription) error {
	return s.upsertFn(ctx, sub)
}
func (s *subscriptionRepoStub) DeleteByUserAndEndpoint(ctx context.Context, userID uint, endpoint string) error {
	return s.deleteByUserAndEndpointFn(ctx, userID, endpoint)
}
func (s *subscriptionRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.PushSubscription, error) {
	return s.listByUserFn(ctx, userID)
}

func noopSubscriptionRepo() *subscriptionRepoStub {
	return &subscriptionRepoStub{
		upsertFn:                  func(context.Context, *models.PushSubscription) error { return nil },
		deleteByUserAndEndpointFn: func(context.Context, uint, string) error { return nil },
		listByUserFn:              func(context.Context, uint) ([]models.PushSubscription, error) { return nil, nil },
	}
}

type senderStub struct {
	sendFn func(context.Context, models.PushSubscription, push.Payload) error
}

func (s *senderStub) Send(ctx context.Context, sub models.PushSubscription, payload push.Payload) error {
	if s.sendFn == nil {
		return nil
	}
	return s.sendFn(ctx, sub, payload)
}

func noopNotifier() *NotificationService {
	return NewNotificationService(noopNotificationRepo(), noopSubscriptionRepo(), noopFriendRepo(), noopUserRepo(), &senderStub{})
}
