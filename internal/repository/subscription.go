package repository

import (
	"context"

	"glimpse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository defines persistence operations for push subscriptions.
type SubscriptionRepository interface {
	Upsert(ctx context.Context, sub *models.PushSubscription) error
	DeleteByUserAndEndpoint(ctx context.Context, userID uint, endpoint string) error
	ListByUser(ctx context.Context, userID uint) ([]models.PushSubscription, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository returns a new SubscriptionRepository implementation.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Upsert stores a subscription, replacing keys and owner if the endpoint is
// already registered. A browser re-subscribing reuses its endpoint URL.
func (r *subscriptionRepository) Upsert(ctx context.Context, sub *models.PushSubscription) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth", "updated_at"}),
		}).
		Create(sub).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *subscriptionRepository) DeleteByUserAndEndpoint(ctx context.Context, userID uint, endpoint string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND endpoint = ?", userID, endpoint).
		Delete(&models.PushSubscription{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Subscription", endpoint)
	}
	return nil
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID uint) ([]models.PushSubscription, error) {
	subs := []models.PushSubscription{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&subs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return subs, nil
}
