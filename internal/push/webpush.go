// Package push delivers web push messages to browser subscriptions.
package push

import (
	"context"
	"encoding/json"

	webpush "github.com/SherClockHolmes/webpush-go"

	"glimpse/internal/middleware"
	"glimpse/internal/models"
)

// Payload is the message shown by the service worker.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

// Sender delivers a payload to a single subscription.
type Sender interface {
	Send(ctx context.Context, sub models.PushSubscription, payload Payload) error
}

type webpushSender struct {
	vapidPublicKey  string
	vapidPrivateKey string
	subscriber      string
}

// NewWebpushSender returns a Sender using VAPID-authenticated web push.
// subscriber is the contact mailto/URL required by the push services.
func NewWebpushSender(publicKey, privateKey, subscriber string) Sender {
	return &webpushSender{
		vapidPublicKey:  publicKey,
		vapidPrivateKey: privateKey,
		subscriber:      subscriber,
	}
}

func (s *webpushSender) Send(ctx context.Context, sub models.PushSubscription, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	wsub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, wsub, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.vapidPublicKey,
		VAPIDPrivateKey: s.vapidPrivateKey,
		TTL:             60,
	})
	if err != nil {
		middleware.PushDeliveries.WithLabelValues("error").Inc()
		return err
	}
	defer resp.Body.Close()

	// Push services answer 404/410 for expired subscriptions. Those rows stay
	// in the database and keep failing here until the browser re-subscribes.
	if resp.StatusCode >= 400 {
		middleware.PushDeliveries.WithLabelValues("rejected").Inc()
		middleware.Logger.WarnContext(ctx, "push delivery rejected",
			"status", resp.StatusCode,
			"endpoint", sub.Endpoint,
		)
		return nil
	}

	middleware.PushDeliveries.WithLabelValues("ok").Inc()
	return nil
}
