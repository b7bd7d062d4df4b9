package toastgateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// DefaultTopic carries toasts when no topic is configured
const DefaultTopic = "merchant.toasts"

// Gateway represents the outbound toast channel to the admin surface
type Gateway interface {
	// Send publishes a toast and returns its message ID
	Send(ctx context.Context, notification *models.Notification) (string, error)
}

// WatermillGateway publishes toasts on a watermill topic
type WatermillGateway struct {
	publisher message.Publisher
	topic     string
}

// MockGateway records toasts in memory for tests
type MockGateway struct {
	mu   sync.Mutex
	Sent []*models.Notification
	Err  error
}

// NewInMemoryBus creates the in-process pub/sub the gateway and its consumer share
func NewInMemoryBus(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 128},
		watermill.NewSlogLogger(logger),
	)
}

// NewWatermillGateway creates a new WatermillGateway
func NewWatermillGateway(publisher message.Publisher, topic string) Gateway {
	if topic == "" {
		topic = DefaultTopic
	}
	return &WatermillGateway{publisher: publisher, topic: topic}
}

// NewMockGateway creates a new MockGateway
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Send publishes the toast as JSON with the merchant and kind in the metadata
func (g *WatermillGateway) Send(ctx context.Context, notification *models.Notification) (string, error) {
	payload, err := json.Marshal(notification)
	if err != nil {
		return "", fmt.Errorf("failed to encode toast: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("merchant_id", notification.MerchantID)
	msg.Metadata.Set("kind", string(notification.Kind))
	msg.Metadata.Set("operation", notification.Operation)

	if err := g.publisher.Publish(g.topic, msg); err != nil {
		return "", fmt.Errorf("failed to publish toast: %w", err)
	}
	return msg.UUID, nil
}

// Send records the toast
func (g *MockGateway) Send(_ context.Context, notification *models.Notification) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return "", g.Err
	}
	g.Sent = append(g.Sent, notification)
	return fmt.Sprintf("MOCK-TOAST-%d", len(g.Sent)), nil
}

// Messages returns a copy of the recorded toasts
func (g *MockGateway) Messages() []*models.Notification {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*models.Notification(nil), g.Sent...)
}

// StoreFunc persists one delivered toast
type StoreFunc func(ctx context.Context, notification *models.Notification) error

// Consume subscribes to topic and hands every toast to store until ctx is done.
// Malformed payloads are logged and dropped. It returns once the subscription is open.
func Consume(ctx context.Context, subscriber message.Subscriber, topic string, store StoreFunc, logger *slog.Logger) error {
	if store == nil {
		return errors.New("toast store is required")
	}
	if topic == "" {
		topic = DefaultTopic
	}

	messages, err := subscriber.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	go func() {
		for msg := range messages {
			var notification models.Notification
			if err := json.Unmarshal(msg.Payload, &notification); err != nil {
				logger.Error("Dropping malformed toast", "messageId", msg.UUID, "error", err)
				msg.Ack()
				continue
			}
			if err := store(msg.Context(), &notification); err != nil {
				logger.Error("Failed to store toast", "messageId", msg.UUID, "merchantId", notification.MerchantID, "error", err)
			}
			msg.Ack()
		}
		logger.Debug("Toast consumer stopped", "topic", topic)
	}()

	return nil
}
