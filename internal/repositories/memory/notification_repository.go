package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationRepository keeps a bounded, newest-last feed of toasts per merchant
type NotificationRepository struct {
	mu            sync.RWMutex
	limit         int
	notifications map[string][]models.Notification
}

// NewNotificationRepository creates a NotificationRepository keeping at most limit toasts per merchant
func NewNotificationRepository(limit int) repositories.NotificationRepository {
	if limit <= 0 {
		limit = 50
	}
	return &NotificationRepository{
		limit:         limit,
		notifications: make(map[string][]models.Notification),
	}
}

// Create appends a toast, dropping the oldest once the feed is full
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	feed := append(r.notifications[notification.MerchantID], *notification)
	if len(feed) > r.limit {
		feed = append([]models.Notification{}, feed[len(feed)-r.limit:]...)
	}
	r.notifications[notification.MerchantID] = feed
	return nil
}

// FindByMerchant returns up to limit toasts, newest first
func (r *NotificationRepository) FindByMerchant(ctx context.Context, merchantID string, limit int) ([]*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	feed := r.notifications[merchantID]
	if limit <= 0 || limit > len(feed) {
		limit = len(feed)
	}
	result := make([]*models.Notification, 0, limit)
	for i := len(feed) - 1; i >= 0 && len(result) < limit; i-- {
		n := feed[i]
		result = append(result, &n)
	}
	return result, nil
}
