package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/repositories"
	"github.com/ArowuTest/quizseason-admin/pkg/currency"
	"github.com/ArowuTest/quizseason-admin/pkg/toastgateway"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure ToastNotificationService implements NotificationService
var _ NotificationService = (*ToastNotificationService)(nil)

// amountPlaceholder is replaced in a Notice message with the formatted amount
const amountPlaceholder = "{amount}"

// ToastNotificationService formats notices and hands them to the toast gateway
type ToastNotificationService struct {
	gateway          toastgateway.Gateway
	notificationRepo repositories.NotificationRepository
	formatter        *currency.Formatter
	logger           *slog.Logger
	now              func() time.Time
}

// NewToastNotificationService creates a new ToastNotificationService
func NewToastNotificationService(
	gateway toastgateway.Gateway,
	notificationRepo repositories.NotificationRepository,
	formatter *currency.Formatter,
	logger *slog.Logger,
) *ToastNotificationService {
	return &ToastNotificationService{
		gateway:          gateway,
		notificationRepo: notificationRepo,
		formatter:        formatter,
		logger:           logger,
		now:              time.Now,
	}
}

// Notify sends a toast. Delivery failures are logged and never returned.
func (s *ToastNotificationService) Notify(ctx context.Context, notice Notice) {
	message := notice.Message
	if notice.Amount != nil && strings.Contains(message, amountPlaceholder) {
		display := notice.Amount.StringFixed(2)
		if s.formatter != nil {
			display = s.formatter.Format(*notice.Amount)
		}
		message = strings.ReplaceAll(message, amountPlaceholder, display)
	}

	notification := &models.Notification{
		ID:         primitive.NewObjectID(),
		MerchantID: notice.MerchantID,
		Kind:       notice.Kind,
		Operation:  notice.Operation,
		Title:      notice.Title,
		Message:    message,
		Field:      notice.Field,
		CreatedAt:  s.now(),
	}

	messageID, err := s.gateway.Send(ctx, notification)
	if err != nil {
		s.logger.Warn("Failed to send toast",
			"merchantId", notice.MerchantID,
			"operation", notice.Operation,
			"kind", notice.Kind,
			"error", err,
		)
		return
	}
	s.logger.Debug("Toast sent", "messageId", messageID, "merchantId", notice.MerchantID, "operation", notice.Operation)
}

// GetNotifications retrieves the merchant's most recent toasts, newest first
func (s *ToastNotificationService) GetNotifications(ctx context.Context, merchantID string, limit int) ([]*models.Notification, error) {
	return s.notificationRepo.FindByMerchant(ctx, merchantID, limit)
}
