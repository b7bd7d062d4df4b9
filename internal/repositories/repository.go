package repositories

import (
	"context"
	"errors"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a merchant-scoped record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when creating a record whose key is taken
	ErrAlreadyExists = errors.New("record already exists")
)

// SeasonRepository defines the interface for season data operations
type SeasonRepository interface {
	Create(ctx context.Context, season *models.QuizSeason) error
	FindByID(ctx context.Context, merchantID string, id primitive.ObjectID) (*models.QuizSeason, error)
	FindByMerchant(ctx context.Context, merchantID string) ([]*models.QuizSeason, error)
	Update(ctx context.Context, season *models.QuizSeason) error
	// Modify applies change to the stored season and writes the result while no
	// other writer can interleave. Nothing is written when change fails.
	Modify(ctx context.Context, merchantID string, id primitive.ObjectID, change func(models.QuizSeason) (models.QuizSeason, error)) (*models.QuizSeason, error)
	Delete(ctx context.Context, merchantID string, id primitive.ObjectID) error
}

// WalletRepository defines the interface for merchant wallet operations
type WalletRepository interface {
	// FindByMerchant returns the merchant's wallet, or an empty wallet if none was saved yet
	FindByMerchant(ctx context.Context, merchantID string) (*models.MerchantWallet, error)
	Save(ctx context.Context, wallet *models.MerchantWallet) error
	// Modify applies change to the merchant's wallet and writes the result
	// atomically. Nothing is written when change fails.
	Modify(ctx context.Context, merchantID string, change func(models.MerchantWallet) (models.MerchantWallet, error)) (*models.MerchantWallet, error)
}

// IntegrationRepository defines the interface for a merchant's integrated question links
type IntegrationRepository interface {
	FindByMerchant(ctx context.Context, merchantID string) ([]*models.IntegratedQuestion, error)
	FindBySourceID(ctx context.Context, merchantID, sourceID string) (*models.IntegratedQuestion, error)
	Create(ctx context.Context, merchantID string, question *models.IntegratedQuestion) error
	Update(ctx context.Context, merchantID string, question *models.IntegratedQuestion) error
	Delete(ctx context.Context, merchantID, sourceID string) error
}

// QuestionPoolRepository is a read-only view over the shared question pools
type QuestionPoolRepository interface {
	AdminQuestions(ctx context.Context) ([]*models.AdminQuestion, error)
	MerchantQuestions(ctx context.Context) ([]*models.MerchantQuestion, error)
	FindAdminQuestion(ctx context.Context, id string) (*models.AdminQuestion, error)
	FindMerchantQuestion(ctx context.Context, id string) (*models.MerchantQuestion, error)
}

// NotificationRepository keeps the recent toasts shown to a merchant
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByMerchant(ctx context.Context, merchantID string, limit int) ([]*models.Notification, error)
}
