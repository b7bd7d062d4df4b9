package services

import (
	"context"
	"time"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operation names carried by notifications and metrics
const (
	OpSeasonCreate         = "season.create"
	OpSeasonStatus         = "season.status"
	OpSeasonExtend         = "season.extend"
	OpSeasonDelete         = "season.delete"
	OpSeasonPrizes         = "season.prizes"
	OpSelectionRoundAdd    = "season.selection_round.add"
	OpSelectionRoundUpdate = "season.selection_round.update"
	OpSelectionRoundRemove = "season.selection_round.remove"
	OpTVRoundAdd           = "season.tv_round.add"
	OpTVRoundUpdate        = "season.tv_round.update"
	OpTVRoundRemove        = "season.tv_round.remove"

	OpWalletFund    = "wallet.fund"
	OpWaiverRequest = "wallet.waiver.request"
	OpWaiverApprove = "wallet.waiver.approve"

	OpQuestionIntegrate = "question.integrate"
	OpQuestionRemove    = "question.remove"
	OpAnswersUpdate     = "question.answers.update"
)

// InputRejecter reports a request whose input could not be read into an
// operation, the same way the operation reports its own validation failures
type InputRejecter interface {
	RejectInput(ctx context.Context, merchantID, operation string, err error) error
}

// SeasonService defines the interface for season lifecycle operations
type SeasonService interface {
	InputRejecter

	// CreateSeason creates a draft season with its derived dates and prize total
	CreateSeason(ctx context.Context, merchantID string, input CreateSeasonInput) (*models.QuizSeason, error)

	// GetSeason retrieves one of the merchant's seasons
	GetSeason(ctx context.Context, merchantID string, seasonID primitive.ObjectID) (*models.QuizSeason, error)

	// ListSeasons retrieves all of the merchant's seasons
	ListSeasons(ctx context.Context, merchantID string) ([]*models.QuizSeason, error)

	// SetStatus moves a season along draft→active→suspended→active
	SetStatus(ctx context.Context, merchantID string, seasonID primitive.ObjectID, next models.QuizStatus) (*models.QuizSeason, error)

	// ExtendSeason pushes the end date by 1 to 8 weeks
	ExtendSeason(ctx context.Context, merchantID string, seasonID primitive.ObjectID, weeks int, reason string) (*models.QuizSeason, error)

	// DeleteSeason removes a season permanently
	DeleteSeason(ctx context.Context, merchantID string, seasonID primitive.ObjectID) error

	// UpdatePrizes replaces the prize pool and recomputes the total
	UpdatePrizes(ctx context.Context, merchantID string, seasonID primitive.ObjectID, prizes models.PrizePool) (*models.QuizSeason, error)

	AddSelectionRound(ctx context.Context, merchantID string, seasonID primitive.ObjectID) (*models.QuizSeason, error)
	UpdateSelectionRound(ctx context.Context, merchantID string, seasonID primitive.ObjectID, index int, input SelectionRoundInput) (*models.QuizSeason, error)
	RemoveSelectionRound(ctx context.Context, merchantID string, seasonID primitive.ObjectID, index int) (*models.QuizSeason, error)

	AddTVRound(ctx context.Context, merchantID string, seasonID primitive.ObjectID) (*models.QuizSeason, error)
	UpdateTVRound(ctx context.Context, merchantID string, seasonID primitive.ObjectID, index int, input TVRoundInput) (*models.QuizSeason, error)
	RemoveTVRound(ctx context.Context, merchantID string, seasonID primitive.ObjectID, index int) (*models.QuizSeason, error)
}

// FundingService defines the interface for prize funding compliance
type FundingService interface {
	InputRejecter

	// RequiredBalance is the promised prize total across the merchant's seasons times the minimum wallet percent
	RequiredBalance(ctx context.Context, merchantID string) (decimal.Decimal, error)

	// IsFunded reports whether the wallet covers the required balance or a waiver is approved
	IsFunded(ctx context.Context, merchantID string) (bool, error)

	GetFundingStatus(ctx context.Context, merchantID string) (*models.FundingStatus, error)
	GetFundingHistory(ctx context.Context, merchantID string) ([]models.LedgerEntry, error)

	FundWallet(ctx context.Context, merchantID string, amount decimal.Decimal, description string) (*models.MerchantWallet, error)
	RequestWaiver(ctx context.Context, merchantID string) (*models.MerchantWallet, error)
	ApproveWaiver(ctx context.Context, merchantID string) (*models.MerchantWallet, error)
}

// QuestionIntegrationService defines the interface for a merchant's integrated question bank
type QuestionIntegrationService interface {
	InputRejecter

	Integrate(ctx context.Context, merchantID, sourceID string, questionType models.QuestionType, alternativeAnswersText *string) (*models.IntegratedQuestion, error)
	Remove(ctx context.Context, merchantID, sourceID string) error
	UpdateAlternativeAnswers(ctx context.Context, merchantID, sourceID, text string) (*models.IntegratedQuestion, error)
	ListAvailable(ctx context.Context, merchantID string, questionType models.QuestionType) ([]models.AvailableQuestion, error)
	ListIntegrated(ctx context.Context, merchantID string, questionType models.QuestionType) ([]models.ResolvedIntegration, error)
}

// NotificationService defines the fire-and-forget toast channel. Notify never fails the caller.
type NotificationService interface {
	Notify(ctx context.Context, notice Notice)
	GetNotifications(ctx context.Context, merchantID string, limit int) ([]*models.Notification, error)
}

// Notice is an unformatted notification. An "{amount}" placeholder in Message
// is replaced with the formatted Amount.
type Notice struct {
	MerchantID string
	Kind       models.NotificationKind
	Operation  string
	Title      string
	Message    string
	Field      string
	Amount     *decimal.Decimal
}

// CreateSeasonInput carries the operator's input for a new season
type CreateSeasonInput struct {
	Name                      string
	Description               string
	Type                      models.SeasonType
	StartDate                 *time.Time
	EntryFee                  decimal.Decimal
	MinimumTargetParticipants int
	Prizes                    models.PrizePool
	SelectionProcesses        []models.SelectionProcess
	TVShowRounds              []models.TVShowRound
}

// SelectionRoundInput replaces the editable fields of a selection round
type SelectionRoundInput struct {
	EntriesSelected int
	EntryFee        decimal.Decimal
	StartDate       *time.Time
	DurationDays    *int
}

// TVRoundInput replaces the editable fields of a TV show round
type TVRoundInput struct {
	Label           string
	EntriesSelected int
	EntryFee        decimal.Decimal
	StartDateTime   *time.Time
	DurationHours   *int
}
