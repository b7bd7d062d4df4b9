package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ArowuTest/quizseason-admin/internal/metrics"
	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/repositories"
	"github.com/ArowuTest/quizseason-admin/internal/utils"
)

// Compile-time check to ensure QuestionIntegrationServiceImpl implements QuestionIntegrationService
var _ QuestionIntegrationService = (*QuestionIntegrationServiceImpl)(nil)

const (
	minAlternativeAnswers = 2
	maxAlternativeAnswers = 5
)

// QuestionIntegrationServiceImpl implements QuestionIntegrationService
type QuestionIntegrationServiceImpl struct {
	integrationRepo repositories.IntegrationRepository
	poolRepo        repositories.QuestionPoolRepository
	reporter        outcomeReporter
	logger          *slog.Logger
	now             func() time.Time
}

// NewQuestionIntegrationService creates a new QuestionIntegrationServiceImpl
func NewQuestionIntegrationService(
	integrationRepo repositories.IntegrationRepository,
	poolRepo repositories.QuestionPoolRepository,
	notifier NotificationService,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *QuestionIntegrationServiceImpl {
	reporter := newOutcomeReporter(notifier, recorder, logger)
	return &QuestionIntegrationServiceImpl{
		integrationRepo: integrationRepo,
		poolRepo:        poolRepo,
		reporter:        reporter,
		logger:          reporter.logger,
		now:             time.Now,
	}
}

// Integrate links a pool question into the merchant's bank. Alternative answers
// given here are stored as split, without the 2-5 check applied on update.
func (s *QuestionIntegrationServiceImpl) Integrate(ctx context.Context, merchantID, sourceID string, questionType models.QuestionType, alternativeAnswersText *string) (*models.IntegratedQuestion, error) {
	const op = OpQuestionIntegrate
	sourceID = strings.TrimSpace(sourceID)

	verr := &ValidationError{}
	if sourceID == "" {
		verr.Add("sourceId", "Select a question to integrate")
	}
	if !questionType.IsValid() {
		verr.Add("type", "Select a question type")
	}
	if verr.HasErrors() {
		return nil, s.reporter.failed(ctx, merchantID, op, "Question not added", verr)
	}

	if _, err := s.integrationRepo.FindBySourceID(ctx, merchantID, sourceID); err == nil {
		return nil, s.reporter.failed(ctx, merchantID, op, "Question not added",
			fmt.Errorf("%w: %s is already in your question bank", ErrDuplicateIntegration, sourceID))
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, s.reporter.failed(ctx, merchantID, op, "Question not added", fmt.Errorf("failed to check integration: %w", err))
	}

	if _, err := s.eligibleSource(ctx, sourceID, questionType); err != nil {
		return nil, s.reporter.failed(ctx, merchantID, op, "Question not added", err)
	}

	link := &models.IntegratedQuestion{
		SourceID:     sourceID,
		SourceType:   questionType.SourceType(),
		Type:         questionType,
		IntegratedAt: s.now(),
	}
	if questionType == models.QuestionTypeNonObjective && alternativeAnswersText != nil {
		link.AlternativeAnswers = utils.SplitAlternativeAnswers(*alternativeAnswersText)
	}

	if err := s.integrationRepo.Create(ctx, merchantID, link); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			err = fmt.Errorf("%w: %s is already in your question bank", ErrDuplicateIntegration, sourceID)
		} else {
			err = fmt.Errorf("failed to store integration: %w", err)
		}
		return nil, s.reporter.failed(ctx, merchantID, op, "Question not added", err)
	}

	s.logger.Info("Question integrated", "merchantId", merchantID, "sourceId", sourceID, "type", questionType)
	s.reporter.succeeded(ctx, Notice{
		MerchantID: merchantID,
		Operation:  op,
		Title:      "Question added",
		Message:    fmt.Sprintf("Question %s was added to your %s bank", sourceID, bankName(questionType)),
	})
	return link, nil
}

// Remove unlinks a question. Removing a question that is not linked succeeds
// without a toast.
func (s *QuestionIntegrationServiceImpl) Remove(ctx context.Context, merchantID, sourceID string) error {
	const op = OpQuestionRemove
	sourceID = strings.TrimSpace(sourceID)

	if err := s.integrationRepo.Delete(ctx, merchantID, sourceID); errors.Is(err, repositories.ErrNotFound) {
		s.logger.Debug("Question already removed", "merchantId", merchantID, "sourceId", sourceID)
		return nil
	} else if err != nil {
		return s.reporter.failed(ctx, merchantID, op, "Question not removed", fmt.Errorf("failed to remove integration: %w", err))
	}

	s.logger.Info("Question removed", "merchantId", merchantID, "sourceId", sourceID)
	s.reporter.succeeded(ctx, Notice{
		MerchantID: merchantID,
		Operation:  op,
		Title:      "Question removed",
		Message:    fmt.Sprintf("Question %s was removed from your bank", sourceID),
	})
	return nil
}

// UpdateAlternativeAnswers replaces a non-objective question's accepted answers.
// The split list must hold 2 to 5 answers.
func (s *QuestionIntegrationServiceImpl) UpdateAlternativeAnswers(ctx context.Context, merchantID, sourceID, text string) (*models.IntegratedQuestion, error) {
	const op = OpAnswersUpdate
	sourceID = strings.TrimSpace(sourceID)

	link, err := s.integrationRepo.FindBySourceID(ctx, merchantID, sourceID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, s.reporter.failed(ctx, merchantID, op, "Answers not updated",
			NewValidationError("sourceId", "Question is not in your question bank"))
	}
	if err != nil {
		return nil, s.reporter.failed(ctx, merchantID, op, "Answers not updated", fmt.Errorf("failed to load integration: %w", err))
	}
	if link.Type != models.QuestionTypeNonObjective {
		return nil, s.reporter.failed(ctx, merchantID, op, "Answers not updated",
			NewValidationError("alternativeAnswers", "Only non-objective questions take alternative answers"))
	}

	answers := utils.SplitAlternativeAnswers(text)
	if len(answers) < minAlternativeAnswers || len(answers) > maxAlternativeAnswers {
		return nil, s.reporter.failed(ctx, merchantID, op, "Answers not updated",
			NewValidationError("alternativeAnswers", fmt.Sprintf("Provide %d-%d alternative answers", minAlternativeAnswers, maxAlternativeAnswers)))
	}

	updated := *link
	updated.AlternativeAnswers = answers
	if err := s.integrationRepo.Update(ctx, merchantID, &updated); errors.Is(err, repositories.ErrNotFound) {
		return nil, s.reporter.failed(ctx, merchantID, op, "Answers not updated",
			NewValidationError("sourceId", "Question is not in your question bank"))
	} else if err != nil {
		return nil, s.reporter.failed(ctx, merchantID, op, "Answers not updated", fmt.Errorf("failed to update integration: %w", err))
	}

	s.logger.Info("Alternative answers updated", "merchantId", merchantID, "sourceId", sourceID, "count", len(answers))
	s.reporter.succeeded(ctx, Notice{
		MerchantID: merchantID,
		Operation:  op,
		Title:      "Answers updated",
		Message:    fmt.Sprintf("Question %s now accepts %d alternative answers", sourceID, len(answers)),
	})
	return &updated, nil
}

// ListAvailable returns the pool items eligible for a sub-bank, flagged when already integrated
func (s *QuestionIntegrationServiceImpl) ListAvailable(ctx context.Context, merchantID string, questionType models.QuestionType) ([]models.AvailableQuestion, error) {
	if !questionType.IsValid() {
		return nil, NewValidationError("type", "Select a question type")
	}

	links, err := s.integrationRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load integrations: %w", err)
	}
	integrated := make(map[string]bool, len(links))
	for _, link := range links {
		integrated[link.SourceID] = true
	}

	available := []models.AvailableQuestion{}
	if questionType.SourceType() == models.QuestionSourceAdmin {
		questions, err := s.poolRepo.AdminQuestions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load admin pool: %w", err)
		}
		for _, q := range questions {
			if q.Status != models.AdminQuestionStatusActive {
				continue
			}
			available = append(available, models.AvailableQuestion{
				PoolQuestion: adminPoolQuestion(q),
				Integrated:   integrated[q.ID],
			})
		}
		return available, nil
	}

	questions, err := s.poolRepo.MerchantQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchant pool: %w", err)
	}
	for _, q := range questions {
		if q.Type != questionType {
			continue
		}
		available = append(available, models.AvailableQuestion{
			PoolQuestion: merchantPoolQuestion(q),
			Integrated:   integrated[q.ID],
		})
	}
	return available, nil
}

// ListIntegrated returns the merchant's links of a type joined with their source
// question. An empty type lists every sub-bank. Links whose source is gone are omitted.
func (s *QuestionIntegrationServiceImpl) ListIntegrated(ctx context.Context, merchantID string, questionType models.QuestionType) ([]models.ResolvedIntegration, error) {
	if questionType != "" && !questionType.IsValid() {
		return nil, NewValidationError("type", "Select a question type")
	}

	links, err := s.integrationRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load integrations: %w", err)
	}

	resolved := []models.ResolvedIntegration{}
	for _, link := range links {
		if questionType != "" && link.Type != questionType {
			continue
		}
		source, err := s.resolveSource(ctx, link)
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Debug("Skipping integration with missing source", "merchantId", merchantID, "sourceId", link.SourceID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", link.SourceID, err)
		}
		resolved = append(resolved, models.ResolvedIntegration{IntegratedQuestion: *link, Source: source})
	}
	return resolved, nil
}

// eligibleSource finds the pool item a new link of questionType would point at
func (s *QuestionIntegrationServiceImpl) eligibleSource(ctx context.Context, sourceID string, questionType models.QuestionType) (models.PoolQuestion, error) {
	if questionType.SourceType() == models.QuestionSourceAdmin {
		q, err := s.poolRepo.FindAdminQuestion(ctx, sourceID)
		if errors.Is(err, repositories.ErrNotFound) || (err == nil && q.Status != models.AdminQuestionStatusActive) {
			return models.PoolQuestion{}, NewValidationError("sourceId", "Question is not available in the admin pool")
		}
		if err != nil {
			return models.PoolQuestion{}, fmt.Errorf("failed to load admin question: %w", err)
		}
		return adminPoolQuestion(q), nil
	}

	q, err := s.poolRepo.FindMerchantQuestion(ctx, sourceID)
	if errors.Is(err, repositories.ErrNotFound) || (err == nil && q.Type != questionType) {
		return models.PoolQuestion{}, NewValidationError("sourceId", fmt.Sprintf("Question is not available as a %s question", bankName(questionType)))
	}
	if err != nil {
		return models.PoolQuestion{}, fmt.Errorf("failed to load merchant question: %w", err)
	}
	return merchantPoolQuestion(q), nil
}

func (s *QuestionIntegrationServiceImpl) resolveSource(ctx context.Context, link *models.IntegratedQuestion) (models.PoolQuestion, error) {
	if link.SourceType == models.QuestionSourceAdmin {
		q, err := s.poolRepo.FindAdminQuestion(ctx, link.SourceID)
		if err != nil {
			return models.PoolQuestion{}, err
		}
		return adminPoolQuestion(q), nil
	}
	q, err := s.poolRepo.FindMerchantQuestion(ctx, link.SourceID)
	if err != nil {
		return models.PoolQuestion{}, err
	}
	return merchantPoolQuestion(q), nil
}

func adminPoolQuestion(q *models.AdminQuestion) models.PoolQuestion {
	return models.PoolQuestion{SourceID: q.ID, SourceType: models.QuestionSourceAdmin, Admin: q}
}

func merchantPoolQuestion(q *models.MerchantQuestion) models.PoolQuestion {
	return models.PoolQuestion{SourceID: q.ID, SourceType: models.QuestionSourceMerchant, Merchant: q}
}

func bankName(t models.QuestionType) string {
	return strings.ReplaceAll(string(t), "_", "-")
}

// RejectInput notifies the merchant that a request for operation was rejected before it ran
func (s *QuestionIntegrationServiceImpl) RejectInput(ctx context.Context, merchantID, operation string, err error) error {
	return s.reporter.failed(ctx, merchantID, operation, inputRejectedTitle, err)
}
