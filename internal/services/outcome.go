package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ArowuTest/quizseason-admin/internal/metrics"
	"github.com/ArowuTest/quizseason-admin/internal/models"
)

// genericFailureMessage is shown when an operation fails for a reason the merchant cannot fix
const genericFailureMessage = "Something went wrong. Please try again."

// inputRejectedTitle heads the toast for a request that never reached its operation
const inputRejectedTitle = "Request rejected"

// outcomeReporter notifies the merchant and counts the outcome of each mutating operation
type outcomeReporter struct {
	notifier NotificationService
	metrics  metrics.Recorder
	logger   *slog.Logger
}

func newOutcomeReporter(notifier NotificationService, recorder metrics.Recorder, logger *slog.Logger) outcomeReporter {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return outcomeReporter{notifier: notifier, metrics: recorder, logger: logger}
}

func (r outcomeReporter) succeeded(ctx context.Context, notice Notice) {
	notice.Kind = models.NotificationSuccess
	r.metrics.RecordOperation(notice.Operation, metrics.OutcomeSuccess)
	if r.notifier != nil {
		r.notifier.Notify(ctx, notice)
	}
}

// failed reports err to the merchant and returns it unchanged
func (r outcomeReporter) failed(ctx context.Context, merchantID, operation, title string, err error) error {
	notice := Notice{
		MerchantID: merchantID,
		Operation:  operation,
		Title:      title,
		Message:    err.Error(),
	}
	outcome := metrics.OutcomeRejected

	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		notice.Kind = models.NotificationFailure
		notice.Field, notice.Message = validationErr.FirstField()
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrDuplicateIntegration),
		errors.Is(err, ErrSeasonNotFound):
		notice.Kind = models.NotificationBlocking
	default:
		notice.Kind = models.NotificationFailure
		notice.Message = genericFailureMessage
		outcome = metrics.OutcomeError
		r.logger.Error("Operation failed", "merchantId", merchantID, "operation", operation, "error", err)
	}

	r.metrics.RecordOperation(operation, outcome)
	if r.notifier != nil {
		r.notifier.Notify(ctx, notice)
	}
	return err
}
