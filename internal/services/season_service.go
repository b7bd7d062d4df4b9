package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ArowuTest/quizseason-admin/internal/metrics"
	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure SeasonServiceImpl implements SeasonService
var _ SeasonService = (*SeasonServiceImpl)(nil)

// SeasonServiceImpl implements SeasonService
type SeasonServiceImpl struct {
	seasonRepo repositories.SeasonRepository
	reporter   outcomeReporter
	logger     *slog.Logger
	now        func() time.Time
}

// NewSeasonService creates a new SeasonServiceImpl
func NewSeasonService(
	seasonRepo repositories.SeasonRepository,
	notifier NotificationService,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *SeasonServiceImpl {
	reporter := newOutcomeReporter(notifier, recorder, logger)
	return &SeasonServiceImpl{
		seasonRepo: seasonRepo,
		reporter:   reporter,
		logger:     reporter.logger,
		now:        time.Now,
	}
}

// CreateSeason creates a draft season
func (s *SeasonServiceImpl) CreateSeason(ctx context.Context, merchantID string, input CreateSeasonInput) (*models.QuizSeason, error) {
	const op = OpSeasonCreate

	season, err := buildSeason(merchantID, input, s.now())
	if err != nil {
		return nil, s.reporter.failed(ctx, merchantID, op, "Season not created", err)
	}
	if err := s.seasonRepo.Create(ctx, &season); err != nil {
		return nil, s.reporter.failed(ctx, merchantID, op, "Season not created", fmt.Errorf("failed to store season: %w", err))
	}

	s.logger.Info("Season created",
		"merchantId", merchantID,
		"seasonId", season.ID.Hex(),
		"type", season.Type,
		"endDate", season.EndDate,
		"totalWinningPrizes", season.TotalWinningPrizes.String(),
	)
	s.reporter.succeeded(ctx, Notice{
		MerchantID: merchantID,
		Operation:  op,
		Title:      "Season created",
		Message:    fmt.Sprintf("%s was created as a draft with %s in prizes", season.Name, amountPlaceholder),
		Amount:     &season.TotalWinningPrizes,
	})
	return &season, nil
}

// GetSeason retrieves a season by ID
func (s *SeasonServiceImpl) GetSeason(ctx context.Context, merchantID string, seasonID primitive.ObjectID) (*models.QuizSeason, error) {
	return s.findSeason(ctx, merchantID, seasonID)
}

// ListSeasons retrieves the merchant's seasons, oldest first
func (s *SeasonServiceImpl) ListSeasons(ctx context.Context, merchantID string) ([]*models.QuizSeason, error) {
	seasons, err := s.seasonRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	return seasons, nil
}

// SetStatus changes a season's status
func (s *SeasonServiceImpl) SetStatus(ctx context.Context, merchantID string, seasonID primitive.ObjectID, next models.QuizStatus) (*models.QuizSeason, error) {
	return s.mutate(ctx, merchantID, seasonID, OpSeasonStatus, "Status not changed",
		func(season models.QuizSeason, now time.Time) (models.QuizSeason, error) {
			return transitionStatus(season, next, now)
		},
		func(season *models.QuizSeason) Notice {
			return Notice{Title: "Status updated", Message: fmt.Sprintf("%s is now %s", season.Name, season.QuizStatus)}
		},
	)
}

// ExtendSeason pushes a season's end date
func (s *SeasonServiceImpl) ExtendSeason(ctx context.Context, merchantID string, seasonID primitive.ObjectID, weeks int, reason string) (*models.QuizSeason, error) {
	return s.mutate(ctx, merchantID, seasonID, OpSeasonExtend, "Season not extended",
		func(season models.QuizSeason, now time.Time) (models.QuizSeason, error) {
			return extendSeason(season, weeks, reason, now)
		},
		func(season *models.QuizSeason) Notice {
			return Notice{
				Title:   "Season extended",
				Message: fmt.Sprintf("%s now ends on %s", season.Name, season.EndDate.Format("2 January 2006")),
			}
		},
	)
}

// DeleteSeason removes a season permanently
func (s *SeasonServiceImpl) DeleteSeason(ctx context.Context, merchantID string, seasonID primitive.ObjectID) error {
	const op = OpSeasonDelete

	season, err := s.findSeason(ctx, merchantID, seasonID)
	if err != nil {
		return s.reporter.failed(ctx, merchantID, op, "Season not deleted", err)
	}
	if err := s.seasonRepo.Delete(ctx, merchantID, seasonID); err != nil {
		return s.reporter.failed(ctx, merchantID, op, "Season not deleted", s.repoError(err))
	}

	s.logger.Info("Season deleted", "merchantId", merchantID, "seasonId", seasonID.Hex())
	s.reporter.succeeded(ctx, Notice{
		MerchantID: merchantID,
		Operation:  op,
		Title:      "Season deleted",
		Message:    fmt.Sprintf("%s was deleted", season.Name),
	})
	return nil
}

// UpdatePrizes replaces a season's prize pool
func (s *SeasonServiceImpl) UpdatePrizes(ctx context.Context, merchantID string, seasonID primitive.ObjectID, prizes models.PrizePool) (*models.QuizSeason, error) {
	return s.mutate(ctx, merchantID, seasonID, OpSeasonPrizes, "Prizes not updated",
		func(season models.QuizSeason, now time.Time) (models.QuizSeason, error) {
			return replacePrizes(season, prizes, now)
		},
		func(season *models.QuizSeason) Notice {
			return Notice{
				Title:   "Prizes updated",
				Message: fmt.Sprintf("%s now promises %s in prizes", season.Name, amountPlaceholder),
				Amount:  &season.TotalWinningPrizes,
			}
		},
	)
}

// AddSelectionRound appends an empty selection round
func (s *SeasonServiceImpl) AddSelectionRound(ctx context.Context, merchantID string, seasonID primitive.ObjectID) (*models.QuizSeason, error) {
	return s.mutate(ctx, merchantID, seasonID, OpSelectionRoundAdd, "Round not added",
		func(season models.QuizSeason, now time.Time) (models.QuizSeason, error) {
			return addSelectionRound(season, now), nil
		},
		func(season *models.QuizSeason) Notice {
			return Notice{Title: "Round added", Message: fmt.Sprintf("Selection round %d added", len(season.SelectionProcesses))}
		},
	)
}

// UpdateSelectionRound replaces a selection round's fields and re-derives its end date
func (s *SeasonServiceImpl) UpdateSelectionRound(ctx context.Context, merchantID string, seasonID primitive.ObjectID, index int, input SelectionRoundInput) (*models.QuizSeason, error) {
	return s.mutate(ctx, merchantID, seasonID, OpSelectionRoundUpdate, "Round not updated",
		func(season models.QuizSeason, now time.Time) (models.QuizSeason, error) {
			return updateSelectionRound(season, index, input, now)
		},
		func(season *models.QuizSeason) Notice {
			return Notice{Title: "Round updated", Message: fmt.Sprintf("Selection round %d updated", index+1)}
		},
	)
}

// RemoveSelectionRound deletes a selection round and renumbers the rest
func (s *SeasonServiceImpl) RemoveSelectionRound(ctx context.Context, merchantID string, seasonID primitive.ObjectID, index int) (*models.QuizSeason, error) {
	return s.mutate(ctx, merchantID, seasonID, OpSelectionRoundRemove, "Round not removed",
		func(season models.QuizSeason, now time.Time) (models.QuizSeason, error) {
			return removeSelectionRound(season, index, now)
		},
		func(season *models.QuizSeason) Notice {
			return Notice{Title: "Round removed", Message: fmt.Sprintf("Selection round %d removed", index+1)}
		},
	)
}

// AddTVRound appends a TV show round with a default label
func (s *SeasonServiceImpl) AddTVRound(ctx context.Context, merchantID string, seasonID primitive.ObjectID) (*models.QuizSeason, error) {
	return s.mutate(ctx, merchantID, seasonID, OpTVRoundAdd, "Round not added",
		func(season models.QuizSeason, now time.Time) (models.QuizSeason, error) {
			return addTVRound(season, now), nil
		},
		func(season *models.QuizSeason) Notice {
			return Notice{Title: "Round added", Message: fmt.Sprintf("%s added", season.TVShowRounds[len(season.TVShowRounds)-1].Label)}
		},
	)
}

// UpdateTVRound replaces a TV round's fields and re-derives its end time
func (s *SeasonServiceImpl) UpdateTVRound(ctx context.Context, merchantID string, seasonID primitive.ObjectID, index int, input TVRoundInput) (*models.QuizSeason, error) {
	return s.mutate(ctx, merchantID, seasonID, OpTVRoundUpdate, "Round not updated",
		func(season models.QuizSeason, now time.Time) (models.QuizSeason, error) {
			return updateTVRound(season, index, input, now)
		},
		func(season *models.QuizSeason) Notice {
			return Notice{Title: "Round updated", Message: fmt.Sprintf("%s updated", season.TVShowRounds[index].Label)}
		},
	)
}

// RemoveTVRound deletes a TV round and renumbers the rest
func (s *SeasonServiceImpl) RemoveTVRound(ctx context.Context, merchantID string, seasonID primitive.ObjectID, index int) (*models.QuizSeason, error) {
	return s.mutate(ctx, merchantID, seasonID, OpTVRoundRemove, "Round not removed",
		func(season models.QuizSeason, now time.Time) (models.QuizSeason, error) {
			return removeTVRound(season, index, now)
		},
		func(season *models.QuizSeason) Notice {
			return Notice{Title: "Round removed", Message: fmt.Sprintf("TV round %d removed", index+1)}
		},
	)
}

// mutate applies change to a copy of the season and stores the result in one
// repository call, so concurrent edits of the same season cannot interleave
func (s *SeasonServiceImpl) mutate(
	ctx context.Context,
	merchantID string,
	seasonID primitive.ObjectID,
	op, failureTitle string,
	change func(models.QuizSeason, time.Time) (models.QuizSeason, error),
	describe func(*models.QuizSeason) Notice,
) (*models.QuizSeason, error) {
	var ruleErr error
	updated, err := s.seasonRepo.Modify(ctx, merchantID, seasonID, func(current models.QuizSeason) (models.QuizSeason, error) {
		next, err := change(current, s.now())
		ruleErr = err
		return next, err
	})
	if ruleErr != nil {
		return nil, s.reporter.failed(ctx, merchantID, op, failureTitle, ruleErr)
	}
	if err != nil {
		return nil, s.reporter.failed(ctx, merchantID, op, failureTitle, s.repoError(err))
	}

	s.logger.Info("Season updated", "merchantId", merchantID, "seasonId", seasonID.Hex(), "operation", op)
	notice := describe(updated)
	notice.MerchantID = merchantID
	notice.Operation = op
	s.reporter.succeeded(ctx, notice)
	return updated, nil
}

func (s *SeasonServiceImpl) findSeason(ctx context.Context, merchantID string, seasonID primitive.ObjectID) (*models.QuizSeason, error) {
	season, err := s.seasonRepo.FindByID(ctx, merchantID, seasonID)
	if err != nil {
		return nil, s.repoError(err)
	}
	return season, nil
}

func (s *SeasonServiceImpl) repoError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrSeasonNotFound
	}
	return fmt.Errorf("season repository: %w", err)
}

// RejectInput notifies the merchant that a request for operation was rejected before it ran
func (s *SeasonServiceImpl) RejectInput(ctx context.Context, merchantID, operation string, err error) error {
	return s.reporter.failed(ctx, merchantID, operation, inputRejectedTitle, err)
}
