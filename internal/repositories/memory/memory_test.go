package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSeasonRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSeasonRepository()

	season := &models.QuizSeason{
		MerchantID:         "m-1",
		Name:               "Original",
		SelectionProcesses: []models.SelectionProcess{{Round: 1}},
		TVShowRounds:       []models.TVShowRound{},
	}
	require.NoError(t, repo.Create(ctx, season))
	require.False(t, season.ID.IsZero())

	season.Name = "Changed after create"
	season.SelectionProcesses[0].EntriesSelected = 99

	stored, err := repo.FindByID(ctx, "m-1", season.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", stored.Name)
	assert.Equal(t, 0, stored.SelectionProcesses[0].EntriesSelected)

	stored.SelectionProcesses[0].EntriesSelected = 5
	again, err := repo.FindByID(ctx, "m-1", season.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.SelectionProcesses[0].EntriesSelected)
}

func TestSeasonRepositoryScopesByMerchant(t *testing.T) {
	ctx := context.Background()
	repo := NewSeasonRepository()

	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i, merchant := range []string{"m-1", "m-1", "m-2"} {
		require.NoError(t, repo.Create(ctx, &models.QuizSeason{MerchantID: merchant, CreatedAt: base.Add(time.Duration(-i) * time.Hour)}))
	}

	seasons, err := repo.FindByMerchant(ctx, "m-1")
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.True(t, seasons[0].CreatedAt.Before(seasons[1].CreatedAt))

	_, err = repo.FindByID(ctx, "m-2", seasons[0].ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, repo.Update(ctx, &models.QuizSeason{MerchantID: "m-1", ID: primitive.NewObjectID()}), repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "m-2", seasons[0].ID), repositories.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "m-1", seasons[0].ID))

	seasons, err = repo.FindByMerchant(ctx, "m-1")
	require.NoError(t, err)
	assert.Len(t, seasons, 1)
}

func TestWalletRepositoryDefaultsToEmptyWallet(t *testing.T) {
	ctx := context.Background()
	repo := NewWalletRepository()

	wallet, err := repo.FindByMerchant(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, "m-1", wallet.MerchantID)
	assert.True(t, wallet.WalletBalance.IsZero())
	assert.NotNil(t, wallet.WalletFundingHistory)

	wallet.WalletBalance = decimal.NewFromInt(10)
	wallet.WalletFundingHistory = append(wallet.WalletFundingHistory, models.LedgerEntry{Kind: models.LedgerEntryCredit, Amount: decimal.NewFromInt(10)})
	require.NoError(t, repo.Save(ctx, wallet))

	wallet.WalletFundingHistory[0].Amount = decimal.NewFromInt(99)
	stored, err := repo.FindByMerchant(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, "10", stored.WalletFundingHistory[0].Amount.String())
}

func TestIntegrationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIntegrationRepository()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, "m-1", &models.IntegratedQuestion{SourceID: id, Type: models.QuestionTypeObjective}))
	}
	assert.ErrorIs(t, repo.Create(ctx, "m-1", &models.IntegratedQuestion{SourceID: "b"}), repositories.ErrAlreadyExists)

	require.NoError(t, repo.Delete(ctx, "m-1", "b"))
	assert.ErrorIs(t, repo.Delete(ctx, "m-1", "b"), repositories.ErrNotFound)

	links, err := repo.FindByMerchant(ctx, "m-1")
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "a", links[0].SourceID)
	assert.Equal(t, "c", links[1].SourceID)

	require.NoError(t, repo.Update(ctx, "m-1", &models.IntegratedQuestion{SourceID: "c", AlternativeAnswers: []string{"x", "y"}}))
	link, err := repo.FindBySourceID(ctx, "m-1", "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, link.AlternativeAnswers)

	link.AlternativeAnswers[0] = "mutated"
	again, err := repo.FindBySourceID(ctx, "m-1", "c")
	require.NoError(t, err)
	assert.Equal(t, "x", again.AlternativeAnswers[0])

	assert.ErrorIs(t, repo.Update(ctx, "m-1", &models.IntegratedQuestion{SourceID: "zzz"}), repositories.ErrNotFound)
	_, err = repo.FindBySourceID(ctx, "m-2", "a")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestQuestionPoolRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionPoolRepository(
		[]*models.AdminQuestion{{ID: "adm-1", Status: models.AdminQuestionStatusActive}},
		[]*models.MerchantQuestion{{ID: "m-1", Type: models.QuestionTypeNonObjective}},
	)

	q, err := repo.FindAdminQuestion(ctx, "adm-1")
	require.NoError(t, err)
	assert.Equal(t, "adm-1", q.ID)

	_, err = repo.FindMerchantQuestion(ctx, "adm-1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	repo.ReplaceMerchantQuestions(nil)
	merchant, err := repo.MerchantQuestions(ctx)
	require.NoError(t, err)
	assert.Empty(t, merchant)
}

func TestNotificationRepositoryIsBounded(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(3)

	for _, title := range []string{"1", "2", "3", "4", "5"} {
		require.NoError(t, repo.Create(ctx, &models.Notification{MerchantID: "m-1", Title: title}))
	}

	feed, err := repo.FindByMerchant(ctx, "m-1", 0)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "5", feed[0].Title)
	assert.Equal(t, "3", feed[2].Title)
	assert.False(t, feed[0].ID.IsZero())

	limited, err := repo.FindByMerchant(ctx, "m-1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRepositoriesAreSafeForConcurrentUse(t *testing.T) {
	ctx := context.Background()
	seasons := NewSeasonRepository()
	notifications := NewNotificationRepository(0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = seasons.Create(ctx, &models.QuizSeason{MerchantID: "m-1"})
			_, _ = seasons.FindByMerchant(ctx, "m-1")
			_ = notifications.Create(ctx, &models.Notification{MerchantID: "m-1"})
		}()
	}
	wg.Wait()

	all, err := seasons.FindByMerchant(ctx, "m-1")
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

func TestWalletRepositoryModify(t *testing.T) {
	ctx := context.Background()
	repo := NewWalletRepository()

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Modify(ctx, "m-1", func(w models.MerchantWallet) (models.MerchantWallet, error) {
				w.WalletBalance = w.WalletBalance.Add(decimal.NewFromInt(1))
				return w, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	errRejected := errors.New("rejected")
	_, err := repo.Modify(ctx, "m-1", func(w models.MerchantWallet) (models.MerchantWallet, error) {
		w.WalletBalance = decimal.Zero
		return w, errRejected
	})
	assert.ErrorIs(t, err, errRejected)

	stored, err := repo.FindByMerchant(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, "30", stored.WalletBalance.String())
	assert.Equal(t, "m-1", stored.MerchantID)
}

func TestSeasonRepositoryModify(t *testing.T) {
	ctx := context.Background()
	repo := NewSeasonRepository()

	season := &models.QuizSeason{MerchantID: "m-1", Name: "Original", SelectionProcesses: []models.SelectionProcess{}, TVShowRounds: []models.TVShowRound{}}
	require.NoError(t, repo.Create(ctx, season))

	updated, err := repo.Modify(ctx, "m-1", season.ID, func(s models.QuizSeason) (models.QuizSeason, error) {
		s.Name = "Renamed"
		return s, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	_, err = repo.Modify(ctx, "m-1", season.ID, func(s models.QuizSeason) (models.QuizSeason, error) {
		s.Name = "Discarded"
		return s, errors.New("rejected")
	})
	require.Error(t, err)

	stored, err := repo.FindByID(ctx, "m-1", season.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)

	_, err = repo.Modify(ctx, "m-2", season.ID, func(s models.QuizSeason) (models.QuizSeason, error) { return s, nil })
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
