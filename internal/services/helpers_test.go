package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ArowuTest/quizseason-admin/internal/metrics"
	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/repositories"
	"github.com/ArowuTest/quizseason-admin/internal/repositories/memory"
	"github.com/ArowuTest/quizseason-admin/pkg/currency"
	"github.com/ArowuTest/quizseason-admin/pkg/toastgateway"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.February, 20, 10, 0, 0, 0, time.UTC)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

type fixture struct {
	seasons   *SeasonServiceImpl
	funding   *FundingServiceImpl
	questions *QuestionIntegrationServiceImpl

	seasonRepo      repositories.SeasonRepository
	walletRepo      repositories.WalletRepository
	integrationRepo repositories.IntegrationRepository
	pool            *memory.QuestionPoolRepository
	gateway         *toastgateway.MockGateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	formatter, err := currency.NewFormatter("NGN", "en")
	require.NoError(t, err)

	gateway := toastgateway.NewMockGateway()
	notifier := NewToastNotificationService(gateway, memory.NewNotificationRepository(0), formatter, logger)
	notifier.now = func() time.Time { return fixedNow }

	f := &fixture{
		seasonRepo:      memory.NewSeasonRepository(),
		walletRepo:      memory.NewWalletRepository(),
		integrationRepo: memory.NewIntegrationRepository(),
		pool:            memory.NewQuestionPoolRepository(testAdminPool(), testMerchantPool()),
		gateway:         gateway,
	}
	recorder := metrics.NoopRecorder{}

	f.seasons = NewSeasonService(f.seasonRepo, notifier, recorder, logger)
	f.seasons.now = func() time.Time { return fixedNow }
	f.funding = NewFundingService(f.walletRepo, f.seasonRepo, DefaultFundingPolicy(), notifier, recorder, logger)
	f.funding.now = func() time.Time { return fixedNow }
	f.questions = NewQuestionIntegrationService(f.integrationRepo, f.pool, notifier, recorder, logger)
	f.questions.now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) lastToast(t *testing.T) *models.Notification {
	t.Helper()
	sent := f.gateway.Messages()
	require.NotEmpty(t, sent, "expected a toast")
	return sent[len(sent)-1]
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func naira(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// examplePrizes totals 11,500,000
func examplePrizes() models.PrizePool {
	return models.PrizePool{
		FirstPrize:                naira(5_000_000),
		SecondPrize:               naira(2_500_000),
		ThirdPrize:                naira(1_000_000),
		ConsolationPrizePerPlayer: naira(300_000),
		ConsolationPrizeCount:     10,
		ConsolationPrizesEnabled:  true,
	}
}

func testAdminPool() []*models.AdminQuestion {
	return []*models.AdminQuestion{
		{ID: "adm-1", Question: "Capital of Nigeria?", Options: []string{"Lagos", "Abuja"}, CorrectAnswerIndex: 1, Status: models.AdminQuestionStatusActive},
		{ID: "adm-2", Question: "Largest planet?", Options: []string{"Mars", "Jupiter"}, CorrectAnswerIndex: 1, Status: models.AdminQuestionStatusActive},
		{ID: "adm-3", Question: "Retired question", Options: []string{"a", "b"}, Status: "inactive"},
	}
}

func testMerchantPool() []*models.MerchantQuestion {
	return []*models.MerchantQuestion{
		{ID: "m-1", Question: "Name a Nigerian city", Type: models.QuestionTypeNonObjective},
		{ID: "m-2", Question: "Name a West African river", Type: models.QuestionTypeNonObjective},
		{ID: "m-3", Question: "Bonus: 2+2?", Type: models.QuestionTypeBonusObjective, Options: []string{"3", "4"}, CorrectAnswerIndex: ptr(1)},
	}
}
