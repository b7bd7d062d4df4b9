package services

import (
	"context"
	"testing"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrateObjectiveQuestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	link, err := f.questions.Integrate(ctx, merchantID, "adm-1", models.QuestionTypeObjective, nil)
	require.NoError(t, err)
	assert.Equal(t, models.QuestionSourceAdmin, link.SourceType)
	assert.Equal(t, fixedNow, link.IntegratedAt)
	assert.Nil(t, link.AlternativeAnswers)

	toast := f.lastToast(t)
	assert.Equal(t, models.NotificationSuccess, toast.Kind)
	assert.Equal(t, "question.integrate", toast.Operation)
}

func TestIntegrateRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.questions.Integrate(ctx, merchantID, "m-1", models.QuestionTypeNonObjective, nil)
	require.NoError(t, err)

	_, err = f.questions.Integrate(ctx, merchantID, "m-1", models.QuestionTypeNonObjective, nil)
	assert.ErrorIs(t, err, ErrDuplicateIntegration)
	assert.Equal(t, models.NotificationBlocking, f.lastToast(t).Kind)

	_, err = f.questions.Integrate(ctx, merchantID, "m-1", models.QuestionTypeBonusObjective, nil)
	assert.ErrorIs(t, err, ErrDuplicateIntegration, "a source is linked at most once across sub-banks")

	links, err := f.integrationRepo.FindByMerchant(ctx, merchantID)
	require.NoError(t, err)
	assert.Len(t, links, 1)

	_, err = f.questions.Integrate(ctx, "merchant-2", "m-1", models.QuestionTypeNonObjective, nil)
	assert.NoError(t, err, "banks are per merchant")
}

func TestIntegrateRejectsIneligibleSources(t *testing.T) {
	tests := []struct {
		name         string
		sourceID     string
		questionType models.QuestionType
		wantField    string
	}{
		{"unknown admin question", "adm-404", models.QuestionTypeObjective, "sourceId"},
		{"inactive admin question", "adm-3", models.QuestionTypeObjective, "sourceId"},
		{"merchant question as objective", "m-1", models.QuestionTypeObjective, "sourceId"},
		{"wrong merchant type", "m-3", models.QuestionTypeNonObjective, "sourceId"},
		{"admin question as bonus", "adm-1", models.QuestionTypeBonusObjective, "sourceId"},
		{"unknown type", "adm-1", "essay", "type"},
		{"blank source", "  ", models.QuestionTypeObjective, "sourceId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.questions.Integrate(context.Background(), merchantID, tt.sourceID, tt.questionType, nil)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantField)

			links, err := f.integrationRepo.FindByMerchant(context.Background(), merchantID)
			require.NoError(t, err)
			assert.Empty(t, links)
		})
	}
}

func TestIntegrateStoresAnswersWithoutCardinalityCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	link, err := f.questions.Integrate(ctx, merchantID, "m-1", models.QuestionTypeNonObjective, ptr(" Lagos ,, "))
	require.NoError(t, err)
	assert.Equal(t, []string{"Lagos"}, link.AlternativeAnswers)

	link, err = f.questions.Integrate(ctx, merchantID, "m-2", models.QuestionTypeNonObjective, ptr("Niger,Benue,Volta,Gambia,Senegal,Komoe"))
	require.NoError(t, err)
	assert.Len(t, link.AlternativeAnswers, 6)

	bonus, err := f.questions.Integrate(ctx, merchantID, "m-3", models.QuestionTypeBonusObjective, ptr("ignored,answers"))
	require.NoError(t, err)
	assert.Nil(t, bonus.AlternativeAnswers)
}

func TestUpdateAlternativeAnswersIsStrict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.questions.Integrate(ctx, merchantID, "m-1", models.QuestionTypeNonObjective, ptr("Lagos"))
	require.NoError(t, err)

	for _, text := range []string{"", "Lagos", " , Abuja , ", "a,b,c,d,e,f"} {
		t.Run(text, func(t *testing.T) {
			_, err := f.questions.UpdateAlternativeAnswers(ctx, merchantID, "m-1", text)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Provide 2-5 alternative answers", verr.Fields["alternativeAnswers"])

			stored, err := f.integrationRepo.FindBySourceID(ctx, merchantID, "m-1")
			require.NoError(t, err)
			assert.Equal(t, []string{"Lagos"}, stored.AlternativeAnswers)

			toast := f.lastToast(t)
			assert.Equal(t, models.NotificationFailure, toast.Kind)
			assert.Equal(t, "alternativeAnswers", toast.Field)
		})
	}

	updated, err := f.questions.UpdateAlternativeAnswers(ctx, merchantID, "m-1", " Lagos, Abuja ,Kano ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lagos", "Abuja", "Kano"}, updated.AlternativeAnswers)

	updated, err = f.questions.UpdateAlternativeAnswers(ctx, merchantID, "m-1", "a,b,c,d,e")
	require.NoError(t, err)
	assert.Len(t, updated.AlternativeAnswers, 5)
}

func TestUpdateAlternativeAnswersNeedsNonObjectiveLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.questions.UpdateAlternativeAnswers(ctx, merchantID, "m-1", "a,b")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "sourceId")

	_, err = f.questions.Integrate(ctx, merchantID, "adm-1", models.QuestionTypeObjective, nil)
	require.NoError(t, err)
	_, err = f.questions.UpdateAlternativeAnswers(ctx, merchantID, "adm-1", "a,b")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRemoveIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.questions.Integrate(ctx, merchantID, "adm-1", models.QuestionTypeObjective, nil)
	require.NoError(t, err)

	require.NoError(t, f.questions.Remove(ctx, merchantID, "adm-1"))
	assert.Equal(t, models.NotificationSuccess, f.lastToast(t).Kind)
	sent := len(f.gateway.Messages())

	require.NoError(t, f.questions.Remove(ctx, merchantID, "adm-1"))
	assert.Len(t, f.gateway.Messages(), sent, "removing an unlinked question sends no toast")

	_, err = f.questions.Integrate(ctx, merchantID, "adm-1", models.QuestionTypeObjective, nil)
	assert.NoError(t, err, "a removed question can be integrated again")
}

func TestSourceIDIsTrimmedOnEveryOperation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.questions.Integrate(ctx, merchantID, " m-1 ", models.QuestionTypeNonObjective, ptr("Lagos,Abuja"))
	require.NoError(t, err)

	link, err := f.questions.UpdateAlternativeAnswers(ctx, merchantID, " m-1 ", "Kano, Ibadan, Jos")
	require.NoError(t, err)
	assert.Equal(t, "m-1", link.SourceID)
	assert.Equal(t, []string{"Kano", "Ibadan", "Jos"}, link.AlternativeAnswers)

	require.NoError(t, f.questions.Remove(ctx, merchantID, " m-1 "))
	_, err = f.integrationRepo.FindBySourceID(ctx, merchantID, "m-1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Equal(t, "Question removed", f.lastToast(t).Title)
}

func TestListAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.questions.Integrate(ctx, merchantID, "adm-2", models.QuestionTypeObjective, nil)
	require.NoError(t, err)

	objective, err := f.questions.ListAvailable(ctx, merchantID, models.QuestionTypeObjective)
	require.NoError(t, err)
	require.Len(t, objective, 2, "inactive admin questions are not offered")
	assert.Equal(t, "adm-1", objective[0].SourceID)
	assert.False(t, objective[0].Integrated)
	assert.Equal(t, "adm-2", objective[1].SourceID)
	assert.True(t, objective[1].Integrated)
	assert.NotNil(t, objective[1].Admin)

	nonObjective, err := f.questions.ListAvailable(ctx, merchantID, models.QuestionTypeNonObjective)
	require.NoError(t, err)
	assert.Len(t, nonObjective, 2)

	bonus, err := f.questions.ListAvailable(ctx, merchantID, models.QuestionTypeBonusObjective)
	require.NoError(t, err)
	require.Len(t, bonus, 1)
	assert.Equal(t, "m-3", bonus[0].SourceID)
	assert.NotNil(t, bonus[0].Merchant)

	_, err = f.questions.ListAvailable(ctx, merchantID, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListIntegratedOmitsMissingSources(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, id := range []string{"adm-1", "adm-2"} {
		_, err := f.questions.Integrate(ctx, merchantID, id, models.QuestionTypeObjective, nil)
		require.NoError(t, err)
	}
	_, err := f.questions.Integrate(ctx, merchantID, "m-1", models.QuestionTypeNonObjective, ptr("Lagos,Abuja"))
	require.NoError(t, err)

	f.pool.ReplaceAdminQuestions(testAdminPool()[1:])

	objective, err := f.questions.ListIntegrated(ctx, merchantID, models.QuestionTypeObjective)
	require.NoError(t, err)
	require.Len(t, objective, 1)
	assert.Equal(t, "adm-2", objective[0].SourceID)
	assert.Equal(t, "Largest planet?", objective[0].Source.Admin.Question)

	all, err := f.questions.ListIntegrated(ctx, merchantID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"Lagos", "Abuja"}, all[1].AlternativeAnswers)

	links, err := f.integrationRepo.FindByMerchant(ctx, merchantID)
	require.NoError(t, err)
	assert.Len(t, links, 3, "listing never deletes links")
}
