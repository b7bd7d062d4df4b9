package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/utils"
	"github.com/shopspring/decimal"
)

const (
	minExtensionWeeks = 1
	maxExtensionWeeks = 8

	tvRoundLabelFormat = "TV Round %d"
)

// allowedTransitions is the season status machine: draft→active→suspended→active
var allowedTransitions = map[models.QuizStatus]models.QuizStatus{
	models.QuizStatusDraft:     models.QuizStatusActive,
	models.QuizStatusActive:    models.QuizStatusSuspended,
	models.QuizStatusSuspended: models.QuizStatusActive,
}

// The functions below never mutate their season argument. Each returns a new
// value or an error, and the caller persists the value only on success.

func buildSeason(merchantID string, input CreateSeasonInput, now time.Time) (models.QuizSeason, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		verr.Add("name", "Season name is required")
	}
	switch {
	case input.Type == "":
		verr.Add("type", "Season type is required")
	case !input.Type.IsValid():
		verr.Add("type", "Season type must be Short, Medium or Complete")
	}
	if input.StartDate == nil || input.StartDate.IsZero() {
		verr.Add("startDate", "Start date is required")
	}
	if input.MinimumTargetParticipants < 0 || input.MinimumTargetParticipants > models.MaxTargetParticipants {
		verr.Add("minimumTargetParticipants", fmt.Sprintf("Minimum target participants must be between 0 and %d", models.MaxTargetParticipants))
	}
	if input.EntryFee.IsNegative() {
		verr.Add("entryFee", "Entry fee cannot be negative")
	}
	validatePrizePool(input.Prizes, verr)
	for i, p := range input.SelectionProcesses {
		validateSelectionRound(fmt.Sprintf("selectionProcesses[%d].", i), SelectionRoundInput{
			EntriesSelected: p.EntriesSelected,
			EntryFee:        p.EntryFee,
			StartDate:       p.StartDate,
			DurationDays:    p.DurationDays,
		}, verr)
	}
	for i, r := range input.TVShowRounds {
		validateTVRound(fmt.Sprintf("tvShowRounds[%d].", i), TVRoundInput{
			EntriesSelected: r.EntriesSelected,
			EntryFee:        r.EntryFee,
			StartDateTime:   r.StartDateTime,
			DurationHours:   r.DurationHours,
		}, verr)
	}
	if verr.HasErrors() {
		return models.QuizSeason{}, verr
	}

	typeSpec, err := models.ResolveSeasonType(input.Type)
	if err != nil {
		return models.QuizSeason{}, err
	}

	start := *input.StartDate
	end := utils.AddMonths(start, typeSpec.DurationMonths)

	season := models.QuizSeason{
		MerchantID:                merchantID,
		Name:                      strings.TrimSpace(input.Name),
		Description:               strings.TrimSpace(input.Description),
		Type:                      input.Type,
		DurationMonths:            typeSpec.DurationMonths,
		SelectionLevels:           typeSpec.SelectionLevels,
		StartDate:                 start,
		EndDate:                   end,
		OriginalEndDate:           end,
		EntryFee:                  input.EntryFee,
		MinimumTargetParticipants: input.MinimumTargetParticipants,
		Prizes:                    input.Prizes,
		TotalWinningPrizes:        input.Prizes.Total(),
		QuizStatus:                models.QuizStatusDraft,
		SelectionProcesses:        make([]models.SelectionProcess, 0, len(input.SelectionProcesses)),
		TVShowRounds:              make([]models.TVShowRound, 0, len(input.TVShowRounds)),
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
	for _, p := range input.SelectionProcesses {
		season.SelectionProcesses = append(season.SelectionProcesses, deriveSelectionEnd(p))
	}
	for i, r := range input.TVShowRounds {
		if strings.TrimSpace(r.Label) == "" {
			r.Label = fmt.Sprintf(tvRoundLabelFormat, i+1)
		}
		season.TVShowRounds = append(season.TVShowRounds, deriveTVEnd(r))
	}
	renumberSelectionRounds(season.SelectionProcesses)
	renumberTVRounds(season.TVShowRounds)

	return season, nil
}

func transitionStatus(season models.QuizSeason, next models.QuizStatus, now time.Time) (models.QuizSeason, error) {
	if next == "" {
		return models.QuizSeason{}, NewValidationError("status", "Select a status")
	}
	if allowed, ok := allowedTransitions[season.QuizStatus]; !ok || allowed != next {
		return models.QuizSeason{}, fmt.Errorf("%w: cannot move season from %s to %s", ErrInvalidTransition, season.QuizStatus, next)
	}
	updated := season.Clone()
	updated.QuizStatus = next
	updated.UpdatedAt = now
	return updated, nil
}

// extendSeason pushes the end date by weeks. ExtensionWeeks holds the latest
// extension only; TotalExtensionWeeks and Extensions keep the full record.
func extendSeason(season models.QuizSeason, weeks int, reason string, now time.Time) (models.QuizSeason, error) {
	reason = strings.TrimSpace(reason)

	verr := &ValidationError{}
	if weeks < minExtensionWeeks || weeks > maxExtensionWeeks {
		verr.Add("weeks", fmt.Sprintf("Extension must be between %d and %d weeks", minExtensionWeeks, maxExtensionWeeks))
	}
	if reason == "" {
		verr.Add("reason", "Extension reason is required")
	}
	if verr.HasErrors() {
		return models.QuizSeason{}, verr
	}

	updated := season.Clone()
	previousEnd := updated.EndDate
	updated.EndDate = utils.AddWeeks(previousEnd, weeks)
	updated.IsExtended = true
	updated.ExtensionWeeks = weeks
	updated.ExtensionReason = reason
	updated.TotalExtensionWeeks += weeks
	updated.Extensions = append(updated.Extensions, models.SeasonExtension{
		Weeks:           weeks,
		Reason:          reason,
		PreviousEndDate: previousEnd,
		NewEndDate:      updated.EndDate,
		ExtendedAt:      now,
	})
	updated.UpdatedAt = now
	return updated, nil
}

func replacePrizes(season models.QuizSeason, prizes models.PrizePool, now time.Time) (models.QuizSeason, error) {
	verr := &ValidationError{}
	validatePrizePool(prizes, verr)
	if verr.HasErrors() {
		return models.QuizSeason{}, verr
	}

	updated := season.Clone()
	updated.Prizes = prizes
	updated.TotalWinningPrizes = prizes.Total()
	updated.UpdatedAt = now
	return updated, nil
}

func addSelectionRound(season models.QuizSeason, now time.Time) models.QuizSeason {
	updated := season.Clone()
	updated.SelectionProcesses = append(updated.SelectionProcesses, models.SelectionProcess{EntryFee: decimal.Zero})
	renumberSelectionRounds(updated.SelectionProcesses)
	updated.UpdatedAt = now
	return updated
}

func updateSelectionRound(season models.QuizSeason, index int, input SelectionRoundInput, now time.Time) (models.QuizSeason, error) {
	if err := checkRoundIndex(index, len(season.SelectionProcesses)); err != nil {
		return models.QuizSeason{}, err
	}
	verr := &ValidationError{}
	validateSelectionRound("", input, verr)
	if verr.HasErrors() {
		return models.QuizSeason{}, verr
	}

	updated := season.Clone()
	round := updated.SelectionProcesses[index]
	round.EntriesSelected = input.EntriesSelected
	round.EntryFee = input.EntryFee
	round.StartDate = input.StartDate
	round.DurationDays = input.DurationDays
	updated.SelectionProcesses[index] = deriveSelectionEnd(round)
	updated.UpdatedAt = now
	return updated, nil
}

func removeSelectionRound(season models.QuizSeason, index int, now time.Time) (models.QuizSeason, error) {
	if err := checkRoundIndex(index, len(season.SelectionProcesses)); err != nil {
		return models.QuizSeason{}, err
	}
	updated := season.Clone()
	updated.SelectionProcesses = append(updated.SelectionProcesses[:index], updated.SelectionProcesses[index+1:]...)
	renumberSelectionRounds(updated.SelectionProcesses)
	updated.UpdatedAt = now
	return updated, nil
}

func addTVRound(season models.QuizSeason, now time.Time) models.QuizSeason {
	updated := season.Clone()
	updated.TVShowRounds = append(updated.TVShowRounds, models.TVShowRound{
		Label:    fmt.Sprintf(tvRoundLabelFormat, len(updated.TVShowRounds)+1),
		EntryFee: decimal.Zero,
	})
	renumberTVRounds(updated.TVShowRounds)
	updated.UpdatedAt = now
	return updated
}

func updateTVRound(season models.QuizSeason, index int, input TVRoundInput, now time.Time) (models.QuizSeason, error) {
	if err := checkRoundIndex(index, len(season.TVShowRounds)); err != nil {
		return models.QuizSeason{}, err
	}
	verr := &ValidationError{}
	validateTVRound("", input, verr)
	if verr.HasErrors() {
		return models.QuizSeason{}, verr
	}

	updated := season.Clone()
	round := updated.TVShowRounds[index]
	if label := strings.TrimSpace(input.Label); label != "" {
		round.Label = label
	}
	round.EntriesSelected = input.EntriesSelected
	round.EntryFee = input.EntryFee
	round.StartDateTime = input.StartDateTime
	round.DurationHours = input.DurationHours
	updated.TVShowRounds[index] = deriveTVEnd(round)
	updated.UpdatedAt = now
	return updated, nil
}

func removeTVRound(season models.QuizSeason, index int, now time.Time) (models.QuizSeason, error) {
	if err := checkRoundIndex(index, len(season.TVShowRounds)); err != nil {
		return models.QuizSeason{}, err
	}
	updated := season.Clone()
	updated.TVShowRounds = append(updated.TVShowRounds[:index], updated.TVShowRounds[index+1:]...)
	renumberTVRounds(updated.TVShowRounds)
	updated.UpdatedAt = now
	return updated, nil
}

// renumberSelectionRounds sets round numbers to 1..n in slice order
func renumberSelectionRounds(rounds []models.SelectionProcess) {
	for i := range rounds {
		rounds[i].Round = i + 1
	}
}

// renumberTVRounds sets round numbers to 1..n. Labels still at their default
// follow the new number; custom labels are kept.
func renumberTVRounds(rounds []models.TVShowRound) {
	for i := range rounds {
		if rounds[i].Round > 0 && rounds[i].Label == fmt.Sprintf(tvRoundLabelFormat, rounds[i].Round) {
			rounds[i].Label = fmt.Sprintf(tvRoundLabelFormat, i+1)
		}
		rounds[i].Round = i + 1
	}
}

// deriveSelectionEnd sets EndDate from StartDate and DurationDays, or clears it if either is missing
func deriveSelectionEnd(round models.SelectionProcess) models.SelectionProcess {
	round.EndDate = nil
	if round.StartDate != nil && round.DurationDays != nil {
		end := utils.AddDays(*round.StartDate, *round.DurationDays)
		round.EndDate = &end
	}
	return round
}

// deriveTVEnd sets EndDateTime from StartDateTime and DurationHours, or clears it if either is missing
func deriveTVEnd(round models.TVShowRound) models.TVShowRound {
	round.EndDateTime = nil
	if round.StartDateTime != nil && round.DurationHours != nil {
		end := utils.AddHours(*round.StartDateTime, *round.DurationHours)
		round.EndDateTime = &end
	}
	return round
}

func checkRoundIndex(index, count int) error {
	if index < 0 || index >= count {
		return NewValidationError("index", fmt.Sprintf("Round %d does not exist", index+1))
	}
	return nil
}

func validatePrizePool(prizes models.PrizePool, verr *ValidationError) {
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"firstPrize", prizes.FirstPrize},
		{"secondPrize", prizes.SecondPrize},
		{"thirdPrize", prizes.ThirdPrize},
		{"consolationPrizePerPlayer", prizes.ConsolationPrizePerPlayer},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			verr.Add(a.field, "Prize amounts cannot be negative")
		}
	}
	if prizes.ConsolationPrizeCount < 0 {
		verr.Add("consolationPrizeCount", "Consolation prize count cannot be negative")
	}
}

func validateSelectionRound(prefix string, input SelectionRoundInput, verr *ValidationError) {
	if input.EntriesSelected < 0 {
		verr.Add(prefix+"entriesSelected", "Entries selected cannot be negative")
	}
	if input.EntryFee.IsNegative() {
		verr.Add(prefix+"entryFee", "Entry fee cannot be negative")
	}
	if input.DurationDays != nil && *input.DurationDays < 1 {
		verr.Add(prefix+"durationDays", "Duration must be at least 1 day")
	}
}

func validateTVRound(prefix string, input TVRoundInput, verr *ValidationError) {
	if input.EntriesSelected < 0 {
		verr.Add(prefix+"entriesSelected", "Entries selected cannot be negative")
	}
	if input.EntryFee.IsNegative() {
		verr.Add(prefix+"entryFee", "Entry fee cannot be negative")
	}
	if input.DurationHours != nil && *input.DurationHours < 1 {
		verr.Add(prefix+"durationHours", "Duration must be at least 1 hour")
	}
}
