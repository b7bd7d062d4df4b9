package handlers

import (
	"net/http"
	"time"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/services"
	"github.com/ArowuTest/quizseason-admin/internal/utils"
	"github.com/ArowuTest/quizseason-admin/pkg/currency"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SeasonHandler handles season-related HTTP requests
type SeasonHandler struct {
	seasonService services.SeasonService
	formatter     *currency.Formatter
}

// NewSeasonHandler creates a new SeasonHandler
func NewSeasonHandler(seasonService services.SeasonService, formatter *currency.Formatter) *SeasonHandler {
	return &SeasonHandler{
		seasonService: seasonService,
		formatter:     formatter,
	}
}

// CreateSeasonRequest is the body of POST /merchants/:merchantId/seasons
type CreateSeasonRequest struct {
	Name                      string                  `json:"name"`
	Description               string                  `json:"description"`
	Type                      models.SeasonType       `json:"type"`
	StartDate                 string                  `json:"startDate"` // YYYY-MM-DD
	EntryFee                  decimal.Decimal         `json:"entryFee"`
	MinimumTargetParticipants int                     `json:"minimumTargetParticipants"`
	Prizes                    models.PrizePool        `json:"prizes"`
	SelectionProcesses        []SelectionRoundRequest `json:"selectionProcesses"`
	TVShowRounds              []TVRoundRequest        `json:"tvShowRounds"`
}

// SelectionRoundRequest carries a selection round's editable fields
type SelectionRoundRequest struct {
	EntriesSelected int             `json:"entriesSelected"`
	EntryFee        decimal.Decimal `json:"entryFee"`
	StartDate       string          `json:"startDate"` // YYYY-MM-DD
	DurationDays    *int            `json:"durationDays"`
}

// TVRoundRequest carries a TV round's editable fields
type TVRoundRequest struct {
	Label           string          `json:"label"`
	EntriesSelected int             `json:"entriesSelected"`
	EntryFee        decimal.Decimal `json:"entryFee"`
	StartDateTime   *time.Time      `json:"startDateTime"` // RFC 3339
	DurationHours   *int            `json:"durationHours"`
}

// SetStatusRequest is the body of PUT .../status
type SetStatusRequest struct {
	Status models.QuizStatus `json:"status"`
}

// ExtendSeasonRequest is the body of POST .../extend
type ExtendSeasonRequest struct {
	Weeks  int    `json:"weeks"`
	Reason string `json:"reason"`
}

type seasonDisplay struct {
	TotalWinningPrizes string `json:"totalWinningPrizes"`
	EntryFee           string `json:"entryFee"`
}

type seasonResponse struct {
	*models.QuizSeason
	Display seasonDisplay `json:"display"`
}

// CreateSeason handles POST /merchants/:merchantId/seasons
func (h *SeasonHandler) CreateSeason(c *gin.Context) {
	var req CreateSeasonRequest
	if err := bindJSON(c, &req); err != nil {
		h.reject(c, services.OpSeasonCreate, err)
		return
	}

	input := services.CreateSeasonInput{
		Name:                      req.Name,
		Description:               req.Description,
		Type:                      req.Type,
		EntryFee:                  req.EntryFee,
		MinimumTargetParticipants: req.MinimumTargetParticipants,
		Prizes:                    req.Prizes,
	}
	if req.StartDate != "" {
		start, err := utils.ParseDate(req.StartDate)
		if err != nil {
			h.reject(c, services.OpSeasonCreate, services.NewValidationError("startDate", startDateFormatMessage))
			return
		}
		input.StartDate = &start
	}
	for _, round := range req.SelectionProcesses {
		parsed, err := parseSelectionRound(round)
		if err != nil {
			h.reject(c, services.OpSeasonCreate, err)
			return
		}
		input.SelectionProcesses = append(input.SelectionProcesses, models.SelectionProcess{
			EntriesSelected: parsed.EntriesSelected,
			EntryFee:        parsed.EntryFee,
			StartDate:       parsed.StartDate,
			DurationDays:    parsed.DurationDays,
		})
	}
	for _, round := range req.TVShowRounds {
		input.TVShowRounds = append(input.TVShowRounds, models.TVShowRound{
			Label:           round.Label,
			EntriesSelected: round.EntriesSelected,
			EntryFee:        round.EntryFee,
			StartDateTime:   round.StartDateTime,
			DurationHours:   round.DurationHours,
		})
	}

	season, err := h.seasonService.CreateSeason(c.Request.Context(), c.Param("merchantId"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.present(season))
}

// ListSeasons handles GET /merchants/:merchantId/seasons
func (h *SeasonHandler) ListSeasons(c *gin.Context) {
	seasons, err := h.seasonService.ListSeasons(c.Request.Context(), c.Param("merchantId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]seasonResponse, 0, len(seasons))
	for _, season := range seasons {
		response = append(response, h.present(season))
	}
	c.JSON(http.StatusOK, response)
}

// GetSeason handles GET /merchants/:merchantId/seasons/:id
func (h *SeasonHandler) GetSeason(c *gin.Context) {
	id, err := parseSeasonID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	season, err := h.seasonService.GetSeason(c.Request.Context(), c.Param("merchantId"), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(season))
}

// DeleteSeason handles DELETE /merchants/:merchantId/seasons/:id
func (h *SeasonHandler) DeleteSeason(c *gin.Context) {
	id, err := parseSeasonID(c)
	if err != nil {
		h.reject(c, services.OpSeasonDelete, err)
		return
	}
	if err := h.seasonService.DeleteSeason(c.Request.Context(), c.Param("merchantId"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Season deleted successfully"})
}

// SetStatus handles PUT /merchants/:merchantId/seasons/:id/status
func (h *SeasonHandler) SetStatus(c *gin.Context) {
	id, err := parseSeasonID(c)
	if err != nil {
		h.reject(c, services.OpSeasonStatus, err)
		return
	}
	var req SetStatusRequest
	if err := bindJSON(c, &req); err != nil {
		h.reject(c, services.OpSeasonStatus, err)
		return
	}
	h.respond(c)(h.seasonService.SetStatus(c.Request.Context(), c.Param("merchantId"), id, req.Status))
}

// ExtendSeason handles POST /merchants/:merchantId/seasons/:id/extend
func (h *SeasonHandler) ExtendSeason(c *gin.Context) {
	id, err := parseSeasonID(c)
	if err != nil {
		h.reject(c, services.OpSeasonExtend, err)
		return
	}
	var req ExtendSeasonRequest
	if err := bindJSON(c, &req); err != nil {
		h.reject(c, services.OpSeasonExtend, err)
		return
	}
	h.respond(c)(h.seasonService.ExtendSeason(c.Request.Context(), c.Param("merchantId"), id, req.Weeks, req.Reason))
}

// UpdatePrizes handles PUT /merchants/:merchantId/seasons/:id/prizes
func (h *SeasonHandler) UpdatePrizes(c *gin.Context) {
	id, err := parseSeasonID(c)
	if err != nil {
		h.reject(c, services.OpSeasonPrizes, err)
		return
	}
	var prizes models.PrizePool
	if err := bindJSON(c, &prizes); err != nil {
		h.reject(c, services.OpSeasonPrizes, err)
		return
	}
	h.respond(c)(h.seasonService.UpdatePrizes(c.Request.Context(), c.Param("merchantId"), id, prizes))
}

// AddSelectionRound handles POST .../seasons/:id/selection-rounds
func (h *SeasonHandler) AddSelectionRound(c *gin.Context) {
	id, err := parseSeasonID(c)
	if err != nil {
		h.reject(c, services.OpSelectionRoundAdd, err)
		return
	}
	h.respondCreated(c)(h.seasonService.AddSelectionRound(c.Request.Context(), c.Param("merchantId"), id))
}

// UpdateSelectionRound handles PUT .../seasons/:id/selection-rounds/:index
func (h *SeasonHandler) UpdateSelectionRound(c *gin.Context) {
	id, err := parseSeasonID(c)
	if err != nil {
		h.reject(c, services.OpSelectionRoundUpdate, err)
		return
	}
	index, err := parseRoundIndex(c)
	if err != nil {
		h.reject(c, services.OpSelectionRoundUpdate, err)
		return
	}
	var req SelectionRoundRequest
	if err := bindJSON(c, &req); err != nil {
		h.reject(c, services.OpSelectionRoundUpdate, err)
		return
	}
	input, err := parseSelectionRound(req)
	if err != nil {
		h.reject(c, services.OpSelectionRoundUpdate, err)
		return
	}
	h.respond(c)(h.seasonService.UpdateSelectionRound(c.Request.Context(), c.Param("merchantId"), id, index, input))
}

// RemoveSelectionRound handles DELETE .../seasons/:id/selection-rounds/:index
func (h *SeasonHandler) RemoveSelectionRound(c *gin.Context) {
	id, err := parseSeasonID(c)
	if err != nil {
		h.reject(c, services.OpSelectionRoundRemove, err)
		return
	}
	index, err := parseRoundIndex(c)
	if err != nil {
		h.reject(c, services.OpSelectionRoundRemove, err)
		return
	}
	h.respond(c)(h.seasonService.RemoveSelectionRound(c.Request.Context(), c.Param("merchantId"), id, index))
}

// AddTVRound handles POST .../seasons/:id/tv-rounds
func (h *SeasonHandler) AddTVRound(c *gin.Context) {
	id, err := parseSeasonID(c)
	if err != nil {
		h.reject(c, services.OpTVRoundAdd, err)
		return
	}
	h.respondCreated(c)(h.seasonService.AddTVRound(c.Request.Context(), c.Param("merchantId"), id))
}

// UpdateTVRound handles PUT .../seasons/:id/tv-rounds/:index
func (h *SeasonHandler) UpdateTVRound(c *gin.Context) {
	id, err := parseSeasonID(c)
	if err != nil {
		h.reject(c, services.OpTVRoundUpdate, err)
		return
	}
	index, err := parseRoundIndex(c)
	if err != nil {
		h.reject(c, services.OpTVRoundUpdate, err)
		return
	}
	var req TVRoundRequest
	if err := bindJSON(c, &req); err != nil {
		h.reject(c, services.OpTVRoundUpdate, err)
		return
	}
	h.respond(c)(h.seasonService.UpdateTVRound(c.Request.Context(), c.Param("merchantId"), id, index, services.TVRoundInput{
		Label:           req.Label,
		EntriesSelected: req.EntriesSelected,
		EntryFee:        req.EntryFee,
		StartDateTime:   req.StartDateTime,
		DurationHours:   req.DurationHours,
	}))
}

// RemoveTVRound handles DELETE .../seasons/:id/tv-rounds/:index
func (h *SeasonHandler) RemoveTVRound(c *gin.Context) {
	id, err := parseSeasonID(c)
	if err != nil {
		h.reject(c, services.OpTVRoundRemove, err)
		return
	}
	index, err := parseRoundIndex(c)
	if err != nil {
		h.reject(c, services.OpTVRoundRemove, err)
		return
	}
	h.respond(c)(h.seasonService.RemoveTVRound(c.Request.Context(), c.Param("merchantId"), id, index))
}

func (h *SeasonHandler) reject(c *gin.Context, operation string, err error) {
	rejectInput(c, h.seasonService, operation, err)
}

func (h *SeasonHandler) respond(c *gin.Context) func(*models.QuizSeason, error) {
	return h.respondWith(c, http.StatusOK)
}

func (h *SeasonHandler) respondCreated(c *gin.Context) func(*models.QuizSeason, error) {
	return h.respondWith(c, http.StatusCreated)
}

func (h *SeasonHandler) respondWith(c *gin.Context, status int) func(*models.QuizSeason, error) {
	return func(season *models.QuizSeason, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(status, h.present(season))
	}
}

func (h *SeasonHandler) present(season *models.QuizSeason) seasonResponse {
	return seasonResponse{
		QuizSeason: season,
		Display: seasonDisplay{
			TotalWinningPrizes: formatAmount(h.formatter, season.TotalWinningPrizes),
			EntryFee:           formatAmount(h.formatter, season.EntryFee),
		},
	}
}

const startDateFormatMessage = "Start date must be YYYY-MM-DD"

func parseSelectionRound(req SelectionRoundRequest) (services.SelectionRoundInput, error) {
	input := services.SelectionRoundInput{
		EntriesSelected: req.EntriesSelected,
		EntryFee:        req.EntryFee,
		DurationDays:    req.DurationDays,
	}
	if req.StartDate != "" {
		start, err := utils.ParseDate(req.StartDate)
		if err != nil {
			return services.SelectionRoundInput{}, services.NewValidationError("startDate", startDateFormatMessage)
		}
		input.StartDate = &start
	}
	return input, nil
}

func formatAmount(formatter *currency.Formatter, amount decimal.Decimal) string {
	if formatter == nil {
		return amount.StringFixed(2)
	}
	return formatter.Format(amount)
}
