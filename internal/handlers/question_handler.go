package handlers

import (
	"net/http"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/services"
	"github.com/gin-gonic/gin"
)

// QuestionHandler handles question bank HTTP requests
type QuestionHandler struct {
	integrationService services.QuestionIntegrationService
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(integrationService services.QuestionIntegrationService) *QuestionHandler {
	return &QuestionHandler{integrationService: integrationService}
}

// IntegrateRequest is the body of POST /merchants/:merchantId/questions/integrated
type IntegrateRequest struct {
	SourceID           string              `json:"sourceId"`
	Type               models.QuestionType `json:"type"`
	AlternativeAnswers *string             `json:"alternativeAnswers"` // comma separated
}

// UpdateAnswersRequest is the body of PUT .../questions/integrated/:sourceId/answers
type UpdateAnswersRequest struct {
	AlternativeAnswers string `json:"alternativeAnswers"` // comma separated
}

// ListAvailable handles GET /merchants/:merchantId/questions/available?type=
func (h *QuestionHandler) ListAvailable(c *gin.Context) {
	questions, err := h.integrationService.ListAvailable(c.Request.Context(), c.Param("merchantId"), models.QuestionType(c.Query("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// ListIntegrated handles GET /merchants/:merchantId/questions/integrated?type=
func (h *QuestionHandler) ListIntegrated(c *gin.Context) {
	questions, err := h.integrationService.ListIntegrated(c.Request.Context(), c.Param("merchantId"), models.QuestionType(c.Query("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Integrate handles POST /merchants/:merchantId/questions/integrated
func (h *QuestionHandler) Integrate(c *gin.Context) {
	var req IntegrateRequest
	if err := bindJSON(c, &req); err != nil {
		rejectInput(c, h.integrationService, services.OpQuestionIntegrate, err)
		return
	}
	link, err := h.integrationService.Integrate(c.Request.Context(), c.Param("merchantId"), req.SourceID, req.Type, req.AlternativeAnswers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// Remove handles DELETE /merchants/:merchantId/questions/integrated/:sourceId
func (h *QuestionHandler) Remove(c *gin.Context) {
	if err := h.integrationService.Remove(c.Request.Context(), c.Param("merchantId"), c.Param("sourceId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question removed successfully"})
}

// UpdateAlternativeAnswers handles PUT .../questions/integrated/:sourceId/answers
func (h *QuestionHandler) UpdateAlternativeAnswers(c *gin.Context) {
	var req UpdateAnswersRequest
	if err := bindJSON(c, &req); err != nil {
		rejectInput(c, h.integrationService, services.OpAnswersUpdate, err)
		return
	}
	link, err := h.integrationService.UpdateAlternativeAnswers(c.Request.Context(), c.Param("merchantId"), c.Param("sourceId"), req.AlternativeAnswers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}
