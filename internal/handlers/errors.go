package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ArowuTest/quizseason-admin/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError maps a service error to its HTTP status
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, services.ErrSeasonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrDuplicateIntegration):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// rejectInput tells the merchant that a mutating request could not be parsed, then responds with err
func rejectInput(c *gin.Context, rejecter services.InputRejecter, operation string, err error) {
	respondError(c, rejecter.RejectInput(c.Request.Context(), c.Param("merchantId"), operation, err))
}

// bindJSON decodes the request body, reporting a malformed one as a validation error
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return services.NewValidationError(typeErr.Field, "Value has the wrong type")
	}
	return services.NewValidationError("body", "Request body is not valid JSON")
}

func parseSeasonID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, services.NewValidationError("id", "Invalid ID format")
	}
	return id, nil
}

func parseRoundIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, services.NewValidationError("index", "Round index must be a number")
	}
	return index, nil
}
