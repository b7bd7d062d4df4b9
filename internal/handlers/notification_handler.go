package handlers

import (
	"net/http"
	"strconv"

	"github.com/ArowuTest/quizseason-admin/internal/services"
	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the merchant's recent toasts
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetNotifications handles GET /merchants/:merchantId/notifications?limit=
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative number"})
		return
	}

	notifications, err := h.notificationService.GetNotifications(c.Request.Context(), c.Param("merchantId"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}
