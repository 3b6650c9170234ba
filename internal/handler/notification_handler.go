package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ncc-parade-api/internal/service"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
	"github.com/noah-isme/ncc-parade-api/pkg/response"
)

// NotificationHandler exposes the caller's active notices.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List godoc
// @Summary List active notifications addressed to the caller
// @Tags Notifications
// @Produce json
// @Param id path string true "Parade ID"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	notifications, err := h.notifications.ListForRecipient(
		c.Request.Context(), c.Param("id"), claims.Role, claims.AssignedCategory, claims.AssignedDivision)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notifications)
}
