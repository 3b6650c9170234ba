package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ncc-parade-api/internal/service"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
	"github.com/noah-isme/ncc-parade-api/pkg/response"
)

// PermissionHandler exposes the advance-excusal ledger.
type PermissionHandler struct {
	permissions *service.PermissionService
}

// NewPermissionHandler constructs the handler.
func NewPermissionHandler(permissions *service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissions: permissions}
}

// Upsert godoc
// @Summary Record or replace a cadet's permission
// @Tags Permissions
// @Accept json
// @Produce json
// @Param id path string true "Parade ID"
// @Param cadetId path string true "Cadet ID"
// @Param payload body service.UpsertPermissionRequest true "Permission"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/permissions/{cadetId} [put]
func (h *PermissionHandler) Upsert(c *gin.Context) {
	var req service.UpsertPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	req.CadetID = c.Param("cadetId")
	permission, err := h.permissions.Upsert(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, permission)
}

// Remove godoc
// @Summary Delete a cadet's permission
// @Tags Permissions
// @Param id path string true "Parade ID"
// @Param cadetId path string true "Cadet ID"
// @Success 204
// @Router /parades/{id}/permissions/{cadetId} [delete]
func (h *PermissionHandler) Remove(c *gin.Context) {
	if err := h.permissions.Remove(c.Request.Context(), c.Param("id"), c.Param("cadetId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Get godoc
// @Summary Fetch a cadet's permission
// @Tags Permissions
// @Produce json
// @Param id path string true "Parade ID"
// @Param cadetId path string true "Cadet ID"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/permissions/{cadetId} [get]
func (h *PermissionHandler) Get(c *gin.Context) {
	permission, err := h.permissions.Get(c.Request.Context(), c.Param("id"), c.Param("cadetId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if permission == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "no permission recorded"))
		return
	}
	response.JSON(c, http.StatusOK, permission)
}

// List godoc
// @Summary List permissions for a parade
// @Tags Permissions
// @Produce json
// @Param id path string true "Parade ID"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/permissions [get]
func (h *PermissionHandler) List(c *gin.Context) {
	permissions, err := h.permissions.ListByParade(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, permissions)
}
