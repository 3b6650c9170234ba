package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ncc-parade-api/internal/service"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
	"github.com/noah-isme/ncc-parade-api/pkg/response"
)

// ParadeHandler exposes lifecycle endpoints.
type ParadeHandler struct {
	parades *service.ParadeService
}

// NewParadeHandler constructs the handler.
func NewParadeHandler(parades *service.ParadeService) *ParadeHandler {
	return &ParadeHandler{parades: parades}
}

// Create godoc
// @Summary Create a new parade
// @Tags Parades
// @Accept json
// @Produce json
// @Param payload body service.CreateParadeRequest true "Parade"
// @Success 201 {object} response.Envelope
// @Router /parades [post]
func (h *ParadeHandler) Create(c *gin.Context) {
	var req service.CreateParadeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	parade, err := h.parades.Create(c.Request.Context(), req, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, parade)
}

// Get godoc
// @Summary Fetch a parade by id
// @Tags Parades
// @Produce json
// @Param id path string true "Parade ID"
// @Success 200 {object} response.Envelope
// @Router /parades/{id} [get]
func (h *ParadeHandler) Get(c *gin.Context) {
	parade, err := h.parades.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, parade)
}

// GetOpen godoc
// @Summary Fetch the current open parade
// @Tags Parades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /parades/open [get]
func (h *ParadeHandler) GetOpen(c *gin.Context) {
	parade, err := h.parades.GetOpen(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, parade)
}

// LastTypeMap godoc
// @Summary Parade type map of the last completed parade
// @Tags Parades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /parades/last-type-map [get]
func (h *ParadeHandler) LastTypeMap(c *gin.Context) {
	typeMap, err := h.parades.LastTypeMap(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, typeMap)
}

type remarksRequest struct {
	Remarks string `json:"remarks"`
}

// UpdateRemarks godoc
// @Summary Update reviewing officer remarks
// @Tags Parades
// @Accept json
// @Produce json
// @Param id path string true "Parade ID"
// @Param payload body remarksRequest true "Remarks"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/remarks [put]
func (h *ParadeHandler) UpdateRemarks(c *gin.Context) {
	var req remarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	parade, err := h.parades.UpdateRemarks(c.Request.Context(), c.Param("id"), req.Remarks)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, parade)
}

type closeRequest struct {
	Remarks *string `json:"remarks"`
}

// Close godoc
// @Summary Close the parade irreversibly
// @Tags Parades
// @Accept json
// @Produce json
// @Param id path string true "Parade ID"
// @Param payload body closeRequest false "Final remarks"
// @Success 204
// @Router /parades/{id}/close [post]
func (h *ParadeHandler) Close(c *gin.Context) {
	var req closeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
			return
		}
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.parades.Close(c.Request.Context(), c.Param("id"), claims.UserID, req.Remarks); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
