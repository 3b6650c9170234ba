package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	"github.com/noah-isme/ncc-parade-api/internal/service"
	"github.com/noah-isme/ncc-parade-api/pkg/response"
)

// CadetHandler exposes roster reads.
type CadetHandler struct {
	cadets *service.CadetService
}

// NewCadetHandler constructs the handler.
func NewCadetHandler(cadets *service.CadetService) *CadetHandler {
	return &CadetHandler{cadets: cadets}
}

// List godoc
// @Summary List active cadets
// @Tags Cadets
// @Produce json
// @Param category query string false "Category"
// @Param division query string false "Division"
// @Param search query string false "Name or regimental number search"
// @Success 200 {object} response.Envelope
// @Router /cadets [get]
func (h *CadetHandler) List(c *gin.Context) {
	filter := models.CadetFilter{
		Category: c.Query("category"),
		Division: c.Query("division"),
		Search:   c.Query("search"),
	}
	cadets, err := h.cadets.ListActive(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cadets)
}
