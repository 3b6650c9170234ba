package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ncc-parade-api/internal/service"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
	"github.com/noah-isme/ncc-parade-api/pkg/response"
)

// ReportHandler exposes the per-category parade reports.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Upsert godoc
// @Summary Save or replace a category's parade report
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Parade ID"
// @Param category path string true "Category"
// @Param payload body service.UpsertReportRequest true "Report"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/reports/{category} [put]
func (h *ReportHandler) Upsert(c *gin.Context) {
	var req service.UpsertReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	report, err := h.reports.Upsert(c.Request.Context(), c.Param("id"), c.Param("category"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// Get godoc
// @Summary Fetch a category's parade report
// @Tags Reports
// @Produce json
// @Param id path string true "Parade ID"
// @Param category path string true "Category"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/reports/{category} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.reports.Get(c.Request.Context(), c.Param("id"), c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if report == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "no report submitted"))
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// List godoc
// @Summary List reports submitted for a parade
// @Tags Reports
// @Produce json
// @Param id path string true "Parade ID"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reports.ListByParade(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports)
}

// Template godoc
// @Summary Prefill skeleton for the category's parade type
// @Tags Reports
// @Produce json
// @Param id path string true "Parade ID"
// @Param category path string true "Category"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/reports/{category}/template [get]
func (h *ReportHandler) Template(c *gin.Context) {
	template, err := h.reports.Template(c.Request.Context(), c.Param("id"), c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"template": template})
}
