package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	"github.com/noah-isme/ncc-parade-api/internal/service"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
	"github.com/noah-isme/ncc-parade-api/pkg/response"
)

// ReviewHandler exposes the reviewing officer's aggregations: rank and status
// summaries, pending slots, notification dispatch and the summary export.
type ReviewHandler struct {
	summaries     *service.SummaryService
	notifications *service.NotificationService
	exports       *service.ExportService
}

// NewReviewHandler constructs the handler.
func NewReviewHandler(summaries *service.SummaryService, notifications *service.NotificationService, exports *service.ExportService) *ReviewHandler {
	return &ReviewHandler{summaries: summaries, notifications: notifications, exports: exports}
}

func summaryFilterFromQuery(c *gin.Context) (models.SummaryFilter, error) {
	filter := models.SummaryFilter{
		Category: c.Query("category"),
		Division: c.Query("division"),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.AttendanceStatus(raw)
		if !status.Valid() {
			return filter, appErrors.Clone(appErrors.ErrValidation, "invalid attendance status")
		}
		filter.Status = &status
	}
	return filter, nil
}

// RankSummary godoc
// @Summary Per-rank totals and present counts
// @Tags Review
// @Produce json
// @Param id path string true "Parade ID"
// @Param category query string false "Category"
// @Param division query string false "Division"
// @Param status query string false "Attendance status"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/summary/ranks [get]
func (h *ReviewHandler) RankSummary(c *gin.Context) {
	filter, err := summaryFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.summaries.RankSummary(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// StatusBreakdown godoc
// @Summary Status counts and percentages for a scope
// @Tags Review
// @Produce json
// @Param id path string true "Parade ID"
// @Param category query string false "Category"
// @Param division query string false "Division"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/summary/status [get]
func (h *ReviewHandler) StatusBreakdown(c *gin.Context) {
	// The breakdown already partitions by status; a status scope would be
	// degenerate, so the param is rejected rather than silently ignored.
	if c.Query("status") != "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "status filter is not supported for the status breakdown"))
		return
	}
	filter := models.SummaryFilter{
		Category: c.Query("category"),
		Division: c.Query("division"),
	}
	breakdown, err := h.summaries.StatusBreakdown(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, breakdown)
}

// PendingSlots godoc
// @Summary Category/division groupings still missing attendance
// @Tags Review
// @Produce json
// @Param id path string true "Parade ID"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/pending-slots [get]
func (h *ReviewHandler) PendingSlots(c *gin.Context) {
	slots, err := h.summaries.PendingSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots)
}

// NotifyPending godoc
// @Summary Notify seniors about pending slots
// @Tags Review
// @Produce json
// @Param id path string true "Parade ID"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/notifications/pending [post]
func (h *ReviewHandler) NotifyPending(c *gin.Context) {
	paradeID := c.Param("id")
	slots, err := h.summaries.PendingSlots(c.Request.Context(), paradeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	count, err := h.notifications.NotifyPending(c.Request.Context(), paradeID, slots)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"notified": count})
}

// Export godoc
// @Summary Download the parade summary as CSV or PDF
// @Tags Review
// @Produce octet-stream
// @Param id path string true "Parade ID"
// @Param format query string true "csv or pdf"
// @Success 200
// @Router /parades/{id}/export [get]
func (h *ReviewHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))
	result, err := h.exports.ParadeSummary(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
