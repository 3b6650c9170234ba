package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	"github.com/noah-isme/ncc-parade-api/internal/service"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
	"github.com/noah-isme/ncc-parade-api/pkg/response"
)

// AttendanceHandler exposes the submission workflow.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Submit godoc
// @Summary Submit or resubmit attendance for one category/division scope
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Parade ID"
// @Param payload body service.SubmitAttendanceRequest true "Manual marks"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/attendance [post]
func (h *AttendanceHandler) Submit(c *gin.Context) {
	var req service.SubmitAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	// Seniors submit for their assigned division only.
	if claims.AssignedDivision != "" && req.Division == "" {
		req.Division = claims.AssignedDivision
	}
	summary, err := h.attendance.Submit(c.Request.Context(), c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// List godoc
// @Summary List persisted attendance records
// @Tags Attendance
// @Produce json
// @Param id path string true "Parade ID"
// @Param category query string false "Category"
// @Param division query string false "Division"
// @Param status query string false "Attendance status"
// @Success 200 {object} response.Envelope
// @Router /parades/{id}/attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	filter := models.AttendanceFilter{
		Category: c.Query("category"),
		Division: c.Query("division"),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.AttendanceStatus(raw)
		if !status.Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid attendance status"))
			return
		}
		filter.Status = &status
	}
	records, err := h.attendance.List(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}
