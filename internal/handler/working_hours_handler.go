package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/service"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/response"
)

// WorkingHoursHandler manages the weekly teaching windows.
type WorkingHoursHandler struct {
	hours *service.WorkingHoursService
}

// NewWorkingHoursHandler constructs WorkingHoursHandler.
func NewWorkingHoursHandler(hours *service.WorkingHoursService) *WorkingHoursHandler {
	return &WorkingHoursHandler{hours: hours}
}

// List godoc
// @Summary List working hours
// @Tags WorkingHours
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /teacher/working-hours [get]
func (h *WorkingHoursHandler) List(c *gin.Context) {
	hours, err := h.hours.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, hours)
}

// Set godoc
// @Summary Set working hours for a day
// @Tags WorkingHours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.WorkingHoursPayload true "Day window"
// @Success 200 {object} response.Envelope
// @Router /teacher/working-hours [put]
func (h *WorkingHoursHandler) Set(c *gin.Context) {
	var req dto.WorkingHoursPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.hours.Set(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Delete godoc
// @Summary Delete working hours for a day
// @Tags WorkingHours
// @Produce json
// @Security BearerAuth
// @Param id path string true "Working hours ID"
// @Success 204
// @Router /teacher/working-hours/{id} [delete]
func (h *WorkingHoursHandler) Delete(c *gin.Context) {
	if err := h.hours.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
