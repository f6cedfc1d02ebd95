package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/service"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/response"
)

// AvailabilityHandler exposes the suggestion engine to the signup page and
// the first-fit lookup to the teacher console.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler constructs AvailabilityHandler.
func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Suggest godoc
// @Summary Suggest lesson placements
// @Tags Availability
// @Produce json
// @Param duration query string true "Lesson duration (HH:MM:SS)"
// @Param mode query string false "Suggestion mode: both, day or time" default(both)
// @Param dayOfWeek query string false "Day of week, required when mode=time"
// @Success 200 {object} response.Envelope
// @Router /piano/suggestions [get]
func (h *AvailabilityHandler) Suggest(c *gin.Context) {
	mode := dto.SuggestionMode(c.DefaultQuery("mode", string(dto.SuggestionModeBoth)))
	switch mode {
	case dto.SuggestionModeBoth, dto.SuggestionModeDay, dto.SuggestionModeTime:
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "mode must be both, day or time"))
		return
	}

	suggestions, err := h.availability.Suggest(c.Request.Context(), c.Query("duration"), mode, c.Query("dayOfWeek"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, suggestions)
}

// SuggestTime godoc
// @Summary First available start time on a day
// @Tags Availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SuggestTimeRequest true "Day and duration"
// @Success 200 {object} response.Envelope
// @Router /teacher/suggest-time [post]
func (h *AvailabilityHandler) SuggestTime(c *gin.Context) {
	var req dto.SuggestTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	start, err := h.availability.FirstFit(c.Request.Context(), req.DayOfWeek, req.Duration)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SuggestTimeResponse{SuggestedTime: start})
}
