package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/service"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/response"
)

// SignupHandler exposes the public enrollment endpoints backing the signup
// page: filing signups, joining the waiting list and checking capacity.
type SignupHandler struct {
	enrollment *service.EnrollmentService
}

// NewSignupHandler constructs SignupHandler.
func NewSignupHandler(enrollment *service.EnrollmentService) *SignupHandler {
	return &SignupHandler{enrollment: enrollment}
}

// Signup godoc
// @Summary Submit a lesson signup
// @Tags Signup
// @Accept json
// @Produce json
// @Param payload body dto.StudentPayload true "Signup payload"
// @Success 201 {object} response.Envelope
// @Router /piano/signup [post]
func (h *SignupHandler) Signup(c *gin.Context) {
	var payload dto.StudentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.enrollment.Signup(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// JoinWaitingList godoc
// @Summary Join the waiting list
// @Tags Signup
// @Accept json
// @Produce json
// @Param payload body dto.StudentPayload true "Waiting list payload"
// @Success 201 {object} response.Envelope
// @Router /piano/waiting-list [post]
func (h *SignupHandler) JoinWaitingList(c *gin.Context) {
	var payload dto.StudentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.enrollment.JoinWaitingList(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Position godoc
// @Summary Check waiting list position
// @Tags Signup
// @Accept json
// @Produce json
// @Param payload body dto.WaitingListPositionRequest true "Email lookup"
// @Success 200 {object} response.Envelope
// @Router /piano/waiting-list/position [post]
func (h *SignupHandler) Position(c *gin.Context) {
	var req dto.WaitingListPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	position, err := h.enrollment.Position(c.Request.Context(), req.EmailAddress)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, position)
}

// Availability godoc
// @Summary Current roster and waiting list capacity
// @Tags Signup
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /piano/availability [get]
func (h *SignupHandler) Availability(c *gin.Context) {
	summary, err := h.enrollment.Availability(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
