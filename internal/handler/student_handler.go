package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/models"
	"github.com/yunboheater/piano-studio-api/internal/service"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/response"
)

// collection names accepted in query strings.
var collectionNames = map[string]models.Collection{
	"roster":      models.CollectionRoster,
	"waitingList": models.CollectionWaitingList,
	"signups":     models.CollectionSignups,
}

// StudentHandler exposes the teacher-console enrollment endpoints.
type StudentHandler struct {
	enrollment *service.EnrollmentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(enrollment *service.EnrollmentService) *StudentHandler {
	return &StudentHandler{enrollment: enrollment}
}

// List godoc
// @Summary List students in a collection
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param collection query string false "roster, waitingList or signups" default(roster)
// @Success 200 {object} response.Envelope
// @Router /teacher/students [get]
func (h *StudentHandler) List(c *gin.Context) {
	col, ok := collectionNames[c.DefaultQuery("collection", "roster")]
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "collection must be roster, waitingList or signups"))
		return
	}
	students, err := h.enrollment.List(c.Request.Context(), col)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Get godoc
// @Summary Get one student entry
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Envelope
// @Router /teacher/students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.enrollment.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Add a student straight onto the roster
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.StudentPayload true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /teacher/students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var payload dto.StudentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.enrollment.ManualAdd(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Update godoc
// @Summary Edit a roster entry
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param payload body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /teacher/students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.enrollment.UpdateRoster(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Delete godoc
// @Summary Remove a student entry
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param collection query string false "roster, waitingList or signups" default(roster)
// @Success 204
// @Router /teacher/students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	col, ok := collectionNames[c.DefaultQuery("collection", "roster")]
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "collection must be roster, waitingList or signups"))
		return
	}
	if err := h.enrollment.Delete(c.Request.Context(), c.Param("id"), col); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Promote godoc
// @Summary Promote a queued student onto the roster
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param payload body dto.PromoteRequest true "Source queue"
// @Success 204
// @Router /teacher/students/{id}/promote [post]
func (h *StudentHandler) Promote(c *gin.Context) {
	var req dto.PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.enrollment.Promote(c.Request.Context(), c.Param("id"), req.From); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Move godoc
// @Summary Move a student between the signups queue and the waiting list
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param payload body dto.MoveRequest true "Source and target queues"
// @Success 204
// @Router /teacher/students/{id}/move [post]
func (h *StudentHandler) Move(c *gin.Context) {
	var req dto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.enrollment.MoveBetweenQueues(c.Request.Context(), c.Param("id"), req.From, req.To); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
