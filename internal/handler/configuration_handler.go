package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/service"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/response"
)

// ConfigurationHandler edits the studio tunables.
type ConfigurationHandler struct {
	configuration *service.ConfigurationService
}

// NewConfigurationHandler constructs ConfigurationHandler.
func NewConfigurationHandler(configuration *service.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{configuration: configuration}
}

// List godoc
// @Summary List configuration entries
// @Tags Configuration
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /teacher/configuration [get]
func (h *ConfigurationHandler) List(c *gin.Context) {
	items, err := h.configuration.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Update godoc
// @Summary Update one configuration key
// @Tags Configuration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateConfigurationRequest true "Key, value and type"
// @Success 200 {object} response.Envelope
// @Router /teacher/configuration [put]
func (h *ConfigurationHandler) Update(c *gin.Context) {
	var req dto.UpdateConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.configuration.Update(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}
