package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yunboheater/piano-studio-api/internal/service"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/response"
)

// ExportHandler drives schedule downloads: the console requests a render,
// polls its status and then fetches the file with a signed token.
type ExportHandler struct {
	exports *service.ExportJobService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportJobService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

type exportRequest struct {
	Format string `json:"format"`
}

// Request godoc
// @Summary Request a weekly schedule export
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body exportRequest true "Export format: csv or pdf"
// @Success 202 {object} response.Envelope
// @Router /teacher/schedule/exports [post]
func (h *ExportHandler) Request(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	job, err := h.exports.Request(service.ExportFormat(req.Format))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job)
}

// Status godoc
// @Summary Check an export's status
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param id path string true "Export ID"
// @Success 200 {object} response.Envelope
// @Router /teacher/schedule/exports/{id} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	job, err := h.exports.Status(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// Download godoc
// @Summary Download a rendered schedule
// @Tags Schedule
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200
// @Router /piano/downloads [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token required"))
		return
	}
	file, err := h.exports.ResolveDownload(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.File.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Header("Content-Type", file.ContentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file.File)
}
