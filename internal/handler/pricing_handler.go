package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yunboheater/piano-studio-api/internal/service"
	"github.com/yunboheater/piano-studio-api/pkg/response"
)

// PricingHandler serves the public pricing page.
type PricingHandler struct {
	pricing *service.PricingService
}

// NewPricingHandler constructs PricingHandler.
func NewPricingHandler(pricing *service.PricingService) *PricingHandler {
	return &PricingHandler{pricing: pricing}
}

// Tiers godoc
// @Summary Lesson pricing tiers
// @Tags Pricing
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /piano/pricing [get]
func (h *PricingHandler) Tiers(c *gin.Context) {
	pricing, err := h.pricing.Tiers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pricing)
}
