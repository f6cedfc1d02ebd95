package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/models"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/timeutil"
)

// lessonDurations are the tiers quoted on the public pricing page.
var lessonDurations = []int{20, 30, 45}

type pricingReader interface {
	List(ctx context.Context) ([]models.PricingRow, error)
}

// PricingService computes the quoted lesson tiers from the configured
// per-minute rate.
type PricingService struct {
	rates    pricingReader
	settings settingsReader
	cache    *CacheService
	logger   *zap.Logger
}

// NewPricingService constructs PricingService.
func NewPricingService(rates pricingReader, settings settingsReader, cache *CacheService, logger *zap.Logger) *PricingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PricingService{rates: rates, settings: settings, cache: cache, logger: logger}
}

const pricingTiersCacheKey = "pricing:tiers"

// Tiers prices each quoted duration at the configured per-minute rate.
// Costs round half away from zero to whole cents. The response is cached
// until a configuration write invalidates it.
func (s *PricingService) Tiers(ctx context.Context) (*dto.PricingResponse, error) {
	var cached dto.PricingResponse
	if s.cache.Get(ctx, pricingTiersCacheKey, &cached) {
		return &cached, nil
	}

	settings, err := s.settings.Settings(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load studio settings")
	}

	tiers := make([]dto.PriceTier, 0, len(lessonDurations))
	for _, minutes := range lessonDurations {
		tiers = append(tiers, dto.PriceTier{
			DurationMinutes: minutes,
			Duration:        timeutil.FormatDuration(timeutil.MinutesToDuration(minutes)),
			Cost:            formatCents(float64(minutes) * settings.RatePerMinute),
		})
	}

	rows, err := s.rates.List(ctx)
	if err != nil {
		s.logger.Warn("failed to load pricing rows", zap.Error(err))
		rows = nil
	}

	resp := &dto.PricingResponse{
		RatePerMinute: settings.RatePerMinute,
		Tiers:         tiers,
		Rows:          rows,
	}
	s.cache.Set(ctx, pricingTiersCacheKey, resp)
	return resp, nil
}

// formatCents renders an amount with exactly two decimals, rounding half
// away from zero.
func formatCents(amount float64) string {
	cents := math.Round(amount * 100)
	return fmt.Sprintf("%.2f", cents/100)
}
