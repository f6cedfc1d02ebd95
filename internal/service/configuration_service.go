package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/models"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
)

type configurationStore interface {
	List(ctx context.Context) ([]models.Configuration, error)
	Get(ctx context.Context, key string) (*models.Configuration, error)
	Upsert(ctx context.Context, cfg *models.Configuration) error
	Settings(ctx context.Context) (*models.Settings, error)
}

// ConfigurationService edits the studio tunables (capacities and rate) from
// the teacher console.
type ConfigurationService struct {
	store     configurationStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewConfigurationService constructs ConfigurationService.
func NewConfigurationService(store configurationStore, cache *CacheService, v *validator.Validate, logger *zap.Logger) *ConfigurationService {
	if v == nil {
		v = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigurationService{store: store, cache: cache, validator: v, logger: logger}
}

// List returns every configuration entry.
func (s *ConfigurationService) List(ctx context.Context) ([]dto.ConfigurationItem, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list configuration")
	}
	items := make([]dto.ConfigurationItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.ConfigurationItem{Key: row.Key, Value: row.Value, Type: string(row.Type)})
	}
	return items, nil
}

// Settings returns the typed studio settings.
func (s *ConfigurationService) Settings(ctx context.Context) (*models.Settings, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load studio settings")
	}
	return settings, nil
}

// Update writes one key after checking the value parses under its declared
// type. Capacity keys must stay non-negative integers.
func (s *ConfigurationService) Update(ctx context.Context, req *dto.UpdateConfigurationRequest) (*dto.ConfigurationItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	cfgType := models.ConfigurationType(req.Type)
	if err := checkConfigurationValue(req.Key, req.Value, cfgType); err != nil {
		return nil, err
	}

	row := &models.Configuration{Key: req.Key, Value: req.Value, Type: cfgType}
	if err := s.store.Upsert(ctx, row); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save configuration")
	}
	// Capacities feed the suggestion scan and the availability summary;
	// ratePerMinute feeds the pricing tiers. Drop all three derived views.
	for _, pattern := range []string{"suggest:*", "availability:*", "pricing:*"} {
		if err := s.cache.Invalidate(ctx, pattern); err != nil {
			s.logger.Warn("failed to invalidate cached view", zap.String("pattern", pattern), zap.Error(err))
		}
	}
	return &dto.ConfigurationItem{Key: row.Key, Value: row.Value, Type: string(row.Type)}, nil
}

func checkConfigurationValue(key, value string, cfgType models.ConfigurationType) error {
	switch cfgType {
	case models.ConfigurationTypeNumber:
		n, err := strconv.Atoi(value)
		if err != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be an integer", key))
		}
		if n < 0 {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must not be negative", key))
		}
	case models.ConfigurationTypeDecimal:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a decimal number", key))
		}
		if f < 0 {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must not be negative", key))
		}
	}
	return nil
}
