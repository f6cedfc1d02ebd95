package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/models"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/timeutil"
)

type workingHoursStore interface {
	workingHoursReader
	Upsert(ctx context.Context, wh *models.WorkingHours) error
	Delete(ctx context.Context, id string) error
}

// WorkingHoursService manages the weekly teaching windows that feed the
// suggestion engine.
type WorkingHoursService struct {
	hours     workingHoursStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewWorkingHoursService constructs WorkingHoursService.
func NewWorkingHoursService(hours workingHoursStore, cache *CacheService, v *validator.Validate, logger *zap.Logger) *WorkingHoursService {
	if v == nil {
		v = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkingHoursService{hours: hours, cache: cache, validator: v, logger: logger}
}

// List returns the configured windows in stored order.
func (s *WorkingHoursService) List(ctx context.Context) ([]dto.WorkingHoursView, error) {
	rows, err := s.hours.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list working hours")
	}
	views := make([]dto.WorkingHoursView, 0, len(rows))
	for _, wh := range rows {
		views = append(views, workingHoursToView(wh))
	}
	return views, nil
}

// Set creates or replaces the window for a day. A day keeps at most one
// window, so repeated sets overwrite.
func (s *WorkingHoursService) Set(ctx context.Context, req *dto.WorkingHoursPayload) (*dto.WorkingHoursView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	day := models.Weekday(req.DayOfWeek)
	if !day.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%q is not a day of the week", req.DayOfWeek))
	}
	start := timeutil.ToMinutes(timeutil.To24Hour(req.StartTime))
	end := timeutil.ToMinutes(timeutil.To24Hour(req.EndTime))
	if start >= end {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start time must be before end time")
	}

	wh := &models.WorkingHours{
		ID:           uuid.NewString(),
		DayOfWeek:    day,
		StartMinutes: start,
		EndMinutes:   end,
	}
	if err := s.hours.Upsert(ctx, wh); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save working hours")
	}
	s.invalidateSuggestions(ctx)

	view := workingHoursToView(*wh)
	return &view, nil
}

// Delete removes a window by id. Deleting an unknown id is a no-op.
func (s *WorkingHoursService) Delete(ctx context.Context, id string) error {
	if err := s.hours.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete working hours")
	}
	s.invalidateSuggestions(ctx)
	return nil
}

func (s *WorkingHoursService) invalidateSuggestions(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "suggest:*"); err != nil {
		s.logger.Warn("failed to invalidate suggestion cache", zap.Error(err))
	}
}

func workingHoursToView(wh models.WorkingHours) dto.WorkingHoursView {
	start := timeutil.FromMinutes(wh.StartMinutes)
	end := timeutil.FromMinutes(wh.EndMinutes)
	return dto.WorkingHoursView{
		ID:        wh.ID,
		DayOfWeek: string(wh.DayOfWeek),
		StartTime: start,
		EndTime:   end,
		Display:   fmt.Sprintf("%s - %s", timeutil.FormatTime(start), timeutil.FormatTime(end)),
	}
}
