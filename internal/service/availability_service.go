package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/models"
	"github.com/yunboheater/piano-studio-api/internal/schedule"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/timeutil"
)

type workingHoursReader interface {
	List(ctx context.Context) ([]models.WorkingHours, error)
	FindByDay(ctx context.Context, day models.Weekday) (*models.WorkingHours, error)
}

type rosterReader interface {
	ListRosterByDay(ctx context.Context, day models.Weekday) ([]models.StudentEntry, error)
}

// AvailabilityConfig tunes the suggestion engine's result shaping.
type AvailabilityConfig struct {
	// Limit caps how many suggestions a query returns.
	Limit int
	// Floor is the minimum result count before the engine broadens its
	// search (coarser grid in TIME mode, unfit days in BOTH mode).
	Floor int
}

// AvailabilityService answers the three suggestion query shapes plus the
// teacher-only first-fit lookup. All computations read snapshots of working
// hours and roster bookings and hold no locks.
type AvailabilityService struct {
	hours  workingHoursReader
	roster rosterReader
	cache  *CacheService
	cfg    AvailabilityConfig
	logger *zap.Logger
}

// NewAvailabilityService constructs AvailabilityService.
func NewAvailabilityService(hours workingHoursReader, roster rosterReader, cache *CacheService, cfg AvailabilityConfig, logger *zap.Logger) *AvailabilityService {
	if cfg.Limit <= 0 {
		cfg.Limit = 5
	}
	if cfg.Floor <= 0 {
		cfg.Floor = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{hours: hours, roster: roster, cache: cache, cfg: cfg, logger: logger}
}

// Suggest returns candidate lesson placements for the given duration.
// dayOfWeek is required in TIME mode and ignored otherwise.
func (s *AvailabilityService) Suggest(ctx context.Context, duration string, mode dto.SuggestionMode, dayOfWeek string) ([]dto.Suggestion, error) {
	durationMinutes := timeutil.DurationToMinutes(duration)
	if durationMinutes <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "duration required")
	}

	cacheKey := fmt.Sprintf("suggest:%s:%s:%d", mode, dayOfWeek, durationMinutes)
	var cached []dto.Suggestion
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	allHours, err := s.hours.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load working hours")
	}
	if len(allHours) == 0 {
		return nil, appErrors.ErrNoWorkingHours
	}

	var suggestions []dto.Suggestion
	switch mode {
	case dto.SuggestionModeDay:
		suggestions = suggestDays(allHours)
	case dto.SuggestionModeTime:
		suggestions, err = s.suggestTimesForDay(ctx, allHours, models.Weekday(dayOfWeek), durationMinutes)
	default:
		suggestions = s.suggestDayAndTime(allHours, durationMinutes)
	}
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheKey, suggestions)
	return suggestions, nil
}

// FirstFit returns the earliest start time ("HH:MM") at which a lesson of
// the requested duration fits on the given day, scanning roster bookings
// with the interval-gap sweep.
func (s *AvailabilityService) FirstFit(ctx context.Context, dayOfWeek, duration string) (string, error) {
	day := models.Weekday(dayOfWeek)
	if !day.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%q is not a day of the week", dayOfWeek))
	}
	durationMinutes := timeutil.DurationToMinutes(duration)
	if durationMinutes <= 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "duration required")
	}

	hours, err := s.hours.FindByDay(ctx, day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNoWorkingHours, "no working hours set for this day")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load working hours")
	}

	booked, err := s.bookedIntervals(ctx, day)
	if err != nil {
		return "", err
	}

	start, ok := schedule.FirstFit(workWindow(*hours), booked, durationMinutes)
	if !ok {
		return "", appErrors.ErrNoSlot
	}
	return timeutil.FromMinutes(start), nil
}

// suggestDays returns one candidate per configured working day in stored
// order. This is deliberately lax: it reports days that have hours defined,
// not days that still have room. A slot-accurate variant can replace this
// helper without touching the handler contract.
func suggestDays(allHours []models.WorkingHours) []dto.Suggestion {
	suggestions := make([]dto.Suggestion, 0, len(allHours))
	for _, wh := range allHours {
		suggestions = append(suggestions, dto.Suggestion{Day: string(wh.DayOfWeek)})
	}
	return suggestions
}

// suggestTimesForDay enumerates grid-aligned starts around that day's roster
// bookings, at quarter-hour granularity first, broadening to half-hour when
// results run thin and finally falling back to the working-day start.
func (s *AvailabilityService) suggestTimesForDay(ctx context.Context, allHours []models.WorkingHours, day models.Weekday, durationMinutes int) ([]dto.Suggestion, error) {
	if !day.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day of week required for time suggestion")
	}
	var dayHours *models.WorkingHours
	for i := range allHours {
		if allHours[i].DayOfWeek == day {
			dayHours = &allHours[i]
			break
		}
	}
	if dayHours == nil {
		return nil, appErrors.Clone(appErrors.ErrNoWorkingHours, "no working hours for this day")
	}

	booked, err := s.bookedIntervals(ctx, day)
	if err != nil {
		return nil, err
	}

	work := workWindow(*dayHours)
	starts := schedule.CandidateStarts(work, booked, durationMinutes, schedule.QuarterHour)
	if len(starts) < s.cfg.Floor {
		starts = schedule.CandidateStarts(work, booked, durationMinutes, schedule.HalfHour)
	}

	if len(starts) == 0 {
		return []dto.Suggestion{{Time: timeutil.To12Hour(timeutil.FromMinutes(dayHours.StartMinutes))}}, nil
	}
	if len(starts) > s.cfg.Limit {
		starts = starts[:s.cfg.Limit]
	}
	suggestions := make([]dto.Suggestion, 0, len(starts))
	for _, at := range starts {
		suggestions = append(suggestions, dto.Suggestion{Time: timeutil.To12Hour(timeutil.FromMinutes(at))})
	}
	return suggestions, nil
}

// suggestDayAndTime walks working days by earliest start and emits the day
// openings where the duration fits the window. The feasibility check is
// day-level only, not slot-accurate; when fewer than the floor fit, the
// remaining configured days are appended regardless so the caller always
// gets options.
func (s *AvailabilityService) suggestDayAndTime(allHours []models.WorkingHours, durationMinutes int) []dto.Suggestion {
	sorted := make([]models.WorkingHours, len(allHours))
	copy(sorted, allHours)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].StartMinutes < sorted[b].StartMinutes })

	var suggestions []dto.Suggestion
	seen := make(map[models.Weekday]bool, len(sorted))
	for _, wh := range sorted {
		if dayFits(wh, durationMinutes) {
			suggestions = append(suggestions, dto.Suggestion{
				Day:  string(wh.DayOfWeek),
				Time: timeutil.To12Hour(timeutil.FromMinutes(wh.StartMinutes)),
			})
			seen[wh.DayOfWeek] = true
			if len(suggestions) >= s.cfg.Limit {
				break
			}
		}
	}

	if len(suggestions) < s.cfg.Floor {
		for _, wh := range sorted {
			if seen[wh.DayOfWeek] {
				continue
			}
			suggestions = append(suggestions, dto.Suggestion{
				Day:  string(wh.DayOfWeek),
				Time: timeutil.To12Hour(timeutil.FromMinutes(wh.StartMinutes)),
			})
			seen[wh.DayOfWeek] = true
			if len(suggestions) >= s.cfg.Floor {
				break
			}
		}
	}
	return suggestions
}

// dayFits is the day-level feasibility check used by BOTH mode. It ignores
// existing bookings on purpose; see suggestDays.
func dayFits(wh models.WorkingHours, durationMinutes int) bool {
	return wh.StartMinutes+durationMinutes <= wh.EndMinutes
}

func (s *AvailabilityService) bookedIntervals(ctx context.Context, day models.Weekday) ([]schedule.Interval, error) {
	students, err := s.roster.ListRosterByDay(ctx, day)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster bookings")
	}
	booked := make([]schedule.Interval, 0, len(students))
	for _, student := range students {
		booked = append(booked, schedule.Interval{Start: student.LessonTimeMinutes, End: student.LessonEnd()})
	}
	return booked, nil
}

func workWindow(wh models.WorkingHours) schedule.Interval {
	return schedule.Interval{Start: wh.StartMinutes, End: wh.EndMinutes}
}
