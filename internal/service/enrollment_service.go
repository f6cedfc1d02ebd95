package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/models"
	"github.com/yunboheater/piano-studio-api/internal/repository"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/timeutil"
)

type studentStore interface {
	ListByCollection(ctx context.Context, col models.Collection) ([]models.StudentEntry, error)
	CountByCollection(ctx context.Context, col models.Collection) (int, error)
	FindByID(ctx context.Context, id string) (*models.StudentEntry, error)
	FindByEmail(ctx context.Context, email string) (*models.StudentEntry, error)
	Insert(ctx context.Context, entry *models.StudentEntry, capacity int) error
	Move(ctx context.Context, id string, from, to models.Collection, capacity int) error
	Update(ctx context.Context, entry *models.StudentEntry) error
	Delete(ctx context.Context, id string, col models.Collection) error
	WaitingListPosition(ctx context.Context, email string) (int, int, error)
}

type settingsReader interface {
	Settings(ctx context.Context) (*models.Settings, error)
}

// queue names accepted on the wire for promote/move operations.
const (
	queueWaitingList = "waitingList"
	queueSignups     = "signups"
)

// EnrollmentService manages the lifecycle of a prospective student across the
// signups queue, the waiting list and the active roster. Uniqueness and
// capacity enforcement ride inside the repository's guarded writes; the
// pre-checks here exist to produce the specific, enumerable rejection reasons
// the UI renders.
type EnrollmentService struct {
	students  studentStore
	settings  settingsReader
	cache     *CacheService
	policy    StudentPolicy
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(students studentStore, settings settingsReader, cache *CacheService, policy StudentPolicy, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{students: students, settings: settings, cache: cache, policy: policy, validator: validate, logger: logger}
}

// Signup files a public signup into the signups queue. The email must not
// already hold any enrollment state, and the roster must have room.
func (s *EnrollmentService) Signup(ctx context.Context, payload dto.StudentPayload) (*dto.StudentView, error) {
	if err := s.validatePayload(payload, false); err != nil {
		return nil, err
	}
	if err := s.rejectExistingState(ctx, payload.EmailAddress); err != nil {
		return nil, err
	}

	cfg, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	rosterSize, err := s.students.CountByCollection(ctx, models.CollectionRoster)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check roster size")
	}
	if rosterSize >= cfg.MaxStudents {
		return nil, appErrors.ErrNoSpotsAvailable
	}

	entry := s.entryFromPayload(payload, models.CollectionSignups, cfg.RatePerMinute)
	if err := s.insert(ctx, entry, 0); err != nil {
		return nil, err
	}
	view := entryToView(*entry)
	return &view, nil
}

// JoinWaitingList files a capacity-blocked prospective student onto the
// waiting list, subject to the waiting-list ceiling.
func (s *EnrollmentService) JoinWaitingList(ctx context.Context, payload dto.StudentPayload) (*dto.StudentView, error) {
	if err := s.validatePayload(payload, false); err != nil {
		return nil, err
	}
	if err := s.rejectExistingState(ctx, payload.EmailAddress); err != nil {
		return nil, err
	}

	cfg, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	entry := s.entryFromPayload(payload, models.CollectionWaitingList, cfg.RatePerMinute)
	if err := s.insert(ctx, entry, cfg.MaxWaitingListSize); err != nil {
		return nil, err
	}
	s.invalidateAvailability(ctx)
	view := entryToView(*entry)
	return &view, nil
}

// ManualAdd enrolls a student straight onto the roster from the teacher
// console, subject only to the roster ceiling. An email already sitting in
// the signups queue or on the waiting list is taken over: its row moves onto
// the roster with the console's lesson details, so adding a signup manually
// completes that signup instead of rejecting it as a duplicate. Past start
// dates are allowed for back-dated entries.
func (s *EnrollmentService) ManualAdd(ctx context.Context, payload dto.StudentPayload) (*dto.StudentView, error) {
	if err := s.validatePayload(payload, true); err != nil {
		return nil, err
	}
	cfg, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.students.FindByEmail(ctx, payload.EmailAddress)
	switch {
	case err == nil && existing.Collection == models.CollectionRoster:
		return nil, appErrors.ErrAlreadyEnrolled
	case err == nil:
		return s.enrollFromQueue(ctx, existing, payload, cfg)
	case !errors.Is(err, sql.ErrNoRows):
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment state")
	}

	entry := s.entryFromPayload(payload, models.CollectionRoster, cfg.RatePerMinute)
	if err := s.insert(ctx, entry, cfg.MaxStudents); err != nil {
		return nil, err
	}
	s.invalidateSchedule(ctx)
	view := entryToView(*entry)
	return &view, nil
}

// enrollFromQueue moves a queued row onto the roster under the capacity
// guard and rewrites it with the console's payload. Reusing the row keeps
// the email uniqueness invariant intact without a delete-then-insert window.
func (s *EnrollmentService) enrollFromQueue(ctx context.Context, existing *models.StudentEntry, payload dto.StudentPayload, cfg *models.Settings) (*dto.StudentView, error) {
	if err := s.students.Move(ctx, existing.ID, existing.Collection, models.CollectionRoster, cfg.MaxStudents); err != nil {
		switch {
		case errors.Is(err, repository.ErrCapacityReached):
			return nil, appErrors.ErrNoSpotsAvailable
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found in source queue")
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrMoveIncomplete.Code, appErrors.ErrMoveIncomplete.Status, "enrollment failed; verify the student's queue state")
		}
	}

	entry := s.entryFromPayload(payload, models.CollectionRoster, cfg.RatePerMinute)
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	if err := s.students.Update(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	s.invalidateSchedule(ctx)
	view := entryToView(*entry)
	return &view, nil
}

// Promote moves an entry from a queue onto the roster. A missing source row
// is an explicit not-found failure, never a silent no-op.
func (s *EnrollmentService) Promote(ctx context.Context, id, from string) error {
	source, err := parseQueue(from)
	if err != nil {
		return err
	}
	cfg, err := s.loadSettings(ctx)
	if err != nil {
		return err
	}
	if err := s.students.Move(ctx, id, source, models.CollectionRoster, cfg.MaxStudents); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "student not found in source queue")
		case errors.Is(err, repository.ErrCapacityReached):
			return appErrors.ErrNoSpotsAvailable
		default:
			return appErrors.Wrap(err, appErrors.ErrMoveIncomplete.Code, appErrors.ErrMoveIncomplete.Status, "promote failed; verify the student's queue state")
		}
	}
	s.invalidateSchedule(ctx)
	return nil
}

// MoveBetweenQueues shifts an entry between the signups queue and the
// waiting list, re-applying the target's capacity precondition. The
// repository performs this as one statement, so a rejected move leaves the
// record in its source queue.
func (s *EnrollmentService) MoveBetweenQueues(ctx context.Context, id, from, to string) error {
	source, err := parseQueue(from)
	if err != nil {
		return err
	}
	target, err := parseQueue(to)
	if err != nil {
		return err
	}
	if source == target {
		return appErrors.Clone(appErrors.ErrValidation, "source and target queues are the same")
	}

	capacity := 0
	if target == models.CollectionWaitingList {
		cfg, err := s.loadSettings(ctx)
		if err != nil {
			return err
		}
		capacity = cfg.MaxWaitingListSize
	}
	if err := s.students.Move(ctx, id, source, target, capacity); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "student not found in source queue")
		case errors.Is(err, repository.ErrCapacityReached):
			return appErrors.ErrWaitingListFull
		default:
			return appErrors.Wrap(err, appErrors.ErrMoveIncomplete.Code, appErrors.ErrMoveIncomplete.Status, "move failed; verify the student's queue state")
		}
	}
	s.invalidateAvailability(ctx)
	return nil
}

// Delete removes an entry from the named collection. Missing rows are a
// silent no-op.
func (s *EnrollmentService) Delete(ctx context.Context, id string, col models.Collection) error {
	if !col.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown collection")
	}
	if err := s.students.Delete(ctx, id, col); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student entry")
	}
	if col == models.CollectionRoster {
		s.invalidateSchedule(ctx)
	} else {
		s.invalidateAvailability(ctx)
	}
	return nil
}

// List returns a collection's entries in insertion order.
func (s *EnrollmentService) List(ctx context.Context, col models.Collection) ([]dto.StudentView, error) {
	if !col.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown collection")
	}
	entries, err := s.students.ListByCollection(ctx, col)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	views := make([]dto.StudentView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, entryToView(entry))
	}
	return views, nil
}

// Get returns one entry by id.
func (s *EnrollmentService) Get(ctx context.Context, id string) (*dto.StudentView, error) {
	entry, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	view := entryToView(*entry)
	return &view, nil
}

// UpdateRoster edits a roster entry in place.
func (s *EnrollmentService) UpdateRoster(ctx context.Context, id string, req dto.UpdateStudentRequest) (*dto.StudentView, error) {
	entry, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if entry.Collection != models.CollectionRoster {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only roster entries can be edited")
	}

	applyStudentUpdates(entry, req)
	if err := s.policy.checkAge(entry.Age); err != nil {
		return nil, err
	}
	if err := s.policy.checkLessonTime(timeutil.FromMinutes(entry.LessonTimeMinutes)); err != nil {
		return nil, err
	}
	if !entry.LessonDay.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown lesson day")
	}

	if err := s.students.Update(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	s.invalidateSchedule(ctx)
	view := entryToView(*entry)
	return &view, nil
}

const availabilityCacheKey = "availability:summary"

// Availability reports the public capacity summary for the signup page. The
// summary is cached until an enrollment or configuration write drops it.
func (s *EnrollmentService) Availability(ctx context.Context) (*dto.AvailabilitySummary, error) {
	var cached dto.AvailabilitySummary
	if s.cache.Get(ctx, availabilityCacheKey, &cached) {
		return &cached, nil
	}

	cfg, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	rosterSize, err := s.students.CountByCollection(ctx, models.CollectionRoster)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check roster size")
	}
	waitingSize, err := s.students.CountByCollection(ctx, models.CollectionWaitingList)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check waiting list size")
	}

	spots := cfg.MaxStudents - rosterSize
	if spots < 0 {
		spots = 0
	}
	waitingSpots := cfg.MaxWaitingListSize - waitingSize
	if waitingSpots < 0 {
		waitingSpots = 0
	}
	summary := &dto.AvailabilitySummary{
		Available:                 rosterSize < cfg.MaxStudents,
		SpotsAvailable:            spots,
		WaitingListAvailable:      waitingSpots > 0,
		WaitingListSpotsAvailable: waitingSpots,
	}
	s.cache.Set(ctx, availabilityCacheKey, summary)
	return summary, nil
}

// Position returns a prospective student's 1-indexed FIFO place on the
// waiting list.
func (s *EnrollmentService) Position(ctx context.Context, email string) (*dto.WaitingListPosition, error) {
	pos, total, err := s.students.WaitingListPosition(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "email address not found on waiting list")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check waiting list position")
	}
	return &dto.WaitingListPosition{Position: pos, Total: total}, nil
}

func (s *EnrollmentService) validatePayload(payload dto.StudentPayload, allowPastDates bool) error {
	if err := s.validator.Struct(payload); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	return s.policy.checkStudentPayload(payload, allowPastDates)
}

// rejectExistingState maps an email's current collection, if any, to the
// specific duplicate-state rejection.
func (s *EnrollmentService) rejectExistingState(ctx context.Context, email string) error {
	existing, err := s.students.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment state")
	}
	return duplicateStateError(existing.Collection)
}

// insert performs the capacity-guarded write and maps the repository's
// failure modes onto domain errors. The unique email index backstops the
// pre-check under concurrency.
func (s *EnrollmentService) insert(ctx context.Context, entry *models.StudentEntry, capacity int) error {
	err := s.students.Insert(ctx, entry, capacity)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrCapacityReached) {
		if entry.Collection == models.CollectionWaitingList {
			return appErrors.ErrWaitingListFull
		}
		return appErrors.ErrNoSpotsAvailable
	}
	if repository.IsUniqueViolation(err) {
		if existing, lookupErr := s.students.FindByEmail(ctx, entry.EmailAddress); lookupErr == nil {
			return duplicateStateError(existing.Collection)
		}
		return appErrors.Clone(appErrors.ErrConflict, "email address already registered")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save student entry")
}

func (s *EnrollmentService) loadSettings(ctx context.Context) (*models.Settings, error) {
	cfg, err := s.settings.Settings(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load configuration")
	}
	return cfg, nil
}

// invalidateSchedule drops cached slot suggestions and the capacity summary
// after a roster write.
func (s *EnrollmentService) invalidateSchedule(ctx context.Context) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, "suggest:*"); err != nil {
		s.logger.Warn("failed to invalidate suggestion cache", zap.Error(err))
	}
	s.invalidateAvailability(ctx)
}

// invalidateAvailability drops the cached capacity summary after a queue
// write that changes a collection's size without touching the schedule.
func (s *EnrollmentService) invalidateAvailability(ctx context.Context) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, "availability:*"); err != nil {
		s.logger.Warn("failed to invalidate availability cache", zap.Error(err))
	}
}

func (s *EnrollmentService) entryFromPayload(payload dto.StudentPayload, col models.Collection, rate float64) *models.StudentEntry {
	var notes *string
	if payload.Notes != "" {
		notes = &payload.Notes
	}
	startDate, _ := time.Parse(startDateLayout, payload.StartDate)
	return &models.StudentEntry{
		Collection:        col,
		StudentName:       payload.StudentName,
		PhoneNumber:       payload.PhoneNumber,
		EmailAddress:      payload.EmailAddress,
		Age:               payload.Age,
		LessonDay:         models.Weekday(payload.LessonDay),
		LessonTimeMinutes: timeutil.ToMinutes(timeutil.To24Hour(payload.LessonTime)),
		DurationMinutes:   timeutil.DurationToMinutes(payload.Duration),
		SkillLevel:        payload.SkillLevel,
		StartDate:         startDate,
		MinutelyRate:      rate,
		Notes:             notes,
	}
}

func duplicateStateError(col models.Collection) error {
	switch col {
	case models.CollectionRoster:
		return appErrors.ErrAlreadyEnrolled
	case models.CollectionWaitingList:
		return appErrors.ErrAlreadyOnWaitingList
	default:
		return appErrors.ErrAlreadySignedUp
	}
}

func parseQueue(name string) (models.Collection, error) {
	switch name {
	case queueWaitingList:
		return models.CollectionWaitingList, nil
	case queueSignups:
		return models.CollectionSignups, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown queue; expected waitingList or signups")
	}
}

func applyStudentUpdates(entry *models.StudentEntry, req dto.UpdateStudentRequest) {
	if req.StudentName != nil {
		entry.StudentName = *req.StudentName
	}
	if req.PhoneNumber != nil {
		entry.PhoneNumber = *req.PhoneNumber
	}
	if req.Age != nil {
		entry.Age = *req.Age
	}
	if req.LessonDay != nil {
		entry.LessonDay = models.Weekday(*req.LessonDay)
	}
	if req.LessonTime != nil {
		entry.LessonTimeMinutes = timeutil.ToMinutes(timeutil.To24Hour(*req.LessonTime))
	}
	if req.Duration != nil {
		entry.DurationMinutes = timeutil.DurationToMinutes(*req.Duration)
	}
	if req.SkillLevel != nil {
		entry.SkillLevel = *req.SkillLevel
	}
	if req.Notes != nil {
		entry.Notes = req.Notes
	}
}

func entryToView(entry models.StudentEntry) dto.StudentView {
	view := dto.StudentView{
		ID:           entry.ID,
		StudentName:  entry.StudentName,
		PhoneNumber:  entry.PhoneNumber,
		EmailAddress: entry.EmailAddress,
		Age:          entry.Age,
		LessonDay:    string(entry.LessonDay),
		LessonTime:   timeutil.FromMinutes(entry.LessonTimeMinutes),
		Duration:     timeutil.MinutesToDuration(entry.DurationMinutes),
		SkillLevel:   entry.SkillLevel,
		StartDate:    entry.StartDate.Format(startDateLayout),
		MinutelyRate: entry.MinutelyRate,
	}
	if entry.Notes != nil {
		view.Notes = *entry.Notes
	}
	return view
}
