package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/models"
	"github.com/yunboheater/piano-studio-api/internal/repository"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
)

// fakeStudentStore mimics the guarded writes of the real repository,
// including in-write capacity checks and email uniqueness.
type fakeStudentStore struct {
	entries []*models.StudentEntry
	nextPos int64
}

func (f *fakeStudentStore) ListByCollection(_ context.Context, col models.Collection) ([]models.StudentEntry, error) {
	var out []models.StudentEntry
	for _, e := range f.entries {
		if e.Collection == col {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) ListRosterByDay(_ context.Context, day models.Weekday) ([]models.StudentEntry, error) {
	var out []models.StudentEntry
	for _, e := range f.entries {
		if e.Collection == models.CollectionRoster && e.LessonDay == day {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) CountByCollection(_ context.Context, col models.Collection) (int, error) {
	n := 0
	for _, e := range f.entries {
		if e.Collection == col {
			n++
		}
	}
	return n, nil
}

func (f *fakeStudentStore) FindByID(_ context.Context, id string) (*models.StudentEntry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentStore) FindByEmail(_ context.Context, email string) (*models.StudentEntry, error) {
	for _, e := range f.entries {
		if e.EmailAddress == email {
			copied := *e
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentStore) Insert(ctx context.Context, entry *models.StudentEntry, capacity int) error {
	if capacity > 0 {
		count, _ := f.CountByCollection(ctx, entry.Collection)
		if count >= capacity {
			return repository.ErrCapacityReached
		}
	}
	// Mirror the unique lower(email) index across all three collections.
	for _, e := range f.entries {
		if strings.EqualFold(e.EmailAddress, entry.EmailAddress) {
			return &pq.Error{Code: "23505"}
		}
	}
	f.nextPos++
	copied := *entry
	copied.Position = f.nextPos
	if copied.ID == "" {
		copied.ID = copied.EmailAddress
		entry.ID = copied.ID
	}
	f.entries = append(f.entries, &copied)
	return nil
}

func (f *fakeStudentStore) Move(ctx context.Context, id string, from, to models.Collection, capacity int) error {
	if capacity > 0 {
		count, _ := f.CountByCollection(ctx, to)
		if count >= capacity {
			return repository.ErrCapacityReached
		}
	}
	for _, e := range f.entries {
		if e.ID == id && e.Collection == from {
			f.nextPos++
			e.Collection = to
			e.Position = f.nextPos
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeStudentStore) Update(_ context.Context, entry *models.StudentEntry) error {
	for i, e := range f.entries {
		if e.ID == entry.ID {
			copied := *entry
			f.entries[i] = &copied
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeStudentStore) Delete(_ context.Context, id string, col models.Collection) error {
	for i, e := range f.entries {
		if e.ID == id && e.Collection == col {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStudentStore) WaitingListPosition(_ context.Context, email string) (int, int, error) {
	pos, total := 0, 0
	found := false
	for _, e := range f.entries {
		if e.Collection != models.CollectionWaitingList {
			continue
		}
		total++
		if e.EmailAddress == email {
			pos = total
			found = true
		}
	}
	if !found {
		return 0, 0, sql.ErrNoRows
	}
	return pos, total, nil
}

type fixedSettings struct {
	settings models.Settings
}

func (f fixedSettings) Settings(context.Context) (*models.Settings, error) {
	copied := f.settings
	return &copied, nil
}

func testPayload(email string) dto.StudentPayload {
	return dto.StudentPayload{
		StudentName:  "Avery Lin",
		PhoneNumber:  "555-867-5309",
		EmailAddress: email,
		Age:          9,
		LessonDay:    "Monday",
		LessonTime:   "10:00",
		Duration:     "00:30:00",
		SkillLevel:   "beginner",
		StartDate:    time.Now().AddDate(0, 1, 0).Format(startDateLayout),
	}
}

func newTestEnrollment(store *fakeStudentStore, settings models.Settings) *EnrollmentService {
	return NewEnrollmentService(store, fixedSettings{settings}, nil, DefaultStudentPolicy(), nil, nil)
}

func TestSignupAddsToSignupsQueue(t *testing.T) {
	store := &fakeStudentStore{}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 10, MaxWaitingListSize: 5, RatePerMinute: 0.83})

	view, err := svc.Signup(context.Background(), testPayload("avery@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "10:00", view.LessonTime)
	assert.Equal(t, 0.83, view.MinutelyRate)

	queued, err := store.ListByCollection(context.Background(), models.CollectionSignups)
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, models.CollectionSignups, queued[0].Collection)
}

func TestSignupRejectsDuplicateEmailAcrossCollections(t *testing.T) {
	cases := []struct {
		name     string
		existing models.Collection
		want     *appErrors.Error
	}{
		{"already enrolled", models.CollectionRoster, appErrors.ErrAlreadyEnrolled},
		{"already waiting", models.CollectionWaitingList, appErrors.ErrAlreadyOnWaitingList},
		{"already signed up", models.CollectionSignups, appErrors.ErrAlreadySignedUp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStudentStore{entries: []*models.StudentEntry{
				{ID: "x", EmailAddress: "avery@example.com", Collection: tc.existing},
			}}
			svc := newTestEnrollment(store, models.Settings{MaxStudents: 10, MaxWaitingListSize: 5})

			_, err := svc.Signup(context.Background(), testPayload("avery@example.com"))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSignupRejectedWhenRosterFull(t *testing.T) {
	store := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "a", EmailAddress: "a@example.com", Collection: models.CollectionRoster},
		{ID: "b", EmailAddress: "b@example.com", Collection: models.CollectionRoster},
	}}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 2, MaxWaitingListSize: 5})

	_, err := svc.Signup(context.Background(), testPayload("c@example.com"))
	assert.ErrorIs(t, err, appErrors.ErrNoSpotsAvailable)
}

func TestJoinWaitingListRespectsCeiling(t *testing.T) {
	store := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "w1", EmailAddress: "w1@example.com", Collection: models.CollectionWaitingList},
	}}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 1, MaxWaitingListSize: 1})

	_, err := svc.JoinWaitingList(context.Background(), testPayload("w2@example.com"))
	assert.ErrorIs(t, err, appErrors.ErrWaitingListFull)
}

func TestManualAddAllowsPastStartDates(t *testing.T) {
	store := &fakeStudentStore{}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 10, MaxWaitingListSize: 5, RatePerMinute: 0.5})

	payload := testPayload("backdated@example.com")
	payload.StartDate = "2020-01-06"
	view, err := svc.ManualAdd(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-06", view.StartDate)

	roster, _ := store.ListByCollection(context.Background(), models.CollectionRoster)
	require.Len(t, roster, 1)
}

func TestManualAddHitsRosterCeiling(t *testing.T) {
	store := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "a", EmailAddress: "a@example.com", Collection: models.CollectionRoster},
	}}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 1, MaxWaitingListSize: 5})

	_, err := svc.ManualAdd(context.Background(), testPayload("b@example.com"))
	assert.ErrorIs(t, err, appErrors.ErrNoSpotsAvailable)
}

func TestManualAddCompletesExistingSignup(t *testing.T) {
	store := &fakeStudentStore{}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 1, MaxWaitingListSize: 5, RatePerMinute: 0.83})

	_, err := svc.Signup(context.Background(), testPayload("a@example.com"))
	require.NoError(t, err)

	payload := testPayload("a@example.com")
	payload.LessonTime = "11:00"
	view, err := svc.ManualAdd(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "11:00", view.LessonTime)

	roster, _ := store.ListByCollection(context.Background(), models.CollectionRoster)
	require.Len(t, roster, 1)
	signups, _ := store.ListByCollection(context.Background(), models.CollectionSignups)
	assert.Empty(t, signups)

	_, err = svc.ManualAdd(context.Background(), testPayload("b@example.com"))
	assert.ErrorIs(t, err, appErrors.ErrNoSpotsAvailable)
}

func TestManualAddTakeoverRespectsRosterCeiling(t *testing.T) {
	store := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "r1", EmailAddress: "r1@example.com", Collection: models.CollectionRoster},
		{ID: "w1", EmailAddress: "w1@example.com", Collection: models.CollectionWaitingList},
	}}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 1, MaxWaitingListSize: 5})

	_, err := svc.ManualAdd(context.Background(), testPayload("w1@example.com"))
	assert.ErrorIs(t, err, appErrors.ErrNoSpotsAvailable)

	waiting, _ := store.ListByCollection(context.Background(), models.CollectionWaitingList)
	require.Len(t, waiting, 1)
}

func TestManualAddRejectsRosterDuplicate(t *testing.T) {
	store := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "r1", EmailAddress: "r1@example.com", Collection: models.CollectionRoster},
	}}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 5, MaxWaitingListSize: 5})

	_, err := svc.ManualAdd(context.Background(), testPayload("r1@example.com"))
	assert.ErrorIs(t, err, appErrors.ErrAlreadyEnrolled)
}

func TestPromoteMovesEntryOntoRoster(t *testing.T) {
	store := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "w1", EmailAddress: "w1@example.com", Collection: models.CollectionWaitingList},
	}}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 5, MaxWaitingListSize: 5})

	require.NoError(t, svc.Promote(context.Background(), "w1", "waitingList"))

	roster, _ := store.ListByCollection(context.Background(), models.CollectionRoster)
	require.Len(t, roster, 1)
	assert.Equal(t, "w1", roster[0].ID)
}

func TestPromoteFailsWhenRosterFull(t *testing.T) {
	store := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "r1", EmailAddress: "r1@example.com", Collection: models.CollectionRoster},
		{ID: "w1", EmailAddress: "w1@example.com", Collection: models.CollectionWaitingList},
	}}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 1, MaxWaitingListSize: 5})

	err := svc.Promote(context.Background(), "w1", "waitingList")
	assert.ErrorIs(t, err, appErrors.ErrNoSpotsAvailable)

	waiting, _ := store.ListByCollection(context.Background(), models.CollectionWaitingList)
	require.Len(t, waiting, 1)
}

func TestPromoteMissingEntryIsNotFound(t *testing.T) {
	svc := newTestEnrollment(&fakeStudentStore{}, models.Settings{MaxStudents: 5, MaxWaitingListSize: 5})

	err := svc.Promote(context.Background(), "ghost", "signups")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestMoveBetweenQueuesRejectsSameQueue(t *testing.T) {
	svc := newTestEnrollment(&fakeStudentStore{}, models.Settings{MaxStudents: 5, MaxWaitingListSize: 5})

	err := svc.MoveBetweenQueues(context.Background(), "x", "signups", "signups")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestMoveToWaitingListRespectsCeiling(t *testing.T) {
	store := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "s1", EmailAddress: "s1@example.com", Collection: models.CollectionSignups},
		{ID: "w1", EmailAddress: "w1@example.com", Collection: models.CollectionWaitingList},
	}}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 5, MaxWaitingListSize: 1})

	err := svc.MoveBetweenQueues(context.Background(), "s1", "signups", "waitingList")
	assert.ErrorIs(t, err, appErrors.ErrWaitingListFull)
}

func TestWaitingListPositionIsFIFO(t *testing.T) {
	store := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "w1", EmailAddress: "first@example.com", Collection: models.CollectionWaitingList, Position: 1},
		{ID: "w2", EmailAddress: "second@example.com", Collection: models.CollectionWaitingList, Position: 2},
	}}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 5, MaxWaitingListSize: 5})

	pos, err := svc.Position(context.Background(), "second@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, pos.Position)
	assert.Equal(t, 2, pos.Total)
}

func TestAvailabilityClampsNegativeSpots(t *testing.T) {
	store := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "a", EmailAddress: "a@example.com", Collection: models.CollectionRoster},
		{ID: "b", EmailAddress: "b@example.com", Collection: models.CollectionRoster},
	}}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 1, MaxWaitingListSize: 2})

	summary, err := svc.Availability(context.Background())
	require.NoError(t, err)
	assert.False(t, summary.Available)
	assert.Equal(t, 0, summary.SpotsAvailable)
	assert.True(t, summary.WaitingListAvailable)
	assert.Equal(t, 2, summary.WaitingListSpotsAvailable)
}

func TestUpdateRosterRejectsQueueEntries(t *testing.T) {
	store := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "s1", EmailAddress: "s1@example.com", Collection: models.CollectionSignups},
	}}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 5, MaxWaitingListSize: 5})

	name := "New Name"
	_, err := svc.UpdateRoster(context.Background(), "s1", dto.UpdateStudentRequest{StudentName: &name})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestUpdateRosterRevalidatesPolicy(t *testing.T) {
	store := &fakeStudentStore{entries: []*models.StudentEntry{
		{
			ID: "r1", EmailAddress: "r1@example.com", Collection: models.CollectionRoster,
			StudentName: "Avery", Age: 10, LessonDay: models.Monday,
			LessonTimeMinutes: 600, DurationMinutes: 30,
		},
	}}
	svc := newTestEnrollment(store, models.Settings{MaxStudents: 5, MaxWaitingListSize: 5})

	late := "20:00"
	_, err := svc.UpdateRoster(context.Background(), "r1", dto.UpdateStudentRequest{LessonTime: &late})
	assert.ErrorIs(t, err, appErrors.ErrInvalidLessonTime)

	young := 4
	_, err = svc.UpdateRoster(context.Background(), "r1", dto.UpdateStudentRequest{Age: &young})
	assert.ErrorIs(t, err, appErrors.ErrBelowMinimumAge)
}

func TestSignupValidationRejections(t *testing.T) {
	svc := newTestEnrollment(&fakeStudentStore{}, models.Settings{MaxStudents: 5, MaxWaitingListSize: 5})

	tooYoung := testPayload("kid@example.com")
	tooYoung.Age = 5
	_, err := svc.Signup(context.Background(), tooYoung)
	assert.ErrorIs(t, err, appErrors.ErrBelowMinimumAge)

	outsideWindow := testPayload("late@example.com")
	outsideWindow.LessonTime = "8:30 AM"
	_, err = svc.Signup(context.Background(), outsideWindow)
	assert.ErrorIs(t, err, appErrors.ErrInvalidLessonTime)

	badPhone := testPayload("phone@example.com")
	badPhone.PhoneNumber = "12345"
	_, err = svc.Signup(context.Background(), badPhone)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
