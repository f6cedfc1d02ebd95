package service

import (
	"context"
	"encoding/json"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/models"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
)

// fakeCacheRepo holds JSON payloads in memory and honours glob patterns on
// invalidation, mirroring the Redis repository's contract.
type fakeCacheRepo struct {
	data map[string][]byte
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{data: make(map[string][]byte)}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := f.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	for key := range f.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(f.data, key)
		}
	}
	return nil
}

func newTestCache(repo *fakeCacheRepo) *CacheService {
	return NewCacheService(repo, nil, time.Minute, nil, true)
}

func TestCacheServiceDisabledIsAlwaysMiss(t *testing.T) {
	var disabled *CacheService
	var dest string
	assert.False(t, disabled.Get(context.Background(), "k", &dest))
	disabled.Set(context.Background(), "k", "v")
	assert.NoError(t, disabled.Invalidate(context.Background(), "*"))
}

func TestPricingTiersServedFromCache(t *testing.T) {
	repo := newFakeCacheRepo()
	settings := &fixedSettings{settings: models.Settings{RatePerMinute: 0.83}}
	svc := NewPricingService(fakePricingRows{}, settings, newTestCache(repo), nil)

	first, err := svc.Tiers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "16.60", first.Tiers[0].Cost)

	// A rate change is not visible until the cached view is dropped.
	settings.settings.RatePerMinute = 1.00
	stale, err := svc.Tiers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "16.60", stale.Tiers[0].Cost)

	require.NoError(t, repo.DeleteByPattern(context.Background(), "pricing:*"))
	fresh, err := svc.Tiers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "20.00", fresh.Tiers[0].Cost)
}

func TestConfigurationUpdateDropsDerivedViews(t *testing.T) {
	repo := newFakeCacheRepo()
	cache := newTestCache(repo)
	cache.Set(context.Background(), "pricing:tiers", dto.PricingResponse{})
	cache.Set(context.Background(), "availability:summary", dto.AvailabilitySummary{})
	cache.Set(context.Background(), "suggest:both::30", []dto.Suggestion{})

	store := &fakeConfigStore{rows: map[string]models.Configuration{}}
	svc := NewConfigurationService(store, cache, nil, nil)

	_, err := svc.Update(context.Background(), &dto.UpdateConfigurationRequest{
		Key: "ratePerMinute", Value: "1.00", Type: "decimal",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.data)
}

func TestEnrollmentWritesDropAvailabilitySummary(t *testing.T) {
	repo := newFakeCacheRepo()
	cache := newTestCache(repo)
	store := &fakeStudentStore{}
	svc := NewEnrollmentService(store, fixedSettings{models.Settings{MaxStudents: 5, MaxWaitingListSize: 5}}, cache, DefaultStudentPolicy(), nil, nil)

	summary, err := svc.Availability(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, summary.SpotsAvailable)
	assert.Contains(t, repo.data, "availability:summary")

	_, err = svc.JoinWaitingList(context.Background(), testPayload("w1@example.com"))
	require.NoError(t, err)
	assert.NotContains(t, repo.data, "availability:summary")

	refreshed, err := svc.Availability(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, refreshed.WaitingListSpotsAvailable)
}
