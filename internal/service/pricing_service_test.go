package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunboheater/piano-studio-api/internal/models"
)

type fakePricingRows struct {
	rows []models.PricingRow
}

func (f fakePricingRows) List(context.Context) ([]models.PricingRow, error) {
	return f.rows, nil
}

func TestPricingTiersRoundHalfAwayFromZero(t *testing.T) {
	svc := NewPricingService(fakePricingRows{}, fixedSettings{models.Settings{RatePerMinute: 0.83}}, nil, nil)

	got, err := svc.Tiers(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Tiers, 3)

	assert.Equal(t, 20, got.Tiers[0].DurationMinutes)
	assert.Equal(t, "16.60", got.Tiers[0].Cost)
	assert.Equal(t, 30, got.Tiers[1].DurationMinutes)
	assert.Equal(t, "24.90", got.Tiers[1].Cost)
	assert.Equal(t, 45, got.Tiers[2].DurationMinutes)
	assert.Equal(t, "37.35", got.Tiers[2].Cost)
}

func TestPricingTierDurationsAreDisplayStrings(t *testing.T) {
	svc := NewPricingService(fakePricingRows{}, fixedSettings{models.Settings{RatePerMinute: 1}}, nil, nil)

	got, err := svc.Tiers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "20 minutes", got.Tiers[0].Duration)
	assert.Equal(t, "45 minutes", got.Tiers[2].Duration)
}

func TestFormatCentsMidpoint(t *testing.T) {
	assert.Equal(t, "0.13", formatCents(0.125))
	assert.Equal(t, "1.00", formatCents(0.999))
	assert.Equal(t, "0.00", formatCents(0))
}
