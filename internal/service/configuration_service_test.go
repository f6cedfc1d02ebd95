package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/models"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
)

type fakeConfigStore struct {
	rows map[string]models.Configuration
}

func (f *fakeConfigStore) List(context.Context) ([]models.Configuration, error) {
	out := make([]models.Configuration, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeConfigStore) Get(_ context.Context, key string) (*models.Configuration, error) {
	row, ok := f.rows[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

func (f *fakeConfigStore) Upsert(_ context.Context, cfg *models.Configuration) error {
	if f.rows == nil {
		f.rows = map[string]models.Configuration{}
	}
	f.rows[cfg.Key] = *cfg
	return nil
}

func (f *fakeConfigStore) Settings(context.Context) (*models.Settings, error) {
	return &models.Settings{}, nil
}

func TestUpdateConfigurationPersistsValue(t *testing.T) {
	store := &fakeConfigStore{}
	svc := NewConfigurationService(store, nil, nil, nil)

	item, err := svc.Update(context.Background(), &dto.UpdateConfigurationRequest{
		Key: models.ConfigKeyMaxStudents, Value: "25", Type: "number",
	})
	require.NoError(t, err)
	assert.Equal(t, "25", item.Value)
	assert.Equal(t, "25", store.rows[models.ConfigKeyMaxStudents].Value)
}

func TestUpdateConfigurationRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		req  dto.UpdateConfigurationRequest
	}{
		{"non-integer number", dto.UpdateConfigurationRequest{Key: models.ConfigKeyMaxStudents, Value: "lots", Type: "number"}},
		{"negative number", dto.UpdateConfigurationRequest{Key: models.ConfigKeyMaxWaitingListSize, Value: "-1", Type: "number"}},
		{"non-decimal rate", dto.UpdateConfigurationRequest{Key: models.ConfigKeyRatePerMinute, Value: "cheap", Type: "decimal"}},
		{"negative rate", dto.UpdateConfigurationRequest{Key: models.ConfigKeyRatePerMinute, Value: "-0.5", Type: "decimal"}},
		{"unknown type", dto.UpdateConfigurationRequest{Key: "displayName", Value: "Studio", Type: "json"}},
	}
	svc := NewConfigurationService(&fakeConfigStore{}, nil, nil, nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			_, err := svc.Update(context.Background(), &req)
			var appErr *appErrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
		})
	}
}
