package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yunboheater/piano-studio-api/internal/models"
)

// ConfigurationRepository persists the key/value tunables table and exposes a
// typed view over the well-known keys.
type ConfigurationRepository struct {
	db *sqlx.DB
}

// NewConfigurationRepository constructs the repository.
func NewConfigurationRepository(db *sqlx.DB) *ConfigurationRepository {
	return &ConfigurationRepository{db: db}
}

// List returns every configuration row.
func (r *ConfigurationRepository) List(ctx context.Context) ([]models.Configuration, error) {
	const query = `SELECT key, value, type, updated_at FROM configurations ORDER BY key ASC`
	var configs []models.Configuration
	if err := r.db.SelectContext(ctx, &configs, query); err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}
	return configs, nil
}

// Get fetches a single configuration by key.
func (r *ConfigurationRepository) Get(ctx context.Context, key string) (*models.Configuration, error) {
	const query = `SELECT key, value, type, updated_at FROM configurations WHERE key = $1`
	var cfg models.Configuration
	if err := r.db.GetContext(ctx, &cfg, query, key); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Upsert inserts or updates a configuration entry.
func (r *ConfigurationRepository) Upsert(ctx context.Context, cfg *models.Configuration) error {
	const query = `INSERT INTO configurations (key, value, type, updated_at)
        VALUES (:key, :value, :type, :updated_at)
        ON CONFLICT (key)
        DO UPDATE SET value = EXCLUDED.value, type = EXCLUDED.type, updated_at = EXCLUDED.updated_at`
	cfg.UpdatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, cfg); err != nil {
		return fmt.Errorf("upsert configuration %s: %w", cfg.Key, err)
	}
	return nil
}

// Settings reads the whole table and coerces the well-known keys by their
// declared type tag. Unknown keys are ignored; missing keys read as zero so
// capacity invariants fail closed.
func (r *ConfigurationRepository) Settings(ctx context.Context) (*models.Settings, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	settings := &models.Settings{}
	for _, row := range rows {
		switch row.Key {
		case models.ConfigKeyMaxStudents:
			settings.MaxStudents = coerceInt(row)
		case models.ConfigKeyMaxWaitingListSize:
			settings.MaxWaitingListSize = coerceInt(row)
		case models.ConfigKeyRatePerMinute:
			settings.RatePerMinute = coerceFloat(row)
		}
	}
	return settings, nil
}

func coerceInt(row models.Configuration) int {
	n, err := strconv.Atoi(row.Value)
	if err != nil {
		return 0
	}
	return n
}

func coerceFloat(row models.Configuration) float64 {
	f, err := strconv.ParseFloat(row.Value, 64)
	if err != nil {
		return 0
	}
	return f
}
