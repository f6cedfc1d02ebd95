package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yunboheater/piano-studio-api/internal/models"
)

// WorkingHoursRepository persists the weekly teaching windows.
type WorkingHoursRepository struct {
	db *sqlx.DB
}

// NewWorkingHoursRepository constructs the repository.
func NewWorkingHoursRepository(db *sqlx.DB) *WorkingHoursRepository {
	return &WorkingHoursRepository{db: db}
}

// List returns all configured windows in stored day order.
func (r *WorkingHoursRepository) List(ctx context.Context) ([]models.WorkingHours, error) {
	const query = `SELECT id, day_of_week, start_minutes, end_minutes FROM working_hours ORDER BY created_at ASC`
	var hours []models.WorkingHours
	if err := r.db.SelectContext(ctx, &hours, query); err != nil {
		return nil, fmt.Errorf("list working hours: %w", err)
	}
	return hours, nil
}

// FindByDay returns the window for a day, or sql.ErrNoRows.
func (r *WorkingHoursRepository) FindByDay(ctx context.Context, day models.Weekday) (*models.WorkingHours, error) {
	const query = `SELECT id, day_of_week, start_minutes, end_minutes FROM working_hours WHERE day_of_week = $1`
	var wh models.WorkingHours
	if err := r.db.GetContext(ctx, &wh, query, day); err != nil {
		return nil, err
	}
	return &wh, nil
}

// Upsert inserts or replaces the window for a day. One row per day is
// enforced by the unique index on day_of_week.
func (r *WorkingHoursRepository) Upsert(ctx context.Context, wh *models.WorkingHours) error {
	if wh.ID == "" {
		wh.ID = uuid.NewString()
	}
	const query = `INSERT INTO working_hours (id, day_of_week, start_minutes, end_minutes)
        VALUES (:id, :day_of_week, :start_minutes, :end_minutes)
        ON CONFLICT (day_of_week)
        DO UPDATE SET start_minutes = EXCLUDED.start_minutes, end_minutes = EXCLUDED.end_minutes`
	if _, err := r.db.NamedExecContext(ctx, query, wh); err != nil {
		return fmt.Errorf("upsert working hours for %s: %w", wh.DayOfWeek, err)
	}
	return nil
}

// Delete removes the window for a day. Missing rows are a no-op.
func (r *WorkingHoursRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM working_hours WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete working hours %s: %w", id, err)
	}
	return nil
}
