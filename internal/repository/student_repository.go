package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yunboheater/piano-studio-api/internal/models"
)

// ErrCapacityReached signals that a capacity-guarded insert or move found the
// target collection full.
var ErrCapacityReached = errors.New("collection capacity reached")

// IsUniqueViolation reports whether err is a PostgreSQL unique-index
// violation, which backs the cross-collection email uniqueness invariant.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// StudentRepository persists the three enrollment collections. They share one
// table with a collection discriminator so that moves are a single UPDATE and
// capacity checks ride in the write statement itself, rather than a separate
// read-then-act step.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, collection, position, student_name, phone_number, email_address,
age, lesson_day, lesson_time_minutes, duration_minutes, skill_level, start_date,
minutely_rate, notes, created_at`

// ListByCollection returns a collection's entries in insertion order.
func (r *StudentRepository) ListByCollection(ctx context.Context, col models.Collection) ([]models.StudentEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_entries WHERE collection = $1 ORDER BY position ASC`, studentColumns)
	var entries []models.StudentEntry
	if err := r.db.SelectContext(ctx, &entries, query, col); err != nil {
		return nil, fmt.Errorf("list %s entries: %w", col, err)
	}
	return entries, nil
}

// ListRosterByDay returns roster entries booked on the given lesson day.
func (r *StudentRepository) ListRosterByDay(ctx context.Context, day models.Weekday) ([]models.StudentEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_entries WHERE collection = $1 AND lesson_day = $2 ORDER BY lesson_time_minutes ASC`, studentColumns)
	var entries []models.StudentEntry
	if err := r.db.SelectContext(ctx, &entries, query, models.CollectionRoster, day); err != nil {
		return nil, fmt.Errorf("list roster for %s: %w", day, err)
	}
	return entries, nil
}

// CountByCollection returns a collection's size.
func (r *StudentRepository) CountByCollection(ctx context.Context, col models.Collection) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM student_entries WHERE collection = $1`, col); err != nil {
		return 0, fmt.Errorf("count %s entries: %w", col, err)
	}
	return count, nil
}

// FindByID returns an entry by id regardless of collection.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_entries WHERE id = $1`, studentColumns)
	var entry models.StudentEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByEmail returns the entry holding an email address, in whichever
// collection it sits, or sql.ErrNoRows.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.StudentEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_entries WHERE LOWER(email_address) = LOWER($1)`, studentColumns)
	var entry models.StudentEntry
	if err := r.db.GetContext(ctx, &entry, query, email); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Insert adds an entry to its collection. A capacity of zero or less means
// unbounded. The count guard rides inside the INSERT so concurrent writers
// cannot both pass a separate check; ErrCapacityReached reports a full
// collection and IsUniqueViolation identifies a duplicate email.
func (r *StudentRepository) Insert(ctx context.Context, entry *models.StudentEntry, capacity int) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO student_entries
        (id, collection, student_name, phone_number, email_address, age, lesson_day,
         lesson_time_minutes, duration_minutes, skill_level, start_date, minutely_rate, notes, created_at)
        SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
        WHERE $15 <= 0 OR (SELECT COUNT(*) FROM student_entries WHERE collection = $2) < $15
        RETURNING position`
	err := r.db.GetContext(ctx, &entry.Position, query,
		entry.ID, entry.Collection, entry.StudentName, entry.PhoneNumber, entry.EmailAddress,
		entry.Age, entry.LessonDay, entry.LessonTimeMinutes, entry.DurationMinutes,
		entry.SkillLevel, entry.StartDate, entry.MinutelyRate, entry.Notes, entry.CreatedAt,
		capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCapacityReached
		}
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("insert %s entry: %w", entry.Collection, err)
	}
	return nil
}

// Move reassigns an entry to another collection in a single statement,
// re-checking the target capacity inside the UPDATE. It returns
// sql.ErrNoRows when the source row is missing and ErrCapacityReached when
// the row exists but the target is full. The row never leaves its source
// collection on failure.
func (r *StudentRepository) Move(ctx context.Context, id string, from, to models.Collection, capacity int) error {
	const query = `UPDATE student_entries
        SET collection = $2,
            position = nextval(pg_get_serial_sequence('student_entries', 'position'))
        WHERE id = $1 AND collection = $3
          AND ($4 <= 0 OR (SELECT COUNT(*) FROM student_entries WHERE collection = $2) < $4)`
	res, err := r.db.ExecContext(ctx, query, id, to, from, capacity)
	if err != nil {
		return fmt.Errorf("move entry %s to %s: %w", id, to, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("move entry %s: %w", id, err)
	}
	if affected == 0 {
		var exists int
		err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM student_entries WHERE id = $1 AND collection = $2`, id, from)
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		if err != nil {
			return fmt.Errorf("move entry %s: %w", id, err)
		}
		return ErrCapacityReached
	}
	return nil
}

// Update rewrites the editable fields of an entry.
func (r *StudentRepository) Update(ctx context.Context, entry *models.StudentEntry) error {
	const query = `UPDATE student_entries SET
        student_name = :student_name, phone_number = :phone_number, age = :age,
        lesson_day = :lesson_day, lesson_time_minutes = :lesson_time_minutes,
        duration_minutes = :duration_minutes, skill_level = :skill_level,
        start_date = :start_date, minutely_rate = :minutely_rate, notes = :notes
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("update entry %s: %w", entry.ID, err)
	}
	return nil
}

// Delete removes an entry from a collection. Missing rows are a no-op.
func (r *StudentRepository) Delete(ctx context.Context, id string, col models.Collection) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM student_entries WHERE id = $1 AND collection = $2`, id, col); err != nil {
		return fmt.Errorf("delete %s entry %s: %w", col, id, err)
	}
	return nil
}

// WaitingListPosition returns the 1-indexed FIFO position of an email on the
// waiting list along with the list size, or sql.ErrNoRows when absent.
// Ordering uses the explicit position sequence, not storage order.
func (r *StudentRepository) WaitingListPosition(ctx context.Context, email string) (int, int, error) {
	const query = `SELECT pos, total FROM (
            SELECT email_address,
                   ROW_NUMBER() OVER (ORDER BY position ASC) AS pos,
                   COUNT(*) OVER () AS total
            FROM student_entries WHERE collection = $1
        ) ranked
        WHERE LOWER(email_address) = LOWER($2)`
	var row struct {
		Pos   int `db:"pos"`
		Total int `db:"total"`
	}
	if err := r.db.GetContext(ctx, &row, query, models.CollectionWaitingList, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, sql.ErrNoRows
		}
		return 0, 0, fmt.Errorf("waiting list position: %w", err)
	}
	return row.Pos, row.Total, nil
}
