package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/homecare-scheduler/internal/persistence"
)

// AvailabilityRepository implements persistence.AvailabilityRepository using
// SQLite.
type AvailabilityRepository struct {
	pool *ConnectionPool
}

// NewAvailabilityRepository creates a new SQLite availability repository.
func NewAvailabilityRepository(pool *ConnectionPool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

const availabilityColumns = `id, employee_id, start_date, end_date,
	start_minutes, end_minutes, availability_type, recurring_days, notes,
	created_at, updated_at`

// CreateAvailabilityPeriod inserts a new availability period.
func (r *AvailabilityRepository) CreateAvailabilityPeriod(ctx context.Context, period persistence.AvailabilityPeriod) error {
	recurring, err := encodeStrings(period.RecurringDays)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO availability_periods (` + availabilityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.pool.db.ExecContext(ctx, query,
		period.ID,
		period.EmployeeID,
		formatDate(period.StartDate),
		formatDate(period.EndDate),
		nullInt(period.StartMinutes),
		nullInt(period.EndMinutes),
		period.AvailabilityType,
		recurring,
		period.Notes,
		formatTimestamp(period.CreatedAt),
		formatTimestamp(period.UpdatedAt),
	)
	return mapError(err)
}

// UpdateAvailabilityPeriod overwrites an existing availability period.
func (r *AvailabilityRepository) UpdateAvailabilityPeriod(ctx context.Context, period persistence.AvailabilityPeriod) error {
	recurring, err := encodeStrings(period.RecurringDays)
	if err != nil {
		return err
	}

	query := `
		UPDATE availability_periods
		SET start_date = ?, end_date = ?, start_minutes = ?, end_minutes = ?,
			availability_type = ?, recurring_days = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.pool.db.ExecContext(ctx, query,
		formatDate(period.StartDate),
		formatDate(period.EndDate),
		nullInt(period.StartMinutes),
		nullInt(period.EndMinutes),
		period.AvailabilityType,
		recurring,
		period.Notes,
		formatTimestamp(period.UpdatedAt),
		period.ID,
	)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// GetAvailabilityPeriod retrieves a period by id.
func (r *AvailabilityRepository) GetAvailabilityPeriod(ctx context.Context, id string) (persistence.AvailabilityPeriod, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+availabilityColumns+` FROM availability_periods WHERE id = ?`, id)
	return scanAvailabilityPeriod(row)
}

// DeleteAvailabilityPeriod removes a period. Availability declarations carry
// no visit history, so physical deletion is safe here.
func (r *AvailabilityRepository) DeleteAvailabilityPeriod(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx,
		`DELETE FROM availability_periods WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ListCovering returns the employee's periods whose inclusive date span
// contains the given date.
func (r *AvailabilityRepository) ListCovering(ctx context.Context, employeeID string, date time.Time) ([]persistence.AvailabilityPeriod, error) {
	day := formatDate(date)
	query := `SELECT ` + availabilityColumns + ` FROM availability_periods
		WHERE employee_id = ? AND start_date <= ? AND end_date >= ?
		ORDER BY created_at, id`
	return r.queryPeriods(ctx, query, employeeID, day, day)
}

// ListForEmployee returns every period declared for the employee.
func (r *AvailabilityRepository) ListForEmployee(ctx context.Context, employeeID string) ([]persistence.AvailabilityPeriod, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availability_periods
		WHERE employee_id = ?
		ORDER BY start_date, created_at, id`
	return r.queryPeriods(ctx, query, employeeID)
}

func (r *AvailabilityRepository) queryPeriods(ctx context.Context, query string, args ...any) ([]persistence.AvailabilityPeriod, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var periods []persistence.AvailabilityPeriod
	for rows.Next() {
		period, err := scanAvailabilityPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}

func scanAvailabilityPeriod(row rowScanner) (persistence.AvailabilityPeriod, error) {
	var (
		period       persistence.AvailabilityPeriod
		startDate    string
		endDate      string
		startMinutes sql.NullInt64
		endMinutes   sql.NullInt64
		recurring    string
		createdAt    string
		updatedAt    string
	)
	err := row.Scan(
		&period.ID,
		&period.EmployeeID,
		&startDate,
		&endDate,
		&startMinutes,
		&endMinutes,
		&period.AvailabilityType,
		&recurring,
		&period.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.AvailabilityPeriod{}, mapError(err)
	}

	if period.StartDate, err = parseDate(startDate); err != nil {
		return persistence.AvailabilityPeriod{}, err
	}
	if period.EndDate, err = parseDate(endDate); err != nil {
		return persistence.AvailabilityPeriod{}, err
	}
	period.StartMinutes = scanNullInt(startMinutes)
	period.EndMinutes = scanNullInt(endMinutes)
	if period.RecurringDays, err = decodeStrings(recurring); err != nil {
		return persistence.AvailabilityPeriod{}, err
	}
	if period.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.AvailabilityPeriod{}, err
	}
	if period.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.AvailabilityPeriod{}, err
	}
	return period, nil
}
