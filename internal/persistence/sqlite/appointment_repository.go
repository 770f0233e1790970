package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/example/homecare-scheduler/internal/persistence"
)

// AppointmentRepository implements persistence.AppointmentRepository using
// SQLite with optimistic concurrency on the version column.
type AppointmentRepository struct {
	pool *ConnectionPool
}

// NewAppointmentRepository creates a new SQLite appointment repository.
func NewAppointmentRepository(pool *ConnectionPool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

const appointmentColumns = `id, care_recipient_id, employee_id, scheduled_date,
	start_minutes, end_minutes, duration_minutes, status, presence_status,
	care_tasks, notes, completion_notes, created_at, updated_at, confirmed_at,
	completed_at, version`

// CreateAppointment inserts a new appointment at version 1.
func (r *AppointmentRepository) CreateAppointment(ctx context.Context, appointment persistence.Appointment) error {
	careTasks, err := encodeStrings(appointment.CareTasks)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
	`
	_, err = r.pool.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.CareRecipientID,
		nullString(appointment.EmployeeID),
		formatDate(appointment.ScheduledDate),
		appointment.StartMinutes,
		appointment.EndMinutes,
		appointment.DurationMinutes,
		appointment.Status,
		appointment.PresenceStatus,
		careTasks,
		appointment.Notes,
		appointment.CompletionNotes,
		formatTimestamp(appointment.CreatedAt),
		formatTimestamp(appointment.UpdatedAt),
		nullTimestamp(appointment.ConfirmedAt),
		nullTimestamp(appointment.CompletedAt),
	)
	return mapError(err)
}

// UpdateAppointment overwrites an appointment if the caller holds the current
// version. A lost race surfaces as persistence.ErrStaleWrite so the operation
// can be retried against fresh state.
func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, appointment persistence.Appointment) error {
	careTasks, err := encodeStrings(appointment.CareTasks)
	if err != nil {
		return err
	}

	query := `
		UPDATE appointments
		SET care_recipient_id = ?, employee_id = ?, scheduled_date = ?,
			start_minutes = ?, end_minutes = ?, duration_minutes = ?,
			status = ?, presence_status = ?, care_tasks = ?, notes = ?,
			completion_notes = ?, updated_at = ?, confirmed_at = ?,
			completed_at = ?, version = version + 1
		WHERE id = ? AND version = ?
	`
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(query,
			appointment.CareRecipientID,
			nullString(appointment.EmployeeID),
			formatDate(appointment.ScheduledDate),
			appointment.StartMinutes,
			appointment.EndMinutes,
			appointment.DurationMinutes,
			appointment.Status,
			appointment.PresenceStatus,
			careTasks,
			appointment.Notes,
			appointment.CompletionNotes,
			formatTimestamp(appointment.UpdatedAt),
			nullTimestamp(appointment.ConfirmedAt),
			nullTimestamp(appointment.CompletedAt),
			appointment.ID,
			appointment.Version,
		)
		if err != nil {
			return mapError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected > 0 {
			return nil
		}

		var exists int
		err = tx.QueryRow(`SELECT COUNT(1) FROM appointments WHERE id = ?`, appointment.ID).Scan(&exists)
		if err != nil {
			return mapError(err)
		}
		if exists == 0 {
			return persistence.ErrNotFound
		}
		return persistence.ErrStaleWrite
	})
}

// GetAppointment retrieves an appointment by id.
func (r *AppointmentRepository) GetAppointment(ctx context.Context, id string) (persistence.Appointment, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)
	return scanAppointment(row)
}

// ListAppointments returns appointments matching the filter, ordered by date
// and start time.
func (r *AppointmentRepository) ListAppointments(ctx context.Context, filter persistence.AppointmentFilter) ([]persistence.Appointment, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.EmployeeID != nil {
		clauses = append(clauses, "employee_id = ?")
		args = append(args, *filter.EmployeeID)
	}
	if filter.CareRecipientID != nil {
		clauses = append(clauses, "care_recipient_id = ?")
		args = append(args, *filter.CareRecipientID)
	}
	if filter.DateFrom != nil {
		clauses = append(clauses, "scheduled_date >= ?")
		args = append(args, formatDate(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		clauses = append(clauses, "scheduled_date <= ?")
		args = append(args, formatDate(*filter.DateTo))
	}
	if len(filter.Statuses) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(filter.Statuses)), ", ")
		clauses = append(clauses, "status IN ("+placeholders+")")
		for _, status := range filter.Statuses {
			args = append(args, status)
		}
	}

	query := `SELECT ` + appointmentColumns + ` FROM appointments`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY scheduled_date, start_minutes, id`

	return r.queryAppointments(ctx, query, args...)
}

// ListForEmployeeDate returns the employee's appointments on one civil date.
func (r *AppointmentRepository) ListForEmployeeDate(ctx context.Context, employeeID string, date time.Time) ([]persistence.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE employee_id = ? AND scheduled_date = ?
		ORDER BY start_minutes, id`
	return r.queryAppointments(ctx, query, employeeID, formatDate(date))
}

func (r *AppointmentRepository) queryAppointments(ctx context.Context, query string, args ...any) ([]persistence.Appointment, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var appointments []persistence.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	return appointments, rows.Err()
}

func scanAppointment(row rowScanner) (persistence.Appointment, error) {
	var (
		appointment persistence.Appointment
		employeeID  sql.NullString
		date        string
		careTasks   string
		createdAt   string
		updatedAt   string
		confirmedAt sql.NullString
		completedAt sql.NullString
	)
	err := row.Scan(
		&appointment.ID,
		&appointment.CareRecipientID,
		&employeeID,
		&date,
		&appointment.StartMinutes,
		&appointment.EndMinutes,
		&appointment.DurationMinutes,
		&appointment.Status,
		&appointment.PresenceStatus,
		&careTasks,
		&appointment.Notes,
		&appointment.CompletionNotes,
		&createdAt,
		&updatedAt,
		&confirmedAt,
		&completedAt,
		&appointment.Version,
	)
	if err != nil {
		return persistence.Appointment{}, mapError(err)
	}

	appointment.EmployeeID = scanNullString(employeeID)
	if appointment.ScheduledDate, err = parseDate(date); err != nil {
		return persistence.Appointment{}, err
	}
	if appointment.CareTasks, err = decodeStrings(careTasks); err != nil {
		return persistence.Appointment{}, err
	}
	if appointment.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.Appointment{}, err
	}
	if appointment.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.Appointment{}, err
	}
	if appointment.ConfirmedAt, err = scanNullTimestamp(confirmedAt); err != nil {
		return persistence.Appointment{}, err
	}
	if appointment.CompletedAt, err = scanNullTimestamp(completedAt); err != nil {
		return persistence.Appointment{}, err
	}
	return appointment, nil
}
