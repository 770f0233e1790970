package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/example/homecare-scheduler/internal/persistence"
)

// NotificationRepository implements persistence.NotificationRepository using
// SQLite.
type NotificationRepository struct {
	pool *ConnectionPool
}

// NewNotificationRepository creates a new SQLite notification repository.
func NewNotificationRepository(pool *ConnectionPool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

const notificationColumns = `id, employee_id, type, subject, message, status,
	delivery_method, scheduled_for, sent_at, delivered_at, appointment_id,
	metadata, created_at`

// CreateNotification inserts a new notification record.
func (r *NotificationRepository) CreateNotification(ctx context.Context, notification persistence.Notification) error {
	metadata, err := encodeStringMap(notification.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.pool.db.ExecContext(ctx, query,
		notification.ID,
		notification.EmployeeID,
		notification.Type,
		notification.Subject,
		notification.Message,
		notification.Status,
		notification.DeliveryMethod,
		formatTimestamp(notification.ScheduledFor),
		nullTimestamp(notification.SentAt),
		nullTimestamp(notification.DeliveredAt),
		nullString(notification.AppointmentID),
		metadata,
		formatTimestamp(notification.CreatedAt),
	)
	return mapError(err)
}

// UpdateNotification overwrites the delivery state of an existing record.
func (r *NotificationRepository) UpdateNotification(ctx context.Context, notification persistence.Notification) error {
	metadata, err := encodeStringMap(notification.Metadata)
	if err != nil {
		return err
	}

	query := `
		UPDATE notifications
		SET status = ?, delivery_method = ?, scheduled_for = ?, sent_at = ?,
			delivered_at = ?, metadata = ?
		WHERE id = ?
	`
	result, err := r.pool.db.ExecContext(ctx, query,
		notification.Status,
		notification.DeliveryMethod,
		formatTimestamp(notification.ScheduledFor),
		nullTimestamp(notification.SentAt),
		nullTimestamp(notification.DeliveredAt),
		metadata,
		notification.ID,
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

// GetNotification retrieves a notification by id.
func (r *NotificationRepository) GetNotification(ctx context.Context, id string) (persistence.Notification, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id)
	return scanNotification(row)
}

// ListNotifications returns notifications matching the filter, oldest first.
func (r *NotificationRepository) ListNotifications(ctx context.Context, filter persistence.NotificationFilter) ([]persistence.Notification, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.EmployeeID != nil {
		clauses = append(clauses, "employee_id = ?")
		args = append(args, *filter.EmployeeID)
	}
	if filter.AppointmentID != nil {
		clauses = append(clauses, "appointment_id = ?")
		args = append(args, *filter.AppointmentID)
	}
	if len(filter.Statuses) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(filter.Statuses)), ", ")
		clauses = append(clauses, "status IN ("+placeholders+")")
		for _, status := range filter.Statuses {
			args = append(args, status)
		}
	}
	if len(filter.Types) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(filter.Types)), ", ")
		clauses = append(clauses, "type IN ("+placeholders+")")
		for _, kind := range filter.Types {
			args = append(args, kind)
		}
	}

	query := `SELECT ` + notificationColumns + ` FROM notifications`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var notifications []persistence.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

func scanNotification(row rowScanner) (persistence.Notification, error) {
	var (
		notification  persistence.Notification
		scheduledFor  string
		sentAt        sql.NullString
		deliveredAt   sql.NullString
		appointmentID sql.NullString
		metadata      string
		createdAt     string
	)
	err := row.Scan(
		&notification.ID,
		&notification.EmployeeID,
		&notification.Type,
		&notification.Subject,
		&notification.Message,
		&notification.Status,
		&notification.DeliveryMethod,
		&scheduledFor,
		&sentAt,
		&deliveredAt,
		&appointmentID,
		&metadata,
		&createdAt,
	)
	if err != nil {
		return persistence.Notification{}, mapError(err)
	}

	if notification.ScheduledFor, err = parseTimestamp(scheduledFor); err != nil {
		return persistence.Notification{}, err
	}
	if notification.SentAt, err = scanNullTimestamp(sentAt); err != nil {
		return persistence.Notification{}, err
	}
	if notification.DeliveredAt, err = scanNullTimestamp(deliveredAt); err != nil {
		return persistence.Notification{}, err
	}
	notification.AppointmentID = scanNullString(appointmentID)
	if notification.Metadata, err = decodeStringMap(metadata); err != nil {
		return persistence.Notification{}, err
	}
	if notification.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.Notification{}, err
	}
	return notification, nil
}
