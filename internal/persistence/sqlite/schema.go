package sqlite

import (
	"context"
	"fmt"
)

// schema holds the DDL applied by Migrate. Statements are idempotent so the
// migration can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT,
		role TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		hourly_rate REAL,
		qualifications TEXT NOT NULL DEFAULT '[]',
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS care_recipients (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		address TEXT NOT NULL,
		phone TEXT,
		emergency_contact TEXT NOT NULL,
		emergency_phone TEXT NOT NULL,
		medical_conditions TEXT NOT NULL DEFAULT '[]',
		care_requirements TEXT NOT NULL DEFAULT '[]',
		special_instructions TEXT NOT NULL DEFAULT '',
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id TEXT PRIMARY KEY,
		care_recipient_id TEXT NOT NULL REFERENCES care_recipients(id),
		employee_id TEXT REFERENCES employees(id),
		scheduled_date TEXT NOT NULL,
		start_minutes INTEGER NOT NULL,
		end_minutes INTEGER NOT NULL,
		duration_minutes INTEGER NOT NULL,
		status TEXT NOT NULL,
		presence_status TEXT NOT NULL,
		care_tasks TEXT NOT NULL DEFAULT '[]',
		notes TEXT NOT NULL DEFAULT '',
		completion_notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		confirmed_at TEXT,
		completed_at TEXT,
		version INTEGER NOT NULL DEFAULT 1,
		CHECK (end_minutes > start_minutes),
		CHECK (duration_minutes >= 15)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_employee_date
		ON appointments(employee_id, scheduled_date)`,
	`CREATE TABLE IF NOT EXISTS availability_periods (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		start_minutes INTEGER,
		end_minutes INTEGER,
		availability_type TEXT NOT NULL,
		recurring_days TEXT NOT NULL DEFAULT '[]',
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK (end_date >= start_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_availability_employee
		ON availability_periods(employee_id, start_date, end_date)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		type TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL,
		delivery_method TEXT NOT NULL,
		scheduled_for TEXT NOT NULL,
		sent_at TEXT,
		delivered_at TEXT,
		appointment_id TEXT REFERENCES appointments(id),
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_appointment
		ON notifications(appointment_id, status)`,
	`CREATE TABLE IF NOT EXISTS schedule_templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		is_active INTEGER NOT NULL DEFAULT 1,
		template_data TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

// Migrate applies the schema to the connected database.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	for _, statement := range schema {
		if _, err := cp.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
