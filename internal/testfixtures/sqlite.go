package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/homecare-scheduler/internal/persistence"
	"github.com/example/homecare-scheduler/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Employees      persistence.EmployeeRepository
	CareRecipients persistence.CareRecipientRepository
	Appointments   persistence.AppointmentRepository
	Availability   persistence.AvailabilityRepository
	Notifications  persistence.NotificationRepository
	Templates      persistence.TemplateRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness over a temporary file database
// that is migrated automatically. Callers may optionally invoke Close, but the
// helper also registers a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	path := filepath.Join(dir, "homecare.db")

	pool, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}

	if err := pool.Migrate(context.Background()); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate database: %v", err)
	}

	harness := &SQLiteHarness{
		Employees:      sqlite.NewEmployeeRepository(pool),
		CareRecipients: sqlite.NewCareRecipientRepository(pool),
		Appointments:   sqlite.NewAppointmentRepository(pool),
		Availability:   sqlite.NewAvailabilityRepository(pool),
		Notifications:  sqlite.NewNotificationRepository(pool),
		Templates:      sqlite.NewTemplateRepository(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
