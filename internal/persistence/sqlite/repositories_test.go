package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/homecare-scheduler/internal/persistence"
	"github.com/example/homecare-scheduler/internal/testfixtures"
)

func TestEmployeeRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	employee := testfixtures.NewEmployeeFixture().Persistence()
	if err := harness.Employees.CreateEmployee(ctx, employee); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	got, err := harness.Employees.GetEmployee(ctx, employee.ID)
	if err != nil {
		t.Fatalf("GetEmployee: %v", err)
	}
	if got.Email != employee.Email || got.Role != employee.Role || !got.IsActive {
		t.Errorf("loaded employee = %+v, want %+v", got, employee)
	}

	byEmail, err := harness.Employees.GetEmployeeByEmail(ctx, employee.Email)
	if err != nil {
		t.Fatalf("GetEmployeeByEmail: %v", err)
	}
	if byEmail.ID != employee.ID {
		t.Errorf("lookup by email found %q, want %q", byEmail.ID, employee.ID)
	}

	if _, err := harness.Employees.GetEmployee(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("missing employee error = %v, want ErrNotFound", err)
	}
}

func TestEmployeeRepositoryRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	first := testfixtures.NewEmployeeFixture().Persistence()
	if err := harness.Employees.CreateEmployee(ctx, first); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	second := testfixtures.NewEmployeeFixture().Persistence()
	second.Email = first.Email
	if err := harness.Employees.CreateEmployee(ctx, second); !errors.Is(err, persistence.ErrDuplicate) {
		t.Errorf("duplicate email error = %v, want ErrDuplicate", err)
	}
}

func TestEmployeeRepositoryListFiltersInactive(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	active := testfixtures.NewEmployeeFixture().Persistence()
	inactive := testfixtures.NewEmployeeFixture(testfixtures.WithEmployeeActive(false)).Persistence()
	for _, employee := range []persistence.Employee{active, inactive} {
		if err := harness.Employees.CreateEmployee(ctx, employee); err != nil {
			t.Fatalf("CreateEmployee: %v", err)
		}
	}

	onlyActive, err := harness.Employees.ListEmployees(ctx, false)
	if err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	if len(onlyActive) != 1 || onlyActive[0].ID != active.ID {
		t.Errorf("active list = %d entries, want just %s", len(onlyActive), active.ID)
	}

	all, err := harness.Employees.ListEmployees(ctx, true)
	if err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("full list = %d entries, want 2", len(all))
	}
}

func seedAppointmentGraph(t *testing.T, harness *testfixtures.SQLiteHarness) (persistence.Employee, persistence.CareRecipient) {
	t.Helper()
	ctx := context.Background()

	employee := testfixtures.NewEmployeeFixture().Persistence()
	if err := harness.Employees.CreateEmployee(ctx, employee); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	recipient := testfixtures.NewCareRecipientFixture().Persistence()
	if err := harness.CareRecipients.CreateCareRecipient(ctx, recipient); err != nil {
		t.Fatalf("CreateCareRecipient: %v", err)
	}
	return employee, recipient
}

func TestAppointmentRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()
	employee, recipient := seedAppointmentGraph(t, harness)

	appointment := testfixtures.NewAppointmentFixture(
		testfixtures.WithAppointmentEmployee(employee.ID),
		testfixtures.WithAppointmentRecipient(recipient.ID),
	).Persistence()
	appointment.CareTasks = []string{"medication", "meal preparation"}

	if err := harness.Appointments.CreateAppointment(ctx, appointment); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}

	got, err := harness.Appointments.GetAppointment(ctx, appointment.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if got.Version != 1 {
		t.Errorf("version = %d, want 1", got.Version)
	}
	if got.EmployeeID == nil || *got.EmployeeID != employee.ID {
		t.Errorf("employee = %v, want %s", got.EmployeeID, employee.ID)
	}
	if len(got.CareTasks) != 2 || got.CareTasks[0] != "medication" {
		t.Errorf("care tasks = %v, want round-tripped list", got.CareTasks)
	}
	if !got.ScheduledDate.Equal(appointment.ScheduledDate) {
		t.Errorf("date = %v, want %v", got.ScheduledDate, appointment.ScheduledDate)
	}
}

func TestAppointmentRepositoryStaleWrite(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()
	employee, recipient := seedAppointmentGraph(t, harness)

	appointment := testfixtures.NewAppointmentFixture(
		testfixtures.WithAppointmentEmployee(employee.ID),
		testfixtures.WithAppointmentRecipient(recipient.ID),
	).Persistence()
	if err := harness.Appointments.CreateAppointment(ctx, appointment); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}

	current, err := harness.Appointments.GetAppointment(ctx, appointment.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}

	current.Notes = "first writer"
	if err := harness.Appointments.UpdateAppointment(ctx, current); err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}

	// Same version again simulates a concurrent writer that read before the
	// first update landed.
	current.Notes = "second writer"
	if err := harness.Appointments.UpdateAppointment(ctx, current); !errors.Is(err, persistence.ErrStaleWrite) {
		t.Fatalf("stale update error = %v, want ErrStaleWrite", err)
	}

	got, err := harness.Appointments.GetAppointment(ctx, appointment.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if got.Version != 2 {
		t.Errorf("version = %d, want 2 after one successful update", got.Version)
	}
	if got.Notes != "first writer" {
		t.Errorf("notes = %q, want the first writer's value", got.Notes)
	}

	missing := got
	missing.ID = "missing"
	if err := harness.Appointments.UpdateAppointment(ctx, missing); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("missing update error = %v, want ErrNotFound", err)
	}
}

func TestAppointmentRepositoryRejectsUnknownReferences(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	appointment := testfixtures.NewAppointmentFixture(
		testfixtures.WithAppointmentRecipient("ghost"),
	).Persistence()
	if err := harness.Appointments.CreateAppointment(ctx, appointment); !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Errorf("unknown recipient error = %v, want ErrForeignKeyViolation", err)
	}
}

func TestAppointmentRepositoryListForEmployeeDate(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()
	employee, recipient := seedAppointmentGraph(t, harness)
	other := testfixtures.NewEmployeeFixture().Persistence()
	if err := harness.Employees.CreateEmployee(ctx, other); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	day := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	matching := testfixtures.NewAppointmentFixture(
		testfixtures.WithAppointmentEmployee(employee.ID),
		testfixtures.WithAppointmentRecipient(recipient.ID),
		testfixtures.WithAppointmentSlot(day, 9*60, 10*60),
	).Persistence()
	otherDay := testfixtures.NewAppointmentFixture(
		testfixtures.WithAppointmentEmployee(employee.ID),
		testfixtures.WithAppointmentRecipient(recipient.ID),
		testfixtures.WithAppointmentSlot(day.AddDate(0, 0, 1), 9*60, 10*60),
	).Persistence()
	otherEmployee := testfixtures.NewAppointmentFixture(
		testfixtures.WithAppointmentEmployee(other.ID),
		testfixtures.WithAppointmentRecipient(recipient.ID),
		testfixtures.WithAppointmentSlot(day, 11*60, 12*60),
	).Persistence()

	for _, appointment := range []persistence.Appointment{matching, otherDay, otherEmployee} {
		if err := harness.Appointments.CreateAppointment(ctx, appointment); err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}
	}

	got, err := harness.Appointments.ListForEmployeeDate(ctx, employee.ID, day)
	if err != nil {
		t.Fatalf("ListForEmployeeDate: %v", err)
	}
	if len(got) != 1 || got[0].ID != matching.ID {
		t.Errorf("day listing = %d entries, want just %s", len(got), matching.ID)
	}
}

func TestAvailabilityRepositoryListCovering(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	employee := testfixtures.NewEmployeeFixture().Persistence()
	if err := harness.Employees.CreateEmployee(ctx, employee); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	march := testfixtures.NewAvailabilityPeriodFixture(
		testfixtures.WithPeriodEmployee(employee.ID),
	).Persistence()
	april := testfixtures.NewAvailabilityPeriodFixture(
		testfixtures.WithPeriodEmployee(employee.ID),
		testfixtures.WithPeriodDates(
			time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
		),
		testfixtures.WithPeriodType("vacation"),
		testfixtures.WithPeriodWholeDay(),
	).Persistence()

	for _, period := range []persistence.AvailabilityPeriod{march, april} {
		if err := harness.Availability.CreateAvailabilityPeriod(ctx, period); err != nil {
			t.Fatalf("CreateAvailabilityPeriod: %v", err)
		}
	}

	covering, err := harness.Availability.ListCovering(ctx, employee.ID, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListCovering: %v", err)
	}
	if len(covering) != 1 || covering[0].ID != march.ID {
		t.Fatalf("covering = %d entries, want just %s", len(covering), march.ID)
	}
	if covering[0].StartMinutes == nil || *covering[0].StartMinutes != 8*60 {
		t.Errorf("window start = %v, want 480", covering[0].StartMinutes)
	}

	if err := harness.Availability.DeleteAvailabilityPeriod(ctx, march.ID); err != nil {
		t.Fatalf("DeleteAvailabilityPeriod: %v", err)
	}
	if err := harness.Availability.DeleteAvailabilityPeriod(ctx, march.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestNotificationRepositoryFilters(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()
	employee, recipient := seedAppointmentGraph(t, harness)

	appointment := testfixtures.NewAppointmentFixture(
		testfixtures.WithAppointmentEmployee(employee.ID),
		testfixtures.WithAppointmentRecipient(recipient.ID),
	).Persistence()
	if err := harness.Appointments.CreateAppointment(ctx, appointment); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}

	base := testfixtures.ReferenceTime()
	pending := persistence.Notification{
		ID: "note-1", EmployeeID: employee.ID, Type: "assignment",
		Subject: "New visit assignment", Status: "pending", DeliveryMethod: "email",
		ScheduledFor: base, AppointmentID: &appointment.ID, CreatedAt: base,
	}
	sentAt := base.Add(time.Minute)
	sent := persistence.Notification{
		ID: "note-2", EmployeeID: employee.ID, Type: "reminder",
		Subject: "Upcoming visit", Status: "sent", DeliveryMethod: "sms",
		ScheduledFor: base, SentAt: &sentAt, AppointmentID: &appointment.ID, CreatedAt: base,
	}
	for _, notification := range []persistence.Notification{pending, sent} {
		if err := harness.Notifications.CreateNotification(ctx, notification); err != nil {
			t.Fatalf("CreateNotification: %v", err)
		}
	}

	onlyPending, err := harness.Notifications.ListNotifications(ctx, persistence.NotificationFilter{
		AppointmentID: &appointment.ID,
		Statuses:      []string{"pending"},
	})
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(onlyPending) != 1 || onlyPending[0].ID != "note-1" {
		t.Errorf("pending listing = %d entries, want just note-1", len(onlyPending))
	}

	reminders, err := harness.Notifications.ListNotifications(ctx, persistence.NotificationFilter{
		EmployeeID: &employee.ID,
		Types:      []string{"reminder"},
	})
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(reminders) != 1 || reminders[0].ID != "note-2" {
		t.Errorf("type listing = %d entries, want just note-2", len(reminders))
	}
	if reminders[0].SentAt == nil || !reminders[0].SentAt.Equal(sentAt) {
		t.Errorf("sent_at = %v, want %v", reminders[0].SentAt, sentAt)
	}
}

func TestTemplateRepositoryUniqueName(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	base := testfixtures.ReferenceTime()
	template := persistence.ScheduleTemplate{
		ID: "tpl-1", Name: "weekday mornings", IsActive: true,
		TemplateData: map[string]any{"weekday": "monday", "start": "09:00"},
		CreatedAt:    base, UpdatedAt: base,
	}
	if err := harness.Templates.CreateTemplate(ctx, template); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}

	clash := persistence.ScheduleTemplate{ID: "tpl-2", Name: "weekday mornings", CreatedAt: base, UpdatedAt: base}
	if err := harness.Templates.CreateTemplate(ctx, clash); !errors.Is(err, persistence.ErrDuplicate) {
		t.Errorf("duplicate name error = %v, want ErrDuplicate", err)
	}

	byName, err := harness.Templates.GetTemplateByName(ctx, "weekday mornings")
	if err != nil {
		t.Fatalf("GetTemplateByName: %v", err)
	}
	if byName.ID != "tpl-1" {
		t.Errorf("lookup by name found %q, want tpl-1", byName.ID)
	}
	if byName.TemplateData["weekday"] != "monday" {
		t.Errorf("template data = %v, want round-tripped map", byName.TemplateData)
	}
}
