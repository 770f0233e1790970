package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/homecare-scheduler/internal/persistence"
	"github.com/example/homecare-scheduler/internal/scheduling"
)

var referenceNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

type schedulingFixture struct {
	service       *SchedulingService
	appointments  *memAppointments
	employees     *memEmployees
	recipients    *memRecipients
	availability  *memAvailability
	notifications *memNotifications
}

func newSchedulingFixture(t *testing.T) *schedulingFixture {
	t.Helper()

	employees := newMemEmployees(
		persistence.Employee{ID: "emp-1", FirstName: "Ada", LastName: "Nilsen", Email: "ada@example.com", Role: "caretaker", IsActive: true},
		persistence.Employee{ID: "emp-2", FirstName: "Bo", LastName: "Berg", Email: "bo@example.com", Role: "caretaker", IsActive: true},
		persistence.Employee{ID: "emp-inactive", FirstName: "Eli", LastName: "Moe", Email: "eli@example.com", Role: "caretaker", IsActive: false},
	)
	recipients := newMemRecipients(
		persistence.CareRecipient{ID: "cr-1", FirstName: "Olga", LastName: "Dahl", Address: "Main St 1", IsActive: true},
		persistence.CareRecipient{ID: "cr-inactive", FirstName: "Per", LastName: "Vik", Address: "Side St 2", IsActive: false},
	)
	availability := newMemAvailability(
		// Both active employees work 08:00-16:00 every day of March.
		fullMonthAvailability("av-1", "emp-1"),
		fullMonthAvailability("av-2", "emp-2"),
	)

	appointments := newMemAppointments()
	notifications := newMemNotifications()

	service := NewSchedulingService(
		appointments, employees, recipients, availability, notifications,
		DefaultSchedulingPolicy(),
		sequenceIDs("id"),
		fixedNow(referenceNow),
	)

	return &schedulingFixture{
		service:       service,
		appointments:  appointments,
		employees:     employees,
		recipients:    recipients,
		availability:  availability,
		notifications: notifications,
	}
}

func fullMonthAvailability(id, employeeID string) persistence.AvailabilityPeriod {
	start := 8 * 60
	end := 16 * 60
	return persistence.AvailabilityPeriod{
		ID:               id,
		EmployeeID:       employeeID,
		StartDate:        time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		StartMinutes:     &start,
		EndMinutes:       &end,
		AvailabilityType: "available",
	}
}

func validInput(employeeID *string) AppointmentInput {
	return AppointmentInput{
		CareRecipientID: "cr-1",
		EmployeeID:      employeeID,
		ScheduledDate:   "2025-03-12",
		StartTime:       "09:00",
		EndTime:         "10:00",
		CareTasks:       []string{"medication"},
	}
}

func strPtr(s string) *string { return &s }

func TestCreateAppointmentAssigned(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)

	appointment, err := fx.service.CreateAppointment(context.Background(), validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}
	if appointment.Status != string(scheduling.StatusScheduled) {
		t.Errorf("status = %q, want scheduled", appointment.Status)
	}
	if appointment.PresenceStatus != string(scheduling.PresencePending) {
		t.Errorf("presence = %q, want pending", appointment.PresenceStatus)
	}
	if appointment.Version != 1 {
		t.Errorf("version = %d, want 1", appointment.Version)
	}
	if appointment.DurationMinutes != 60 {
		t.Errorf("duration = %d, want 60", appointment.DurationMinutes)
	}

	queued := fx.notifications.all()
	if len(queued) != 1 {
		t.Fatalf("queued %d notifications, want 1", len(queued))
	}
	if queued[0].Type != string(scheduling.NotificationAssignment) {
		t.Errorf("notification type = %q, want assignment", queued[0].Type)
	}
	if queued[0].EmployeeID != "emp-1" {
		t.Errorf("notification employee = %q, want emp-1", queued[0].EmployeeID)
	}
	if queued[0].Status != string(scheduling.DeliveryPending) {
		t.Errorf("notification status = %q, want pending", queued[0].Status)
	}
}

func TestCreateAppointmentUnassignedSkipsConflictsAndNotifications(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)

	// No availability is declared outside March; an unassigned booking on
	// such a date must still succeed.
	input := validInput(nil)
	input.ScheduledDate = "2025-04-02"

	appointment, err := fx.service.CreateAppointment(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}
	if appointment.EmployeeID != nil {
		t.Errorf("employee = %v, want nil", *appointment.EmployeeID)
	}
	if len(fx.notifications.all()) != 0 {
		t.Errorf("queued %d notifications, want 0", len(fx.notifications.all()))
	}
}

func TestCreateAppointmentOverlapConflict(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	first, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("first CreateAppointment returned error: %v", err)
	}

	second := validInput(strPtr("emp-1"))
	second.StartTime = "09:30"
	second.EndTime = "10:30"

	_, err = fx.service.CreateAppointment(ctx, second)
	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("error = %v, want ConflictError", err)
	}
	ids := cErr.AppointmentIDs()
	if len(ids) != 1 || ids[0] != first.ID {
		t.Errorf("conflicting ids = %v, want [%s]", ids, first.ID)
	}
}

func TestCreateAppointmentBackToBackSlots(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	if _, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1"))); err != nil {
		t.Fatalf("first CreateAppointment returned error: %v", err)
	}

	adjacent := validInput(strPtr("emp-1"))
	adjacent.StartTime = "10:00"
	adjacent.EndTime = "11:00"
	if _, err := fx.service.CreateAppointment(ctx, adjacent); err != nil {
		t.Fatalf("back-to-back CreateAppointment returned error: %v", err)
	}
}

func TestCreateAppointmentDuringVacation(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	vacation := persistence.AvailabilityPeriod{
		ID:               "av-vac",
		EmployeeID:       "emp-1",
		StartDate:        time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
		AvailabilityType: "vacation",
	}
	if err := fx.availability.CreateAvailabilityPeriod(ctx, vacation); err != nil {
		t.Fatalf("seeding vacation period: %v", err)
	}

	_, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("error = %v, want ConflictError", err)
	}
	if len(cErr.Conflicts) != 1 || cErr.Conflicts[0].Kind != scheduling.ConflictKindUnavailable {
		t.Errorf("conflicts = %+v, want one unavailable conflict", cErr.Conflicts)
	}
}

func TestCreateAppointmentCancelledBookingDoesNotBlock(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	first, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("first CreateAppointment returned error: %v", err)
	}
	if _, err := fx.service.SetStatus(ctx, first.ID, string(scheduling.StatusCancelled)); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}

	if _, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1"))); err != nil {
		t.Fatalf("rebooking over cancelled slot returned error: %v", err)
	}
}

func TestCreateAppointmentReferenceChecks(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input AppointmentInput
	}{
		{
			name: "unknown care recipient",
			input: func() AppointmentInput {
				input := validInput(nil)
				input.CareRecipientID = "cr-missing"
				return input
			}(),
		},
		{
			name: "inactive care recipient",
			input: func() AppointmentInput {
				input := validInput(nil)
				input.CareRecipientID = "cr-inactive"
				return input
			}(),
		},
		{
			name:  "unknown employee",
			input: validInput(strPtr("emp-missing")),
		},
		{
			name:  "inactive employee",
			input: validInput(strPtr("emp-inactive")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.CreateAppointment(ctx, tt.input)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*AppointmentInput)
		field  string
	}{
		{
			name:   "missing care recipient",
			mutate: func(in *AppointmentInput) { in.CareRecipientID = "" },
			field:  "care_recipient_id",
		},
		{
			name:   "malformed date",
			mutate: func(in *AppointmentInput) { in.ScheduledDate = "12/03/2025" },
			field:  "scheduled_date",
		},
		{
			name:   "end before start",
			mutate: func(in *AppointmentInput) { in.StartTime = "10:00"; in.EndTime = "09:00" },
			field:  "end_time",
		},
		{
			name:   "zero length slot",
			mutate: func(in *AppointmentInput) { in.StartTime = "10:00"; in.EndTime = "10:00" },
			field:  "end_time",
		},
		{
			name:   "below minimum duration",
			mutate: func(in *AppointmentInput) { in.StartTime = "10:00"; in.EndTime = "10:10" },
			field:  "end_time",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(nil)
			tt.mutate(&input)
			_, err := fx.service.CreateAppointment(ctx, input)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if _, ok := vErr.FieldErrors[tt.field]; !ok {
				t.Errorf("FieldErrors = %v, want entry for %q", vErr.FieldErrors, tt.field)
			}
		})
	}
}

func TestAssignEmployee(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	appointment, err := fx.service.CreateAppointment(ctx, validInput(nil))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}

	assigned, err := fx.service.AssignEmployee(ctx, appointment.ID, "emp-1")
	if err != nil {
		t.Fatalf("AssignEmployee returned error: %v", err)
	}
	if assigned.EmployeeID == nil || *assigned.EmployeeID != "emp-1" {
		t.Fatalf("employee = %v, want emp-1", assigned.EmployeeID)
	}
	if assigned.Version != appointment.Version+1 {
		t.Errorf("version = %d, want %d", assigned.Version, appointment.Version+1)
	}

	queued := fx.notifications.all()
	if len(queued) != 1 || queued[0].Type != string(scheduling.NotificationAssignment) {
		t.Fatalf("queued = %+v, want one assignment notification", queued)
	}
}

func TestReassignEmployeeSupersedesAndNotifies(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	appointment, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}

	reassigned, err := fx.service.AssignEmployee(ctx, appointment.ID, "emp-2")
	if err != nil {
		t.Fatalf("AssignEmployee returned error: %v", err)
	}
	if reassigned.PresenceStatus != string(scheduling.PresencePending) {
		t.Errorf("presence = %q, want pending after reassignment", reassigned.PresenceStatus)
	}

	byType := make(map[string][]persistence.Notification)
	for _, notification := range fx.notifications.all() {
		byType[notification.Type] = append(byType[notification.Type], notification)
	}

	assignments := byType[string(scheduling.NotificationAssignment)]
	if len(assignments) != 2 {
		t.Fatalf("assignment notifications = %d, want 2", len(assignments))
	}
	// The original assignee's pending notice is superseded, not deleted.
	if assignments[0].EmployeeID != "emp-1" || assignments[0].Status != string(scheduling.DeliveryCancelled) {
		t.Errorf("original notice = %+v, want cancelled for emp-1", assignments[0])
	}
	if assignments[1].EmployeeID != "emp-2" || assignments[1].Status != string(scheduling.DeliveryPending) {
		t.Errorf("new notice = %+v, want pending for emp-2", assignments[1])
	}

	changes := byType[string(scheduling.NotificationScheduleChange)]
	if len(changes) != 1 || changes[0].EmployeeID != "emp-1" {
		t.Errorf("schedule_change notifications = %+v, want one for emp-1", changes)
	}
}

func TestAssignEmployeeConflictExcludesSelf(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	appointment, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}

	// Reassigning to the same slot's existing holder must not trip over the
	// appointment's own booking.
	if _, err := fx.service.AssignEmployee(ctx, appointment.ID, "emp-2"); err != nil {
		t.Fatalf("AssignEmployee returned error: %v", err)
	}
	if _, err := fx.service.AssignEmployee(ctx, appointment.ID, "emp-1"); err != nil {
		t.Fatalf("AssignEmployee back returned error: %v", err)
	}
}

func TestAssignEmployeeBlockedByOtherBooking(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	blocker, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-2")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}
	unassigned, err := fx.service.CreateAppointment(ctx, validInput(nil))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}

	_, err = fx.service.AssignEmployee(ctx, unassigned.ID, "emp-2")
	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("error = %v, want ConflictError", err)
	}
	ids := cErr.AppointmentIDs()
	if len(ids) != 1 || ids[0] != blocker.ID {
		t.Errorf("conflicting ids = %v, want [%s]", ids, blocker.ID)
	}
}

func TestAssignEmployeeTerminalAppointment(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	appointment, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}
	if _, err := fx.service.SetStatus(ctx, appointment.ID, string(scheduling.StatusCancelled)); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}

	_, err = fx.service.AssignEmployee(ctx, appointment.ID, "emp-2")
	var tErr *scheduling.InvalidTransitionError
	if !errors.As(err, &tErr) {
		t.Fatalf("error = %v, want InvalidTransitionError", err)
	}
}

func TestUpdateAppointmentReschedule(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	appointment, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}

	updated, err := fx.service.UpdateAppointment(ctx, appointment.ID, AppointmentPatch{
		StartTime: strPtr("11:00"),
		EndTime:   strPtr("12:00"),
	})
	if err != nil {
		t.Fatalf("UpdateAppointment returned error: %v", err)
	}
	if updated.StartMinutes != 11*60 || updated.EndMinutes != 12*60 {
		t.Errorf("slot = %d-%d, want 660-720", updated.StartMinutes, updated.EndMinutes)
	}
	if updated.DurationMinutes != 60 {
		t.Errorf("duration = %d, want 60", updated.DurationMinutes)
	}

	var changes []persistence.Notification
	for _, notification := range fx.notifications.all() {
		if notification.Type == string(scheduling.NotificationScheduleChange) {
			changes = append(changes, notification)
		}
	}
	if len(changes) != 1 || changes[0].EmployeeID != "emp-1" {
		t.Errorf("schedule_change notifications = %+v, want one for emp-1", changes)
	}
}

func TestUpdateAppointmentIdenticalPatchIsIdempotent(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	appointment, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}
	before := len(fx.notifications.all())

	same, err := fx.service.UpdateAppointment(ctx, appointment.ID, AppointmentPatch{
		StartTime: strPtr("09:00"),
		EndTime:   strPtr("10:00"),
	})
	if err != nil {
		t.Fatalf("UpdateAppointment returned error: %v", err)
	}
	if same.Version != appointment.Version {
		t.Errorf("version = %d, want unchanged %d", same.Version, appointment.Version)
	}
	if got := len(fx.notifications.all()); got != before {
		t.Errorf("notifications = %d, want %d (no new notifications)", got, before)
	}
}

func TestUpdateAppointmentTerminal(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	appointment, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}
	if _, err := fx.service.SetStatus(ctx, appointment.ID, string(scheduling.StatusCancelled)); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}

	_, err = fx.service.UpdateAppointment(ctx, appointment.ID, AppointmentPatch{Notes: strPtr("late change")})
	var tErr *scheduling.InvalidTransitionError
	if !errors.As(err, &tErr) {
		t.Fatalf("error = %v, want InvalidTransitionError", err)
	}
}

func TestSetStatusLifecycle(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	appointment, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}

	// Confirming before presence confirmation violates the cross-field guard.
	_, err = fx.service.SetStatus(ctx, appointment.ID, string(scheduling.StatusConfirmed))
	var tErr *scheduling.InvalidTransitionError
	if !errors.As(err, &tErr) {
		t.Fatalf("error = %v, want InvalidTransitionError", err)
	}
	if tErr.Reason == "" {
		t.Errorf("expected guard reason on transition error")
	}

	if _, err := fx.service.SetPresence(ctx, appointment.ID, string(scheduling.PresenceConfirmed)); err != nil {
		t.Fatalf("SetPresence returned error: %v", err)
	}
	confirmed, err := fx.service.SetStatus(ctx, appointment.ID, string(scheduling.StatusConfirmed))
	if err != nil {
		t.Fatalf("SetStatus(confirmed) returned error: %v", err)
	}
	if confirmed.ConfirmedAt == nil || !confirmed.ConfirmedAt.Equal(referenceNow) {
		t.Errorf("ConfirmedAt = %v, want %v", confirmed.ConfirmedAt, referenceNow)
	}

	if _, err := fx.service.SetStatus(ctx, appointment.ID, string(scheduling.StatusInProgress)); err != nil {
		t.Fatalf("SetStatus(in_progress) returned error: %v", err)
	}
	completed, err := fx.service.SetStatus(ctx, appointment.ID, string(scheduling.StatusCompleted))
	if err != nil {
		t.Fatalf("SetStatus(completed) returned error: %v", err)
	}
	if completed.CompletedAt == nil || !completed.CompletedAt.Equal(referenceNow) {
		t.Errorf("CompletedAt = %v, want %v", completed.CompletedAt, referenceNow)
	}

	// Terminal state rejects further moves.
	if _, err := fx.service.SetStatus(ctx, appointment.ID, string(scheduling.StatusCancelled)); err == nil {
		t.Errorf("expected error cancelling a completed appointment")
	}
}

func TestSetStatusCancelledSupersedesPending(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	appointment, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}
	if _, err := fx.service.SetStatus(ctx, appointment.ID, string(scheduling.StatusCancelled)); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}

	for _, notification := range fx.notifications.all() {
		if notification.Status != string(scheduling.DeliveryCancelled) {
			t.Errorf("notification %s status = %q, want cancelled", notification.ID, notification.Status)
		}
	}
}

func TestSetPresenceTerminal(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	appointment, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}
	if _, err := fx.service.SetPresence(ctx, appointment.ID, string(scheduling.PresenceDeclined)); err != nil {
		t.Fatalf("SetPresence returned error: %v", err)
	}

	_, err = fx.service.SetPresence(ctx, appointment.ID, string(scheduling.PresenceConfirmed))
	var tErr *scheduling.InvalidTransitionError
	if !errors.As(err, &tErr) {
		t.Fatalf("error = %v, want InvalidTransitionError", err)
	}
}

func TestStaleWriteBecomesRetryable(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	appointment, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}

	fx.appointments.updateErr = persistence.ErrStaleWrite
	_, err = fx.service.SetPresence(ctx, appointment.ID, string(scheduling.PresenceConfirmed))
	var rErr *RetryableError
	if !errors.As(err, &rErr) {
		t.Fatalf("error = %v, want RetryableError", err)
	}
	if !errors.Is(err, persistence.ErrStaleWrite) {
		t.Errorf("expected wrapped stale-write cause")
	}
}

func TestQueryAvailability(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query AvailabilityQuery
		want  bool
	}{
		{
			name:  "inside declared window",
			query: AvailabilityQuery{EmployeeID: "emp-1", Date: "2025-03-12", StartTime: "09:00", EndTime: "10:00"},
			want:  true,
		},
		{
			name:  "outside declared window",
			query: AvailabilityQuery{EmployeeID: "emp-1", Date: "2025-03-12", StartTime: "17:00", EndTime: "18:00"},
			want:  false,
		},
		{
			name:  "no declarations means unavailable",
			query: AvailabilityQuery{EmployeeID: "emp-1", Date: "2025-04-12", StartTime: "09:00", EndTime: "10:00"},
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fx.service.QueryAvailability(ctx, tt.query)
			if err != nil {
				t.Fatalf("QueryAvailability returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("available = %v, want %v", got, tt.want)
			}
		})
	}

	_, err := fx.service.QueryAvailability(ctx, AvailabilityQuery{EmployeeID: "emp-missing", Date: "2025-03-12", StartTime: "09:00", EndTime: "10:00"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListConflictsDryRun(t *testing.T) {
	t.Parallel()
	fx := newSchedulingFixture(t)
	ctx := context.Background()

	booked, err := fx.service.CreateAppointment(ctx, validInput(strPtr("emp-1")))
	if err != nil {
		t.Fatalf("CreateAppointment returned error: %v", err)
	}

	conflicts, err := fx.service.ListConflicts(ctx, AvailabilityQuery{
		EmployeeID: "emp-1", Date: "2025-03-12", StartTime: "09:30", EndTime: "10:30",
	}, "")
	if err != nil {
		t.Fatalf("ListConflicts returned error: %v", err)
	}
	if len(conflicts) != 1 || conflicts[0].WithAppointmentID != booked.ID {
		t.Errorf("conflicts = %+v, want one overlap with %s", conflicts, booked.ID)
	}

	// Excluding the booked appointment itself clears the slot.
	conflicts, err = fx.service.ListConflicts(ctx, AvailabilityQuery{
		EmployeeID: "emp-1", Date: "2025-03-12", StartTime: "09:30", EndTime: "10:30",
	}, booked.ID)
	if err != nil {
		t.Fatalf("ListConflicts returned error: %v", err)
	}
	if len(conflicts) != 0 {
		t.Errorf("conflicts = %+v, want none when excluding the booking", conflicts)
	}
}
