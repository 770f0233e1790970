package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/homecare-scheduler/internal/persistence"
	"github.com/example/homecare-scheduler/internal/scheduling"
)

// SchedulingPolicy carries the configurable knobs the scheduling service
// applies when queueing notifications.
type SchedulingPolicy struct {
	Triggers              scheduling.TriggerPolicy
	DefaultDeliveryMethod string
}

// DefaultSchedulingPolicy returns the policy used when configuration does not
// override it.
func DefaultSchedulingPolicy() SchedulingPolicy {
	return SchedulingPolicy{
		Triggers:              scheduling.DefaultTriggerPolicy(),
		DefaultDeliveryMethod: "email",
	}
}

// SchedulingService orchestrates appointment booking: validation, conflict
// detection, state transitions, and notification triggering. Writes touching
// an employee's day are serialised through a per-(employee, date) lock so the
// conflict check and the persist happen atomically with respect to each other.
type SchedulingService struct {
	appointments  persistence.AppointmentRepository
	employees     persistence.EmployeeRepository
	recipients    persistence.CareRecipientRepository
	availability  persistence.AvailabilityRepository
	notifications persistence.NotificationRepository
	policy        SchedulingPolicy
	idGenerator   func() string
	now           func() time.Time
	locks         *dayLock
	logger        *slog.Logger
}

// NewSchedulingService wires dependencies for the scheduling service.
func NewSchedulingService(
	appointments persistence.AppointmentRepository,
	employees persistence.EmployeeRepository,
	recipients persistence.CareRecipientRepository,
	availability persistence.AvailabilityRepository,
	notifications persistence.NotificationRepository,
	policy SchedulingPolicy,
	idGenerator func() string,
	now func() time.Time,
) *SchedulingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if policy.Triggers == (scheduling.TriggerPolicy{}) {
		policy.Triggers = scheduling.DefaultTriggerPolicy()
	}
	if policy.DefaultDeliveryMethod == "" {
		policy.DefaultDeliveryMethod = "email"
	}
	return &SchedulingService{
		appointments:  appointments,
		employees:     employees,
		recipients:    recipients,
		availability:  availability,
		notifications: notifications,
		policy:        policy,
		idGenerator:   idGenerator,
		now:           now,
		locks:         newDayLock(),
	}
}

// WithLogger attaches a base logger used when the context carries none.
func (s *SchedulingService) WithLogger(logger *slog.Logger) *SchedulingService {
	s.logger = logger
	return s
}

// CreateAppointment validates and books a visit. When an employee is assigned
// up front, the slot must survive conflict detection; an unassigned
// appointment always books.
func (s *SchedulingService) CreateAppointment(ctx context.Context, input AppointmentInput) (persistence.Appointment, error) {
	if s == nil {
		return persistence.Appointment{}, fmt.Errorf("SchedulingService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "scheduling", "create_appointment")

	vErr := validateStruct(input)
	if vErr == nil {
		vErr = &ValidationError{}
	}
	date := parseDateField(vErr, "scheduled_date", input.ScheduledDate)
	slot := parseTimeRange(vErr, "start_time", input.StartTime, "end_time", input.EndTime)
	if !vErr.HasErrors() && slot.Minutes() < 15 {
		vErr.add("end_time", "visit must last at least 15 minutes")
	}
	if vErr.HasErrors() {
		return persistence.Appointment{}, vErr
	}

	if _, err := s.activeRecipient(ctx, input.CareRecipientID); err != nil {
		return persistence.Appointment{}, err
	}
	if input.EmployeeID != nil {
		if _, err := s.activeEmployee(ctx, *input.EmployeeID); err != nil {
			return persistence.Appointment{}, err
		}
	}

	now := s.now()
	appointment := persistence.Appointment{
		ID:              s.idGenerator(),
		CareRecipientID: input.CareRecipientID,
		EmployeeID:      input.EmployeeID,
		ScheduledDate:   date,
		StartMinutes:    int(slot.Start),
		EndMinutes:      int(slot.End),
		DurationMinutes: slot.Minutes(),
		Status:          string(scheduling.StatusScheduled),
		PresenceStatus:  string(scheduling.PresencePending),
		CareTasks:       input.CareTasks,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
		Version:         1,
	}

	persist := func() error {
		if input.EmployeeID != nil {
			conflicts, err := s.findConflicts(ctx, *input.EmployeeID, date, slot, appointment.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return &ConflictError{Conflicts: conflicts}
			}
		}
		return mapRepoError(s.appointments.CreateAppointment(ctx, appointment))
	}

	if input.EmployeeID != nil {
		release := s.locks.Acquire(*input.EmployeeID, date)
		defer release()
	}
	if err := persist(); err != nil {
		return persistence.Appointment{}, err
	}

	requests := scheduling.DeriveNotifications(nil, viewOf(appointment), now)
	if err := s.queueNotifications(ctx, requests, nil); err != nil {
		logger.Warn("appointment booked but notification queueing failed", "appointment_id", appointment.ID, "error", err)
	}

	logger.Info("appointment created", "appointment_id", appointment.ID, "date", input.ScheduledDate)
	return appointment, nil
}

// GetAppointment retrieves a visit by id.
func (s *SchedulingService) GetAppointment(ctx context.Context, id string) (persistence.Appointment, error) {
	appointment, err := s.appointments.GetAppointment(ctx, id)
	if err != nil {
		return persistence.Appointment{}, mapRepoError(err)
	}
	return appointment, nil
}

// ListAppointments returns visits matching the filter.
func (s *SchedulingService) ListAppointments(ctx context.Context, filter persistence.AppointmentFilter) ([]persistence.Appointment, error) {
	appointments, err := s.appointments.ListAppointments(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return appointments, nil
}

// AssignEmployee assigns or reassigns a visit. The new assignee's day is
// conflict-checked with the appointment itself excluded, so reassignment to a
// slot only "blocked" by this same appointment succeeds. On reassignment, the
// pending assignment notice to the previous assignee is superseded.
func (s *SchedulingService) AssignEmployee(ctx context.Context, appointmentID, employeeID string) (persistence.Appointment, error) {
	if s == nil {
		return persistence.Appointment{}, fmt.Errorf("SchedulingService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "scheduling", "assign_employee", "appointment_id", appointmentID)

	if employeeID == "" {
		vErr := &ValidationError{}
		vErr.add("employee_id", "is required")
		return persistence.Appointment{}, vErr
	}

	appointment, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return persistence.Appointment{}, mapRepoError(err)
	}
	if scheduling.Status(appointment.Status).Terminal() {
		return persistence.Appointment{}, &scheduling.InvalidTransitionError{
			Field:  "status",
			From:   appointment.Status,
			To:     appointment.Status,
			Reason: "cannot assign an employee to a " + appointment.Status + " appointment",
		}
	}
	if _, err := s.activeEmployee(ctx, employeeID); err != nil {
		return persistence.Appointment{}, err
	}
	if appointment.EmployeeID != nil && *appointment.EmployeeID == employeeID {
		return appointment, nil
	}

	now := s.now()
	prev := appointment
	next := appointment
	next.EmployeeID = &employeeID
	next.PresenceStatus = string(scheduling.PresencePending)
	next.UpdatedAt = now

	slot := rangeOf(appointment)
	release := s.locks.Acquire(employeeID, appointment.ScheduledDate)
	defer release()

	conflicts, err := s.findConflicts(ctx, employeeID, appointment.ScheduledDate, slot, appointment.ID)
	if err != nil {
		return persistence.Appointment{}, err
	}
	if len(conflicts) > 0 {
		return persistence.Appointment{}, &ConflictError{Conflicts: conflicts}
	}

	if err := mapRepoError(s.appointments.UpdateAppointment(ctx, next)); err != nil {
		return persistence.Appointment{}, err
	}
	next.Version++

	if prev.EmployeeID != nil {
		if err := s.supersedePending(ctx, appointment.ID, *prev.EmployeeID, scheduling.NotificationAssignment); err != nil {
			logger.Warn("failed to supersede stale assignment notice", "error", err)
		}
	}

	requests := scheduling.DeriveNotifications(viewOf(prev), viewOf(next), now)
	if err := s.queueNotificationsDeduped(ctx, appointment.ID, requests); err != nil {
		logger.Warn("assignment persisted but notification queueing failed", "error", err)
	}

	logger.Info("employee assigned", "employee_id", employeeID)
	return next, nil
}

// UpdateAppointment applies a patch to a non-terminal visit. Rescheduling is
// conflict-checked against the assigned employee's day; a patch that changes
// nothing queues no notification.
func (s *SchedulingService) UpdateAppointment(ctx context.Context, appointmentID string, patch AppointmentPatch) (persistence.Appointment, error) {
	if s == nil {
		return persistence.Appointment{}, fmt.Errorf("SchedulingService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "scheduling", "update_appointment", "appointment_id", appointmentID)

	if vErr := validateStruct(patch); vErr.HasErrors() {
		return persistence.Appointment{}, vErr
	}

	appointment, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return persistence.Appointment{}, mapRepoError(err)
	}
	if scheduling.Status(appointment.Status).Terminal() {
		return persistence.Appointment{}, &scheduling.InvalidTransitionError{
			Field:  "status",
			From:   appointment.Status,
			To:     appointment.Status,
			Reason: "cannot modify a " + appointment.Status + " appointment",
		}
	}

	next, vErr := applyPatch(appointment, patch)
	if vErr.HasErrors() {
		return persistence.Appointment{}, vErr
	}

	now := s.now()
	prev := appointment
	slotChanged := next.ScheduledDate != prev.ScheduledDate ||
		next.StartMinutes != prev.StartMinutes || next.EndMinutes != prev.EndMinutes
	if !slotChanged && fieldEqual(next, prev) {
		return appointment, nil
	}
	next.UpdatedAt = now

	persist := func() error {
		if slotChanged && next.EmployeeID != nil {
			conflicts, err := s.findConflicts(ctx, *next.EmployeeID, next.ScheduledDate, rangeOf(next), next.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return &ConflictError{Conflicts: conflicts}
			}
		}
		return mapRepoError(s.appointments.UpdateAppointment(ctx, next))
	}

	if slotChanged && next.EmployeeID != nil {
		keys := []string{dayLockKey(*next.EmployeeID, next.ScheduledDate)}
		if !scheduling.SameDate(prev.ScheduledDate, next.ScheduledDate) {
			keys = append(keys, dayLockKey(*next.EmployeeID, prev.ScheduledDate))
		}
		release := s.locks.AcquireKeys(keys...)
		defer release()
	}
	if err := persist(); err != nil {
		return persistence.Appointment{}, err
	}
	next.Version++

	requests := scheduling.DeriveNotifications(viewOf(prev), viewOf(next), now)
	if err := s.queueNotificationsDeduped(ctx, appointmentID, requests); err != nil {
		logger.Warn("update persisted but notification queueing failed", "error", err)
	}

	logger.Info("appointment updated", "slot_changed", slotChanged)
	return next, nil
}

// SetStatus moves the visit through its lifecycle. Confirming requires the
// assignee's presence to be confirmed first; cancelling supersedes the
// appointment's still-pending notifications.
func (s *SchedulingService) SetStatus(ctx context.Context, appointmentID, status string) (persistence.Appointment, error) {
	if s == nil {
		return persistence.Appointment{}, fmt.Errorf("SchedulingService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "scheduling", "set_status", "appointment_id", appointmentID)

	appointment, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return persistence.Appointment{}, mapRepoError(err)
	}

	now := s.now()
	transition, err := scheduling.ApplyStatus(
		scheduling.Status(appointment.Status),
		scheduling.Presence(appointment.PresenceStatus),
		scheduling.Status(status),
		now,
	)
	if err != nil {
		return persistence.Appointment{}, err
	}

	next := appointment
	next.Status = status
	next.UpdatedAt = now
	if transition.ConfirmedAt != nil {
		next.ConfirmedAt = transition.ConfirmedAt
	}
	if transition.CompletedAt != nil {
		next.CompletedAt = transition.CompletedAt
	}

	if err := mapRepoError(s.appointments.UpdateAppointment(ctx, next)); err != nil {
		return persistence.Appointment{}, err
	}
	next.Version++

	if scheduling.Status(status) == scheduling.StatusCancelled {
		if err := s.cancelPendingForAppointment(ctx, appointmentID); err != nil {
			logger.Warn("cancellation persisted but pending notifications were not superseded", "error", err)
		}
	}

	logger.Info("status changed", "from", appointment.Status, "to", status)
	return next, nil
}

// SetPresence records the assignee's acknowledgment.
func (s *SchedulingService) SetPresence(ctx context.Context, appointmentID, presence string) (persistence.Appointment, error) {
	if s == nil {
		return persistence.Appointment{}, fmt.Errorf("SchedulingService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "scheduling", "set_presence", "appointment_id", appointmentID)

	appointment, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return persistence.Appointment{}, mapRepoError(err)
	}

	if err := scheduling.ApplyPresence(
		scheduling.Presence(appointment.PresenceStatus),
		scheduling.Presence(presence),
	); err != nil {
		return persistence.Appointment{}, err
	}

	next := appointment
	next.PresenceStatus = presence
	next.UpdatedAt = s.now()

	if err := mapRepoError(s.appointments.UpdateAppointment(ctx, next)); err != nil {
		return persistence.Appointment{}, err
	}
	next.Version++

	logger.Info("presence changed", "from", appointment.PresenceStatus, "to", presence)
	return next, nil
}

// QueryAvailability reports whether the employee can take the requested slot
// under their declared availability, ignoring existing bookings.
func (s *SchedulingService) QueryAvailability(ctx context.Context, query AvailabilityQuery) (bool, error) {
	if s == nil {
		return false, fmt.Errorf("SchedulingService is nil")
	}

	vErr := validateStruct(query)
	if vErr == nil {
		vErr = &ValidationError{}
	}
	date := parseDateField(vErr, "date", query.Date)
	slot := parseTimeRange(vErr, "start_time", query.StartTime, "end_time", query.EndTime)
	if vErr.HasErrors() {
		return false, vErr
	}

	if _, err := s.employees.GetEmployee(ctx, query.EmployeeID); err != nil {
		return false, mapRepoError(err)
	}

	day, err := s.resolveDay(ctx, query.EmployeeID, date)
	if err != nil {
		return false, err
	}
	return day.Allows(slot), nil
}

// ListConflicts runs conflict detection for a hypothetical slot without
// booking anything, returning every violation.
func (s *SchedulingService) ListConflicts(ctx context.Context, query AvailabilityQuery, excludeAppointmentID string) ([]scheduling.Conflict, error) {
	if s == nil {
		return nil, fmt.Errorf("SchedulingService is nil")
	}

	vErr := validateStruct(query)
	if vErr == nil {
		vErr = &ValidationError{}
	}
	date := parseDateField(vErr, "date", query.Date)
	slot := parseTimeRange(vErr, "start_time", query.StartTime, "end_time", query.EndTime)
	if vErr.HasErrors() {
		return nil, vErr
	}

	if _, err := s.employees.GetEmployee(ctx, query.EmployeeID); err != nil {
		return nil, mapRepoError(err)
	}
	return s.findConflicts(ctx, query.EmployeeID, date, slot, excludeAppointmentID)
}

func (s *SchedulingService) activeEmployee(ctx context.Context, id string) (persistence.Employee, error) {
	employee, err := s.employees.GetEmployee(ctx, id)
	if err != nil {
		return persistence.Employee{}, mapRepoError(err)
	}
	if !employee.IsActive {
		return persistence.Employee{}, fmt.Errorf("employee %s is inactive: %w", id, ErrNotFound)
	}
	return employee, nil
}

func (s *SchedulingService) activeRecipient(ctx context.Context, id string) (persistence.CareRecipient, error) {
	recipient, err := s.recipients.GetCareRecipient(ctx, id)
	if err != nil {
		return persistence.CareRecipient{}, mapRepoError(err)
	}
	if !recipient.IsActive {
		return persistence.CareRecipient{}, fmt.Errorf("care recipient %s is inactive: %w", id, ErrNotFound)
	}
	return recipient, nil
}

func (s *SchedulingService) resolveDay(ctx context.Context, employeeID string, date time.Time) (scheduling.DaySchedule, error) {
	records, err := s.availability.ListCovering(ctx, employeeID, date)
	if err != nil {
		return scheduling.DaySchedule{}, mapRepoError(err)
	}
	periods := make([]scheduling.Period, 0, len(records))
	for _, record := range records {
		periods = append(periods, periodOf(record))
	}
	return scheduling.ResolveDay(periods, date), nil
}

func (s *SchedulingService) findConflicts(ctx context.Context, employeeID string, date time.Time, slot scheduling.TimeRange, excludeID string) ([]scheduling.Conflict, error) {
	records, err := s.appointments.ListForEmployeeDate(ctx, employeeID, date)
	if err != nil {
		return nil, mapRepoError(err)
	}
	bookings := make([]scheduling.Booking, 0, len(records))
	for _, record := range records {
		if scheduling.Status(record.Status) == scheduling.StatusCancelled {
			continue
		}
		bookings = append(bookings, bookingOf(record))
	}

	day, err := s.resolveDay(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	candidate := scheduling.Booking{
		EmployeeID: &employeeID,
		Date:       date,
		Range:      slot,
	}
	return scheduling.FindConflicts(bookings, candidate, day, excludeID), nil
}

// queueNotificationsDeduped drops requests that duplicate a still-pending
// notification for the appointment before queueing the remainder.
func (s *SchedulingService) queueNotificationsDeduped(ctx context.Context, appointmentID string, requests []scheduling.NotificationRequest) error {
	if len(requests) == 0 {
		return nil
	}
	pending, err := s.pendingKeys(ctx, appointmentID)
	if err != nil {
		return err
	}
	return s.queueNotifications(ctx, scheduling.DedupeRequests(requests, pending), nil)
}

func (s *SchedulingService) queueNotifications(ctx context.Context, requests []scheduling.NotificationRequest, metadata map[string]string) error {
	now := s.now()
	for _, request := range requests {
		appointmentID := request.AppointmentID
		notification := persistence.Notification{
			ID:             s.idGenerator(),
			EmployeeID:     request.EmployeeID,
			Type:           string(request.Type),
			Subject:        request.Subject,
			Message:        request.Message,
			Status:         string(scheduling.DeliveryPending),
			DeliveryMethod: s.policy.DefaultDeliveryMethod,
			ScheduledFor:   request.ScheduledFor,
			AppointmentID:  &appointmentID,
			Metadata:       metadata,
			CreatedAt:      now,
		}
		if err := s.notifications.CreateNotification(ctx, notification); err != nil {
			return mapRepoError(err)
		}
	}
	return nil
}

// pendingKeys loads the dedupe identities of the appointment's still-pending
// notifications.
func (s *SchedulingService) pendingKeys(ctx context.Context, appointmentID string) ([]scheduling.PendingKey, error) {
	records, err := s.notifications.ListNotifications(ctx, persistence.NotificationFilter{
		AppointmentID: &appointmentID,
		Statuses:      []string{string(scheduling.DeliveryPending)},
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	keys := make([]scheduling.PendingKey, 0, len(records))
	for _, record := range records {
		keys = append(keys, scheduling.PendingKey{
			AppointmentID: appointmentID,
			EmployeeID:    record.EmployeeID,
			Type:          scheduling.NotificationType(record.Type),
		})
	}
	return keys, nil
}

// supersedePending cancels the employee's pending notifications of one type
// for the appointment, typically a stale assignment notice after reassignment.
func (s *SchedulingService) supersedePending(ctx context.Context, appointmentID, employeeID string, kind scheduling.NotificationType) error {
	records, err := s.notifications.ListNotifications(ctx, persistence.NotificationFilter{
		AppointmentID: &appointmentID,
		EmployeeID:    &employeeID,
		Statuses:      []string{string(scheduling.DeliveryPending)},
		Types:         []string{string(kind)},
	})
	if err != nil {
		return mapRepoError(err)
	}
	for _, record := range records {
		record.Status = string(scheduling.DeliveryCancelled)
		if err := s.notifications.UpdateNotification(ctx, record); err != nil {
			return mapRepoError(err)
		}
	}
	return nil
}

func (s *SchedulingService) cancelPendingForAppointment(ctx context.Context, appointmentID string) error {
	records, err := s.notifications.ListNotifications(ctx, persistence.NotificationFilter{
		AppointmentID: &appointmentID,
		Statuses:      []string{string(scheduling.DeliveryPending)},
	})
	if err != nil {
		return mapRepoError(err)
	}
	for _, record := range records {
		record.Status = string(scheduling.DeliveryCancelled)
		if err := s.notifications.UpdateNotification(ctx, record); err != nil {
			return mapRepoError(err)
		}
	}
	return nil
}

// applyPatch merges the patch into a copy of the appointment, re-deriving the
// duration when the slot changes.
func applyPatch(appointment persistence.Appointment, patch AppointmentPatch) (persistence.Appointment, *ValidationError) {
	vErr := &ValidationError{}
	next := appointment

	if patch.ScheduledDate != nil {
		next.ScheduledDate = parseDateField(vErr, "scheduled_date", *patch.ScheduledDate)
	}
	startValue := scheduling.TimeOfDay(next.StartMinutes).String()
	endValue := scheduling.TimeOfDay(next.EndMinutes).String()
	if patch.StartTime != nil {
		startValue = *patch.StartTime
	}
	if patch.EndTime != nil {
		endValue = *patch.EndTime
	}
	if patch.StartTime != nil || patch.EndTime != nil {
		slot := parseTimeRange(vErr, "start_time", startValue, "end_time", endValue)
		if !vErr.HasErrors() && slot.Minutes() < 15 {
			vErr.add("end_time", "visit must last at least 15 minutes")
		}
		if !vErr.HasErrors() {
			next.StartMinutes = int(slot.Start)
			next.EndMinutes = int(slot.End)
			next.DurationMinutes = slot.Minutes()
		}
	}
	if patch.CareTasks != nil {
		next.CareTasks = *patch.CareTasks
	}
	if patch.Notes != nil {
		next.Notes = *patch.Notes
	}
	if patch.CompletionNotes != nil {
		next.CompletionNotes = *patch.CompletionNotes
	}

	if vErr.HasErrors() {
		return persistence.Appointment{}, vErr
	}
	return next, vErr
}

// fieldEqual compares the patchable scalar fields of two appointments.
func fieldEqual(a, b persistence.Appointment) bool {
	if a.Notes != b.Notes || a.CompletionNotes != b.CompletionNotes {
		return false
	}
	if len(a.CareTasks) != len(b.CareTasks) {
		return false
	}
	for i := range a.CareTasks {
		if a.CareTasks[i] != b.CareTasks[i] {
			return false
		}
	}
	return true
}

func periodOf(record persistence.AvailabilityPeriod) scheduling.Period {
	period := scheduling.Period{
		ID:         record.ID,
		EmployeeID: record.EmployeeID,
		StartDate:  record.StartDate,
		EndDate:    record.EndDate,
		Type:       scheduling.PeriodType(record.AvailabilityType),
		CreatedAt:  record.CreatedAt,
	}
	if record.StartMinutes != nil && record.EndMinutes != nil {
		period.Window = &scheduling.TimeRange{
			Start: scheduling.TimeOfDay(*record.StartMinutes),
			End:   scheduling.TimeOfDay(*record.EndMinutes),
		}
	}
	for _, name := range record.RecurringDays {
		if weekday, ok := scheduling.ParseWeekday(name); ok {
			period.Weekdays = append(period.Weekdays, weekday)
		}
	}
	return period
}

func rangeOf(appointment persistence.Appointment) scheduling.TimeRange {
	return scheduling.TimeRange{
		Start: scheduling.TimeOfDay(appointment.StartMinutes),
		End:   scheduling.TimeOfDay(appointment.EndMinutes),
	}
}

func bookingOf(appointment persistence.Appointment) scheduling.Booking {
	return scheduling.Booking{
		AppointmentID: appointment.ID,
		EmployeeID:    appointment.EmployeeID,
		Date:          appointment.ScheduledDate,
		Range:         rangeOf(appointment),
	}
}

func viewOf(appointment persistence.Appointment) *scheduling.AppointmentView {
	return &scheduling.AppointmentView{
		ID:         appointment.ID,
		EmployeeID: appointment.EmployeeID,
		Date:       appointment.ScheduledDate,
		Range:      rangeOf(appointment),
		Status:     scheduling.Status(appointment.Status),
		Presence:   scheduling.Presence(appointment.PresenceStatus),
	}
}
