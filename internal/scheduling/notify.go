package scheduling

import (
	"fmt"
	"time"
)

// NotificationType identifies why a notification was raised.
type NotificationType string

const (
	NotificationAssignment          NotificationType = "assignment"
	NotificationReminder            NotificationType = "reminder"
	NotificationScheduleChange      NotificationType = "schedule_change"
	NotificationConfirmationRequest NotificationType = "confirmation_request"
)

// DeliveryStatus tracks a notification through the dispatcher.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
	// DeliveryCancelled marks a pending notification superseded by a later
	// event, such as a reassignment replacing an earlier assignment notice.
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// AppointmentView is the slice of appointment state the trigger rules read.
type AppointmentView struct {
	ID         string
	EmployeeID *string
	Date       time.Time
	Range      TimeRange
	Status     Status
	Presence   Presence
}

// NotificationRequest asks the persistence collaborator to create one
// notification record. The engine only decides what must be queued; delivery
// belongs to the dispatcher.
type NotificationRequest struct {
	EmployeeID    string
	AppointmentID string
	Type          NotificationType
	Subject       string
	Message       string
	ScheduledFor  time.Time
}

// TriggerPolicy holds the tunable knobs the trigger rules depend on.
type TriggerPolicy struct {
	// ConfirmationLead is how far ahead of the appointment start a
	// confirmation request becomes due.
	ConfirmationLead time.Duration
	// ReminderLead is how far ahead of the appointment start a reminder
	// becomes due for confirmed assignees.
	ReminderLead time.Duration
}

// DefaultTriggerPolicy returns the policy used when no configuration
// overrides it.
func DefaultTriggerPolicy() TriggerPolicy {
	return TriggerPolicy{
		ConfirmationLead: 24 * time.Hour,
		ReminderLead:     2 * time.Hour,
	}
}

// PendingKey identifies a pending notification for deduplication. Two
// requests with equal keys are the same logical event.
type PendingKey struct {
	AppointmentID string
	EmployeeID    string
	Type          NotificationType
}

// Key derives the dedupe identity of a request.
func (r NotificationRequest) Key() PendingKey {
	return PendingKey{AppointmentID: r.AppointmentID, EmployeeID: r.EmployeeID, Type: r.Type}
}

// DeriveNotifications is a pure function of (previous state, next state) that
// yields the notifications a transition requires. prev is nil on creation.
//
// Rules: creating or assigning with an employee raises ASSIGNMENT to the new
// assignee; a reassignment additionally raises SCHEDULE_CHANGE to the
// previous assignee; any change to the scheduled date or time range raises
// SCHEDULE_CHANGE to the current assignee.
func DeriveNotifications(prev, next *AppointmentView, now time.Time) []NotificationRequest {
	if next == nil {
		return nil
	}

	var requests []NotificationRequest

	newEmployee := employeeOf(next)
	oldEmployee := employeeOf(prev)

	switch {
	case newEmployee != "" && prev == nil:
		requests = append(requests, assignmentRequest(next, newEmployee, now))
	case newEmployee != "" && newEmployee != oldEmployee:
		requests = append(requests, assignmentRequest(next, newEmployee, now))
		if oldEmployee != "" {
			requests = append(requests, scheduleChangeRequest(next, oldEmployee, now))
		}
	case newEmployee != "" && prev != nil && slotChanged(prev, next):
		requests = append(requests, scheduleChangeRequest(next, newEmployee, now))
	}

	return requests
}

// ConfirmationDue reports whether a confirmation request should be raised for
// the appointment: still scheduled, assigned, presence unconfirmed, and the
// start instant within the configured lead of now.
func ConfirmationDue(view AppointmentView, now time.Time, policy TriggerPolicy) bool {
	if view.EmployeeID == nil || view.Status != StatusScheduled || view.Presence != PresencePending {
		return false
	}
	start := StartInstant(view.Date, view.Range.Start)
	if !start.After(now) {
		return false
	}
	return start.Sub(now) <= policy.ConfirmationLead
}

// ConfirmationRequest builds the confirmation-request notification for an
// appointment that ConfirmationDue accepted.
func ConfirmationRequest(view AppointmentView, now time.Time) NotificationRequest {
	return NotificationRequest{
		EmployeeID:    *view.EmployeeID,
		AppointmentID: view.ID,
		Type:          NotificationConfirmationRequest,
		Subject:       "Please confirm your visit",
		Message:       fmt.Sprintf("Confirm your presence for the visit on %s at %s.", view.Date.Format("2006-01-02"), view.Range.Start),
		ScheduledFor:  now,
	}
}

// ReminderDue reports whether a reminder should be raised: confirmed
// assignment with the start instant within the reminder lead of now.
func ReminderDue(view AppointmentView, now time.Time, policy TriggerPolicy) bool {
	if view.EmployeeID == nil || view.Status != StatusConfirmed {
		return false
	}
	start := StartInstant(view.Date, view.Range.Start)
	if !start.After(now) {
		return false
	}
	return start.Sub(now) <= policy.ReminderLead
}

// Reminder builds the reminder notification for an appointment that
// ReminderDue accepted.
func Reminder(view AppointmentView, now time.Time) NotificationRequest {
	return NotificationRequest{
		EmployeeID:    *view.EmployeeID,
		AppointmentID: view.ID,
		Type:          NotificationReminder,
		Subject:       "Upcoming visit",
		Message:       fmt.Sprintf("Your visit starts at %s on %s.", view.Range.Start, view.Date.Format("2006-01-02")),
		ScheduledFor:  now,
	}
}

// DedupeRequests drops requests whose key already has a pending notification,
// making repeated triggering of the same logical event idempotent.
func DedupeRequests(requests []NotificationRequest, pending []PendingKey) []NotificationRequest {
	if len(requests) == 0 {
		return nil
	}
	seen := make(map[PendingKey]struct{}, len(pending)+len(requests))
	for _, key := range pending {
		seen[key] = struct{}{}
	}

	kept := make([]NotificationRequest, 0, len(requests))
	for _, request := range requests {
		key := request.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, request)
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

func employeeOf(view *AppointmentView) string {
	if view == nil || view.EmployeeID == nil {
		return ""
	}
	return *view.EmployeeID
}

func slotChanged(prev, next *AppointmentView) bool {
	return !SameDate(prev.Date, next.Date) || prev.Range != next.Range
}

func assignmentRequest(view *AppointmentView, employeeID string, now time.Time) NotificationRequest {
	return NotificationRequest{
		EmployeeID:    employeeID,
		AppointmentID: view.ID,
		Type:          NotificationAssignment,
		Subject:       "New visit assignment",
		Message:       fmt.Sprintf("You have been assigned a visit on %s from %s to %s.", view.Date.Format("2006-01-02"), view.Range.Start, view.Range.End),
		ScheduledFor:  now,
	}
}

func scheduleChangeRequest(view *AppointmentView, employeeID string, now time.Time) NotificationRequest {
	return NotificationRequest{
		EmployeeID:    employeeID,
		AppointmentID: view.ID,
		Type:          NotificationScheduleChange,
		Subject:       "Visit schedule changed",
		Message:       fmt.Sprintf("The visit on %s has been changed; it now runs from %s to %s.", view.Date.Format("2006-01-02"), view.Range.Start, view.Range.End),
		ScheduledFor:  now,
	}
}
