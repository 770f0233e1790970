package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/homecare-scheduler/internal/persistence"
	"github.com/example/homecare-scheduler/internal/scheduling"
)

// In-memory repositories backing the service tests. Behaviour mirrors the
// SQLite implementations closely enough for orchestration testing: versioned
// appointment updates, case-insensitive email lookup, filterable lists.

type memEmployees struct {
	byID map[string]persistence.Employee
}

func newMemEmployees(employees ...persistence.Employee) *memEmployees {
	m := &memEmployees{byID: make(map[string]persistence.Employee)}
	for _, employee := range employees {
		m.byID[employee.ID] = employee
	}
	return m
}

func (m *memEmployees) CreateEmployee(_ context.Context, employee persistence.Employee) error {
	for _, existing := range m.byID {
		if strings.EqualFold(existing.Email, employee.Email) {
			return persistence.ErrDuplicate
		}
	}
	m.byID[employee.ID] = employee
	return nil
}

func (m *memEmployees) UpdateEmployee(_ context.Context, employee persistence.Employee) error {
	if _, ok := m.byID[employee.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.byID[employee.ID] = employee
	return nil
}

func (m *memEmployees) GetEmployee(_ context.Context, id string) (persistence.Employee, error) {
	employee, ok := m.byID[id]
	if !ok {
		return persistence.Employee{}, persistence.ErrNotFound
	}
	return employee, nil
}

func (m *memEmployees) GetEmployeeByEmail(_ context.Context, email string) (persistence.Employee, error) {
	for _, employee := range m.byID {
		if strings.EqualFold(employee.Email, email) {
			return employee, nil
		}
	}
	return persistence.Employee{}, persistence.ErrNotFound
}

func (m *memEmployees) ListEmployees(_ context.Context, includeInactive bool) ([]persistence.Employee, error) {
	var employees []persistence.Employee
	for _, employee := range m.byID {
		if !includeInactive && !employee.IsActive {
			continue
		}
		employees = append(employees, employee)
	}
	return employees, nil
}

type memRecipients struct {
	byID map[string]persistence.CareRecipient
}

func newMemRecipients(recipients ...persistence.CareRecipient) *memRecipients {
	m := &memRecipients{byID: make(map[string]persistence.CareRecipient)}
	for _, recipient := range recipients {
		m.byID[recipient.ID] = recipient
	}
	return m
}

func (m *memRecipients) CreateCareRecipient(_ context.Context, recipient persistence.CareRecipient) error {
	m.byID[recipient.ID] = recipient
	return nil
}

func (m *memRecipients) UpdateCareRecipient(_ context.Context, recipient persistence.CareRecipient) error {
	if _, ok := m.byID[recipient.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.byID[recipient.ID] = recipient
	return nil
}

func (m *memRecipients) GetCareRecipient(_ context.Context, id string) (persistence.CareRecipient, error) {
	recipient, ok := m.byID[id]
	if !ok {
		return persistence.CareRecipient{}, persistence.ErrNotFound
	}
	return recipient, nil
}

func (m *memRecipients) ListCareRecipients(_ context.Context, includeInactive bool) ([]persistence.CareRecipient, error) {
	var recipients []persistence.CareRecipient
	for _, recipient := range m.byID {
		if !includeInactive && !recipient.IsActive {
			continue
		}
		recipients = append(recipients, recipient)
	}
	return recipients, nil
}

type memAppointments struct {
	byID map[string]persistence.Appointment
	// updateErr, when set, is returned by UpdateAppointment to simulate a
	// lost optimistic-concurrency race.
	updateErr error
}

func newMemAppointments(appointments ...persistence.Appointment) *memAppointments {
	m := &memAppointments{byID: make(map[string]persistence.Appointment)}
	for _, appointment := range appointments {
		m.byID[appointment.ID] = appointment
	}
	return m
}

func (m *memAppointments) CreateAppointment(_ context.Context, appointment persistence.Appointment) error {
	m.byID[appointment.ID] = appointment
	return nil
}

func (m *memAppointments) UpdateAppointment(_ context.Context, appointment persistence.Appointment) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, ok := m.byID[appointment.ID]
	if !ok {
		return persistence.ErrNotFound
	}
	if existing.Version != appointment.Version {
		return persistence.ErrStaleWrite
	}
	appointment.Version++
	m.byID[appointment.ID] = appointment
	return nil
}

func (m *memAppointments) GetAppointment(_ context.Context, id string) (persistence.Appointment, error) {
	appointment, ok := m.byID[id]
	if !ok {
		return persistence.Appointment{}, persistence.ErrNotFound
	}
	return appointment, nil
}

func (m *memAppointments) ListAppointments(_ context.Context, filter persistence.AppointmentFilter) ([]persistence.Appointment, error) {
	var appointments []persistence.Appointment
	for _, appointment := range m.byID {
		if filter.EmployeeID != nil && (appointment.EmployeeID == nil || *appointment.EmployeeID != *filter.EmployeeID) {
			continue
		}
		if filter.CareRecipientID != nil && appointment.CareRecipientID != *filter.CareRecipientID {
			continue
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

func (m *memAppointments) ListForEmployeeDate(_ context.Context, employeeID string, date time.Time) ([]persistence.Appointment, error) {
	var appointments []persistence.Appointment
	for _, appointment := range m.byID {
		if appointment.EmployeeID == nil || *appointment.EmployeeID != employeeID {
			continue
		}
		if !scheduling.SameDate(appointment.ScheduledDate, date) {
			continue
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

type memAvailability struct {
	byID map[string]persistence.AvailabilityPeriod
}

func newMemAvailability(periods ...persistence.AvailabilityPeriod) *memAvailability {
	m := &memAvailability{byID: make(map[string]persistence.AvailabilityPeriod)}
	for _, period := range periods {
		m.byID[period.ID] = period
	}
	return m
}

func (m *memAvailability) CreateAvailabilityPeriod(_ context.Context, period persistence.AvailabilityPeriod) error {
	m.byID[period.ID] = period
	return nil
}

func (m *memAvailability) UpdateAvailabilityPeriod(_ context.Context, period persistence.AvailabilityPeriod) error {
	if _, ok := m.byID[period.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.byID[period.ID] = period
	return nil
}

func (m *memAvailability) GetAvailabilityPeriod(_ context.Context, id string) (persistence.AvailabilityPeriod, error) {
	period, ok := m.byID[id]
	if !ok {
		return persistence.AvailabilityPeriod{}, persistence.ErrNotFound
	}
	return period, nil
}

func (m *memAvailability) DeleteAvailabilityPeriod(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memAvailability) ListCovering(_ context.Context, employeeID string, date time.Time) ([]persistence.AvailabilityPeriod, error) {
	day := scheduling.DateOf(date)
	var periods []persistence.AvailabilityPeriod
	for _, period := range m.byID {
		if period.EmployeeID != employeeID {
			continue
		}
		if day.Before(scheduling.DateOf(period.StartDate)) || day.After(scheduling.DateOf(period.EndDate)) {
			continue
		}
		periods = append(periods, period)
	}
	return periods, nil
}

func (m *memAvailability) ListForEmployee(_ context.Context, employeeID string) ([]persistence.AvailabilityPeriod, error) {
	var periods []persistence.AvailabilityPeriod
	for _, period := range m.byID {
		if period.EmployeeID != employeeID {
			continue
		}
		periods = append(periods, period)
	}
	return periods, nil
}

type memNotifications struct {
	byID    map[string]persistence.Notification
	created []string
}

func newMemNotifications() *memNotifications {
	return &memNotifications{byID: make(map[string]persistence.Notification)}
}

func (m *memNotifications) CreateNotification(_ context.Context, notification persistence.Notification) error {
	m.byID[notification.ID] = notification
	m.created = append(m.created, notification.ID)
	return nil
}

func (m *memNotifications) UpdateNotification(_ context.Context, notification persistence.Notification) error {
	if _, ok := m.byID[notification.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.byID[notification.ID] = notification
	return nil
}

func (m *memNotifications) GetNotification(_ context.Context, id string) (persistence.Notification, error) {
	notification, ok := m.byID[id]
	if !ok {
		return persistence.Notification{}, persistence.ErrNotFound
	}
	return notification, nil
}

func (m *memNotifications) ListNotifications(_ context.Context, filter persistence.NotificationFilter) ([]persistence.Notification, error) {
	var notifications []persistence.Notification
	for _, id := range m.created {
		notification := m.byID[id]
		if filter.EmployeeID != nil && notification.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.AppointmentID != nil && (notification.AppointmentID == nil || *notification.AppointmentID != *filter.AppointmentID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsString(filter.Statuses, notification.Status) {
			continue
		}
		if len(filter.Types) > 0 && !containsString(filter.Types, notification.Type) {
			continue
		}
		notifications = append(notifications, notification)
	}
	return notifications, nil
}

// all returns every stored notification in creation order.
func (m *memNotifications) all() []persistence.Notification {
	notifications := make([]persistence.Notification, 0, len(m.created))
	for _, id := range m.created {
		notifications = append(notifications, m.byID[id])
	}
	return notifications
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

// sequenceIDs returns an id generator yielding prefix-1, prefix-2, ...
func sequenceIDs(prefix string) func() string {
	count := 0
	return func() string {
		count++
		return fmt.Sprintf("%s-%d", prefix, count)
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
