package persistence

import (
	"context"
	"time"
)

// EmployeeRepository exposes CRUD operations for employees.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee Employee) error
	UpdateEmployee(ctx context.Context, employee Employee) error
	GetEmployee(ctx context.Context, id string) (Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (Employee, error)
	ListEmployees(ctx context.Context, includeInactive bool) ([]Employee, error)
}

// CareRecipientRepository exposes CRUD operations for care recipients.
type CareRecipientRepository interface {
	CreateCareRecipient(ctx context.Context, recipient CareRecipient) error
	UpdateCareRecipient(ctx context.Context, recipient CareRecipient) error
	GetCareRecipient(ctx context.Context, id string) (CareRecipient, error)
	ListCareRecipients(ctx context.Context, includeInactive bool) ([]CareRecipient, error)
}

// AppointmentFilter narrows appointment queries.
type AppointmentFilter struct {
	EmployeeID      *string
	CareRecipientID *string
	DateFrom        *time.Time
	DateTo          *time.Time
	Statuses        []string
}

// AppointmentRepository stores visits. UpdateAppointment must compare the
// supplied Version against the stored row and return ErrStaleWrite on
// mismatch, incrementing the version on success.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment Appointment) error
	UpdateAppointment(ctx context.Context, appointment Appointment) error
	GetAppointment(ctx context.Context, id string) (Appointment, error)
	ListAppointments(ctx context.Context, filter AppointmentFilter) ([]Appointment, error)
	// ListForEmployeeDate returns the employee's appointments on one civil
	// date, the working set for conflict detection.
	ListForEmployeeDate(ctx context.Context, employeeID string, date time.Time) ([]Appointment, error)
}

// AvailabilityRepository stores availability periods.
type AvailabilityRepository interface {
	CreateAvailabilityPeriod(ctx context.Context, period AvailabilityPeriod) error
	UpdateAvailabilityPeriod(ctx context.Context, period AvailabilityPeriod) error
	GetAvailabilityPeriod(ctx context.Context, id string) (AvailabilityPeriod, error)
	DeleteAvailabilityPeriod(ctx context.Context, id string) error
	// ListCovering returns the employee's periods whose date span contains
	// the given date. Weekday filtering is the engine's concern.
	ListCovering(ctx context.Context, employeeID string, date time.Time) ([]AvailabilityPeriod, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]AvailabilityPeriod, error)
}

// NotificationFilter narrows notification queries.
type NotificationFilter struct {
	EmployeeID    *string
	AppointmentID *string
	Statuses      []string
	Types         []string
}

// NotificationRepository stores queued notifications and their delivery state.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification Notification) error
	UpdateNotification(ctx context.Context, notification Notification) error
	GetNotification(ctx context.Context, id string) (Notification, error)
	ListNotifications(ctx context.Context, filter NotificationFilter) ([]Notification, error)
}

// TemplateRepository stores schedule templates.
type TemplateRepository interface {
	CreateTemplate(ctx context.Context, template ScheduleTemplate) error
	UpdateTemplate(ctx context.Context, template ScheduleTemplate) error
	GetTemplate(ctx context.Context, id string) (ScheduleTemplate, error)
	GetTemplateByName(ctx context.Context, name string) (ScheduleTemplate, error)
	ListTemplates(ctx context.Context, includeInactive bool) ([]ScheduleTemplate, error)
}
