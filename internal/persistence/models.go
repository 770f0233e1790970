package persistence

import "time"

// Employee is a caretaker, administrator, or supervisor on the agency roster.
// Deactivation blocks new assignments without deleting history.
type Employee struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	Role           string
	IsActive       bool
	HourlyRate     *float64
	Qualifications []string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CareRecipient is a person receiving home care. Inactive recipients cannot
// accept new appointments.
type CareRecipient struct {
	ID                  string
	FirstName           string
	LastName            string
	Address             string
	Phone               *string
	EmergencyContact    string
	EmergencyPhone      string
	MedicalConditions   []string
	CareRequirements    []string
	SpecialInstructions string
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Appointment is a scheduled visit. Time-of-day fields count minutes since
// midnight on ScheduledDate; the range is half-open. Version backs optimistic
// concurrency: updates must present the version they read.
type Appointment struct {
	ID              string
	CareRecipientID string
	EmployeeID      *string
	ScheduledDate   time.Time
	StartMinutes    int
	EndMinutes      int
	DurationMinutes int
	Status          string
	PresenceStatus  string
	CareTasks       []string
	Notes           string
	CompletionNotes string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ConfirmedAt     *time.Time
	CompletedAt     *time.Time
	Version         int
}

// AvailabilityPeriod declares when an employee can or cannot work. Nil
// StartMinutes/EndMinutes cover the whole day; RecurringDays, when non-empty,
// restricts the date span to those weekday names.
type AvailabilityPeriod struct {
	ID               string
	EmployeeID       string
	StartDate        time.Time
	EndDate          time.Time
	StartMinutes     *int
	EndMinutes       *int
	AvailabilityType string
	RecurringDays    []string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Notification is a queued message to an employee, usually tied to an
// appointment event. Delivery state belongs to the dispatcher.
type Notification struct {
	ID             string
	EmployeeID     string
	Type           string
	Subject        string
	Message        string
	Status         string
	DeliveryMethod string
	ScheduledFor   time.Time
	SentAt         *time.Time
	DeliveredAt    *time.Time
	AppointmentID  *string
	Metadata       map[string]string
	CreatedAt      time.Time
}

// ScheduleTemplate is a named bundle of recurring appointment patterns.
// Expansion into individual appointments is handled by an external
// collaborator; the engine stores and validates the template only.
type ScheduleTemplate struct {
	ID           string
	Name         string
	Description  string
	IsActive     bool
	TemplateData map[string]any
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
