package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/homecare-scheduler/internal/persistence"
)

var (
	employeeCounter    uint64
	recipientCounter   uint64
	appointmentCounter uint64
	periodCounter      uint64
)

var referenceTime = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// --------------------------- Employee fixtures ---------------------------

// EmployeeFixture is a deterministic employee record for application or
// persistence tests.
type EmployeeFixture struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployeeOption configures the generated employee fixture.
type EmployeeOption func(*EmployeeFixture)

// NewEmployeeFixture returns a deterministic employee fixture with optional
// overrides.
func NewEmployeeFixture(opts ...EmployeeOption) EmployeeFixture {
	idx := atomic.AddUint64(&employeeCounter, 1)
	id := fmt.Sprintf("emp-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := EmployeeFixture{
		ID:        id,
		FirstName: fmt.Sprintf("Employee%03d", idx),
		LastName:  "Tester",
		Email:     fmt.Sprintf("%s@example.com", id),
		Role:      "caretaker",
		IsActive:  true,
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEmployeeID overrides the generated employee ID.
func WithEmployeeID(id string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.ID = id
	}
}

// WithEmployeeRole overrides the generated role.
func WithEmployeeRole(role string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Role = role
	}
}

// WithEmployeeActive sets the active flag on the fixture.
func WithEmployeeActive(active bool) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.IsActive = active
	}
}

// Persistence returns the fixture as a persistence.Employee value.
func (f EmployeeFixture) Persistence() persistence.Employee {
	return persistence.Employee{
		ID:        f.ID,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Role:      f.Role,
		IsActive:  f.IsActive,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// ------------------------ Care recipient fixtures ------------------------

// CareRecipientFixture is a deterministic care recipient record.
type CareRecipientFixture struct {
	ID        string
	FirstName string
	LastName  string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CareRecipientOption configures the generated care recipient fixture.
type CareRecipientOption func(*CareRecipientFixture)

// NewCareRecipientFixture returns a deterministic care recipient fixture with
// optional overrides.
func NewCareRecipientFixture(opts ...CareRecipientOption) CareRecipientFixture {
	idx := atomic.AddUint64(&recipientCounter, 1)
	id := fmt.Sprintf("cr-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := CareRecipientFixture{
		ID:        id,
		FirstName: fmt.Sprintf("Recipient%03d", idx),
		LastName:  "Tester",
		Address:   fmt.Sprintf("%d Care Street", idx),
		IsActive:  true,
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithCareRecipientID overrides the generated care recipient ID.
func WithCareRecipientID(id string) CareRecipientOption {
	return func(f *CareRecipientFixture) {
		f.ID = id
	}
}

// WithCareRecipientActive sets the active flag on the fixture.
func WithCareRecipientActive(active bool) CareRecipientOption {
	return func(f *CareRecipientFixture) {
		f.IsActive = active
	}
}

// Persistence returns the fixture as a persistence.CareRecipient value.
func (f CareRecipientFixture) Persistence() persistence.CareRecipient {
	return persistence.CareRecipient{
		ID:        f.ID,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Address:   f.Address,
		IsActive:  f.IsActive,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// -------------------------- Appointment fixtures --------------------------

// AppointmentFixture is a deterministic appointment record. The default slot
// is a one hour visit two days after the reference time, unassigned.
type AppointmentFixture struct {
	ID              string
	CareRecipientID string
	EmployeeID      *string
	ScheduledDate   time.Time
	StartMinutes    int
	EndMinutes      int
	Status          string
	PresenceStatus  string
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AppointmentOption configures the generated appointment fixture.
type AppointmentOption func(*AppointmentFixture)

// NewAppointmentFixture returns a deterministic appointment fixture with
// optional overrides.
func NewAppointmentFixture(opts ...AppointmentOption) AppointmentFixture {
	idx := atomic.AddUint64(&appointmentCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := AppointmentFixture{
		ID:              fmt.Sprintf("appt-%03d", idx),
		CareRecipientID: "cr-001",
		ScheduledDate:   time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
		StartMinutes:    9 * 60,
		EndMinutes:      10 * 60,
		Status:          "scheduled",
		PresenceStatus:  "pending",
		Version:         1,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithAppointmentID overrides the generated appointment ID.
func WithAppointmentID(id string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.ID = id
	}
}

// WithAppointmentEmployee assigns the appointment to the given employee.
func WithAppointmentEmployee(employeeID string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.EmployeeID = &employeeID
	}
}

// WithAppointmentRecipient overrides the care recipient reference.
func WithAppointmentRecipient(recipientID string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.CareRecipientID = recipientID
	}
}

// WithAppointmentSlot sets the scheduled date and minute range.
func WithAppointmentSlot(date time.Time, startMinutes, endMinutes int) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.ScheduledDate = date
		f.StartMinutes = startMinutes
		f.EndMinutes = endMinutes
	}
}

// WithAppointmentStatus sets the status field.
func WithAppointmentStatus(status string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Status = status
	}
}

// Persistence returns the fixture as a persistence.Appointment value.
func (f AppointmentFixture) Persistence() persistence.Appointment {
	return persistence.Appointment{
		ID:              f.ID,
		CareRecipientID: f.CareRecipientID,
		EmployeeID:      f.EmployeeID,
		ScheduledDate:   f.ScheduledDate,
		StartMinutes:    f.StartMinutes,
		EndMinutes:      f.EndMinutes,
		DurationMinutes: f.EndMinutes - f.StartMinutes,
		Status:          f.Status,
		PresenceStatus:  f.PresenceStatus,
		Version:         f.Version,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// ---------------------- Availability period fixtures ----------------------

// AvailabilityPeriodFixture is a deterministic availability declaration. The
// default covers all of March 2025, 08:00 to 16:00, type available.
type AvailabilityPeriodFixture struct {
	ID               string
	EmployeeID       string
	StartDate        time.Time
	EndDate          time.Time
	StartMinutes     *int
	EndMinutes       *int
	AvailabilityType string
	RecurringDays    []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AvailabilityPeriodOption configures the generated availability fixture.
type AvailabilityPeriodOption func(*AvailabilityPeriodFixture)

// NewAvailabilityPeriodFixture returns a deterministic availability fixture
// with optional overrides.
func NewAvailabilityPeriodFixture(opts ...AvailabilityPeriodOption) AvailabilityPeriodFixture {
	idx := atomic.AddUint64(&periodCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	start := 8 * 60
	end := 16 * 60
	fixture := AvailabilityPeriodFixture{
		ID:               fmt.Sprintf("period-%03d", idx),
		EmployeeID:       "emp-001",
		StartDate:        time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		StartMinutes:     &start,
		EndMinutes:       &end,
		AvailabilityType: "available",
		CreatedAt:        created,
		UpdatedAt:        created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithPeriodEmployee overrides the employee reference.
func WithPeriodEmployee(employeeID string) AvailabilityPeriodOption {
	return func(f *AvailabilityPeriodFixture) {
		f.EmployeeID = employeeID
	}
}

// WithPeriodType sets the availability type.
func WithPeriodType(availabilityType string) AvailabilityPeriodOption {
	return func(f *AvailabilityPeriodFixture) {
		f.AvailabilityType = availabilityType
	}
}

// WithPeriodWholeDay clears the time window so the period covers whole days.
func WithPeriodWholeDay() AvailabilityPeriodOption {
	return func(f *AvailabilityPeriodFixture) {
		f.StartMinutes = nil
		f.EndMinutes = nil
	}
}

// WithPeriodDates sets the covered date span.
func WithPeriodDates(start, end time.Time) AvailabilityPeriodOption {
	return func(f *AvailabilityPeriodFixture) {
		f.StartDate = start
		f.EndDate = end
	}
}

// WithPeriodWeekdays restricts the period to the given weekday names.
func WithPeriodWeekdays(days ...string) AvailabilityPeriodOption {
	return func(f *AvailabilityPeriodFixture) {
		f.RecurringDays = days
	}
}

// Persistence returns the fixture as a persistence.AvailabilityPeriod value.
func (f AvailabilityPeriodFixture) Persistence() persistence.AvailabilityPeriod {
	return persistence.AvailabilityPeriod{
		ID:               f.ID,
		EmployeeID:       f.EmployeeID,
		StartDate:        f.StartDate,
		EndDate:          f.EndDate,
		StartMinutes:     f.StartMinutes,
		EndMinutes:       f.EndMinutes,
		AvailabilityType: f.AvailabilityType,
		RecurringDays:    f.RecurringDays,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}
