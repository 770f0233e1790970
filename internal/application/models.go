package application

// Input payloads accepted by the services. Dates use "2006-01-02", times of
// day use "15:04". Pointer fields on patch payloads mean "leave unchanged"
// when nil.

// EmployeeInput creates a roster member.
type EmployeeInput struct {
	FirstName      string   `json:"first_name" validate:"required,max=100"`
	LastName       string   `json:"last_name" validate:"required,max=100"`
	Email          string   `json:"email" validate:"required,email,max=255"`
	Phone          *string  `json:"phone,omitempty" validate:"omitempty,max=30"`
	Role           string   `json:"role,omitempty" validate:"omitempty,oneof=caretaker administrator supervisor"`
	HourlyRate     *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gt=0"`
	Qualifications []string `json:"qualifications,omitempty"`
	Notes          string   `json:"notes,omitempty" validate:"max=1000"`
}

// EmployeeUpdate patches a roster member. IsActive toggles assignment
// eligibility without deleting history.
type EmployeeUpdate struct {
	FirstName      *string   `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName       *string   `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Email          *string   `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone          *string   `json:"phone,omitempty" validate:"omitempty,max=30"`
	Role           *string   `json:"role,omitempty" validate:"omitempty,oneof=caretaker administrator supervisor"`
	IsActive       *bool     `json:"is_active,omitempty"`
	HourlyRate     *float64  `json:"hourly_rate,omitempty" validate:"omitempty,gt=0"`
	Qualifications *[]string `json:"qualifications,omitempty"`
	Notes          *string   `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// CareRecipientInput registers a person receiving care.
type CareRecipientInput struct {
	FirstName           string   `json:"first_name" validate:"required,max=100"`
	LastName            string   `json:"last_name" validate:"required,max=100"`
	Address             string   `json:"address" validate:"required,max=500"`
	Phone               *string  `json:"phone,omitempty" validate:"omitempty,max=30"`
	EmergencyContact    string   `json:"emergency_contact,omitempty" validate:"max=200"`
	EmergencyPhone      string   `json:"emergency_phone,omitempty" validate:"max=30"`
	MedicalConditions   []string `json:"medical_conditions,omitempty"`
	CareRequirements    []string `json:"care_requirements,omitempty"`
	SpecialInstructions string   `json:"special_instructions,omitempty" validate:"max=2000"`
}

// CareRecipientUpdate patches a care recipient.
type CareRecipientUpdate struct {
	FirstName           *string   `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName            *string   `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Address             *string   `json:"address,omitempty" validate:"omitempty,min=1,max=500"`
	Phone               *string   `json:"phone,omitempty" validate:"omitempty,max=30"`
	EmergencyContact    *string   `json:"emergency_contact,omitempty" validate:"omitempty,max=200"`
	EmergencyPhone      *string   `json:"emergency_phone,omitempty" validate:"omitempty,max=30"`
	MedicalConditions   *[]string `json:"medical_conditions,omitempty"`
	CareRequirements    *[]string `json:"care_requirements,omitempty"`
	SpecialInstructions *string   `json:"special_instructions,omitempty" validate:"omitempty,max=2000"`
	IsActive            *bool     `json:"is_active,omitempty"`
}

// AppointmentInput books a visit. EmployeeID may be nil for an unassigned
// appointment; assignment later goes through AssignEmployee.
type AppointmentInput struct {
	CareRecipientID string   `json:"care_recipient_id" validate:"required"`
	EmployeeID      *string  `json:"employee_id,omitempty"`
	ScheduledDate   string   `json:"scheduled_date" validate:"required"`
	StartTime       string   `json:"start_time" validate:"required"`
	EndTime         string   `json:"end_time" validate:"required"`
	CareTasks       []string `json:"care_tasks,omitempty"`
	Notes           string   `json:"notes,omitempty" validate:"max=2000"`
}

// AppointmentPatch reschedules or annotates a visit. Status, presence, and
// the assigned employee change through their dedicated operations, not here.
type AppointmentPatch struct {
	ScheduledDate   *string   `json:"scheduled_date,omitempty"`
	StartTime       *string   `json:"start_time,omitempty"`
	EndTime         *string   `json:"end_time,omitempty"`
	CareTasks       *[]string `json:"care_tasks,omitempty"`
	Notes           *string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
	CompletionNotes *string   `json:"completion_notes,omitempty" validate:"omitempty,max=2000"`
}

// AvailabilityPeriodInput declares when an employee can or cannot work.
// StartTime and EndTime must be given together; omitting both covers the
// whole day.
type AvailabilityPeriodInput struct {
	EmployeeID       string   `json:"employee_id" validate:"required"`
	StartDate        string   `json:"start_date" validate:"required"`
	EndDate          string   `json:"end_date" validate:"required"`
	StartTime        *string  `json:"start_time,omitempty"`
	EndTime          *string  `json:"end_time,omitempty"`
	AvailabilityType string   `json:"availability_type" validate:"required,oneof=available vacation sick_leave unavailable"`
	RecurringDays    []string `json:"recurring_days,omitempty"`
	Notes            string   `json:"notes,omitempty" validate:"max=1000"`
}

// AvailabilityPeriodUpdate patches an availability period.
type AvailabilityPeriodUpdate struct {
	StartDate        *string   `json:"start_date,omitempty"`
	EndDate          *string   `json:"end_date,omitempty"`
	StartTime        *string   `json:"start_time,omitempty"`
	EndTime          *string   `json:"end_time,omitempty"`
	ClearWindow      bool      `json:"clear_window,omitempty"`
	AvailabilityType *string   `json:"availability_type,omitempty" validate:"omitempty,oneof=available vacation sick_leave unavailable"`
	RecurringDays    *[]string `json:"recurring_days,omitempty"`
	Notes            *string   `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// NotificationInput queues an ad-hoc message to an employee, outside the
// trigger engine.
type NotificationInput struct {
	EmployeeID     string            `json:"employee_id" validate:"required"`
	AppointmentID  *string           `json:"appointment_id,omitempty"`
	Type           string            `json:"type" validate:"required,oneof=assignment reminder schedule_change confirmation_request"`
	Subject        string            `json:"subject" validate:"required,max=200"`
	Message        string            `json:"message" validate:"required,max=2000"`
	DeliveryMethod string            `json:"delivery_method,omitempty" validate:"omitempty,oneof=email sms push"`
	ScheduledFor   *string           `json:"scheduled_for,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// TemplateInput stores a named recurring visit pattern. The engine validates
// and stores templates; expansion into appointments is out of scope.
type TemplateInput struct {
	Name         string         `json:"name" validate:"required,max=100"`
	Description  string         `json:"description,omitempty" validate:"max=1000"`
	TemplateData map[string]any `json:"template_data,omitempty"`
}

// TemplateUpdate patches a schedule template.
type TemplateUpdate struct {
	Name         *string         `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description  *string         `json:"description,omitempty" validate:"omitempty,max=1000"`
	IsActive     *bool           `json:"is_active,omitempty"`
	TemplateData *map[string]any `json:"template_data,omitempty"`
}

// AvailabilityQuery asks whether an employee is free for a slot.
type AvailabilityQuery struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
}
