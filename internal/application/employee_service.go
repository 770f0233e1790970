package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/homecare-scheduler/internal/persistence"
)

// EmployeeService manages the agency roster. Employees deactivate rather than
// delete so completed visit history stays attributable.
type EmployeeService struct {
	employees   persistence.EmployeeRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewEmployeeService wires dependencies for the employee service.
func NewEmployeeService(employees persistence.EmployeeRepository, idGenerator func() string, now func() time.Time) *EmployeeService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &EmployeeService{employees: employees, idGenerator: idGenerator, now: now}
}

// WithLogger attaches a base logger used when the context carries none.
func (s *EmployeeService) WithLogger(logger *slog.Logger) *EmployeeService {
	s.logger = logger
	return s
}

// CreateEmployee validates input and adds an active employee to the roster.
func (s *EmployeeService) CreateEmployee(ctx context.Context, input EmployeeInput) (persistence.Employee, error) {
	if s == nil {
		return persistence.Employee{}, fmt.Errorf("EmployeeService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "employees", "create_employee")

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if vErr := validateStruct(input); vErr.HasErrors() {
		return persistence.Employee{}, vErr
	}
	if err := s.checkEmailFree(ctx, input.Email, ""); err != nil {
		return persistence.Employee{}, err
	}

	role := input.Role
	if role == "" {
		role = "caretaker"
	}

	now := s.now()
	employee := persistence.Employee{
		ID:             s.idGenerator(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Role:           role,
		IsActive:       true,
		HourlyRate:     input.HourlyRate,
		Qualifications: input.Qualifications,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.employees.CreateEmployee(ctx, employee); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			vErr := &ValidationError{}
			vErr.add("email", "is already in use")
			return persistence.Employee{}, vErr
		}
		return persistence.Employee{}, mapRepoError(err)
	}

	logger.Info("employee created", "employee_id", employee.ID)
	return employee, nil
}

// UpdateEmployee applies a patch to an existing employee.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id string, patch EmployeeUpdate) (persistence.Employee, error) {
	if s == nil {
		return persistence.Employee{}, fmt.Errorf("EmployeeService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "employees", "update_employee", "employee_id", id)

	if patch.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*patch.Email))
		patch.Email = &normalized
	}
	if vErr := validateStruct(patch); vErr.HasErrors() {
		return persistence.Employee{}, vErr
	}

	employee, err := s.employees.GetEmployee(ctx, id)
	if err != nil {
		return persistence.Employee{}, mapRepoError(err)
	}

	if patch.Email != nil && *patch.Email != employee.Email {
		if err := s.checkEmailFree(ctx, *patch.Email, id); err != nil {
			return persistence.Employee{}, err
		}
		employee.Email = *patch.Email
	}
	if patch.FirstName != nil {
		employee.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		employee.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		employee.Phone = patch.Phone
	}
	if patch.Role != nil {
		employee.Role = *patch.Role
	}
	if patch.IsActive != nil {
		employee.IsActive = *patch.IsActive
	}
	if patch.HourlyRate != nil {
		employee.HourlyRate = patch.HourlyRate
	}
	if patch.Qualifications != nil {
		employee.Qualifications = *patch.Qualifications
	}
	if patch.Notes != nil {
		employee.Notes = *patch.Notes
	}
	employee.UpdatedAt = s.now()

	if err := s.employees.UpdateEmployee(ctx, employee); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			vErr := &ValidationError{}
			vErr.add("email", "is already in use")
			return persistence.Employee{}, vErr
		}
		return persistence.Employee{}, mapRepoError(err)
	}

	logger.Info("employee updated")
	return employee, nil
}

// DeactivateEmployee blocks new assignments for the employee. Existing
// appointments keep their history.
func (s *EmployeeService) DeactivateEmployee(ctx context.Context, id string) (persistence.Employee, error) {
	inactive := false
	return s.UpdateEmployee(ctx, id, EmployeeUpdate{IsActive: &inactive})
}

// GetEmployee retrieves an employee by id.
func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (persistence.Employee, error) {
	employee, err := s.employees.GetEmployee(ctx, id)
	if err != nil {
		return persistence.Employee{}, mapRepoError(err)
	}
	return employee, nil
}

// ListEmployees returns the roster, active members only unless asked.
func (s *EmployeeService) ListEmployees(ctx context.Context, includeInactive bool) ([]persistence.Employee, error) {
	employees, err := s.employees.ListEmployees(ctx, includeInactive)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return employees, nil
}

func (s *EmployeeService) checkEmailFree(ctx context.Context, email, ownID string) error {
	existing, err := s.employees.GetEmployeeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil
		}
		return mapRepoError(err)
	}
	if existing.ID == ownID {
		return nil
	}
	vErr := &ValidationError{}
	vErr.add("email", "is already in use")
	return vErr
}
