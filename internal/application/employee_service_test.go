package application

import (
	"context"
	"errors"
	"testing"
)

func validEmployeeInput() EmployeeInput {
	return EmployeeInput{
		FirstName: "Ada",
		LastName:  "Nilsen",
		Email:     "Ada@Example.com",
		Role:      "caretaker",
	}
}

func TestCreateEmployee(t *testing.T) {
	t.Parallel()
	repo := newMemEmployees()
	service := NewEmployeeService(repo, sequenceIDs("emp"), fixedNow(referenceNow))

	employee, err := service.CreateEmployee(context.Background(), validEmployeeInput())
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}
	if employee.Email != "ada@example.com" {
		t.Errorf("email = %q, want lowercased", employee.Email)
	}
	if !employee.IsActive {
		t.Errorf("new employees must be active")
	}
	if employee.Role != "caretaker" {
		t.Errorf("role = %q, want caretaker", employee.Role)
	}
}

func TestCreateEmployeeDefaultsRole(t *testing.T) {
	t.Parallel()
	service := NewEmployeeService(newMemEmployees(), sequenceIDs("emp"), fixedNow(referenceNow))

	input := validEmployeeInput()
	input.Role = ""
	employee, err := service.CreateEmployee(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}
	if employee.Role != "caretaker" {
		t.Errorf("role = %q, want caretaker default", employee.Role)
	}
}

func TestCreateEmployeeValidation(t *testing.T) {
	t.Parallel()
	service := NewEmployeeService(newMemEmployees(), sequenceIDs("emp"), fixedNow(referenceNow))
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*EmployeeInput)
		field  string
	}{
		{"missing first name", func(in *EmployeeInput) { in.FirstName = "" }, "first_name"},
		{"missing email", func(in *EmployeeInput) { in.Email = "" }, "email"},
		{"malformed email", func(in *EmployeeInput) { in.Email = "not-an-email" }, "email"},
		{"unknown role", func(in *EmployeeInput) { in.Role = "janitor" }, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validEmployeeInput()
			tt.mutate(&input)
			_, err := service.CreateEmployee(ctx, input)
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

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	t.Parallel()
	service := NewEmployeeService(newMemEmployees(), sequenceIDs("emp"), fixedNow(referenceNow))
	ctx := context.Background()

	if _, err := service.CreateEmployee(ctx, validEmployeeInput()); err != nil {
		t.Fatalf("first CreateEmployee returned error: %v", err)
	}

	duplicate := validEmployeeInput()
	duplicate.Email = "ADA@example.com"
	_, err := service.CreateEmployee(ctx, duplicate)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if _, ok := vErr.FieldErrors["email"]; !ok {
		t.Errorf("FieldErrors = %v, want email entry", vErr.FieldErrors)
	}
}

func TestUpdateEmployee(t *testing.T) {
	t.Parallel()
	service := NewEmployeeService(newMemEmployees(), sequenceIDs("emp"), fixedNow(referenceNow))
	ctx := context.Background()

	employee, err := service.CreateEmployee(ctx, validEmployeeInput())
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	newRole := "supervisor"
	updated, err := service.UpdateEmployee(ctx, employee.ID, EmployeeUpdate{Role: &newRole})
	if err != nil {
		t.Fatalf("UpdateEmployee returned error: %v", err)
	}
	if updated.Role != "supervisor" {
		t.Errorf("role = %q, want supervisor", updated.Role)
	}
	if updated.Email != employee.Email {
		t.Errorf("email changed unexpectedly: %q", updated.Email)
	}
}

func TestUpdateEmployeeNotFound(t *testing.T) {
	t.Parallel()
	service := NewEmployeeService(newMemEmployees(), sequenceIDs("emp"), fixedNow(referenceNow))

	_, err := service.UpdateEmployee(context.Background(), "missing", EmployeeUpdate{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeactivateEmployee(t *testing.T) {
	t.Parallel()
	service := NewEmployeeService(newMemEmployees(), sequenceIDs("emp"), fixedNow(referenceNow))
	ctx := context.Background()

	employee, err := service.CreateEmployee(ctx, validEmployeeInput())
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	deactivated, err := service.DeactivateEmployee(ctx, employee.ID)
	if err != nil {
		t.Fatalf("DeactivateEmployee returned error: %v", err)
	}
	if deactivated.IsActive {
		t.Errorf("employee still active after deactivation")
	}

	active, err := service.ListEmployees(ctx, false)
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active roster = %d entries, want 0", len(active))
	}
	all, err := service.ListEmployees(ctx, true)
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("full roster = %d entries, want 1 (history preserved)", len(all))
	}
}
