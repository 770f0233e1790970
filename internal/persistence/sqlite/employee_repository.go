package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/homecare-scheduler/internal/persistence"
)

// EmployeeRepository implements persistence.EmployeeRepository using SQLite.
type EmployeeRepository struct {
	pool *ConnectionPool
}

// NewEmployeeRepository creates a new SQLite employee repository.
func NewEmployeeRepository(pool *ConnectionPool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

const employeeColumns = `id, first_name, last_name, email, phone, role, is_active,
	hourly_rate, qualifications, notes, created_at, updated_at`

// CreateEmployee inserts a new employee record.
func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee persistence.Employee) error {
	qualifications, err := encodeStrings(employee.Qualifications)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.pool.db.ExecContext(ctx, query,
		employee.ID,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		nullString(employee.Phone),
		employee.Role,
		boolToInt(employee.IsActive),
		nullFloat(employee.HourlyRate),
		qualifications,
		employee.Notes,
		formatTimestamp(employee.CreatedAt),
		formatTimestamp(employee.UpdatedAt),
	)
	return mapError(err)
}

// UpdateEmployee overwrites an existing employee record.
func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, employee persistence.Employee) error {
	qualifications, err := encodeStrings(employee.Qualifications)
	if err != nil {
		return err
	}

	query := `
		UPDATE employees
		SET first_name = ?, last_name = ?, email = ?, phone = ?, role = ?,
			is_active = ?, hourly_rate = ?, qualifications = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.pool.db.ExecContext(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		nullString(employee.Phone),
		employee.Role,
		boolToInt(employee.IsActive),
		nullFloat(employee.HourlyRate),
		qualifications,
		employee.Notes,
		formatTimestamp(employee.UpdatedAt),
		employee.ID,
	)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// GetEmployee retrieves an employee by id.
func (r *EmployeeRepository) GetEmployee(ctx context.Context, id string) (persistence.Employee, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	return scanEmployee(row)
}

// GetEmployeeByEmail retrieves an employee by email address.
func (r *EmployeeRepository) GetEmployeeByEmail(ctx context.Context, email string) (persistence.Employee, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE email = ? COLLATE NOCASE`, email)
	return scanEmployee(row)
}

// ListEmployees returns employees ordered by creation time. Inactive records
// are filtered unless includeInactive is set.
func (r *EmployeeRepository) ListEmployees(ctx context.Context, includeInactive bool) ([]persistence.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	if !includeInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.pool.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var employees []persistence.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (persistence.Employee, error) {
	var (
		employee       persistence.Employee
		phone          sql.NullString
		isActive       int
		hourlyRate     sql.NullFloat64
		qualifications string
		createdAt      string
		updatedAt      string
	)
	err := row.Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&phone,
		&employee.Role,
		&isActive,
		&hourlyRate,
		&qualifications,
		&employee.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Employee{}, mapError(err)
	}

	employee.Phone = scanNullString(phone)
	employee.IsActive = isActive != 0
	employee.HourlyRate = scanNullFloat(hourlyRate)
	if employee.Qualifications, err = decodeStrings(qualifications); err != nil {
		return persistence.Employee{}, err
	}
	if employee.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.Employee{}, err
	}
	if employee.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.Employee{}, err
	}
	return employee, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
