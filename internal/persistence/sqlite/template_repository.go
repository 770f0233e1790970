package sqlite

import (
	"context"

	"github.com/example/homecare-scheduler/internal/persistence"
)

// TemplateRepository implements persistence.TemplateRepository using SQLite.
type TemplateRepository struct {
	pool *ConnectionPool
}

// NewTemplateRepository creates a new SQLite template repository.
func NewTemplateRepository(pool *ConnectionPool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

const templateColumns = `id, name, description, is_active, template_data,
	created_at, updated_at`

// CreateTemplate inserts a new schedule template.
func (r *TemplateRepository) CreateTemplate(ctx context.Context, template persistence.ScheduleTemplate) error {
	data, err := encodeAnyMap(template.TemplateData)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO schedule_templates (` + templateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.pool.db.ExecContext(ctx, query,
		template.ID,
		template.Name,
		template.Description,
		boolToInt(template.IsActive),
		data,
		formatTimestamp(template.CreatedAt),
		formatTimestamp(template.UpdatedAt),
	)
	return mapError(err)
}

// UpdateTemplate overwrites an existing schedule template.
func (r *TemplateRepository) UpdateTemplate(ctx context.Context, template persistence.ScheduleTemplate) error {
	data, err := encodeAnyMap(template.TemplateData)
	if err != nil {
		return err
	}

	query := `
		UPDATE schedule_templates
		SET name = ?, description = ?, is_active = ?, template_data = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.pool.db.ExecContext(ctx, query,
		template.Name,
		template.Description,
		boolToInt(template.IsActive),
		data,
		formatTimestamp(template.UpdatedAt),
		template.ID,
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

// GetTemplate retrieves a template by id.
func (r *TemplateRepository) GetTemplate(ctx context.Context, id string) (persistence.ScheduleTemplate, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM schedule_templates WHERE id = ?`, id)
	return scanTemplate(row)
}

// GetTemplateByName retrieves a template by its unique name.
func (r *TemplateRepository) GetTemplateByName(ctx context.Context, name string) (persistence.ScheduleTemplate, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM schedule_templates WHERE name = ?`, name)
	return scanTemplate(row)
}

// ListTemplates returns templates ordered by name.
func (r *TemplateRepository) ListTemplates(ctx context.Context, includeInactive bool) ([]persistence.ScheduleTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM schedule_templates`
	if !includeInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var templates []persistence.ScheduleTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, rows.Err()
}

func scanTemplate(row rowScanner) (persistence.ScheduleTemplate, error) {
	var (
		template  persistence.ScheduleTemplate
		isActive  int
		data      string
		createdAt string
		updatedAt string
	)
	err := row.Scan(
		&template.ID,
		&template.Name,
		&template.Description,
		&isActive,
		&data,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.ScheduleTemplate{}, mapError(err)
	}

	template.IsActive = isActive != 0
	var decodeErr error
	if template.TemplateData, decodeErr = decodeAnyMap(data); decodeErr != nil {
		return persistence.ScheduleTemplate{}, decodeErr
	}
	if template.CreatedAt, decodeErr = parseTimestamp(createdAt); decodeErr != nil {
		return persistence.ScheduleTemplate{}, decodeErr
	}
	if template.UpdatedAt, decodeErr = parseTimestamp(updatedAt); decodeErr != nil {
		return persistence.ScheduleTemplate{}, decodeErr
	}
	return template, nil
}
