package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/homecare-scheduler/internal/persistence"
)

// CareRecipientRepository implements persistence.CareRecipientRepository
// using SQLite.
type CareRecipientRepository struct {
	pool *ConnectionPool
}

// NewCareRecipientRepository creates a new SQLite care recipient repository.
func NewCareRecipientRepository(pool *ConnectionPool) *CareRecipientRepository {
	return &CareRecipientRepository{pool: pool}
}

const careRecipientColumns = `id, first_name, last_name, address, phone,
	emergency_contact, emergency_phone, medical_conditions, care_requirements,
	special_instructions, is_active, created_at, updated_at`

// CreateCareRecipient inserts a new care recipient record.
func (r *CareRecipientRepository) CreateCareRecipient(ctx context.Context, recipient persistence.CareRecipient) error {
	conditions, err := encodeStrings(recipient.MedicalConditions)
	if err != nil {
		return err
	}
	requirements, err := encodeStrings(recipient.CareRequirements)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO care_recipients (` + careRecipientColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.pool.db.ExecContext(ctx, query,
		recipient.ID,
		recipient.FirstName,
		recipient.LastName,
		recipient.Address,
		nullString(recipient.Phone),
		recipient.EmergencyContact,
		recipient.EmergencyPhone,
		conditions,
		requirements,
		recipient.SpecialInstructions,
		boolToInt(recipient.IsActive),
		formatTimestamp(recipient.CreatedAt),
		formatTimestamp(recipient.UpdatedAt),
	)
	return mapError(err)
}

// UpdateCareRecipient overwrites an existing care recipient record.
func (r *CareRecipientRepository) UpdateCareRecipient(ctx context.Context, recipient persistence.CareRecipient) error {
	conditions, err := encodeStrings(recipient.MedicalConditions)
	if err != nil {
		return err
	}
	requirements, err := encodeStrings(recipient.CareRequirements)
	if err != nil {
		return err
	}

	query := `
		UPDATE care_recipients
		SET first_name = ?, last_name = ?, address = ?, phone = ?,
			emergency_contact = ?, emergency_phone = ?, medical_conditions = ?,
			care_requirements = ?, special_instructions = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.pool.db.ExecContext(ctx, query,
		recipient.FirstName,
		recipient.LastName,
		recipient.Address,
		nullString(recipient.Phone),
		recipient.EmergencyContact,
		recipient.EmergencyPhone,
		conditions,
		requirements,
		recipient.SpecialInstructions,
		boolToInt(recipient.IsActive),
		formatTimestamp(recipient.UpdatedAt),
		recipient.ID,
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

// GetCareRecipient retrieves a care recipient by id.
func (r *CareRecipientRepository) GetCareRecipient(ctx context.Context, id string) (persistence.CareRecipient, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+careRecipientColumns+` FROM care_recipients WHERE id = ?`, id)
	return scanCareRecipient(row)
}

// ListCareRecipients returns care recipients ordered by creation time.
func (r *CareRecipientRepository) ListCareRecipients(ctx context.Context, includeInactive bool) ([]persistence.CareRecipient, error) {
	query := `SELECT ` + careRecipientColumns + ` FROM care_recipients`
	if !includeInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.pool.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var recipients []persistence.CareRecipient
	for rows.Next() {
		recipient, err := scanCareRecipient(rows)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, recipient)
	}
	return recipients, rows.Err()
}

func scanCareRecipient(row rowScanner) (persistence.CareRecipient, error) {
	var (
		recipient    persistence.CareRecipient
		phone        sql.NullString
		conditions   string
		requirements string
		isActive     int
		createdAt    string
		updatedAt    string
	)
	err := row.Scan(
		&recipient.ID,
		&recipient.FirstName,
		&recipient.LastName,
		&recipient.Address,
		&phone,
		&recipient.EmergencyContact,
		&recipient.EmergencyPhone,
		&conditions,
		&requirements,
		&recipient.SpecialInstructions,
		&isActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.CareRecipient{}, mapError(err)
	}

	recipient.Phone = scanNullString(phone)
	recipient.IsActive = isActive != 0
	if recipient.MedicalConditions, err = decodeStrings(conditions); err != nil {
		return persistence.CareRecipient{}, err
	}
	if recipient.CareRequirements, err = decodeStrings(requirements); err != nil {
		return persistence.CareRecipient{}, err
	}
	if recipient.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.CareRecipient{}, err
	}
	if recipient.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.CareRecipient{}, err
	}
	return recipient, nil
}
