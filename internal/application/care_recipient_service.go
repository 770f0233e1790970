package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/homecare-scheduler/internal/persistence"
)

// CareRecipientService manages the people receiving care. Like employees,
// recipients deactivate rather than delete.
type CareRecipientService struct {
	recipients  persistence.CareRecipientRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewCareRecipientService wires dependencies for the care recipient service.
func NewCareRecipientService(recipients persistence.CareRecipientRepository, idGenerator func() string, now func() time.Time) *CareRecipientService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &CareRecipientService{recipients: recipients, idGenerator: idGenerator, now: now}
}

// WithLogger attaches a base logger used when the context carries none.
func (s *CareRecipientService) WithLogger(logger *slog.Logger) *CareRecipientService {
	s.logger = logger
	return s
}

// CreateCareRecipient validates input and registers an active recipient.
func (s *CareRecipientService) CreateCareRecipient(ctx context.Context, input CareRecipientInput) (persistence.CareRecipient, error) {
	if s == nil {
		return persistence.CareRecipient{}, fmt.Errorf("CareRecipientService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "care_recipients", "create_care_recipient")

	if vErr := validateStruct(input); vErr.HasErrors() {
		return persistence.CareRecipient{}, vErr
	}

	now := s.now()
	recipient := persistence.CareRecipient{
		ID:                  s.idGenerator(),
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Address:             input.Address,
		Phone:               input.Phone,
		EmergencyContact:    input.EmergencyContact,
		EmergencyPhone:      input.EmergencyPhone,
		MedicalConditions:   input.MedicalConditions,
		CareRequirements:    input.CareRequirements,
		SpecialInstructions: input.SpecialInstructions,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.recipients.CreateCareRecipient(ctx, recipient); err != nil {
		return persistence.CareRecipient{}, mapRepoError(err)
	}

	logger.Info("care recipient created", "care_recipient_id", recipient.ID)
	return recipient, nil
}

// UpdateCareRecipient applies a patch to an existing recipient.
func (s *CareRecipientService) UpdateCareRecipient(ctx context.Context, id string, patch CareRecipientUpdate) (persistence.CareRecipient, error) {
	if s == nil {
		return persistence.CareRecipient{}, fmt.Errorf("CareRecipientService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "care_recipients", "update_care_recipient", "care_recipient_id", id)

	if vErr := validateStruct(patch); vErr.HasErrors() {
		return persistence.CareRecipient{}, vErr
	}

	recipient, err := s.recipients.GetCareRecipient(ctx, id)
	if err != nil {
		return persistence.CareRecipient{}, mapRepoError(err)
	}

	if patch.FirstName != nil {
		recipient.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		recipient.LastName = *patch.LastName
	}
	if patch.Address != nil {
		recipient.Address = *patch.Address
	}
	if patch.Phone != nil {
		recipient.Phone = patch.Phone
	}
	if patch.EmergencyContact != nil {
		recipient.EmergencyContact = *patch.EmergencyContact
	}
	if patch.EmergencyPhone != nil {
		recipient.EmergencyPhone = *patch.EmergencyPhone
	}
	if patch.MedicalConditions != nil {
		recipient.MedicalConditions = *patch.MedicalConditions
	}
	if patch.CareRequirements != nil {
		recipient.CareRequirements = *patch.CareRequirements
	}
	if patch.SpecialInstructions != nil {
		recipient.SpecialInstructions = *patch.SpecialInstructions
	}
	if patch.IsActive != nil {
		recipient.IsActive = *patch.IsActive
	}
	recipient.UpdatedAt = s.now()

	if err := s.recipients.UpdateCareRecipient(ctx, recipient); err != nil {
		return persistence.CareRecipient{}, mapRepoError(err)
	}

	logger.Info("care recipient updated")
	return recipient, nil
}

// GetCareRecipient retrieves a recipient by id.
func (s *CareRecipientService) GetCareRecipient(ctx context.Context, id string) (persistence.CareRecipient, error) {
	recipient, err := s.recipients.GetCareRecipient(ctx, id)
	if err != nil {
		return persistence.CareRecipient{}, mapRepoError(err)
	}
	return recipient, nil
}

// ListCareRecipients returns recipients, active only unless asked.
func (s *CareRecipientService) ListCareRecipients(ctx context.Context, includeInactive bool) ([]persistence.CareRecipient, error) {
	recipients, err := s.recipients.ListCareRecipients(ctx, includeInactive)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return recipients, nil
}
