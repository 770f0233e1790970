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

// TemplateService stores named recurring visit patterns. Templates are data
// only; expanding one into appointments is an external concern.
type TemplateService struct {
	templates   persistence.TemplateRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewTemplateService wires dependencies for the template service.
func NewTemplateService(templates persistence.TemplateRepository, idGenerator func() string, now func() time.Time) *TemplateService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &TemplateService{templates: templates, idGenerator: idGenerator, now: now}
}

// WithLogger attaches a base logger used when the context carries none.
func (s *TemplateService) WithLogger(logger *slog.Logger) *TemplateService {
	s.logger = logger
	return s
}

// CreateTemplate validates and stores a template. Names are unique.
func (s *TemplateService) CreateTemplate(ctx context.Context, input TemplateInput) (persistence.ScheduleTemplate, error) {
	if s == nil {
		return persistence.ScheduleTemplate{}, fmt.Errorf("TemplateService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "templates", "create_template")

	input.Name = strings.TrimSpace(input.Name)
	if vErr := validateStruct(input); vErr.HasErrors() {
		return persistence.ScheduleTemplate{}, vErr
	}

	now := s.now()
	template := persistence.ScheduleTemplate{
		ID:           s.idGenerator(),
		Name:         input.Name,
		Description:  input.Description,
		IsActive:     true,
		TemplateData: input.TemplateData,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.templates.CreateTemplate(ctx, template); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			vErr := &ValidationError{}
			vErr.add("name", "is already in use")
			return persistence.ScheduleTemplate{}, vErr
		}
		return persistence.ScheduleTemplate{}, mapRepoError(err)
	}

	logger.Info("template created", "template_id", template.ID, "name", template.Name)
	return template, nil
}

// UpdateTemplate applies a patch to an existing template.
func (s *TemplateService) UpdateTemplate(ctx context.Context, id string, patch TemplateUpdate) (persistence.ScheduleTemplate, error) {
	if s == nil {
		return persistence.ScheduleTemplate{}, fmt.Errorf("TemplateService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "templates", "update_template", "template_id", id)

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if vErr := validateStruct(patch); vErr.HasErrors() {
		return persistence.ScheduleTemplate{}, vErr
	}

	template, err := s.templates.GetTemplate(ctx, id)
	if err != nil {
		return persistence.ScheduleTemplate{}, mapRepoError(err)
	}

	if patch.Name != nil {
		template.Name = *patch.Name
	}
	if patch.Description != nil {
		template.Description = *patch.Description
	}
	if patch.IsActive != nil {
		template.IsActive = *patch.IsActive
	}
	if patch.TemplateData != nil {
		template.TemplateData = *patch.TemplateData
	}
	template.UpdatedAt = s.now()

	if err := s.templates.UpdateTemplate(ctx, template); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			vErr := &ValidationError{}
			vErr.add("name", "is already in use")
			return persistence.ScheduleTemplate{}, vErr
		}
		return persistence.ScheduleTemplate{}, mapRepoError(err)
	}

	logger.Info("template updated")
	return template, nil
}

// GetTemplate retrieves a template by id.
func (s *TemplateService) GetTemplate(ctx context.Context, id string) (persistence.ScheduleTemplate, error) {
	template, err := s.templates.GetTemplate(ctx, id)
	if err != nil {
		return persistence.ScheduleTemplate{}, mapRepoError(err)
	}
	return template, nil
}

// ListTemplates returns templates, active only unless asked.
func (s *TemplateService) ListTemplates(ctx context.Context, includeInactive bool) ([]persistence.ScheduleTemplate, error) {
	templates, err := s.templates.ListTemplates(ctx, includeInactive)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return templates, nil
}
