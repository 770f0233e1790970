package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/homecare-scheduler/internal/application"
	"github.com/example/homecare-scheduler/internal/persistence"
)

type templateService interface {
	CreateTemplate(ctx context.Context, input application.TemplateInput) (persistence.ScheduleTemplate, error)
	UpdateTemplate(ctx context.Context, id string, patch application.TemplateUpdate) (persistence.ScheduleTemplate, error)
	GetTemplate(ctx context.Context, id string) (persistence.ScheduleTemplate, error)
	ListTemplates(ctx context.Context, includeInactive bool) ([]persistence.ScheduleTemplate, error)
}

type TemplateHandler struct {
	service   templateService
	responder responder
	logger    *slog.Logger
}

func NewTemplateHandler(service templateService, logger *slog.Logger) *TemplateHandler {
	base := defaultLogger(logger)
	return &TemplateHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *TemplateHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "TemplateHandler", operation, attrs...)
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var input application.TemplateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode template request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	template, err := h.service.CreateTemplate(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "template creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("template_id", template.ID).InfoContext(r.Context(), "schedule template created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, templateResponse{ScheduleTemplate: toTemplateDTO(template)})
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := TemplateIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTemplateID)
		return
	}

	var patch application.TemplateUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.log(r.Context(), "Update", "template_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode template update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "template_id", id)

	template, err := h.service.UpdateTemplate(r.Context(), id, patch)
	if err != nil {
		logger.ErrorContext(r.Context(), "template update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "schedule template updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, templateResponse{ScheduleTemplate: toTemplateDTO(template)})
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := TemplateIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTemplateID)
		return
	}

	template, err := h.service.GetTemplate(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "template_id", id).ErrorContext(r.Context(), "template fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, templateResponse{ScheduleTemplate: toTemplateDTO(template)})
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	templates, err := h.service.ListTemplates(r.Context(), includeInactive)
	if err != nil {
		h.log(r.Context(), "List").ErrorContext(r.Context(), "template listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]templateDTO, 0, len(templates))
	for _, template := range templates {
		dtos = append(dtos, toTemplateDTO(template))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, templateListResponse{ScheduleTemplates: dtos})
}

type templateResponse struct {
	ScheduleTemplate templateDTO `json:"schedule_template"`
}

type templateListResponse struct {
	ScheduleTemplates []templateDTO `json:"schedule_templates"`
}

type templateDTO struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	IsActive     bool           `json:"is_active"`
	TemplateData map[string]any `json:"template_data,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func toTemplateDTO(template persistence.ScheduleTemplate) templateDTO {
	return templateDTO{
		ID:           template.ID,
		Name:         template.Name,
		Description:  template.Description,
		IsActive:     template.IsActive,
		TemplateData: template.TemplateData,
		CreatedAt:    template.CreatedAt,
		UpdatedAt:    template.UpdatedAt,
	}
}
