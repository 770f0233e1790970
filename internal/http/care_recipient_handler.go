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

type careRecipientService interface {
	CreateCareRecipient(ctx context.Context, input application.CareRecipientInput) (persistence.CareRecipient, error)
	UpdateCareRecipient(ctx context.Context, id string, patch application.CareRecipientUpdate) (persistence.CareRecipient, error)
	GetCareRecipient(ctx context.Context, id string) (persistence.CareRecipient, error)
	ListCareRecipients(ctx context.Context, includeInactive bool) ([]persistence.CareRecipient, error)
}

type CareRecipientHandler struct {
	service   careRecipientService
	responder responder
	logger    *slog.Logger
}

func NewCareRecipientHandler(service careRecipientService, logger *slog.Logger) *CareRecipientHandler {
	base := defaultLogger(logger)
	return &CareRecipientHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *CareRecipientHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "CareRecipientHandler", operation, attrs...)
}

func (h *CareRecipientHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var input application.CareRecipientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode care recipient request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	recipient, err := h.service.CreateCareRecipient(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "care recipient creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("care_recipient_id", recipient.ID).InfoContext(r.Context(), "care recipient created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, careRecipientResponse{CareRecipient: toCareRecipientDTO(recipient)})
}

func (h *CareRecipientHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := CareRecipientIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecipientID)
		return
	}

	var patch application.CareRecipientUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.log(r.Context(), "Update", "care_recipient_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode care recipient update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "care_recipient_id", id)

	recipient, err := h.service.UpdateCareRecipient(r.Context(), id, patch)
	if err != nil {
		logger.ErrorContext(r.Context(), "care recipient update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "care recipient updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, careRecipientResponse{CareRecipient: toCareRecipientDTO(recipient)})
}

func (h *CareRecipientHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := CareRecipientIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecipientID)
		return
	}

	recipient, err := h.service.GetCareRecipient(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "care_recipient_id", id).ErrorContext(r.Context(), "care recipient fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, careRecipientResponse{CareRecipient: toCareRecipientDTO(recipient)})
}

func (h *CareRecipientHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	recipients, err := h.service.ListCareRecipients(r.Context(), includeInactive)
	if err != nil {
		h.log(r.Context(), "List").ErrorContext(r.Context(), "care recipient listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]careRecipientDTO, 0, len(recipients))
	for _, recipient := range recipients {
		dtos = append(dtos, toCareRecipientDTO(recipient))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, careRecipientListResponse{CareRecipients: dtos})
}

type careRecipientResponse struct {
	CareRecipient careRecipientDTO `json:"care_recipient"`
}

type careRecipientListResponse struct {
	CareRecipients []careRecipientDTO `json:"care_recipients"`
}

type careRecipientDTO struct {
	ID                  string    `json:"id"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	Address             string    `json:"address"`
	Phone               *string   `json:"phone,omitempty"`
	EmergencyContact    string    `json:"emergency_contact,omitempty"`
	EmergencyPhone      string    `json:"emergency_phone,omitempty"`
	MedicalConditions   []string  `json:"medical_conditions,omitempty"`
	CareRequirements    []string  `json:"care_requirements,omitempty"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func toCareRecipientDTO(recipient persistence.CareRecipient) careRecipientDTO {
	return careRecipientDTO{
		ID:                  recipient.ID,
		FirstName:           recipient.FirstName,
		LastName:            recipient.LastName,
		Address:             recipient.Address,
		Phone:               recipient.Phone,
		EmergencyContact:    recipient.EmergencyContact,
		EmergencyPhone:      recipient.EmergencyPhone,
		MedicalConditions:   recipient.MedicalConditions,
		CareRequirements:    recipient.CareRequirements,
		SpecialInstructions: recipient.SpecialInstructions,
		IsActive:            recipient.IsActive,
		CreatedAt:           recipient.CreatedAt,
		UpdatedAt:           recipient.UpdatedAt,
	}
}
