package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/homecare-scheduler/internal/application"
	"github.com/example/homecare-scheduler/internal/persistence"
	"github.com/example/homecare-scheduler/internal/scheduling"
)

type appointmentService interface {
	CreateAppointment(ctx context.Context, input application.AppointmentInput) (persistence.Appointment, error)
	GetAppointment(ctx context.Context, id string) (persistence.Appointment, error)
	ListAppointments(ctx context.Context, filter persistence.AppointmentFilter) ([]persistence.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, patch application.AppointmentPatch) (persistence.Appointment, error)
	AssignEmployee(ctx context.Context, appointmentID, employeeID string) (persistence.Appointment, error)
	SetStatus(ctx context.Context, appointmentID, status string) (persistence.Appointment, error)
	SetPresence(ctx context.Context, appointmentID, presence string) (persistence.Appointment, error)
	ListConflicts(ctx context.Context, query application.AvailabilityQuery, excludeAppointmentID string) ([]scheduling.Conflict, error)
}

type AppointmentHandler struct {
	service   appointmentService
	responder responder
	logger    *slog.Logger
}

func NewAppointmentHandler(service appointmentService, logger *slog.Logger) *AppointmentHandler {
	base := defaultLogger(logger)
	return &AppointmentHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AppointmentHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AppointmentHandler", operation, attrs...)
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var input application.AppointmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode appointment request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	appointment, err := h.service.CreateAppointment(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "appointment creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("appointment_id", appointment.ID).InfoContext(r.Context(), "appointment created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, appointmentResponse{Appointment: toAppointmentDTO(appointment)})
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	filter, err := appointmentFilterFromQuery(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	appointments, err := h.service.ListAppointments(r.Context(), filter)
	if err != nil {
		h.log(r.Context(), "List").ErrorContext(r.Context(), "appointment listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]appointmentDTO, 0, len(appointments))
	for _, appointment := range appointments {
		dtos = append(dtos, toAppointmentDTO(appointment))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentListResponse{Appointments: dtos})
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	appointment, err := h.service.GetAppointment(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "appointment_id", id).ErrorContext(r.Context(), "appointment fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentResponse{Appointment: toAppointmentDTO(appointment)})
}

func (h *AppointmentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	var patch application.AppointmentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.log(r.Context(), "Patch", "appointment_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode appointment patch", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Patch", "appointment_id", id)

	appointment, err := h.service.UpdateAppointment(r.Context(), id, patch)
	if err != nil {
		logger.ErrorContext(r.Context(), "appointment update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "appointment updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentResponse{Appointment: toAppointmentDTO(appointment)})
}

func (h *AppointmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Assign", "appointment_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode assignment request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Assign", "appointment_id", id, "employee_id", req.EmployeeID)

	appointment, err := h.service.AssignEmployee(r.Context(), id, req.EmployeeID)
	if err != nil {
		logger.ErrorContext(r.Context(), "assignment failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "employee assigned")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentResponse{Appointment: toAppointmentDTO(appointment)})
}

func (h *AppointmentHandler) Status(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Status", "appointment_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode status request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Status", "appointment_id", id, "status", req.Status)

	appointment, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		logger.ErrorContext(r.Context(), "status change failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "status changed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentResponse{Appointment: toAppointmentDTO(appointment)})
}

func (h *AppointmentHandler) Presence(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	var req presenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Presence", "appointment_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode presence request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Presence", "appointment_id", id, "presence_status", req.PresenceStatus)

	appointment, err := h.service.SetPresence(r.Context(), id, req.PresenceStatus)
	if err != nil {
		logger.ErrorContext(r.Context(), "presence change failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "presence changed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentResponse{Appointment: toAppointmentDTO(appointment)})
}

// Conflicts dry-runs conflict detection for the appointment's slot. Query
// parameters employee_id, date, start, and end override the stored values, so
// a coordinator can probe alternatives before committing a change.
func (h *AppointmentHandler) Conflicts(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	appointment, err := h.service.GetAppointment(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Conflicts", "appointment_id", id).ErrorContext(r.Context(), "appointment fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	query := application.AvailabilityQuery{
		Date:      appointment.ScheduledDate.Format("2006-01-02"),
		StartTime: scheduling.TimeOfDay(appointment.StartMinutes).String(),
		EndTime:   scheduling.TimeOfDay(appointment.EndMinutes).String(),
	}
	if appointment.EmployeeID != nil {
		query.EmployeeID = *appointment.EmployeeID
	}

	params := r.URL.Query()
	if v := params.Get("employee_id"); v != "" {
		query.EmployeeID = v
	}
	if v := params.Get("date"); v != "" {
		query.Date = v
	}
	if v := params.Get("start"); v != "" {
		query.StartTime = v
	}
	if v := params.Get("end"); v != "" {
		query.EndTime = v
	}

	conflicts, err := h.service.ListConflicts(r.Context(), query, id)
	if err != nil {
		h.log(r.Context(), "Conflicts", "appointment_id", id).ErrorContext(r.Context(), "conflict probe failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, conflictListResponse{Conflicts: toConflictDTOs(conflicts)})
}

type assignRequest struct {
	EmployeeID string `json:"employee_id"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type presenceRequest struct {
	PresenceStatus string `json:"presence_status"`
}

type appointmentResponse struct {
	Appointment appointmentDTO `json:"appointment"`
}

type appointmentListResponse struct {
	Appointments []appointmentDTO `json:"appointments"`
}

type conflictListResponse struct {
	Conflicts []conflictDTO `json:"conflicts"`
}

type appointmentDTO struct {
	ID              string     `json:"id"`
	CareRecipientID string     `json:"care_recipient_id"`
	EmployeeID      *string    `json:"employee_id,omitempty"`
	ScheduledDate   string     `json:"scheduled_date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          string     `json:"status"`
	PresenceStatus  string     `json:"presence_status"`
	CareTasks       []string   `json:"care_tasks,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CompletionNotes string     `json:"completion_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	Version         int        `json:"version"`
}

func toAppointmentDTO(appointment persistence.Appointment) appointmentDTO {
	return appointmentDTO{
		ID:              appointment.ID,
		CareRecipientID: appointment.CareRecipientID,
		EmployeeID:      appointment.EmployeeID,
		ScheduledDate:   appointment.ScheduledDate.Format("2006-01-02"),
		StartTime:       scheduling.TimeOfDay(appointment.StartMinutes).String(),
		EndTime:         scheduling.TimeOfDay(appointment.EndMinutes).String(),
		DurationMinutes: appointment.DurationMinutes,
		Status:          appointment.Status,
		PresenceStatus:  appointment.PresenceStatus,
		CareTasks:       appointment.CareTasks,
		Notes:           appointment.Notes,
		CompletionNotes: appointment.CompletionNotes,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
		ConfirmedAt:     appointment.ConfirmedAt,
		CompletedAt:     appointment.CompletedAt,
		Version:         appointment.Version,
	}
}

func appointmentFilterFromQuery(r *http.Request) (persistence.AppointmentFilter, error) {
	var filter persistence.AppointmentFilter
	params := r.URL.Query()

	if v := params.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := params.Get("care_recipient_id"); v != "" {
		filter.CareRecipientID = &v
	}
	if v := params.Get("date_from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return persistence.AppointmentFilter{}, errors.New("date_from must use the format 2006-01-02")
		}
		filter.DateFrom = &parsed
	}
	if v := params.Get("date_to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return persistence.AppointmentFilter{}, errors.New("date_to must use the format 2006-01-02")
		}
		filter.DateTo = &parsed
	}
	if v := params.Get("status"); v != "" {
		filter.Statuses = strings.Split(v, ",")
	}

	return filter, nil
}
