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
	"github.com/example/homecare-scheduler/internal/scheduling"
)

type availabilityService interface {
	CreateAvailabilityPeriod(ctx context.Context, input application.AvailabilityPeriodInput) (persistence.AvailabilityPeriod, error)
	UpdateAvailabilityPeriod(ctx context.Context, id string, patch application.AvailabilityPeriodUpdate) (persistence.AvailabilityPeriod, error)
	GetAvailabilityPeriod(ctx context.Context, id string) (persistence.AvailabilityPeriod, error)
	DeleteAvailabilityPeriod(ctx context.Context, id string) error
	ListForEmployee(ctx context.Context, employeeID string) ([]persistence.AvailabilityPeriod, error)
}

type AvailabilityHandler struct {
	service   availabilityService
	responder responder
	logger    *slog.Logger
}

func NewAvailabilityHandler(service availabilityService, logger *slog.Logger) *AvailabilityHandler {
	base := defaultLogger(logger)
	return &AvailabilityHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AvailabilityHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AvailabilityHandler", operation, attrs...)
}

func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var input application.AvailabilityPeriodInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode availability period request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "employee_id", input.EmployeeID)

	period, err := h.service.CreateAvailabilityPeriod(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "availability period creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("period_id", period.ID).InfoContext(r.Context(), "availability period created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, availabilityPeriodResponse{AvailabilityPeriod: toAvailabilityPeriodDTO(period)})
}

func (h *AvailabilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := PeriodIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidPeriodID)
		return
	}

	var patch application.AvailabilityPeriodUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.log(r.Context(), "Update", "period_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode availability period update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "period_id", id)

	period, err := h.service.UpdateAvailabilityPeriod(r.Context(), id, patch)
	if err != nil {
		logger.ErrorContext(r.Context(), "availability period update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "availability period updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityPeriodResponse{AvailabilityPeriod: toAvailabilityPeriodDTO(period)})
}

func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := PeriodIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidPeriodID)
		return
	}

	period, err := h.service.GetAvailabilityPeriod(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "period_id", id).ErrorContext(r.Context(), "availability period fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityPeriodResponse{AvailabilityPeriod: toAvailabilityPeriodDTO(period)})
}

func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := PeriodIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidPeriodID)
		return
	}

	logger := h.log(r.Context(), "Delete", "period_id", id)

	if err := h.service.DeleteAvailabilityPeriod(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "availability period deletion failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "availability period deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	periods, err := h.service.ListForEmployee(r.Context(), employeeID)
	if err != nil {
		h.log(r.Context(), "List", "employee_id", employeeID).ErrorContext(r.Context(), "availability period listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]availabilityPeriodDTO, 0, len(periods))
	for _, period := range periods {
		dtos = append(dtos, toAvailabilityPeriodDTO(period))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityPeriodListResponse{AvailabilityPeriods: dtos})
}

type availabilityPeriodResponse struct {
	AvailabilityPeriod availabilityPeriodDTO `json:"availability_period"`
}

type availabilityPeriodListResponse struct {
	AvailabilityPeriods []availabilityPeriodDTO `json:"availability_periods"`
}

type availabilityPeriodDTO struct {
	ID               string    `json:"id"`
	EmployeeID       string    `json:"employee_id"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	StartTime        *string   `json:"start_time,omitempty"`
	EndTime          *string   `json:"end_time,omitempty"`
	AvailabilityType string    `json:"availability_type"`
	RecurringDays    []string  `json:"recurring_days,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toAvailabilityPeriodDTO(period persistence.AvailabilityPeriod) availabilityPeriodDTO {
	dto := availabilityPeriodDTO{
		ID:               period.ID,
		EmployeeID:       period.EmployeeID,
		StartDate:        period.StartDate.Format("2006-01-02"),
		EndDate:          period.EndDate.Format("2006-01-02"),
		AvailabilityType: period.AvailabilityType,
		RecurringDays:    period.RecurringDays,
		Notes:            period.Notes,
		CreatedAt:        period.CreatedAt,
		UpdatedAt:        period.UpdatedAt,
	}
	if period.StartMinutes != nil {
		v := scheduling.TimeOfDay(*period.StartMinutes).String()
		dto.StartTime = &v
	}
	if period.EndMinutes != nil {
		v := scheduling.TimeOfDay(*period.EndMinutes).String()
		dto.EndTime = &v
	}
	return dto
}
