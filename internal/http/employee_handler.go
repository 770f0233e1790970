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

type employeeService interface {
	CreateEmployee(ctx context.Context, input application.EmployeeInput) (persistence.Employee, error)
	UpdateEmployee(ctx context.Context, id string, patch application.EmployeeUpdate) (persistence.Employee, error)
	GetEmployee(ctx context.Context, id string) (persistence.Employee, error)
	ListEmployees(ctx context.Context, includeInactive bool) ([]persistence.Employee, error)
}

type availabilityQueryService interface {
	QueryAvailability(ctx context.Context, query application.AvailabilityQuery) (bool, error)
}

type EmployeeHandler struct {
	service      employeeService
	availability availabilityQueryService
	responder    responder
	logger       *slog.Logger
}

func NewEmployeeHandler(service employeeService, availability availabilityQueryService, logger *slog.Logger) *EmployeeHandler {
	base := defaultLogger(logger)
	return &EmployeeHandler{service: service, availability: availability, responder: newResponder(base), logger: base}
}

func (h *EmployeeHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EmployeeHandler", operation, attrs...)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var input application.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode employee request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	employee, err := h.service.CreateEmployee(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "employee creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("employee_id", employee.ID).InfoContext(r.Context(), "employee created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, employeeResponse{Employee: toEmployeeDTO(employee)})
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	var patch application.EmployeeUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.log(r.Context(), "Update", "employee_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode employee update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "employee_id", id)

	employee, err := h.service.UpdateEmployee(r.Context(), id, patch)
	if err != nil {
		logger.ErrorContext(r.Context(), "employee update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "employee updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, employeeResponse{Employee: toEmployeeDTO(employee)})
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	employee, err := h.service.GetEmployee(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "employee_id", id).ErrorContext(r.Context(), "employee fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, employeeResponse{Employee: toEmployeeDTO(employee)})
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	employees, err := h.service.ListEmployees(r.Context(), includeInactive)
	if err != nil {
		h.log(r.Context(), "List").ErrorContext(r.Context(), "employee listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]employeeDTO, 0, len(employees))
	for _, employee := range employees {
		dtos = append(dtos, toEmployeeDTO(employee))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, employeeListResponse{Employees: dtos})
}

// Availability answers whether the employee can take a slot, from the
// declared availability alone. Existing bookings are probed through the
// appointment conflicts endpoint instead.
func (h *EmployeeHandler) Availability(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.availability == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	params := r.URL.Query()
	query := application.AvailabilityQuery{
		EmployeeID: id,
		Date:       params.Get("date"),
		StartTime:  params.Get("start"),
		EndTime:    params.Get("end"),
	}

	available, err := h.availability.QueryAvailability(r.Context(), query)
	if err != nil {
		h.log(r.Context(), "Availability", "employee_id", id).ErrorContext(r.Context(), "availability query failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityResponse{
		EmployeeID: id,
		Date:       query.Date,
		StartTime:  query.StartTime,
		EndTime:    query.EndTime,
		Available:  available,
	})
}

type employeeResponse struct {
	Employee employeeDTO `json:"employee"`
}

type employeeListResponse struct {
	Employees []employeeDTO `json:"employees"`
}

type availabilityResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Available  bool   `json:"available"`
}

type employeeDTO struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone,omitempty"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"is_active"`
	HourlyRate     *float64  `json:"hourly_rate,omitempty"`
	Qualifications []string  `json:"qualifications,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toEmployeeDTO(employee persistence.Employee) employeeDTO {
	return employeeDTO{
		ID:             employee.ID,
		FirstName:      employee.FirstName,
		LastName:       employee.LastName,
		Email:          employee.Email,
		Phone:          employee.Phone,
		Role:           employee.Role,
		IsActive:       employee.IsActive,
		HourlyRate:     employee.HourlyRate,
		Qualifications: employee.Qualifications,
		Notes:          employee.Notes,
		CreatedAt:      employee.CreatedAt,
		UpdatedAt:      employee.UpdatedAt,
	}
}
