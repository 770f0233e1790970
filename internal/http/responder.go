package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/homecare-scheduler/internal/application"
	"github.com/example/homecare-scheduler/internal/scheduling"
)

var (
	errBadRequestBody        = errors.New("request body is not valid JSON")
	errInvalidAppointmentID  = errors.New("invalid appointment id")
	errInvalidEmployeeID     = errors.New("invalid employee id")
	errInvalidRecipientID    = errors.New("invalid care recipient id")
	errInvalidPeriodID       = errors.New("invalid availability period id")
	errInvalidNotificationID = errors.New("invalid notification id")
	errInvalidTemplateID     = errors.New("invalid template id")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError translates the application error model into HTTP
// statuses: validation 422, missing resources 404, conflicts and illegal
// transitions 409, retryable persistence races 503.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	if errors.Is(err, application.ErrNotFound) {
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "the requested resource was not found"})
		return
	}

	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "the request contains invalid fields",
			Errors:  vErr.FieldErrors,
		})
		return
	}

	var cErr *application.ConflictError
	if errors.As(err, &cErr) {
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "SCHEDULING_CONFLICT",
			Message:   cErr.Error(),
			Conflicts: toConflictDTOs(cErr.Conflicts),
		})
		return
	}

	var tErr *scheduling.InvalidTransitionError
	if errors.As(err, &tErr) {
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "INVALID_TRANSITION",
			Message:   tErr.Error(),
		})
		return
	}

	var rErr *application.RetryableError
	if errors.As(err, &rErr) {
		w.Header().Set("Retry-After", "1")
		r.writeJSON(ctx, w, http.StatusServiceUnavailable, errorResponse{
			ErrorCode: "RETRY",
			Message:   "the operation lost a concurrent update race; retry the request",
		})
		return
	}

	r.loggerFor(ctx).ErrorContext(ctx, "unexpected service error", "error", err)
	r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "an internal error occurred"})
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Conflicts []conflictDTO     `json:"conflicts,omitempty"`
}

type conflictDTO struct {
	Kind              string `json:"kind"`
	WithAppointmentID string `json:"with_appointment_id,omitempty"`
	EmployeeID        string `json:"employee_id"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
}

func toConflictDTOs(conflicts []scheduling.Conflict) []conflictDTO {
	if len(conflicts) == 0 {
		return nil
	}
	dtos := make([]conflictDTO, 0, len(conflicts))
	for _, conflict := range conflicts {
		dtos = append(dtos, conflictDTO{
			Kind:              string(conflict.Kind),
			WithAppointmentID: conflict.WithAppointmentID,
			EmployeeID:        conflict.EmployeeID,
			StartTime:         conflict.Range.Start.String(),
			EndTime:           conflict.Range.End.String(),
		})
	}
	return dtos
}
