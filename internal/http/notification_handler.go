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
)

type notificationService interface {
	CreateNotification(ctx context.Context, input application.NotificationInput) (persistence.Notification, error)
	GetNotification(ctx context.Context, id string) (persistence.Notification, error)
	ListNotifications(ctx context.Context, filter persistence.NotificationFilter) ([]persistence.Notification, error)
	MarkSent(ctx context.Context, id string) (persistence.Notification, error)
	MarkDelivered(ctx context.Context, id string) (persistence.Notification, error)
	MarkFailed(ctx context.Context, id string) (persistence.Notification, error)
}

type NotificationHandler struct {
	service   notificationService
	responder responder
	logger    *slog.Logger
}

func NewNotificationHandler(service notificationService, logger *slog.Logger) *NotificationHandler {
	base := defaultLogger(logger)
	return &NotificationHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *NotificationHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "NotificationHandler", operation, attrs...)
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var input application.NotificationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode notification request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "employee_id", input.EmployeeID)

	notification, err := h.service.CreateNotification(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "notification creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("notification_id", notification.ID).InfoContext(r.Context(), "notification queued")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, notificationResponse{Notification: toNotificationDTO(notification)})
}

func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := NotificationIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidNotificationID)
		return
	}

	notification, err := h.service.GetNotification(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "notification_id", id).ErrorContext(r.Context(), "notification fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, notificationResponse{Notification: toNotificationDTO(notification)})
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	filter := notificationFilterFromQuery(r)

	notifications, err := h.service.ListNotifications(r.Context(), filter)
	if err != nil {
		h.log(r.Context(), "List").ErrorContext(r.Context(), "notification listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]notificationDTO, 0, len(notifications))
	for _, notification := range notifications {
		dtos = append(dtos, toNotificationDTO(notification))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, notificationListResponse{Notifications: dtos})
}

// Delivery records the outcome a dispatcher observed for one notification.
func (h *NotificationHandler) Delivery(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := NotificationIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidNotificationID)
		return
	}

	var body deliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.log(r.Context(), "Delivery", "notification_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode delivery report", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Delivery", "notification_id", id, "outcome", body.Outcome)

	var (
		notification persistence.Notification
		err          error
	)
	switch body.Outcome {
	case "sent":
		notification, err = h.service.MarkSent(r.Context(), id)
	case "delivered":
		notification, err = h.service.MarkDelivered(r.Context(), id)
	case "failed":
		notification, err = h.service.MarkFailed(r.Context(), id)
	default:
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errors.New("outcome must be one of sent, delivered, failed"))
		return
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "delivery state update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "delivery state recorded")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, notificationResponse{Notification: toNotificationDTO(notification)})
}

func notificationFilterFromQuery(r *http.Request) persistence.NotificationFilter {
	params := r.URL.Query()
	var filter persistence.NotificationFilter
	if v := params.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := params.Get("appointment_id"); v != "" {
		filter.AppointmentID = &v
	}
	if v := params.Get("status"); v != "" {
		filter.Statuses = strings.Split(v, ",")
	}
	if v := params.Get("type"); v != "" {
		filter.Types = strings.Split(v, ",")
	}
	return filter
}

type deliveryRequest struct {
	Outcome string `json:"outcome"`
}

type notificationResponse struct {
	Notification notificationDTO `json:"notification"`
}

type notificationListResponse struct {
	Notifications []notificationDTO `json:"notifications"`
}

type notificationDTO struct {
	ID             string            `json:"id"`
	EmployeeID     string            `json:"employee_id"`
	Type           string            `json:"type"`
	Subject        string            `json:"subject"`
	Message        string            `json:"message"`
	Status         string            `json:"status"`
	DeliveryMethod string            `json:"delivery_method"`
	ScheduledFor   time.Time         `json:"scheduled_for"`
	SentAt         *time.Time        `json:"sent_at,omitempty"`
	DeliveredAt    *time.Time        `json:"delivered_at,omitempty"`
	AppointmentID  *string           `json:"appointment_id,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

func toNotificationDTO(notification persistence.Notification) notificationDTO {
	return notificationDTO{
		ID:             notification.ID,
		EmployeeID:     notification.EmployeeID,
		Type:           notification.Type,
		Subject:        notification.Subject,
		Message:        notification.Message,
		Status:         notification.Status,
		DeliveryMethod: notification.DeliveryMethod,
		ScheduledFor:   notification.ScheduledFor,
		SentAt:         notification.SentAt,
		DeliveredAt:    notification.DeliveredAt,
		AppointmentID:  notification.AppointmentID,
		Metadata:       notification.Metadata,
		CreatedAt:      notification.CreatedAt,
	}
}
