package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/homecare-scheduler/internal/persistence"
	"github.com/example/homecare-scheduler/internal/scheduling"
)

// NotificationService queues ad-hoc notifications and records delivery
// outcomes reported by the dispatcher. Trigger-driven notifications are
// queued by the scheduling service; this service never derives them.
type NotificationService struct {
	notifications persistence.NotificationRepository
	employees     persistence.EmployeeRepository
	policy        SchedulingPolicy
	idGenerator   func() string
	now           func() time.Time
	logger        *slog.Logger
}

// NewNotificationService wires dependencies for the notification service.
func NewNotificationService(
	notifications persistence.NotificationRepository,
	employees persistence.EmployeeRepository,
	policy SchedulingPolicy,
	idGenerator func() string,
	now func() time.Time,
) *NotificationService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if policy.DefaultDeliveryMethod == "" {
		policy.DefaultDeliveryMethod = "email"
	}
	return &NotificationService{
		notifications: notifications,
		employees:     employees,
		policy:        policy,
		idGenerator:   idGenerator,
		now:           now,
	}
}

// WithLogger attaches a base logger used when the context carries none.
func (s *NotificationService) WithLogger(logger *slog.Logger) *NotificationService {
	s.logger = logger
	return s
}

// CreateNotification queues an ad-hoc message to an employee.
func (s *NotificationService) CreateNotification(ctx context.Context, input NotificationInput) (persistence.Notification, error) {
	if s == nil {
		return persistence.Notification{}, fmt.Errorf("NotificationService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "notifications", "create_notification")

	vErr := validateStruct(input)
	if vErr == nil {
		vErr = &ValidationError{}
	}
	now := s.now()
	scheduledFor := now
	if input.ScheduledFor != nil {
		parsed, err := time.Parse(time.RFC3339, *input.ScheduledFor)
		if err != nil {
			vErr.add("scheduled_for", "must use RFC 3339 format")
		} else {
			scheduledFor = parsed
		}
	}
	if vErr.HasErrors() {
		return persistence.Notification{}, vErr
	}

	if _, err := s.employees.GetEmployee(ctx, input.EmployeeID); err != nil {
		return persistence.Notification{}, mapRepoError(err)
	}

	method := input.DeliveryMethod
	if method == "" {
		method = s.policy.DefaultDeliveryMethod
	}

	notification := persistence.Notification{
		ID:             s.idGenerator(),
		EmployeeID:     input.EmployeeID,
		Type:           input.Type,
		Subject:        input.Subject,
		Message:        input.Message,
		Status:         string(scheduling.DeliveryPending),
		DeliveryMethod: method,
		ScheduledFor:   scheduledFor,
		AppointmentID:  input.AppointmentID,
		Metadata:       input.Metadata,
		CreatedAt:      now,
	}

	if err := s.notifications.CreateNotification(ctx, notification); err != nil {
		return persistence.Notification{}, mapRepoError(err)
	}

	logger.Info("notification queued", "notification_id", notification.ID, "type", notification.Type)
	return notification, nil
}

// GetNotification retrieves a notification by id.
func (s *NotificationService) GetNotification(ctx context.Context, id string) (persistence.Notification, error) {
	notification, err := s.notifications.GetNotification(ctx, id)
	if err != nil {
		return persistence.Notification{}, mapRepoError(err)
	}
	return notification, nil
}

// ListNotifications returns notifications matching the filter.
func (s *NotificationService) ListNotifications(ctx context.Context, filter persistence.NotificationFilter) ([]persistence.Notification, error) {
	notifications, err := s.notifications.ListNotifications(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return notifications, nil
}

// MarkSent records that the dispatcher handed the notification to a channel.
func (s *NotificationService) MarkSent(ctx context.Context, id string) (persistence.Notification, error) {
	return s.setDeliveryState(ctx, id, scheduling.DeliverySent)
}

// MarkDelivered records a confirmed delivery.
func (s *NotificationService) MarkDelivered(ctx context.Context, id string) (persistence.Notification, error) {
	return s.setDeliveryState(ctx, id, scheduling.DeliveryDelivered)
}

// MarkFailed records a delivery failure.
func (s *NotificationService) MarkFailed(ctx context.Context, id string) (persistence.Notification, error) {
	return s.setDeliveryState(ctx, id, scheduling.DeliveryFailed)
}

func (s *NotificationService) setDeliveryState(ctx context.Context, id string, status scheduling.DeliveryStatus) (persistence.Notification, error) {
	if s == nil {
		return persistence.Notification{}, fmt.Errorf("NotificationService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "notifications", "set_delivery_state", "notification_id", id)

	notification, err := s.notifications.GetNotification(ctx, id)
	if err != nil {
		return persistence.Notification{}, mapRepoError(err)
	}

	now := s.now()
	notification.Status = string(status)
	switch status {
	case scheduling.DeliverySent:
		notification.SentAt = &now
	case scheduling.DeliveryDelivered:
		if notification.SentAt == nil {
			notification.SentAt = &now
		}
		notification.DeliveredAt = &now
	}

	if err := s.notifications.UpdateNotification(ctx, notification); err != nil {
		return persistence.Notification{}, mapRepoError(err)
	}

	logger.Info("delivery state recorded", "status", notification.Status)
	return notification, nil
}
