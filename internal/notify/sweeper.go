package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/homecare-scheduler/internal/persistence"
	"github.com/example/homecare-scheduler/internal/scheduling"
)

// Sweeper raises the time-based notifications that no API call triggers:
// confirmation requests as appointments approach their confirmation lead, and
// reminders for confirmed visits nearing their start.
type Sweeper struct {
	appointments   persistence.AppointmentRepository
	notifications  persistence.NotificationRepository
	policy         scheduling.TriggerPolicy
	deliveryMethod string
	idGenerator    func() string
	now            func() time.Time
	logger         *slog.Logger
}

func NewSweeper(
	appointments persistence.AppointmentRepository,
	notifications persistence.NotificationRepository,
	policy scheduling.TriggerPolicy,
	deliveryMethod string,
	idGenerator func() string,
	now func() time.Time,
	logger *slog.Logger,
) *Sweeper {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	if deliveryMethod == "" {
		deliveryMethod = "email"
	}
	return &Sweeper{
		appointments:   appointments,
		notifications:  notifications,
		policy:         policy,
		deliveryMethod: deliveryMethod,
		idGenerator:    idGenerator,
		now:            now,
		logger:         logger,
	}
}

// SweepOnce walks appointments inside the widest lead window and queues every
// due notification that does not already have a pending twin. Returns the
// number queued.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("Sweeper is nil")
	}

	now := s.now()
	lead := s.policy.ConfirmationLead
	if s.policy.ReminderLead > lead {
		lead = s.policy.ReminderLead
	}

	from := scheduling.DateOf(now)
	// One extra day absorbs appointments whose start crosses midnight of the
	// last lead day.
	to := scheduling.DateOf(now.Add(lead)).AddDate(0, 0, 1)

	records, err := s.appointments.ListAppointments(ctx, persistence.AppointmentFilter{
		DateFrom: &from,
		DateTo:   &to,
		Statuses: []string{string(scheduling.StatusScheduled), string(scheduling.StatusConfirmed)},
	})
	if err != nil {
		return 0, fmt.Errorf("list candidate appointments: %w", err)
	}

	queued := 0
	for _, record := range records {
		view := scheduling.AppointmentView{
			ID:         record.ID,
			EmployeeID: record.EmployeeID,
			Date:       record.ScheduledDate,
			Range: scheduling.TimeRange{
				Start: scheduling.TimeOfDay(record.StartMinutes),
				End:   scheduling.TimeOfDay(record.EndMinutes),
			},
			Status:   scheduling.Status(record.Status),
			Presence: scheduling.Presence(record.PresenceStatus),
		}

		var requests []scheduling.NotificationRequest
		if scheduling.ConfirmationDue(view, now, s.policy) {
			requests = append(requests, scheduling.ConfirmationRequest(view, now))
		}
		if scheduling.ReminderDue(view, now, s.policy) {
			requests = append(requests, scheduling.Reminder(view, now))
		}
		if len(requests) == 0 {
			continue
		}

		pending, err := s.pendingKeys(ctx, record.ID)
		if err != nil {
			return queued, err
		}
		for _, request := range scheduling.DedupeRequests(requests, pending) {
			if err := s.queue(ctx, request); err != nil {
				return queued, err
			}
			queued++
		}
	}

	if queued > 0 {
		s.logger.InfoContext(ctx, "notification sweep queued messages", "queued", queued)
	}
	return queued, nil
}

// Run registers the sweep on a cron schedule and blocks until the context is
// cancelled. Sweep errors are logged, not fatal.
func (s *Sweeper) Run(ctx context.Context, spec string) error {
	if s == nil {
		return fmt.Errorf("Sweeper is nil")
	}

	runner := cron.New()
	_, err := runner.AddFunc(spec, func() {
		if _, err := s.SweepOnce(ctx); err != nil {
			s.logger.ErrorContext(ctx, "notification sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("register sweep schedule %q: %w", spec, err)
	}

	runner.Start()
	<-ctx.Done()
	stopped := runner.Stop()
	<-stopped.Done()
	return ctx.Err()
}

func (s *Sweeper) pendingKeys(ctx context.Context, appointmentID string) ([]scheduling.PendingKey, error) {
	records, err := s.notifications.ListNotifications(ctx, persistence.NotificationFilter{
		AppointmentID: &appointmentID,
		Statuses:      []string{string(scheduling.DeliveryPending)},
	})
	if err != nil {
		return nil, fmt.Errorf("list pending notifications for %s: %w", appointmentID, err)
	}
	keys := make([]scheduling.PendingKey, 0, len(records))
	for _, record := range records {
		keys = append(keys, scheduling.PendingKey{
			AppointmentID: appointmentID,
			EmployeeID:    record.EmployeeID,
			Type:          scheduling.NotificationType(record.Type),
		})
	}
	return keys, nil
}

func (s *Sweeper) queue(ctx context.Context, request scheduling.NotificationRequest) error {
	appointmentID := request.AppointmentID
	notification := persistence.Notification{
		ID:             s.idGenerator(),
		EmployeeID:     request.EmployeeID,
		Type:           string(request.Type),
		Subject:        request.Subject,
		Message:        request.Message,
		Status:         string(scheduling.DeliveryPending),
		DeliveryMethod: s.deliveryMethod,
		ScheduledFor:   request.ScheduledFor,
		AppointmentID:  &appointmentID,
		CreatedAt:      s.now(),
	}
	if err := s.notifications.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("queue %s notification for %s: %w", request.Type, appointmentID, err)
	}
	return nil
}
