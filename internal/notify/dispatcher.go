// Package notify runs the background side of the notification queue: a
// periodic sweep that raises time-based confirmation requests and reminders,
// and a dispatcher that hands pending notifications to a delivery channel.
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

// Dispatcher delivers one notification over its delivery method. A nil error
// means the message was handed off; delivery confirmation arrives separately.
type Dispatcher interface {
	Dispatch(ctx context.Context, notification persistence.Notification) error
}

// LogDispatcher writes each notification to the log instead of an external
// channel. It stands in until a real email or SMS gateway is wired up.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, notification persistence.Notification) error {
	if d == nil {
		return fmt.Errorf("LogDispatcher is nil")
	}
	d.logger.InfoContext(ctx, "dispatching notification",
		"notification_id", notification.ID,
		"employee_id", notification.EmployeeID,
		"type", notification.Type,
		"delivery_method", notification.DeliveryMethod,
		"subject", notification.Subject,
	)
	return nil
}

// Pump drains due pending notifications through a Dispatcher and records the
// outcome on each record.
type Pump struct {
	notifications persistence.NotificationRepository
	dispatcher    Dispatcher
	now           func() time.Time
	logger        *slog.Logger
}

func NewPump(notifications persistence.NotificationRepository, dispatcher Dispatcher, now func() time.Time, logger *slog.Logger) *Pump {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pump{notifications: notifications, dispatcher: dispatcher, now: now, logger: logger}
}

// DispatchPending sends every pending notification whose scheduled time has
// arrived. Successfully handed-off records move to sent, failures to failed;
// one bad record does not stop the rest. Returns how many were dispatched.
func (p *Pump) DispatchPending(ctx context.Context) (int, error) {
	if p == nil {
		return 0, fmt.Errorf("Pump is nil")
	}

	records, err := p.notifications.ListNotifications(ctx, persistence.NotificationFilter{
		Statuses: []string{string(scheduling.DeliveryPending)},
	})
	if err != nil {
		return 0, fmt.Errorf("list pending notifications: %w", err)
	}

	now := p.now()
	dispatched := 0
	for _, record := range records {
		if record.ScheduledFor.After(now) {
			continue
		}

		if err := p.dispatcher.Dispatch(ctx, record); err != nil {
			p.logger.ErrorContext(ctx, "notification dispatch failed",
				"notification_id", record.ID, "error", err)
			record.Status = string(scheduling.DeliveryFailed)
		} else {
			sentAt := now
			record.Status = string(scheduling.DeliverySent)
			record.SentAt = &sentAt
			dispatched++
		}
		if err := p.notifications.UpdateNotification(ctx, record); err != nil {
			return dispatched, fmt.Errorf("record dispatch outcome for %s: %w", record.ID, err)
		}
	}
	return dispatched, nil
}

// Run registers the drain on a cron schedule and blocks until the context is
// cancelled. Dispatch errors are logged, not fatal.
func (p *Pump) Run(ctx context.Context, spec string) error {
	if p == nil {
		return fmt.Errorf("Pump is nil")
	}

	runner := cron.New()
	_, err := runner.AddFunc(spec, func() {
		if _, err := p.DispatchPending(ctx); err != nil {
			p.logger.ErrorContext(ctx, "notification dispatch pass failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("register dispatch schedule %q: %w", spec, err)
	}

	runner.Start()
	<-ctx.Done()
	stopped := runner.Stop()
	<-stopped.Done()
	return ctx.Err()
}
