package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/homecare-scheduler/internal/persistence"
	"github.com/example/homecare-scheduler/internal/scheduling"
)

func newNotificationService() (*NotificationService, *memNotifications) {
	repo := newMemNotifications()
	employees := newMemEmployees(
		persistence.Employee{ID: "emp-1", FirstName: "Ada", LastName: "Nilsen", Email: "ada@example.com", IsActive: true},
	)
	service := NewNotificationService(repo, employees, DefaultSchedulingPolicy(), sequenceIDs("ntf"), fixedNow(referenceNow))
	return service, repo
}

func validNotificationInput() NotificationInput {
	return NotificationInput{
		EmployeeID: "emp-1",
		Type:       "schedule_change",
		Subject:    "Shift swap",
		Message:    "Your Wednesday visit moved to Thursday.",
	}
}

func TestCreateNotification(t *testing.T) {
	t.Parallel()
	service, _ := newNotificationService()

	notification, err := service.CreateNotification(context.Background(), validNotificationInput())
	if err != nil {
		t.Fatalf("CreateNotification returned error: %v", err)
	}
	if notification.Status != string(scheduling.DeliveryPending) {
		t.Errorf("status = %q, want pending", notification.Status)
	}
	if notification.DeliveryMethod != "email" {
		t.Errorf("delivery method = %q, want email default", notification.DeliveryMethod)
	}
	if !notification.ScheduledFor.Equal(referenceNow) {
		t.Errorf("scheduled for = %v, want %v", notification.ScheduledFor, referenceNow)
	}
}

func TestCreateNotificationValidation(t *testing.T) {
	t.Parallel()
	service, _ := newNotificationService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*NotificationInput)
		field  string
	}{
		{"missing employee", func(in *NotificationInput) { in.EmployeeID = "" }, "employee_id"},
		{"unknown type", func(in *NotificationInput) { in.Type = "carrier_pigeon" }, "type"},
		{"missing subject", func(in *NotificationInput) { in.Subject = "" }, "subject"},
		{"bad schedule", func(in *NotificationInput) { in.ScheduledFor = strPtr("tomorrow") }, "scheduled_for"},
		{"unknown method", func(in *NotificationInput) { in.DeliveryMethod = "fax" }, "delivery_method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validNotificationInput()
			tt.mutate(&input)
			_, err := service.CreateNotification(ctx, input)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if _, ok := vErr.FieldErrors[tt.field]; !ok {
				t.Errorf("FieldErrors = %v, want entry for %q", vErr.FieldErrors, tt.field)
			}
		})
	}
}

func TestCreateNotificationUnknownEmployee(t *testing.T) {
	t.Parallel()
	service, _ := newNotificationService()

	input := validNotificationInput()
	input.EmployeeID = "emp-missing"
	_, err := service.CreateNotification(context.Background(), input)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeliveryLifecycle(t *testing.T) {
	t.Parallel()
	service, _ := newNotificationService()
	ctx := context.Background()

	notification, err := service.CreateNotification(ctx, validNotificationInput())
	if err != nil {
		t.Fatalf("CreateNotification returned error: %v", err)
	}

	sent, err := service.MarkSent(ctx, notification.ID)
	if err != nil {
		t.Fatalf("MarkSent returned error: %v", err)
	}
	if sent.Status != string(scheduling.DeliverySent) || sent.SentAt == nil {
		t.Errorf("sent = %+v, want sent status with timestamp", sent)
	}

	delivered, err := service.MarkDelivered(ctx, notification.ID)
	if err != nil {
		t.Fatalf("MarkDelivered returned error: %v", err)
	}
	if delivered.Status != string(scheduling.DeliveryDelivered) || delivered.DeliveredAt == nil {
		t.Errorf("delivered = %+v, want delivered status with timestamp", delivered)
	}
}

func TestMarkFailed(t *testing.T) {
	t.Parallel()
	service, _ := newNotificationService()
	ctx := context.Background()

	notification, err := service.CreateNotification(ctx, validNotificationInput())
	if err != nil {
		t.Fatalf("CreateNotification returned error: %v", err)
	}
	failed, err := service.MarkFailed(ctx, notification.ID)
	if err != nil {
		t.Fatalf("MarkFailed returned error: %v", err)
	}
	if failed.Status != string(scheduling.DeliveryFailed) {
		t.Errorf("status = %q, want failed", failed.Status)
	}

	if _, err := service.MarkSent(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
