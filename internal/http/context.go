package http

import "context"

type contextKey string

const (
	appointmentIDContextKey   contextKey = "appointment_id"
	employeeIDContextKey      contextKey = "employee_id"
	careRecipientIDContextKey contextKey = "care_recipient_id"
	periodIDContextKey        contextKey = "availability_period_id"
	notificationIDContextKey  contextKey = "notification_id"
	templateIDContextKey      contextKey = "template_id"
)

// ContextWithAppointmentID injects the appointment identifier resolved from
// the request path.
func ContextWithAppointmentID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, appointmentIDContextKey, id)
}

// AppointmentIDFromContext extracts an appointment identifier previously
// associated with the context.
func AppointmentIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(appointmentIDContextKey).(string)
	return id, ok
}

// ContextWithEmployeeID injects the employee identifier resolved from the
// request path.
func ContextWithEmployeeID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, employeeIDContextKey, id)
}

// EmployeeIDFromContext extracts an employee identifier previously associated
// with the context.
func EmployeeIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(employeeIDContextKey).(string)
	return id, ok
}

// ContextWithCareRecipientID injects the care recipient identifier resolved
// from the request path.
func ContextWithCareRecipientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, careRecipientIDContextKey, id)
}

// CareRecipientIDFromContext extracts a care recipient identifier previously
// associated with the context.
func CareRecipientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(careRecipientIDContextKey).(string)
	return id, ok
}

// ContextWithPeriodID injects the availability period identifier resolved
// from the request path.
func ContextWithPeriodID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, periodIDContextKey, id)
}

// PeriodIDFromContext extracts an availability period identifier previously
// associated with the context.
func PeriodIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(periodIDContextKey).(string)
	return id, ok
}

// ContextWithNotificationID injects the notification identifier resolved from
// the request path.
func ContextWithNotificationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, notificationIDContextKey, id)
}

// NotificationIDFromContext extracts a notification identifier previously
// associated with the context.
func NotificationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(notificationIDContextKey).(string)
	return id, ok
}

// ContextWithTemplateID injects the template identifier resolved from the
// request path.
func ContextWithTemplateID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, templateIDContextKey, id)
}

// TemplateIDFromContext extracts a template identifier previously associated
// with the context.
func TemplateIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(templateIDContextKey).(string)
	return id, ok
}
