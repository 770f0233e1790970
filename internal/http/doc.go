// Package http provides HTTP handlers and middleware for the home care
// scheduling API.
//
// The router exposes the following endpoints:
//   - GET /appointments, POST /appointments, GET /appointments/{id},
//     PATCH /appointments/{id}: appointment lifecycle endpoints exchanging the
//     `appointmentDTO` payload defined in appointment_handler.go. Listing
//     accepts employee_id, care_recipient_id, date_from, date_to and status
//     filters.
//   - POST /appointments/{id}/assign: assigns or reassigns the caretaker.
//     Body: {"employee_id"}. Conflicting slots answer 409 with the conflict
//     list; reassignment supersedes the previous assignee's pending notice.
//   - POST /appointments/{id}/status, POST /appointments/{id}/presence: drive
//     the appointment status and presence state machines. Illegal transitions
//     answer 409 with error_code INVALID_TRANSITION.
//   - GET /appointments/{id}/conflicts: dry-run conflict probe for the stored
//     slot, overridable via employee_id, date, start and end query parameters.
//   - GET /employees, POST /employees, GET /employees/{id},
//     PUT /employees/{id}: employee management endpoints exchanging the
//     `employeeDTO` payload defined in employee_handler.go.
//   - GET /employees/{id}/availability?date=&start=&end=: answers whether the
//     declared availability covers the requested slot.
//   - GET /care-recipients, POST /care-recipients, GET /care-recipients/{id},
//     PUT /care-recipients/{id}: care recipient endpoints exchanging the
//     `careRecipientDTO` payload defined in care_recipient_handler.go.
//   - GET /availability-periods?employee_id=, POST /availability-periods,
//     GET /availability-periods/{id}, PUT /availability-periods/{id},
//     DELETE /availability-periods/{id}: declared availability management
//     exchanging the `availabilityPeriodDTO` payload defined in
//     availability_handler.go.
//   - GET /notifications, POST /notifications, GET /notifications/{id}:
//     notification queue endpoints; listing accepts employee_id,
//     appointment_id, status and type filters.
//   - POST /notifications/{id}/delivery: records a dispatcher outcome.
//     Body: {"outcome"} with sent, delivered or failed.
//   - GET /schedule-templates, POST /schedule-templates,
//     GET /schedule-templates/{id}, PUT /schedule-templates/{id}: schedule
//     template storage exchanging the `templateDTO` payload defined in
//     template_handler.go. Expansion into appointments is not performed here.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
