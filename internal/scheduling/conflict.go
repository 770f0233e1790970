package scheduling

import "time"

// Booking is the slice of an appointment that conflict detection reads.
type Booking struct {
	AppointmentID string
	EmployeeID    *string
	Date          time.Time
	Range         TimeRange
}

// ConflictKind describes the kind of conflict detected for a candidate slot.
type ConflictKind string

const (
	// ConflictKindOverlap indicates the employee is double-booked.
	ConflictKindOverlap ConflictKind = "overlap"
	// ConflictKindUnavailable indicates the slot falls outside the
	// employee's resolved availability.
	ConflictKindUnavailable ConflictKind = "unavailable"
)

// Conflict details one condition blocking an appointment/employee pairing.
type Conflict struct {
	Kind              ConflictKind
	WithAppointmentID string
	EmployeeID        string
	Range             TimeRange
}

// FindConflicts identifies every conflict for the candidate slot against the
// existing bookings and the employee's resolved day schedule. All conflicting
// appointment ids are returned, not just the first, so callers can report the
// complete set of violations. Unassigned candidates never conflict.
//
// The overlap check is a linear scan over the supplied bookings. Callers are
// expected to pass only the candidate employee's bookings for the candidate
// date, which keeps the scan bounded by one employee-day at the agency scale
// this engine targets.
func FindConflicts(existing []Booking, candidate Booking, day DaySchedule, excludeAppointmentID string) []Conflict {
	if candidate.EmployeeID == nil {
		return nil
	}
	employeeID := *candidate.EmployeeID

	var conflicts []Conflict
	for _, booking := range existing {
		if booking.AppointmentID == candidate.AppointmentID {
			continue
		}
		if excludeAppointmentID != "" && booking.AppointmentID == excludeAppointmentID {
			continue
		}
		if booking.EmployeeID == nil || *booking.EmployeeID != employeeID {
			continue
		}
		if !SameDate(booking.Date, candidate.Date) {
			continue
		}
		if booking.Range.Overlaps(candidate.Range) {
			conflicts = append(conflicts, Conflict{
				Kind:              ConflictKindOverlap,
				WithAppointmentID: booking.AppointmentID,
				EmployeeID:        employeeID,
				Range:             booking.Range,
			})
		}
	}

	if !day.Allows(candidate.Range) {
		conflicts = append(conflicts, Conflict{
			Kind:       ConflictKindUnavailable,
			EmployeeID: employeeID,
			Range:      candidate.Range,
		})
	}

	return conflicts
}
