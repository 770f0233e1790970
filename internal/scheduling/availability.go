package scheduling

import (
	"strings"
	"time"
)

// PeriodType classifies an availability period. Exclusion types always
// dominate PeriodAvailable when windows overlap.
type PeriodType string

const (
	PeriodAvailable   PeriodType = "available"
	PeriodVacation    PeriodType = "vacation"
	PeriodSickLeave   PeriodType = "sick_leave"
	PeriodUnavailable PeriodType = "unavailable"
)

// Exclusion reports whether the period type blocks scheduling.
func (t PeriodType) Exclusion() bool {
	switch t {
	case PeriodVacation, PeriodSickLeave, PeriodUnavailable:
		return true
	}
	return false
}

// Known reports whether the value is one of the defined period types.
func (t PeriodType) Known() bool {
	return t == PeriodAvailable || t.Exclusion()
}

// ParseWeekday maps the lowercase day names stored on availability periods to
// time.Weekday values.
func ParseWeekday(name string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	}
	return time.Sunday, false
}

// Period is a declared availability span for one employee. The date span is
// inclusive on both ends; Window narrows each covered day and nil means the
// whole day. Weekdays, when non-empty, restricts the span to those days.
type Period struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Window     *TimeRange
	Type       PeriodType
	Weekdays   []time.Weekday
	CreatedAt  time.Time
}

// AppliesOn reports whether the period contributes a window on the given date.
func (p Period) AppliesOn(date time.Time) bool {
	day := DateOf(date)
	if day.Before(DateOf(p.StartDate)) || day.After(DateOf(p.EndDate)) {
		return false
	}
	if len(p.Weekdays) == 0 {
		return true
	}
	weekday := day.Weekday()
	for _, allowed := range p.Weekdays {
		if allowed == weekday {
			return true
		}
	}
	return false
}

func (p Period) window() TimeRange {
	if p.Window == nil {
		return FullDay
	}
	return *p.Window
}

// DaySchedule is the resolved availability picture for one employee on one
// date: the merged union of declared available windows and the merged union
// of exclusion windows layered over them.
type DaySchedule struct {
	Available []TimeRange
	Excluded  []TimeRange
}

// ResolveDay collapses all periods of one employee into the effective
// schedule for a date. Periods of the same type union their windows, so
// overlapping same-type periods need no precedence ordering; exclusions are
// kept separate because they veto any overlap regardless of the available
// union.
func ResolveDay(periods []Period, date time.Time) DaySchedule {
	var available, excluded []TimeRange
	for _, period := range periods {
		if !period.AppliesOn(date) {
			continue
		}
		switch {
		case period.Type.Exclusion():
			excluded = append(excluded, period.window())
		case period.Type == PeriodAvailable:
			available = append(available, period.window())
		}
	}
	return DaySchedule{
		Available: MergeRanges(available),
		Excluded:  MergeRanges(excluded),
	}
}

// Allows reports whether the requested range is bookable: it must sit fully
// inside one merged available window and must not touch any exclusion.
// Employees with no declared availability are unavailable by default.
func (d DaySchedule) Allows(r TimeRange) bool {
	if !ContainedInUnion(r, d.Available) {
		return false
	}
	return !IntersectsAny(r, d.Excluded)
}
