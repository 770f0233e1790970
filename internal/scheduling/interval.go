package scheduling

import (
	"fmt"
	"sort"
	"time"
)

// TimeOfDay counts minutes since midnight on the appointment's local date.
type TimeOfDay int

const (
	// MinutesPerDay bounds a TimeOfDay; the value itself is a valid
	// exclusive end of a whole-day range.
	MinutesPerDay = 24 * 60
)

// ParseTimeOfDay parses a wall-clock value in "15:04" form.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return TimeOfDay(parsed.Hour()*60 + parsed.Minute()), nil
}

// String renders the value back into "15:04" form. The exclusive day end
// renders as "24:00".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Valid reports whether the value lies within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t <= MinutesPerDay
}

// TimeRange is a half-open [Start, End) window within a single day. Touching
// endpoints do not overlap.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// FullDay spans an entire day.
var FullDay = TimeRange{Start: 0, End: MinutesPerDay}

// Valid reports whether the range is well formed and non-empty.
func (r TimeRange) Valid() bool {
	return r.Start.Valid() && r.End.Valid() && r.Start < r.End
}

// Minutes returns the length of the range.
func (r TimeRange) Minutes() int {
	return int(r.End - r.Start)
}

// Overlaps reports whether the two half-open ranges intersect.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// Contains reports whether other lies entirely within the receiver.
func (r TimeRange) Contains(other TimeRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// MergeRanges coalesces the supplied ranges into a sorted, non-overlapping
// union. Adjacent ranges sharing an endpoint merge into one.
func MergeRanges(ranges []TimeRange) []TimeRange {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]TimeRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})

	merged := make([]TimeRange, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

// ContainedInUnion reports whether r is fully covered by the union. The union
// must already be merged and sorted, as produced by MergeRanges.
func ContainedInUnion(r TimeRange, union []TimeRange) bool {
	for _, window := range union {
		if window.Contains(r) {
			return true
		}
	}
	return false
}

// IntersectsAny reports whether r overlaps any range in the set.
func IntersectsAny(r TimeRange, set []TimeRange) bool {
	for _, window := range set {
		if r.Overlaps(window) {
			return true
		}
	}
	return false
}

// DateOf normalises a timestamp to its civil date at midnight UTC. Dates are
// compared by equality throughout the engine, so every scheduled_date must
// pass through this before storage or comparison.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two timestamps fall on the same civil date.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// StartInstant resolves a date plus time-of-day into an absolute instant.
func StartInstant(date time.Time, t TimeOfDay) time.Time {
	return DateOf(date).Add(time.Duration(t) * time.Minute)
}
