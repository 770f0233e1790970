package scheduling

import (
	"fmt"
	"time"
)

// Status is the appointment lifecycle state.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Presence is the assignee's acknowledgment state, tracked independently of
// the lifecycle status.
type Presence string

const (
	PresencePending    Presence = "pending"
	PresenceConfirmed  Presence = "confirmed"
	PresenceDeclined   Presence = "declined"
	PresenceNoResponse Presence = "no_response"
)

// Known reports whether the value is a defined lifecycle status.
func (s Status) Known() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Known reports whether the value is a defined presence state.
func (p Presence) Known() bool {
	switch p {
	case PresencePending, PresenceConfirmed, PresenceDeclined, PresenceNoResponse:
		return true
	}
	return false
}

// statusSuccessors enumerates the legal forward moves for each lifecycle
// state. Cancellation is reachable from every non-terminal state; COMPLETED
// is reachable only from IN_PROGRESS.
var statusSuccessors = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusInProgress, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// presenceSuccessors enumerates the legal presence moves. NO_RESPONSE is the
// timeout outcome and is reachable from PENDING only.
var presenceSuccessors = map[Presence][]Presence{
	PresencePending:    {PresenceConfirmed, PresenceDeclined, PresenceNoResponse},
	PresenceConfirmed:  {},
	PresenceDeclined:   {},
	PresenceNoResponse: {},
}

// CanTransitionStatus reports whether the lifecycle move is legal.
func CanTransitionStatus(from, to Status) bool {
	for _, next := range statusSuccessors[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionPresence reports whether the presence move is legal.
func CanTransitionPresence(from, to Presence) bool {
	for _, next := range presenceSuccessors[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InvalidTransitionError reports an illegal status or presence change,
// carrying the current and attempted states.
type InvalidTransitionError struct {
	Field  string
	From   string
	To     string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s transition %s -> %s: %s", e.Field, e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid %s transition %s -> %s", e.Field, e.From, e.To)
}

// Transition captures the timestamp side effects of a successful status
// change. Nil fields leave the corresponding appointment timestamps alone.
type Transition struct {
	ConfirmedAt *time.Time
	CompletedAt *time.Time
}

// ApplyStatus validates a lifecycle move against the current state pair and
// returns its side effects. The CONFIRMED guard is the cross-field rule: an
// appointment cannot be confirmed while the assignee's presence is anything
// other than confirmed.
func ApplyStatus(current Status, presence Presence, to Status, now time.Time) (Transition, error) {
	if !to.Known() {
		return Transition{}, &InvalidTransitionError{Field: "status", From: string(current), To: string(to), Reason: "unknown status"}
	}
	if !CanTransitionStatus(current, to) {
		return Transition{}, &InvalidTransitionError{Field: "status", From: string(current), To: string(to)}
	}
	if to == StatusConfirmed && presence != PresenceConfirmed {
		return Transition{}, &InvalidTransitionError{
			Field:  "status",
			From:   string(current),
			To:     string(to),
			Reason: "presence has not been confirmed",
		}
	}

	var transition Transition
	switch to {
	case StatusConfirmed:
		at := now
		transition.ConfirmedAt = &at
	case StatusCompleted:
		at := now
		transition.CompletedAt = &at
	}
	return transition, nil
}

// ApplyPresence validates a presence move.
func ApplyPresence(current, to Presence) error {
	if !to.Known() {
		return &InvalidTransitionError{Field: "presence_status", From: string(current), To: string(to), Reason: "unknown presence status"}
	}
	if !CanTransitionPresence(current, to) {
		return &InvalidTransitionError{Field: "presence_status", From: string(current), To: string(to)}
	}
	return nil
}
