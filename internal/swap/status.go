package swap

import "fmt"

// Status is the lifecycle state of a swap request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions is the only source of truth for allowed status moves.
// rejected, cancelled and completed are terminal.
var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted: {StatusCompleted},
}

// TransitionError reports a disallowed status move.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition swap request from %q to %q", e.From, e.To)
}

// ValidStatus reports whether s is one of the five known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is defined from s.
func Terminal(s Status) bool {
	return ValidStatus(s) && len(transitions[s]) == 0
}

// CanTransition reports whether the move from -> to is allowed.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns a TransitionError when the move from -> to is not
// allowed, nil otherwise.
func CheckTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}
