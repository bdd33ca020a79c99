package fsm

// Status constants used by the service request state machine.
const (
	StatusPending    = "pending"
	StatusAccepted   = "accepted"
	StatusRejected   = "rejected"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusClosed     = "closed"
)

// A rejected request stays open: rejection is per-professional, so another
// professional may still accept it. Closed is terminal.
var transitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusAccepted: {},
		StatusRejected: {},
	},
	StatusRejected: {
		StatusAccepted: {},
		StatusRejected: {},
	},
	StatusAccepted: {
		StatusInProgress: {},
		StatusClosed:     {},
	},
	StatusInProgress: {
		StatusCompleted: {},
		StatusClosed:    {},
	},
	StatusCompleted: {
		StatusClosed: {},
	},
	StatusClosed: {},
}

// CanTransition reports whether a request may move from the current status to
// the target status.
func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// IsOpen reports whether the request is still up for grabs by professionals.
func IsOpen(status string) bool {
	return status == StatusPending || status == StatusRejected
}

// IsAssigned reports whether the status implies a non-null professional_id.
func IsAssigned(status string) bool {
	switch status {
	case StatusAccepted, StatusInProgress, StatusCompleted, StatusClosed:
		return true
	}
	return false
}

// Valid reports whether s is a known request status.
func Valid(s string) bool {
	_, ok := transitions[s]
	return ok
}
