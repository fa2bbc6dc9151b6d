package booking

var transitions = map[Status][]Status{
	StatusPending: {
		StatusAccepted,
		StatusRejected,
		StatusCancelled,
	},
	StatusAccepted: {
		StatusInProgress,
		StatusCancelled,
	},
	StatusInProgress: {
		StatusCompleted,
		StatusCancelled,
	},
	StatusRejected: {
		// Terminal state - no transitions
	},
	StatusCompleted: {
		// Terminal state - no transitions
	},
	StatusCancelled: {
		// Terminal state - no transitions
	},
}

// CanTransition reports whether a booking in status from may move to to.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s
func AllowedTransitions(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether no further status writes are permitted
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}
