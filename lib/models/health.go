package models

// Outcome of a single fetch attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
)

// Health is the scheduling-relevant slice of a feed's state.
type Health struct {
	Priority int
	Status   FeedStatus
}

// NextHealth computes the state following one fetch outcome.
//
// Priority is a bounded trust score in [STOP, HIGH]: each success raises it by
// one until HIGH, each failure lowers it by one until STOP. A feed leaves
// PENDING on its first recorded outcome. Reaching STOP marks the feed ERROR
// and takes it out of scheduling for good, without deleting its data.
func NextHealth(current Health, outcome Outcome) Health {
	next := current

	switch outcome {
	case OutcomeSuccess:
		if next.Priority < PriorityHigh {
			next.Priority++
		}
		if next.Status == StatusPending {
			next.Status = StatusActive
		}

	case OutcomeFailure:
		if next.Priority > PriorityStop {
			next.Priority--
			if next.Priority == PriorityStop {
				next.Status = StatusError
			}
		}
		if next.Status == StatusPending {
			next.Status = StatusError
		}
	}

	return next
}

// ApplyOutcome advances the feed's health in place and reports which columns
// changed, so callers can persist exactly those.
func (f *Feed) ApplyOutcome(outcome Outcome) (changed []string) {
	next := NextHealth(Health{f.Priority, f.Status}, outcome)
	if next.Priority != f.Priority {
		f.Priority = next.Priority
		changed = append(changed, "priority")
	}
	if next.Status != f.Status {
		f.Status = next.Status
		changed = append(changed, "status")
	}
	return changed
}
