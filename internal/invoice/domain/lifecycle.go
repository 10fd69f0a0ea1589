package domain

import "strings"

// State represents invoice lifecycle states.
type State string

const (
	StateDraft     State = "draft"
	StateSent      State = "sent"
	StatePaid      State = "paid"
	StateOverdue   State = "overdue"
	StateCancelled State = "cancelled"
)

func (s State) Valid() bool {
	switch s {
	case StateDraft, StateSent, StatePaid, StateOverdue, StateCancelled:
		return true
	default:
		return false
	}
}

// transitions is the allowed adjacency relation. Cancelled is terminal and
// reachable from every other state.
var transitions = map[State]map[State]bool{
	StateDraft:     {StateSent: true, StateCancelled: true},
	StateSent:      {StatePaid: true, StateOverdue: true, StateCancelled: true},
	StateOverdue:   {StatePaid: true, StateCancelled: true},
	StatePaid:      {StateCancelled: true},
	StateCancelled: {},
}

// CanTransition reports whether from may move to to. A same-state change
// is treated as a no-op and allowed.
func CanTransition(from, to State) bool {
	if from == "" {
		from = StateDraft
	}
	if from == to {
		return true
	}
	return transitions[from][to]
}

// Transition validates a lifecycle change against the adjacency table and
// returns the resulting status. Moving to paid marks the invoice paid and
// requires the payment date and method in the same change.
func (s Status) Transition(to State, change Status) (Status, error) {
	if !to.Valid() {
		return s, ErrInvalidState
	}

	from := s.State
	if from == "" {
		from = StateDraft
	}
	if from == to {
		return s, nil
	}
	if !CanTransition(from, to) {
		return s, ErrInvalidTransition
	}

	next := s
	next.State = to
	if to == StatePaid {
		if change.PaymentDate == nil {
			return s, ErrMissingPaymentDate
		}
		if strings.TrimSpace(change.PaymentMethodUsed) == "" {
			return s, ErrMissingPaymentMethod
		}
		next.IsPaid = true
		next.PaymentDate = change.PaymentDate
		next.PaymentMethodUsed = strings.TrimSpace(change.PaymentMethodUsed)
	}
	return next, nil
}
