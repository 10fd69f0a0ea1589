package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from State
		to   State
		want bool
	}{
		{StateDraft, StateSent, true},
		{StateDraft, StateCancelled, true},
		{StateDraft, StatePaid, false},
		{StateDraft, StateOverdue, false},
		{StateSent, StatePaid, true},
		{StateSent, StateOverdue, true},
		{StateSent, StateCancelled, true},
		{StateSent, StateDraft, false},
		{StateOverdue, StatePaid, true},
		{StateOverdue, StateCancelled, true},
		{StateOverdue, StateSent, false},
		{StatePaid, StateCancelled, true},
		{StatePaid, StateSent, false},
		{StateCancelled, StateDraft, false},
		{StateCancelled, StateSent, false},
		{StateCancelled, StatePaid, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionSameStateIsNoop(t *testing.T) {
	for _, state := range []State{StateDraft, StateSent, StatePaid, StateOverdue, StateCancelled} {
		assert.True(t, CanTransition(state, state), "%s -> %s", state, state)
	}
}

func TestCanTransitionEmptyFromIsDraft(t *testing.T) {
	assert.True(t, CanTransition("", StateSent))
	assert.False(t, CanTransition("", StatePaid))
}

func TestTransitionToPaidRequiresPaymentFields(t *testing.T) {
	status := Status{State: StateSent}

	_, err := status.Transition(StatePaid, Status{})
	assert.ErrorIs(t, err, ErrMissingPaymentDate)

	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = status.Transition(StatePaid, Status{PaymentDate: &when})
	assert.ErrorIs(t, err, ErrMissingPaymentMethod)

	next, err := status.Transition(StatePaid, Status{PaymentDate: &when, PaymentMethodUsed: "bank_transfer"})
	require.NoError(t, err)
	assert.True(t, next.IsPaid)
	assert.Equal(t, StatePaid, next.State)
	assert.Equal(t, &when, next.PaymentDate)
	assert.Equal(t, "bank_transfer", next.PaymentMethodUsed)
}

func TestTransitionInvalid(t *testing.T) {
	status := Status{State: StateDraft}

	_, err := status.Transition(State("archived"), Status{})
	assert.ErrorIs(t, err, ErrInvalidState)

	when := time.Now().UTC()
	_, err = status.Transition(StatePaid, Status{PaymentDate: &when, PaymentMethodUsed: "card"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionSameStateReturnsExisting(t *testing.T) {
	status := Status{State: StateSent}
	next, err := status.Transition(StateSent, Status{})
	require.NoError(t, err)
	assert.Equal(t, status, next)
}

func TestTransitionCancelledIsTerminal(t *testing.T) {
	status := Status{State: StateCancelled}
	for _, to := range []State{StateDraft, StateSent, StateOverdue} {
		_, err := status.Transition(to, Status{})
		assert.ErrorIs(t, err, ErrInvalidTransition, "cancelled -> %s", to)
	}
}
