package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContractStatusTransitions(t *testing.T) {
	cases := []struct {
		from    ContractStatus
		to      ContractStatus
		allowed bool
	}{
		{ContractStatusPending, ContractStatusConfirmed, true},
		{ContractStatusPending, ContractStatusCancelled, true},
		{ContractStatusPending, ContractStatusActive, false},
		{ContractStatusPending, ContractStatusCompleted, false},
		{ContractStatusConfirmed, ContractStatusActive, true},
		{ContractStatusConfirmed, ContractStatusCancelled, true},
		{ContractStatusConfirmed, ContractStatusCompleted, false},
		{ContractStatusActive, ContractStatusExtended, true},
		{ContractStatusActive, ContractStatusCompleted, true},
		{ContractStatusActive, ContractStatusCancelled, true},
		{ContractStatusActive, ContractStatusConfirmed, false},
		{ContractStatusExtended, ContractStatusExtended, true},
		{ContractStatusExtended, ContractStatusCompleted, true},
		{ContractStatusExtended, ContractStatusCancelled, false},
		{ContractStatusCompleted, ContractStatusActive, false},
		{ContractStatusCancelled, ContractStatusConfirmed, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	all := []ContractStatus{
		ContractStatusPending, ContractStatusConfirmed, ContractStatusActive,
		ContractStatusExtended, ContractStatusCompleted, ContractStatusCancelled,
	}

	for _, from := range all {
		if !from.Terminal() {
			continue
		}
		for _, to := range all {
			assert.False(t, from.CanTransitionTo(to), "%s must not reach %s", from, to)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, ContractStatusCompleted.Terminal())
	assert.True(t, ContractStatusCancelled.Terminal())
	assert.False(t, ContractStatusPending.Terminal())
	assert.False(t, ContractStatusActive.Terminal())
	assert.False(t, ContractStatusExtended.Terminal())
}
