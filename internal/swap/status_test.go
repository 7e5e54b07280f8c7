package swap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionFromPending(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusAccepted))
	assert.True(t, CanTransition(StatusPending, StatusRejected))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.False(t, CanTransition(StatusPending, StatusCompleted))
	assert.False(t, CanTransition(StatusPending, StatusPending))
}

func TestCanTransitionFromAccepted(t *testing.T) {
	assert.True(t, CanTransition(StatusAccepted, StatusCompleted))
	assert.False(t, CanTransition(StatusAccepted, StatusRejected))
	assert.False(t, CanTransition(StatusAccepted, StatusCancelled))
	assert.False(t, CanTransition(StatusAccepted, StatusPending))
}

func TestTerminalStatusesAllowNothing(t *testing.T) {
	for _, from := range []Status{StatusRejected, StatusCancelled, StatusCompleted} {
		assert.True(t, Terminal(from), "expected %q to be terminal", from)
		for _, to := range []Status{StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled} {
			assert.False(t, CanTransition(from, to), "%q -> %q should not be allowed", from, to)
		}
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusCompleted))
	assert.False(t, ValidStatus(Status("archived")))
	assert.False(t, ValidStatus(Status("")))
}

func TestCheckTransitionReturnsTransitionError(t *testing.T) {
	err := CheckTransition(StatusCompleted, StatusAccepted)
	require.Error(t, err)

	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, StatusCompleted, te.From)
	assert.Equal(t, StatusAccepted, te.To)
	assert.Contains(t, te.Error(), "completed")

	require.NoError(t, CheckTransition(StatusPending, StatusAccepted))
}
