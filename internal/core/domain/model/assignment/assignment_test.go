package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodflow/internal/core/domain/model/kernel"
)

func mustAssignment(t *testing.T, candidates ...kernel.UUID) *Assignment {
	t.Helper()
	a, err := NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		candidates, time.Now())
	require.NoError(t, err)
	return a
}

func TestNewAssignment(t *testing.T) {
	riderA := kernel.NewUUID()
	riderB := kernel.NewUUID()

	a := mustAssignment(t, riderA, riderB)
	assert.Equal(t, StatusBroadcasted, a.Status())
	assert.Len(t, a.Candidates(), 2)
	assert.Nil(t, a.AcceptedBy())
	assert.Nil(t, a.ResolvedAt())
	assert.True(t, a.IsCandidate(riderA))
	assert.False(t, a.IsCandidate(kernel.NewUUID()))
	assert.NoError(t, a.Validate())
}

func TestNewAssignmentErrors(t *testing.T) {
	_, err := NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		nil, time.Now())
	assert.Error(t, err, "empty candidate set")

	_, err = NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]kernel.UUID{{}}, time.Now())
	assert.Error(t, err, "unconstructed candidate id")

	_, err = NewAssignment(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
		[]kernel.UUID{kernel.NewUUID()}, time.Now())
	assert.Error(t, err, "missing assignment id")

	var zero Assignment
	assert.ErrorIs(t, zero.Validate(), ErrAssignmentIsNotConstructed)

	var nilAssignment *Assignment
	assert.ErrorIs(t, nilAssignment.Validate(), ErrAssignmentIsNotConstructed)
}

func TestAssignmentAccept(t *testing.T) {
	rider := kernel.NewUUID()
	a := mustAssignment(t, rider, kernel.NewUUID())
	now := time.Now()

	require.NoError(t, a.Accept(rider, now))
	assert.Equal(t, StatusAssigned, a.Status())
	require.NotNil(t, a.AcceptedBy())
	assert.True(t, a.AcceptedBy().IsEqual(rider))
	require.NotNil(t, a.ResolvedAt())
	assert.Equal(t, now, *a.ResolvedAt())
}

func TestAssignmentAcceptErrors(t *testing.T) {
	riderA := kernel.NewUUID()
	riderB := kernel.NewUUID()

	t.Run("second accept loses", func(t *testing.T) {
		a := mustAssignment(t, riderA, riderB)
		require.NoError(t, a.Accept(riderA, time.Now()))

		err := a.Accept(riderB, time.Now())
		assert.ErrorIs(t, err, ErrAlreadyResolved)
		assert.True(t, a.AcceptedBy().IsEqual(riderA), "winner is unchanged")
	})

	t.Run("non-candidate is rejected", func(t *testing.T) {
		a := mustAssignment(t, riderA)
		err := a.Accept(kernel.NewUUID(), time.Now())
		assert.ErrorIs(t, err, ErrRiderNotCandidate)
		assert.Equal(t, StatusBroadcasted, a.Status())
	})

	t.Run("expired broadcast is rejected", func(t *testing.T) {
		a := mustAssignment(t, riderA)
		require.NoError(t, a.Expire(time.Now()))
		assert.ErrorIs(t, a.Accept(riderA, time.Now()), ErrAlreadyResolved)
	})

	t.Run("unconstructed rider id is rejected", func(t *testing.T) {
		a := mustAssignment(t, riderA)
		assert.Error(t, a.Accept(kernel.UUID{}, time.Now()))
	})
}

func TestAssignmentComplete(t *testing.T) {
	rider := kernel.NewUUID()
	a := mustAssignment(t, rider)

	assert.Error(t, a.Complete(time.Now()), "cannot complete an open broadcast")

	require.NoError(t, a.Accept(rider, time.Now()))
	require.NoError(t, a.Complete(time.Now()))
	assert.Equal(t, StatusCompleted, a.Status())

	assert.Error(t, a.Complete(time.Now()), "complete is not idempotent")
}

func TestAssignmentCancel(t *testing.T) {
	rider := kernel.NewUUID()

	t.Run("cancels an open broadcast", func(t *testing.T) {
		a := mustAssignment(t, rider)
		require.NoError(t, a.Cancel(time.Now()))
		assert.Equal(t, StatusCancelled, a.Status())
	})

	t.Run("cancels an assigned job", func(t *testing.T) {
		a := mustAssignment(t, rider)
		require.NoError(t, a.Accept(rider, time.Now()))
		require.NoError(t, a.Cancel(time.Now()))
		assert.Equal(t, StatusCancelled, a.Status())
	})

	t.Run("terminal statuses are rejected", func(t *testing.T) {
		a := mustAssignment(t, rider)
		require.NoError(t, a.Expire(time.Now()))
		assert.Error(t, a.Cancel(time.Now()))
	})
}

func TestAssignmentExpire(t *testing.T) {
	rider := kernel.NewUUID()

	a := mustAssignment(t, rider)
	require.NoError(t, a.Expire(time.Now()))
	assert.Equal(t, StatusExpired, a.Status())
	require.NotNil(t, a.ResolvedAt())

	accepted := mustAssignment(t, rider)
	require.NoError(t, accepted.Accept(rider, time.Now()))
	assert.Error(t, accepted.Expire(time.Now()), "accepted jobs never expire")
}

func TestRestoreAssignment(t *testing.T) {
	rider := kernel.NewUUID()
	resolvedAt := time.Now()

	a, err := RestoreAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]kernel.UUID{rider}, StatusAssigned, &rider, resolvedAt.Add(-time.Minute), &resolvedAt)
	require.NoError(t, err)
	assert.Equal(t, StatusAssigned, a.Status())
	assert.True(t, a.AcceptedBy().IsEqual(rider))

	_, err = RestoreAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]kernel.UUID{rider}, StatusUnknown, nil, time.Now(), nil)
	assert.Error(t, err, "unknown status is rejected")
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
	assert.False(t, StatusBroadcasted.IsTerminal())
	assert.False(t, StatusAssigned.IsTerminal())

	assert.ElementsMatch(t,
		[]Status{StatusCompleted, StatusCancelled, StatusExpired}, TerminalStatuses())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "broadcasted", StatusBroadcasted.String())
	assert.Equal(t, "assigned", StatusAssigned.String())
	assert.Equal(t, "unknown", Status(42).String())
	assert.Error(t, Status(42).Validate())
	assert.Error(t, StatusUnknown.Validate())
}
