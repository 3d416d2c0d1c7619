package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/rider"
)

func presenceAt(t *testing.T, online bool, channel string, lat, lon float64) rider.Presence {
	t.Helper()
	location, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	p, err := rider.NewPresence(kernel.NewUUID(), online, &location, channel, time.Now())
	require.NoError(t, err)
	return p
}

func TestCandidateSelectorFilters(t *testing.T) {
	selector := NewCandidateSelector()

	reachable := presenceAt(t, true, "chan-1", 28.63, 77.21)
	offline := presenceAt(t, false, "chan-2", 28.63, 77.21)
	noChannel := presenceAt(t, true, "", 28.63, 77.21)
	busy := presenceAt(t, true, "chan-3", 28.63, 77.21)

	candidates, err := selector.Select(
		[]rider.Presence{reachable, offline, noChannel, busy},
		[]kernel.UUID{busy.RiderID()},
	)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.True(t, candidates[0].IsEqual(reachable.RiderID()))
}

func TestCandidateSelectorAppliesNoRanking(t *testing.T) {
	selector := NewCandidateSelector()

	far := presenceAt(t, true, "chan-far", 28.70, 77.30)
	near := presenceAt(t, true, "chan-near", 28.6320, 77.2170)

	noFix, err := rider.NewPresence(kernel.NewUUID(), true, nil, "chan-nofix", time.Now())
	require.NoError(t, err)

	candidates, err := selector.Select([]rider.Presence{far, noFix, near}, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.True(t, candidates[0].IsEqual(far.RiderID()), "reported order preserved")
	assert.True(t, candidates[1].IsEqual(noFix.RiderID()), "riders without a fix are still candidates")
	assert.True(t, candidates[2].IsEqual(near.RiderID()))
}

func TestCandidateSelectorEmptyResultIsNotAnError(t *testing.T) {
	selector := NewCandidateSelector()

	offline := presenceAt(t, false, "chan-1", 28.63, 77.21)

	candidates, err := selector.Select([]rider.Presence{offline}, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)

	candidates, err = selector.Select(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestCandidateSelectorRejectsUnconstructedPresence(t *testing.T) {
	selector := NewCandidateSelector()

	_, err := selector.Select([]rider.Presence{{}}, nil)
	assert.Error(t, err)
}
