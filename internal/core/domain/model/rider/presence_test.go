package rider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodflow/internal/core/domain/model/kernel"
)

func TestNewPresence(t *testing.T) {
	riderID := kernel.NewUUID()
	location, err := kernel.NewGeoPoint(28.6315, 77.2167)
	require.NoError(t, err)

	p, err := NewPresence(riderID, true, &location, "socket-abc123", time.Now())
	require.NoError(t, err)
	assert.True(t, p.RiderID().IsEqual(riderID))
	assert.True(t, p.IsOnline())
	require.NotNil(t, p.Location())
	same, err := p.Location().IsEqual(location)
	require.NoError(t, err)
	assert.True(t, same)
	assert.Equal(t, "socket-abc123", p.Channel())
	assert.NoError(t, p.Validate())
}

func TestNewPresenceErrors(t *testing.T) {
	_, err := NewPresence(kernel.UUID{}, true, nil, "", time.Now())
	assert.Error(t, err, "unconstructed rider id")

	var bad kernel.GeoPoint
	_, err = NewPresence(kernel.NewUUID(), true, &bad, "", time.Now())
	assert.Error(t, err, "unconstructed location")

	var zero Presence
	assert.ErrorIs(t, zero.Validate(), ErrPresenceIsNotConstructed)
}

func TestPresenceIsReachable(t *testing.T) {
	riderID := kernel.NewUUID()

	tests := []struct {
		name    string
		online  bool
		channel string
		want    bool
	}{
		{"online with channel", true, "socket-abc123", true},
		{"online without channel", true, "", false},
		{"offline with channel", false, "socket-abc123", false},
		{"offline without channel", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPresence(riderID, tt.online, nil, tt.channel, time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.IsReachable())
		})
	}
}
