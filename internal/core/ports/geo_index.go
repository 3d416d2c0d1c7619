package ports

import (
	"context"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/rider"
)

// GeoIndex defines the contract for the rider location index: a fast,
// eventually consistent view of where online riders are. It backs candidate
// matching and live tracking; the assignment ledger, not the index, is the
// source of truth for who holds which job.
type GeoIndex interface {
	// UpdatePresence upserts a rider's presence: availability flag, push
	// channel, and last known location. Called on every heartbeat.
	UpdatePresence(ctx context.Context, presence rider.Presence) error

	// SetAvailability flips a rider's online flag without touching the rest of
	// the presence record.
	SetAvailability(ctx context.Context, riderID kernel.UUID, online bool, updatedAt time.Time) error

	// GetPresence retrieves a rider's presence record.
	// Returns a not-found error for riders that never reported presence.
	GetPresence(ctx context.Context, riderID kernel.UUID) (rider.Presence, error)

	// RidersNear lists presences of riders whose last known location is within
	// radiusMeters of the center. Offline riders and riders without a location
	// fix are not returned.
	RidersNear(ctx context.Context, center kernel.GeoPoint, radiusMeters float64) ([]rider.Presence, error)
}
