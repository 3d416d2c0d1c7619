// Package rider contains the rider presence model: the availability, last known
// location, and notification channel a rider advertises to the dispatch side.
package rider

import (
	"errors"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/errs"
	"foodflow/internal/pkg/guard"
)

// ErrPresenceIsNotConstructed is returned when using an improperly initialized Presence.
var ErrPresenceIsNotConstructed = errors.New(
	"Presence must be created via NewPresence constructor")

// Presence is a rider's dispatch-facing state: whether they are online, where
// they last reported themselves, and the channel identifier used to push offers
// to them. Presence is ephemeral state, keyed by rider ID and overwritten on
// every heartbeat; it is not part of the assignment ledger.
type Presence struct { //nolint:recvcheck //using for validation
	riderID   kernel.UUID
	online    bool
	location  *kernel.GeoPoint
	channel   string
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewPresence records a rider's presence. Location and channel are optional: a
// rider may be online before their first location fix or without a registered
// push channel, but such riders are not reachable for broadcasts.
func NewPresence(
	riderID kernel.UUID,
	online bool,
	location *kernel.GeoPoint,
	channel string,
	updatedAt time.Time,
) (Presence, error) {
	if err := riderID.Validate(); err != nil {
		return Presence{}, errs.NewValueIsRequiredErrorWithCause("rider id", err)
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return Presence{}, err
		}
	}

	return Presence{
		riderID:   riderID,
		online:    online,
		location:  location,
		channel:   channel,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the presence was created through the constructor.
func (p Presence) Validate() error {
	return p.guard.Validate(ErrPresenceIsNotConstructed)
}

// RiderID returns the rider this presence belongs to.
func (p Presence) RiderID() kernel.UUID {
	return p.riderID
}

// IsOnline reports whether the rider has marked themselves available.
func (p Presence) IsOnline() bool {
	return p.online
}

// Location returns the rider's last reported position, or nil before the first fix.
func (p Presence) Location() *kernel.GeoPoint {
	return p.location
}

// Channel returns the rider's push-channel identifier ("" when unregistered).
func (p Presence) Channel() string {
	return p.channel
}

// UpdatedAt returns when the presence was last refreshed.
func (p Presence) UpdatedAt() time.Time {
	return p.updatedAt
}

// IsReachable reports whether the rider can receive a broadcast offer: online
// with a registered push channel. Location is checked separately because the
// geo index already scopes candidates by distance.
func (p Presence) IsReachable() bool {
	return p.online && p.channel != ""
}
