package commands

import (
	"errors"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrUpdatePresenceCommandIsNotConstructed = errors.New(
	"UpdatePresenceCommand must be created via NewUpdatePresenceCommand constructor",
)

// UpdatePresenceCommand represents a rider heartbeat: a fresh location fix and
// the push channel offers should be delivered to.
type UpdatePresenceCommand struct { //nolint:recvcheck //using for validation
	riderID   kernel.UUID
	latitude  float64
	longitude float64
	channel   string

	guard guard.ConstructorGuard
}

// NewUpdatePresenceCommand creates a command for a rider heartbeat. The
// coordinates must form a valid geo point; the channel may be empty for riders
// without a registered push channel.
func NewUpdatePresenceCommand(
	riderID kernel.UUID,
	latitude float64,
	longitude float64,
	channel string,
) (UpdatePresenceCommand, error) {
	cmd := UpdatePresenceCommand{
		latitude:  latitude,
		longitude: longitude,
		channel:   channel,
		guard:     guard.NewConstructorGuard(),
	}

	if err := cmd.setRiderID(riderID); err != nil {
		return UpdatePresenceCommand{}, err
	}
	if _, err := kernel.NewGeoPoint(latitude, longitude); err != nil {
		return UpdatePresenceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePresenceCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePresenceCommandIsNotConstructed)
}

// RiderID returns the reporting rider's identifier.
func (c UpdatePresenceCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Latitude returns the reported latitude in degrees.
func (c UpdatePresenceCommand) Latitude() float64 {
	return c.latitude
}

// Longitude returns the reported longitude in degrees.
func (c UpdatePresenceCommand) Longitude() float64 {
	return c.longitude
}

// Channel returns the rider's push-channel identifier.
func (c UpdatePresenceCommand) Channel() string {
	return c.channel
}

func (c *UpdatePresenceCommand) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.riderID = id
	return nil
}
