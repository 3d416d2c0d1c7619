package commands

import (
	"errors"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrSetRiderAvailabilityCommandIsNotConstructed = errors.New(
	"SetRiderAvailabilityCommand must be created via NewSetRiderAvailabilityCommand constructor",
)

// SetRiderAvailabilityCommand represents a rider flipping their online flag.
// Going offline removes the rider from future broadcasts; an active job is
// unaffected and must still be completed or cancelled.
type SetRiderAvailabilityCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	online  bool

	guard guard.ConstructorGuard
}

// NewSetRiderAvailabilityCommand creates a command to change availability.
func NewSetRiderAvailabilityCommand(
	riderID kernel.UUID,
	online bool,
) (SetRiderAvailabilityCommand, error) {
	cmd := SetRiderAvailabilityCommand{
		online: online,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setRiderID(riderID); err != nil {
		return SetRiderAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderAvailabilityCommandIsNotConstructed)
}

// RiderID returns the rider's identifier.
func (c SetRiderAvailabilityCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Online reports the requested availability.
func (c SetRiderAvailabilityCommand) Online() bool {
	return c.online
}

func (c *SetRiderAvailabilityCommand) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.riderID = id
	return nil
}
