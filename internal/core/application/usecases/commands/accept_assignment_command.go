package commands

import (
	"errors"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

// AcceptAssignmentCommand represents a rider's attempt to claim a broadcast
// delivery offer. Many riders may race on the same assignment; exactly one
// attempt succeeds.
type AcceptAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	riderID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptAssignmentCommand creates a command to claim a delivery offer.
func NewAcceptAssignmentCommand(
	assignmentID kernel.UUID,
	riderID kernel.UUID,
) (AcceptAssignmentCommand, error) {
	cmd := AcceptAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAssignmentID(assignmentID),
		cmd.setRiderID(riderID),
	); err != nil {
		return AcceptAssignmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the offer being claimed.
func (c AcceptAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// RiderID returns the claiming rider's identifier.
func (c AcceptAssignmentCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c *AcceptAssignmentCommand) setAssignmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.assignmentID = id
	return nil
}

func (c *AcceptAssignmentCommand) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.riderID = id
	return nil
}
