package commands

import (
	"errors"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrIssueDeliveryCodeCommandIsNotConstructed = errors.New(
	"IssueDeliveryCodeCommand must be created via NewIssueDeliveryCodeCommand constructor",
)

// IssueDeliveryCodeCommand represents the assigned rider's request to send the
// customer a one-time delivery code at handoff.
type IssueDeliveryCodeCommand struct { //nolint:recvcheck //using for validation
	shopOrderID kernel.UUID
	riderID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueDeliveryCodeCommand creates a command to issue a delivery code.
func NewIssueDeliveryCodeCommand(
	shopOrderID kernel.UUID,
	riderID kernel.UUID,
) (IssueDeliveryCodeCommand, error) {
	cmd := IssueDeliveryCodeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShopOrderID(shopOrderID),
		cmd.setRiderID(riderID),
	); err != nil {
		return IssueDeliveryCodeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueDeliveryCodeCommand) Validate() error {
	return c.guard.Validate(ErrIssueDeliveryCodeCommandIsNotConstructed)
}

// ShopOrderID returns the shop order being handed off.
func (c IssueDeliveryCodeCommand) ShopOrderID() kernel.UUID {
	return c.shopOrderID
}

// RiderID returns the acting rider's identifier.
func (c IssueDeliveryCodeCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c *IssueDeliveryCodeCommand) setShopOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shopOrderID = id
	return nil
}

func (c *IssueDeliveryCodeCommand) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.riderID = id
	return nil
}
