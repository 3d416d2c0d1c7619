package commands

import (
	"errors"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrCancelShopOrderCommandIsNotConstructed = errors.New(
	"CancelShopOrderCommand must be created via NewCancelShopOrderCommand constructor",
)

// CancelShopOrderCommand represents a request to cancel one shop order. The
// actor must be the ordering customer or the owning shop's owner.
type CancelShopOrderCommand struct { //nolint:recvcheck //using for validation
	shopOrderID kernel.UUID
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelShopOrderCommand creates a command to cancel a shop order.
func NewCancelShopOrderCommand(
	shopOrderID kernel.UUID,
	actorID kernel.UUID,
) (CancelShopOrderCommand, error) {
	cmd := CancelShopOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShopOrderID(shopOrderID),
		cmd.setActorID(actorID),
	); err != nil {
		return CancelShopOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelShopOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelShopOrderCommandIsNotConstructed)
}

// ShopOrderID returns the shop order to cancel.
func (c CancelShopOrderCommand) ShopOrderID() kernel.UUID {
	return c.shopOrderID
}

// ActorID returns the identifier of the customer or owner requesting the cancel.
func (c CancelShopOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *CancelShopOrderCommand) setShopOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shopOrderID = id
	return nil
}

func (c *CancelShopOrderCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}
