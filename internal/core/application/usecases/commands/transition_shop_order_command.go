package commands

import (
	"errors"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/pkg/guard"
)

var ErrTransitionShopOrderCommandIsNotConstructed = errors.New(
	"TransitionShopOrderCommand must be created via NewTransitionShopOrderCommand constructor",
)

// TransitionShopOrderCommand represents a shop owner's request to move one shop
// order forward in its lifecycle. Moving into out-for-delivery triggers rider
// matching.
type TransitionShopOrderCommand struct { //nolint:recvcheck //using for validation
	shopOrderID kernel.UUID
	ownerID     kernel.UUID
	next        order.Status

	guard guard.ConstructorGuard
}

// NewTransitionShopOrderCommand creates a command for an owner-driven status
// move. The target status itself is fully validated by the domain during
// handling; here only its basic validity is checked.
func NewTransitionShopOrderCommand(
	shopOrderID kernel.UUID,
	ownerID kernel.UUID,
	next order.Status,
) (TransitionShopOrderCommand, error) {
	cmd := TransitionShopOrderCommand{
		next:  next,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShopOrderID(shopOrderID),
		cmd.setOwnerID(ownerID),
		next.Validate(),
	); err != nil {
		return TransitionShopOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionShopOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionShopOrderCommandIsNotConstructed)
}

// ShopOrderID returns the shop order to transition.
func (c TransitionShopOrderCommand) ShopOrderID() kernel.UUID {
	return c.shopOrderID
}

// OwnerID returns the acting shop owner's identifier.
func (c TransitionShopOrderCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// Next returns the target status.
func (c TransitionShopOrderCommand) Next() order.Status {
	return c.next
}

func (c *TransitionShopOrderCommand) setShopOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shopOrderID = id
	return nil
}

func (c *TransitionShopOrderCommand) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.ownerID = id
	return nil
}
