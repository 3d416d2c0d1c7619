package commands

import (
	"errors"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrRebroadcastShopOrderCommandIsNotConstructed = errors.New(
	"RebroadcastShopOrderCommand must be created via NewRebroadcastShopOrderCommand constructor",
)

// RebroadcastShopOrderCommand represents a shop owner's request to retry rider
// matching for a dispatchable shop order, after an earlier attempt found no
// riders or its broadcast expired.
type RebroadcastShopOrderCommand struct { //nolint:recvcheck //using for validation
	shopOrderID kernel.UUID
	ownerID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewRebroadcastShopOrderCommand creates a command to retry rider matching.
func NewRebroadcastShopOrderCommand(
	shopOrderID kernel.UUID,
	ownerID kernel.UUID,
) (RebroadcastShopOrderCommand, error) {
	cmd := RebroadcastShopOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShopOrderID(shopOrderID),
		cmd.setOwnerID(ownerID),
	); err != nil {
		return RebroadcastShopOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RebroadcastShopOrderCommand) Validate() error {
	return c.guard.Validate(ErrRebroadcastShopOrderCommandIsNotConstructed)
}

// ShopOrderID returns the shop order to rebroadcast.
func (c RebroadcastShopOrderCommand) ShopOrderID() kernel.UUID {
	return c.shopOrderID
}

// OwnerID returns the acting shop owner's identifier.
func (c RebroadcastShopOrderCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

func (c *RebroadcastShopOrderCommand) setShopOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shopOrderID = id
	return nil
}

func (c *RebroadcastShopOrderCommand) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.ownerID = id
	return nil
}
