package commands

import (
	"errors"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/errs"
	"foodflow/internal/pkg/guard"
)

var ErrVerifyDeliveryCodeCommandIsNotConstructed = errors.New(
	"VerifyDeliveryCodeCommand must be created via NewVerifyDeliveryCodeCommand constructor",
)

// VerifyDeliveryCodeCommand represents the rider submitting the code the
// customer read back at the door. A correct, unexpired code completes the
// delivery.
type VerifyDeliveryCodeCommand struct { //nolint:recvcheck //using for validation
	shopOrderID kernel.UUID
	riderID     kernel.UUID
	code        string

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryCodeCommand creates a command to complete a delivery.
func NewVerifyDeliveryCodeCommand(
	shopOrderID kernel.UUID,
	riderID kernel.UUID,
	code string,
) (VerifyDeliveryCodeCommand, error) {
	cmd := VerifyDeliveryCodeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShopOrderID(shopOrderID),
		cmd.setRiderID(riderID),
		cmd.setCode(code),
	); err != nil {
		return VerifyDeliveryCodeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyDeliveryCodeCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryCodeCommandIsNotConstructed)
}

// ShopOrderID returns the shop order being completed.
func (c VerifyDeliveryCodeCommand) ShopOrderID() kernel.UUID {
	return c.shopOrderID
}

// RiderID returns the acting rider's identifier.
func (c VerifyDeliveryCodeCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Code returns the submitted one-time code.
func (c VerifyDeliveryCodeCommand) Code() string {
	return c.code
}

func (c *VerifyDeliveryCodeCommand) setShopOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shopOrderID = id
	return nil
}

func (c *VerifyDeliveryCodeCommand) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.riderID = id
	return nil
}

func (c *VerifyDeliveryCodeCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("delivery code")
	}
	c.code = code
	return nil
}
