package commands

import (
	"errors"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/pkg/errs"
	"foodflow/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// CartLine is one line of the incoming cart: the shop it belongs to and the
// price snapshot the customer saw.
type CartLine struct {
	ShopID    kernel.UUID
	Name      string
	UnitPrice int64
	Quantity  int
}

// PlaceOrderCommand represents a request to place a new order from a cart that
// may span multiple shops. The handler decomposes the cart into one shop order
// per distinct shop.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	addressText   string
	latitude      float64
	longitude     float64
	paymentMethod order.PaymentMethod
	lines         []CartLine

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place an order. Validates the ids,
// the delivery address, the payment method, and every cart line.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	addressText string,
	latitude float64,
	longitude float64,
	paymentMethod order.PaymentMethod,
	lines []CartLine,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		addressText:   addressText,
		latitude:      latitude,
		longitude:     longitude,
		paymentMethod: paymentMethod,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setLines(lines),
		paymentMethod.Validate(),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	// The address is validated here rather than stored as a domain value so the
	// command stays a plain DTO; the handler rebuilds the domain Address.
	if _, err := order.NewAddress(addressText, latitude, longitude); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's identifier.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// AddressText returns the free-form delivery address.
func (c PlaceOrderCommand) AddressText() string {
	return c.addressText
}

// Latitude returns the delivery latitude in degrees.
func (c PlaceOrderCommand) Latitude() float64 {
	return c.latitude
}

// Longitude returns the delivery longitude in degrees.
func (c PlaceOrderCommand) Longitude() float64 {
	return c.longitude
}

// PaymentMethod returns how the order will be paid.
func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// Lines returns a copy of the cart lines.
func (c PlaceOrderCommand) Lines() []CartLine {
	return append([]CartLine(nil), c.lines...)
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []CartLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("cart lines")
	}

	for _, line := range lines {
		if err := line.ShopID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("shop id", err)
		}
		if _, err := order.NewLineItem(line.Name, line.UnitPrice, line.Quantity); err != nil {
			return err
		}
	}

	c.lines = append([]CartLine(nil), lines...)
	return nil
}
