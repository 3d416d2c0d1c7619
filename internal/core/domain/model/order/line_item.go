package order

import (
	"errors"
	"fmt"

	"foodflow/internal/pkg/errs"
	"foodflow/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when using an improperly initialized LineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is an immutable snapshot of one cart line at order time: the item name,
// the unit price the customer saw, and the quantity. It deliberately carries no
// reference back to the live catalog item, so later catalog edits never change
// what an order says it cost.
type LineItem struct { //nolint:recvcheck //using for validation
	name      string
	unitPrice int64
	quantity  int

	guard guard.ConstructorGuard
}

// NewLineItem creates a line-item snapshot. Name must be non-empty, unit price
// non-negative (in minor currency units), quantity positive.
func NewLineItem(name string, unitPrice int64, quantity int) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the line item was created through the constructor.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// Name returns the snapshotted item name.
func (i LineItem) Name() string {
	return i.name
}

// UnitPrice returns the snapshotted unit price in minor currency units.
func (i LineItem) UnitPrice() int64 {
	return i.unitPrice
}

// Quantity returns the ordered quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// Total returns unit price times quantity in minor currency units.
func (i LineItem) Total() int64 {
	return i.unitPrice * int64(i.quantity)
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%d is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
