package order

import (
	"errors"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/errs"
	"foodflow/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New(
		"Order must be created via NewOrder or RestoreOrder constructor")

	// ErrPaymentAlreadySettled is returned when confirming payment on an order
	// whose payment is already settled.
	ErrPaymentAlreadySettled = errors.New("payment is already settled")
)

// Order is the aggregate root for one checkout transaction. It owns one
// ShopOrder per distinct shop in the cart and the shared delivery address,
// payment state, and total.
//
// Invariants:
//   - At least one shop order.
//   - The total equals the sum of shop-order subtotals, fixed at creation.
//   - Payment settlement only moves from unsettled to settled.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID

	address        Address
	paymentMethod  PaymentMethod
	paymentSettled bool
	paymentRef     string

	totalAmount int64
	orderedAt   time.Time

	shopOrders []*ShopOrder

	guard guard.ConstructorGuard
}

// NewOrder creates an order from freshly built shop orders. The total is the sum
// of the shop-order subtotals. Cash orders are settled at the door and start
// unsettled; online orders additionally carry an external payment reference once
// the intent is created.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	address Address,
	paymentMethod PaymentMethod,
	orderedAt time.Time,
	shopOrders []*ShopOrder,
) (*Order, error) {
	if len(shopOrders) == 0 {
		return nil, errs.NewValueIsRequiredError("shop orders")
	}

	o := &Order{
		address:       address,
		paymentMethod: paymentMethod,
		orderedAt:     orderedAt,
		shopOrders:    append([]*ShopOrder(nil), shopOrders...),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID("order id", id, &o.id),
		validateID("customer id", customerID, &o.customerID),
		address.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}

	for _, so := range o.shopOrders {
		if err := so.Validate(); err != nil {
			return nil, err
		}
		o.totalAmount += so.Subtotal()
	}

	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistence.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	address Address,
	paymentMethod PaymentMethod,
	paymentSettled bool,
	paymentRef string,
	totalAmount int64,
	orderedAt time.Time,
	shopOrders []*ShopOrder,
) (*Order, error) {
	if len(shopOrders) == 0 {
		return nil, errs.NewValueIsRequiredError("shop orders")
	}

	o := &Order{
		address:        address,
		paymentMethod:  paymentMethod,
		paymentSettled: paymentSettled,
		paymentRef:     paymentRef,
		totalAmount:    totalAmount,
		orderedAt:      orderedAt,
		shopOrders:     append([]*ShopOrder(nil), shopOrders...),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID("order id", id, &o.id),
		validateID("customer id", customerID, &o.customerID),
		address.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Address returns the delivery address shared by all shop orders.
func (o *Order) Address() Address {
	return o.address
}

// PaymentMethod returns how the order is paid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// IsPaymentSettled reports whether payment has been captured (online) or the
// order is trusted for cash settlement.
func (o *Order) IsPaymentSettled() bool {
	return o.paymentSettled
}

// PaymentRef returns the external payment reference ("" when none).
func (o *Order) PaymentRef() string {
	return o.paymentRef
}

// TotalAmount returns the order total in minor currency units.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// OrderedAt returns the placement timestamp.
func (o *Order) OrderedAt() time.Time {
	return o.orderedAt
}

// ShopOrders returns the order's shop orders. The slice is a copy; the shop
// orders themselves are the live entities.
func (o *Order) ShopOrders() []*ShopOrder {
	return append([]*ShopOrder(nil), o.shopOrders...)
}

// ShopOrderByShop finds the shop order fulfilled by the given shop.
func (o *Order) ShopOrderByShop(shopID kernel.UUID) (*ShopOrder, error) {
	for _, so := range o.shopOrders {
		if so.ShopID().IsEqual(shopID) {
			return so, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("shop order", shopID.String())
}

// ShopOrderByID finds a shop order by its own identifier.
func (o *Order) ShopOrderByID(shopOrderID kernel.UUID) (*ShopOrder, error) {
	for _, so := range o.shopOrders {
		if so.ID().IsEqual(shopOrderID) {
			return so, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("shop order", shopOrderID.String())
}

// AttachPaymentRef records the external payment reference created for an online
// order before the gateway confirms capture.
func (o *Order) AttachPaymentRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("payment ref")
	}

	o.paymentRef = ref
	return nil
}

// ConfirmPayment marks the order's payment as settled after the gateway reports
// the referenced payment as captured.
func (o *Order) ConfirmPayment(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("payment ref")
	}
	if o.paymentSettled {
		return ErrPaymentAlreadySettled
	}

	o.paymentSettled = true
	o.paymentRef = ref
	return nil
}
