package queries

import (
	"errors"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrGetOrderByIDQueryIsNotConstructed = errors.New(
	"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
)

// GetOrderByIDQuery retrieves the full detail of one order for the customer
// who placed it, down to the individual line items.
type GetOrderByIDQuery struct {
	orderID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a query for one order's detail view.
func NewGetOrderByIDQuery(orderID, customerID kernel.UUID) (GetOrderByIDQuery, error) {
	if err := errors.Join(orderID.Validate(), customerID.Validate()); err != nil {
		return GetOrderByIDQuery{}, err
	}

	return GetOrderByIDQuery{
		orderID:    orderID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderByIDQuery) OrderID() kernel.UUID {
	return q.orderID
}

// CustomerID returns the customer making the request.
func (q GetOrderByIDQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// OrderLineItemResponse is one purchased item within a shop order.
type OrderLineItemResponse struct {
	Name      string
	UnitPrice int64
	Quantity  int
}

// OrderShopOrderResponse is one shop's portion in the order detail view.
type OrderShopOrderResponse struct {
	ID            kernel.UUID
	ShopID        kernel.UUID
	Subtotal      int64
	Status        string
	RiderAssigned bool
	DeliveredAt   *time.Time
	Items         []OrderLineItemResponse
}

// GetOrderByIDQueryResponse is the full detail of one order.
type GetOrderByIDQueryResponse struct {
	ID             kernel.UUID
	TotalAmount    int64
	PaymentMethod  string
	PaymentSettled bool
	AddressText    string
	OrderedAt      time.Time
	ShopOrders     []OrderShopOrderResponse
}
