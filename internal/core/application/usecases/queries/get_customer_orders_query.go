// Package queries contains read-side operations. Handlers bypass the aggregates
// and read projection rows straight from the database, returning plain response
// DTOs shaped for their callers.
package queries

import (
	"errors"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery retrieves a customer's orders, newest first, with the
// per-shop fulfillment status of each.
type GetCustomerOrdersQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a query for a customer's order history.
func NewGetCustomerOrdersQuery(customerID kernel.UUID) (GetCustomerOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return GetCustomerOrdersQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer whose orders are requested.
func (q GetCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// CustomerShopOrderResponse is one shop's portion of a customer order.
type CustomerShopOrderResponse struct {
	ID       kernel.UUID
	ShopID   kernel.UUID
	Subtotal int64
	Status   string
}

// GetCustomerOrdersQueryResponse is one order in the customer's history.
type GetCustomerOrdersQueryResponse struct {
	ID             kernel.UUID
	TotalAmount    int64
	PaymentMethod  string
	PaymentSettled bool
	AddressText    string
	OrderedAt      time.Time
	ShopOrders     []CustomerShopOrderResponse
}
