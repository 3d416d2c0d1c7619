package queries

import (
	"errors"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrGetOwnerOrdersQueryIsNotConstructed = errors.New(
	"GetOwnerOrdersQuery must be created via NewGetOwnerOrdersQuery constructor",
)

// GetOwnerOrdersQuery retrieves the shop orders addressed to a shop owner.
// Online orders appear only once their payment has settled; cash-on-delivery
// orders appear immediately.
type GetOwnerOrdersQuery struct {
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOwnerOrdersQuery creates a query for an owner's incoming shop orders.
func NewGetOwnerOrdersQuery(ownerID kernel.UUID) (GetOwnerOrdersQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetOwnerOrdersQuery{}, err
	}

	return GetOwnerOrdersQuery{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOwnerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOwnerOrdersQueryIsNotConstructed)
}

// OwnerID returns the owner whose shop orders are requested.
func (q GetOwnerOrdersQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// GetOwnerOrdersQueryResponse is one shop order in the owner's queue.
type GetOwnerOrdersQueryResponse struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	ShopID        kernel.UUID
	CustomerID    kernel.UUID
	Subtotal      int64
	Status        string
	AddressText   string
	PaymentMethod string
	RiderAssigned bool
	OrderedAt     time.Time
}
