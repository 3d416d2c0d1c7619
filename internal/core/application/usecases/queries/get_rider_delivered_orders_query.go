package queries

import (
	"errors"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrGetRiderDeliveredOrdersQueryIsNotConstructed = errors.New(
	"GetRiderDeliveredOrdersQuery must be created via NewGetRiderDeliveredOrdersQuery constructor",
)

// GetRiderDeliveredOrdersQuery retrieves the shop orders a rider has delivered,
// most recent first.
type GetRiderDeliveredOrdersQuery struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRiderDeliveredOrdersQuery creates a query for a rider's delivery history.
func NewGetRiderDeliveredOrdersQuery(riderID kernel.UUID) (GetRiderDeliveredOrdersQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderDeliveredOrdersQuery{}, err
	}

	return GetRiderDeliveredOrdersQuery{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderDeliveredOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderDeliveredOrdersQueryIsNotConstructed)
}

// RiderID returns the rider whose delivery history is requested.
func (q GetRiderDeliveredOrdersQuery) RiderID() kernel.UUID {
	return q.riderID
}

// GetRiderDeliveredOrdersQueryResponse is one completed delivery.
type GetRiderDeliveredOrdersQueryResponse struct {
	ShopOrderID kernel.UUID
	ShopID      kernel.UUID
	ShopName    string
	Subtotal    int64
	AddressText string
	DeliveredAt time.Time
}
