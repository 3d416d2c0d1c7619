package queries

import (
	"errors"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrGetRiderBroadcastsQueryIsNotConstructed = errors.New(
	"GetRiderBroadcastsQuery must be created via NewGetRiderBroadcastsQuery constructor",
)

// GetRiderBroadcastsQuery retrieves the open delivery offers a rider is a
// candidate for. Offers already accepted, cancelled, or expired are excluded.
type GetRiderBroadcastsQuery struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRiderBroadcastsQuery creates a query for a rider's open offers.
func NewGetRiderBroadcastsQuery(riderID kernel.UUID) (GetRiderBroadcastsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderBroadcastsQuery{}, err
	}

	return GetRiderBroadcastsQuery{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderBroadcastsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderBroadcastsQueryIsNotConstructed)
}

// RiderID returns the rider whose offers are requested.
func (q GetRiderBroadcastsQuery) RiderID() kernel.UUID {
	return q.riderID
}

// GetRiderBroadcastsQueryResponse is one open delivery offer.
type GetRiderBroadcastsQueryResponse struct {
	AssignmentID kernel.UUID
	ShopOrderID  kernel.UUID
	ShopID       kernel.UUID
	ShopName     string
	Subtotal     int64
	AddressText  string
	Latitude     float64
	Longitude    float64
	BroadcastAt  time.Time
}
