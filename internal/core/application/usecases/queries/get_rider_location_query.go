package queries

import (
	"errors"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrGetRiderLocationQueryIsNotConstructed = errors.New(
	"GetRiderLocationQuery must be created via NewGetRiderLocationQuery constructor",
)

// GetRiderLocationQuery retrieves the last known location of the rider carrying
// a customer's shop order, for the live tracking view.
type GetRiderLocationQuery struct {
	shopOrderID kernel.UUID
	customerID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRiderLocationQuery creates a query for a shop order's rider location.
func NewGetRiderLocationQuery(shopOrderID, customerID kernel.UUID) (GetRiderLocationQuery, error) {
	if err := errors.Join(shopOrderID.Validate(), customerID.Validate()); err != nil {
		return GetRiderLocationQuery{}, err
	}

	return GetRiderLocationQuery{
		shopOrderID: shopOrderID,
		customerID:  customerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderLocationQueryIsNotConstructed)
}

// ShopOrderID returns the shop order being tracked.
func (q GetRiderLocationQuery) ShopOrderID() kernel.UUID {
	return q.shopOrderID
}

// CustomerID returns the customer making the request.
func (q GetRiderLocationQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetRiderLocationQueryResponse is the rider's last known position. Online
// reports whether the fix came from a live presence record; a snapshot
// fallback leaves it false.
type GetRiderLocationQueryResponse struct {
	RiderID   kernel.UUID
	Latitude  float64
	Longitude float64
	Online    bool
	UpdatedAt *time.Time
}
