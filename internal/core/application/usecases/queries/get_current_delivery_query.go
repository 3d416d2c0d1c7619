package queries

import (
	"errors"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrGetCurrentDeliveryQueryIsNotConstructed = errors.New(
	"GetCurrentDeliveryQuery must be created via NewGetCurrentDeliveryQuery constructor",
)

// GetCurrentDeliveryQuery retrieves the delivery a rider is currently carrying,
// if any. A rider carries at most one delivery at a time.
type GetCurrentDeliveryQuery struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCurrentDeliveryQuery creates a query for a rider's active delivery.
func NewGetCurrentDeliveryQuery(riderID kernel.UUID) (GetCurrentDeliveryQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetCurrentDeliveryQuery{}, err
	}

	return GetCurrentDeliveryQuery{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCurrentDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentDeliveryQueryIsNotConstructed)
}

// RiderID returns the rider whose active delivery is requested.
func (q GetCurrentDeliveryQuery) RiderID() kernel.UUID {
	return q.riderID
}

// GetCurrentDeliveryQueryResponse is the rider's in-flight delivery.
type GetCurrentDeliveryQueryResponse struct {
	AssignmentID kernel.UUID
	ShopOrderID  kernel.UUID
	ShopID       kernel.UUID
	ShopName     string
	CustomerID   kernel.UUID
	Subtotal     int64
	AddressText  string
	Latitude     float64
	Longitude    float64
	AcceptedAt   time.Time
}
