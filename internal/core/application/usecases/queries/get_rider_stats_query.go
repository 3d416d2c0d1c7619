package queries

import (
	"errors"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/guard"
)

var ErrGetRiderStatsQueryIsNotConstructed = errors.New(
	"GetRiderStatsQuery must be created via NewGetRiderStatsQuery constructor",
)

// GetRiderStatsQuery retrieves a rider's delivery statistics: today's
// deliveries bucketed by hour and the current month's bucketed by day.
type GetRiderStatsQuery struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRiderStatsQuery creates a query for a rider's delivery statistics.
func NewGetRiderStatsQuery(riderID kernel.UUID) (GetRiderStatsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderStatsQuery{}, err
	}

	return GetRiderStatsQuery{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderStatsQueryIsNotConstructed)
}

// RiderID returns the rider whose statistics are requested.
func (q GetRiderStatsQuery) RiderID() kernel.UUID {
	return q.riderID
}

// DeliveryBucket aggregates the deliveries falling into one time bucket.
// Bucket is the hour of day (0-23) for today's view and the day of month
// (1-31) for the monthly view.
type DeliveryBucket struct {
	Bucket int
	Count  int
	Amount int64
}

// GetRiderStatsQueryResponse summarizes a rider's completed deliveries.
type GetRiderStatsQueryResponse struct {
	TodayByHour []DeliveryBucket
	MonthByDay  []DeliveryBucket
}
