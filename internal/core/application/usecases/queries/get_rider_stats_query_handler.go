package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetRiderStatsQueryHandler reads a rider's aggregated delivery statistics.
type GetRiderStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetRiderStatsQueryHandler creates a handler for rider delivery statistics.
func NewGetRiderStatsQueryHandler(db *gorm.DB) GetRiderStatsQueryHandler {
	return GetRiderStatsQueryHandler{db: db}
}

// Handle returns today's deliveries bucketed by hour and this month's bucketed
// by day. Empty buckets are omitted.
func (h GetRiderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetRiderStatsQuery,
) (GetRiderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRiderStatsQueryResponse{}, err
	}

	today, err := h.buckets(ctx, `
		SELECT
			EXTRACT(HOUR FROM so.delivered_at)::int,
			COUNT(*),
			COALESCE(SUM(so.subtotal), 0)
		FROM shop_orders so
		WHERE so.delivered_by = ?
			AND so.delivered_at >= DATE_TRUNC('day', NOW())
		GROUP BY 1
		ORDER BY 1
	`, query)
	if err != nil {
		return GetRiderStatsQueryResponse{}, err
	}

	month, err := h.buckets(ctx, `
		SELECT
			EXTRACT(DAY FROM so.delivered_at)::int,
			COUNT(*),
			COALESCE(SUM(so.subtotal), 0)
		FROM shop_orders so
		WHERE so.delivered_by = ?
			AND so.delivered_at >= DATE_TRUNC('month', NOW())
		GROUP BY 1
		ORDER BY 1
	`, query)
	if err != nil {
		return GetRiderStatsQueryResponse{}, err
	}

	return GetRiderStatsQueryResponse{
		TodayByHour: today,
		MonthByDay:  month,
	}, nil
}

func (h GetRiderStatsQueryHandler) buckets(
	ctx context.Context,
	sql string,
	query GetRiderStatsQuery,
) ([]DeliveryBucket, error) {
	rows, err := h.db.WithContext(ctx).Raw(sql, query.RiderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make([]DeliveryBucket, 0)

	for rows.Next() {
		var bucket DeliveryBucket
		if err = rows.Scan(&bucket.Bucket, &bucket.Count, &bucket.Amount); err != nil {
			return nil, err
		}
		buckets = append(buckets, bucket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return buckets, nil
}
