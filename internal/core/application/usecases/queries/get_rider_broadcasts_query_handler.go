package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodflow/internal/core/domain/model/assignment"
	"foodflow/internal/core/domain/model/kernel"
)

// GetRiderBroadcastsQueryHandler reads a rider's open delivery offers.
type GetRiderBroadcastsQueryHandler struct {
	db *gorm.DB
}

// NewGetRiderBroadcastsQueryHandler creates a handler for a rider's open offers.
func NewGetRiderBroadcastsQueryHandler(db *gorm.DB) GetRiderBroadcastsQueryHandler {
	return GetRiderBroadcastsQueryHandler{db: db}
}

// Handle returns the broadcasts still open to the rider, newest first.
func (h GetRiderBroadcastsQueryHandler) Handle(
	ctx context.Context,
	query GetRiderBroadcastsQuery,
) ([]GetRiderBroadcastsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			da.id,
			da.shop_order_id,
			da.shop_id,
			s.name,
			so.subtotal,
			o.address_text,
			o.latitude,
			o.longitude,
			da.broadcast_at
		FROM delivery_assignments da
		JOIN shop_orders so ON so.id = da.shop_order_id
		JOIN orders o ON o.id = so.order_id
		JOIN shops s ON s.id = da.shop_id
		WHERE da.status = ? AND ? = ANY(da.candidates)
		ORDER BY da.broadcast_at DESC
	`, int(assignment.StatusBroadcasted), query.RiderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]GetRiderBroadcastsQueryResponse, 0)

	for rows.Next() {
		var (
			assignmentID, shopOrderID, shopID uuid.UUID
			resp                              GetRiderBroadcastsQueryResponse
		)

		if err = rows.Scan(
			&assignmentID,
			&shopOrderID,
			&shopID,
			&resp.ShopName,
			&resp.Subtotal,
			&resp.AddressText,
			&resp.Latitude,
			&resp.Longitude,
			&resp.BroadcastAt,
		); err != nil {
			return nil, err
		}

		if resp.AssignmentID, err = kernel.UUIDFromBytes(assignmentID[:]); err != nil {
			return nil, err
		}
		if resp.ShopOrderID, err = kernel.UUIDFromBytes(shopOrderID[:]); err != nil {
			return nil, err
		}
		if resp.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
			return nil, err
		}

		offers = append(offers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}
