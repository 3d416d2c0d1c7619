package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodflow/internal/core/domain/model/kernel"
)

// GetRiderDeliveredOrdersQueryHandler reads a rider's delivery history.
type GetRiderDeliveredOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetRiderDeliveredOrdersQueryHandler creates a handler for a rider's delivery history.
func NewGetRiderDeliveredOrdersQueryHandler(db *gorm.DB) GetRiderDeliveredOrdersQueryHandler {
	return GetRiderDeliveredOrdersQueryHandler{db: db}
}

// Handle returns the shop orders the rider delivered, most recent first.
func (h GetRiderDeliveredOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetRiderDeliveredOrdersQuery,
) ([]GetRiderDeliveredOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			so.id,
			so.shop_id,
			s.name,
			so.subtotal,
			o.address_text,
			so.delivered_at
		FROM shop_orders so
		JOIN orders o ON o.id = so.order_id
		JOIN shops s ON s.id = so.shop_id
		WHERE so.delivered_by = ?
		ORDER BY so.delivered_at DESC
	`, query.RiderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]GetRiderDeliveredOrdersQueryResponse, 0)

	for rows.Next() {
		var (
			shopOrderID, shopID uuid.UUID
			resp                GetRiderDeliveredOrdersQueryResponse
		)

		if err = rows.Scan(
			&shopOrderID,
			&shopID,
			&resp.ShopName,
			&resp.Subtotal,
			&resp.AddressText,
			&resp.DeliveredAt,
		); err != nil {
			return nil, err
		}

		if resp.ShopOrderID, err = kernel.UUIDFromBytes(shopOrderID[:]); err != nil {
			return nil, err
		}
		if resp.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
			return nil, err
		}

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
