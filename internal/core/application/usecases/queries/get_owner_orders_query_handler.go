package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
)

// GetOwnerOrdersQueryHandler reads a shop owner's incoming queue.
type GetOwnerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOwnerOrdersQueryHandler creates a handler for an owner's shop orders.
func NewGetOwnerOrdersQueryHandler(db *gorm.DB) GetOwnerOrdersQueryHandler {
	return GetOwnerOrdersQueryHandler{db: db}
}

// Handle returns the owner's visible shop orders, newest first. Unsettled
// online orders are held back until payment confirmation lands.
func (h GetOwnerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOwnerOrdersQuery,
) ([]GetOwnerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			so.id,
			so.order_id,
			so.shop_id,
			so.subtotal,
			so.status,
			so.rider_id IS NOT NULL,
			o.customer_id,
			o.address_text,
			o.payment_method,
			o.ordered_at
		FROM shop_orders so
		JOIN orders o ON o.id = so.order_id
		WHERE so.owner_id = ?
			AND (o.payment_method = ? OR o.payment_settled)
		ORDER BY o.ordered_at DESC, so.id
	`, query.OwnerID().Bytes(), order.PaymentMethodCashOnDelivery.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shopOrders := make([]GetOwnerOrdersQueryResponse, 0)

	for rows.Next() {
		var (
			id, orderID, shopID, customerID uuid.UUID
			resp                            GetOwnerOrdersQueryResponse
			status                          int
		)

		if err = rows.Scan(
			&id,
			&orderID,
			&shopID,
			&resp.Subtotal,
			&status,
			&resp.RiderAssigned,
			&customerID,
			&resp.AddressText,
			&resp.PaymentMethod,
			&resp.OrderedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if resp.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		resp.Status = order.Status(status).String()

		shopOrders = append(shopOrders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shopOrders, nil
}
