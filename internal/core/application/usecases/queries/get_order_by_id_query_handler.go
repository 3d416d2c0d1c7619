package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/pkg/errs"
)

// GetOrderByIDQueryHandler reads one order's detail view.
type GetOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByIDQueryHandler creates a handler for the order detail view.
func NewGetOrderByIDQueryHandler(db *gorm.DB) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db}
}

// Handle returns the order with its shop orders and line items. A request for
// an order placed by someone else comes back as not found.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (GetOrderByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.total_amount,
			o.payment_method,
			o.payment_settled,
			o.address_text,
			o.ordered_at,
			so.id,
			so.shop_id,
			so.subtotal,
			so.status,
			so.rider_id IS NOT NULL,
			so.delivered_at,
			soi.name,
			soi.unit_price,
			soi.quantity
		FROM orders o
		JOIN shop_orders so ON so.order_id = o.id
		JOIN shop_order_items soi ON soi.shop_order_id = so.id
		WHERE o.id = ? AND o.customer_id = ?
		ORDER BY so.id, soi.id
	`, query.OrderID().Bytes(), query.CustomerID().Bytes()).Rows()
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	defer rows.Close()

	resp := GetOrderByIDQueryResponse{ID: query.OrderID()}
	index := make(map[uuid.UUID]int)
	found := false

	for rows.Next() {
		var (
			shopOrderID, shopID uuid.UUID
			shopResp            OrderShopOrderResponse
			item                OrderLineItemResponse
			status              int
		)

		if err = rows.Scan(
			&resp.TotalAmount,
			&resp.PaymentMethod,
			&resp.PaymentSettled,
			&resp.AddressText,
			&resp.OrderedAt,
			&shopOrderID,
			&shopID,
			&shopResp.Subtotal,
			&status,
			&shopResp.RiderAssigned,
			&shopResp.DeliveredAt,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
		); err != nil {
			return GetOrderByIDQueryResponse{}, err
		}
		found = true

		i, seen := index[shopOrderID]
		if !seen {
			if shopResp.ID, err = kernel.UUIDFromBytes(shopOrderID[:]); err != nil {
				return GetOrderByIDQueryResponse{}, err
			}
			if shopResp.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
				return GetOrderByIDQueryResponse{}, err
			}
			shopResp.Status = order.Status(status).String()
			resp.ShopOrders = append(resp.ShopOrders, shopResp)
			i = len(resp.ShopOrders) - 1
			index[shopOrderID] = i
		}
		resp.ShopOrders[i].Items = append(resp.ShopOrders[i].Items, item)
	}

	if err = rows.Err(); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	if !found {
		return GetOrderByIDQueryResponse{}, errs.NewObjectNotFoundError(
			"order", query.OrderID().String())
	}

	return resp, nil
}
