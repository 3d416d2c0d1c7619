package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
)

// GetCustomerOrdersQueryHandler reads a customer's order history.
type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerOrdersQueryHandler creates a handler for customer order history.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle returns the customer's orders, newest first.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]GetCustomerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.total_amount,
			o.payment_method,
			o.payment_settled,
			o.address_text,
			o.ordered_at,
			so.id,
			so.shop_id,
			so.subtotal,
			so.status
		FROM orders o
		JOIN shop_orders so ON so.order_id = o.id
		WHERE o.customer_id = ?
		ORDER BY o.ordered_at DESC, so.id
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetCustomerOrdersQueryResponse, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			orderID, shopOrderID, shopID uuid.UUID
			resp                         GetCustomerOrdersQueryResponse
			shopResp                     CustomerShopOrderResponse
			status                       int
		)

		if err = rows.Scan(
			&orderID,
			&resp.TotalAmount,
			&resp.PaymentMethod,
			&resp.PaymentSettled,
			&resp.AddressText,
			&resp.OrderedAt,
			&shopOrderID,
			&shopID,
			&shopResp.Subtotal,
			&status,
		); err != nil {
			return nil, err
		}

		if shopResp.ID, err = kernel.UUIDFromBytes(shopOrderID[:]); err != nil {
			return nil, err
		}
		if shopResp.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
			return nil, err
		}
		shopResp.Status = order.Status(status).String()

		i, seen := index[orderID]
		if !seen {
			if resp.ID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
				return nil, err
			}
			orders = append(orders, resp)
			i = len(orders) - 1
			index[orderID] = i
		}
		orders[i].ShopOrders = append(orders[i].ShopOrders, shopResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
