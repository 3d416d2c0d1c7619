package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"foodflow/internal/core/application/usecases/commands"
	"foodflow/internal/core/application/usecases/queries"
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
)

type cartLineRequest struct {
	ShopID    string `json:"shop_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type placeOrderRequest struct {
	CustomerID    string            `json:"customer_id"`
	AddressText   string            `json:"address_text"`
	Latitude      float64           `json:"latitude"`
	Longitude     float64           `json:"longitude"`
	PaymentMethod string            `json:"payment_method"`
	Items         []cartLineRequest `json:"items"`
}

type placeOrderResponse struct {
	OrderID          string `json:"order_id"`
	TotalAmount      int64  `json:"total_amount"`
	PaymentIntentRef string `json:"payment_intent_ref,omitempty"`
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return s.badRequest(ctx, "invalid customer ID")
	}

	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return s.fail(ctx, err)
	}

	lines := make([]commands.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		shopID, shopErr := kernel.UUIDFromString(item.ShopID)
		if shopErr != nil {
			return s.badRequest(ctx, "invalid shop ID")
		}
		lines = append(lines, commands.CartLine{
			ShopID:    shopID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), customerID, req.AddressText, req.Latitude, req.Longitude,
		paymentMethod, lines)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, placeOrderResponse{
		OrderID:          result.OrderID.String(),
		TotalAmount:      result.TotalAmount,
		PaymentIntentRef: result.PaymentIntentRef,
	})
}

type confirmPaymentRequest struct {
	PaymentRef string `json:"payment_ref"`
}

// ConfirmPayment handles POST /api/v1/payments/confirm.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	var req confirmPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewConfirmPaymentCommand(req.PaymentRef)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type customerShopOrderResponse struct {
	ID       string `json:"id"`
	ShopID   string `json:"shop_id"`
	Subtotal int64  `json:"subtotal"`
	Status   string `json:"status"`
}

type customerOrderResponse struct {
	ID             string                      `json:"id"`
	TotalAmount    int64                       `json:"total_amount"`
	PaymentMethod  string                      `json:"payment_method"`
	PaymentSettled bool                        `json:"payment_settled"`
	AddressText    string                      `json:"address_text"`
	OrderedAt      time.Time                   `json:"ordered_at"`
	ShopOrders     []customerShopOrderResponse `json:"shop_orders"`
}

// GetCustomerOrders handles GET /api/v1/customers/:customerID/orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := parseUUIDParam(ctx, "customerID")
	if err != nil {
		return s.badRequest(ctx, "invalid customer ID")
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]customerOrderResponse, 0, len(orders))
	for _, o := range orders {
		shopOrders := make([]customerShopOrderResponse, 0, len(o.ShopOrders))
		for _, so := range o.ShopOrders {
			shopOrders = append(shopOrders, customerShopOrderResponse{
				ID:       so.ID.String(),
				ShopID:   so.ShopID.String(),
				Subtotal: so.Subtotal,
				Status:   so.Status,
			})
		}
		response = append(response, customerOrderResponse{
			ID:             o.ID.String(),
			TotalAmount:    o.TotalAmount,
			PaymentMethod:  o.PaymentMethod,
			PaymentSettled: o.PaymentSettled,
			AddressText:    o.AddressText,
			OrderedAt:      o.OrderedAt,
			ShopOrders:     shopOrders,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

type orderItemResponse struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type orderShopOrderResponse struct {
	ID            string              `json:"id"`
	ShopID        string              `json:"shop_id"`
	Subtotal      int64               `json:"subtotal"`
	Status        string              `json:"status"`
	RiderAssigned bool                `json:"rider_assigned"`
	DeliveredAt   *time.Time          `json:"delivered_at,omitempty"`
	Items         []orderItemResponse `json:"items"`
}

type orderDetailResponse struct {
	ID             string                   `json:"id"`
	TotalAmount    int64                    `json:"total_amount"`
	PaymentMethod  string                   `json:"payment_method"`
	PaymentSettled bool                     `json:"payment_settled"`
	AddressText    string                   `json:"address_text"`
	OrderedAt      time.Time                `json:"ordered_at"`
	ShopOrders     []orderShopOrderResponse `json:"shop_orders"`
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		return s.badRequest(ctx, "invalid order ID")
	}

	customerID, err := kernel.UUIDFromString(ctx.QueryParam("customer_id"))
	if err != nil {
		return s.badRequest(ctx, "invalid customer ID")
	}

	query, err := queries.NewGetOrderByIDQuery(orderID, customerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	detail, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	shopOrders := make([]orderShopOrderResponse, 0, len(detail.ShopOrders))
	for _, so := range detail.ShopOrders {
		items := make([]orderItemResponse, 0, len(so.Items))
		for _, item := range so.Items {
			items = append(items, orderItemResponse{
				Name:      item.Name,
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
			})
		}
		shopOrders = append(shopOrders, orderShopOrderResponse{
			ID:            so.ID.String(),
			ShopID:        so.ShopID.String(),
			Subtotal:      so.Subtotal,
			Status:        so.Status,
			RiderAssigned: so.RiderAssigned,
			DeliveredAt:   so.DeliveredAt,
			Items:         items,
		})
	}

	return ctx.JSON(http.StatusOK, orderDetailResponse{
		ID:             detail.ID.String(),
		TotalAmount:    detail.TotalAmount,
		PaymentMethod:  detail.PaymentMethod,
		PaymentSettled: detail.PaymentSettled,
		AddressText:    detail.AddressText,
		OrderedAt:      detail.OrderedAt,
		ShopOrders:     shopOrders,
	})
}

type cancelShopOrderRequest struct {
	ActorID string `json:"actor_id"`
}

// CancelShopOrder handles POST /api/v1/shop-orders/:shopOrderID/cancel.
// Both the ordering customer and the shop owner may cancel.
func (s *Server) CancelShopOrder(ctx echo.Context) error {
	shopOrderID, err := parseUUIDParam(ctx, "shopOrderID")
	if err != nil {
		return s.badRequest(ctx, "invalid shop order ID")
	}

	var req cancelShopOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return s.badRequest(ctx, "invalid actor ID")
	}

	cmd, err := commands.NewCancelShopOrderCommand(shopOrderID, actorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.cancelShopOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type riderLocationResponse struct {
	RiderID   string     `json:"rider_id"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Online    bool       `json:"online"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// GetRiderLocation handles GET /api/v1/shop-orders/:shopOrderID/rider-location.
func (s *Server) GetRiderLocation(ctx echo.Context) error {
	shopOrderID, err := parseUUIDParam(ctx, "shopOrderID")
	if err != nil {
		return s.badRequest(ctx, "invalid shop order ID")
	}

	customerID, err := kernel.UUIDFromString(ctx.QueryParam("customer_id"))
	if err != nil {
		return s.badRequest(ctx, "invalid customer ID")
	}

	query, err := queries.NewGetRiderLocationQuery(shopOrderID, customerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	location, err := s.getRiderLocationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, riderLocationResponse{
		RiderID:   location.RiderID.String(),
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		Online:    location.Online,
		UpdatedAt: location.UpdatedAt,
	})
}
