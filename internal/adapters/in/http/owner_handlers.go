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

type ownerShopOrderResponse struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"order_id"`
	ShopID        string    `json:"shop_id"`
	CustomerID    string    `json:"customer_id"`
	Subtotal      int64     `json:"subtotal"`
	Status        string    `json:"status"`
	AddressText   string    `json:"address_text"`
	PaymentMethod string    `json:"payment_method"`
	RiderAssigned bool      `json:"rider_assigned"`
	OrderedAt     time.Time `json:"ordered_at"`
}

// GetOwnerOrders handles GET /api/v1/owners/:ownerID/orders.
func (s *Server) GetOwnerOrders(ctx echo.Context) error {
	ownerID, err := parseUUIDParam(ctx, "ownerID")
	if err != nil {
		return s.badRequest(ctx, "invalid owner ID")
	}

	query, err := queries.NewGetOwnerOrdersQuery(ownerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	shopOrders, err := s.getOwnerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]ownerShopOrderResponse, 0, len(shopOrders))
	for _, so := range shopOrders {
		response = append(response, ownerShopOrderResponse{
			ID:            so.ID.String(),
			OrderID:       so.OrderID.String(),
			ShopID:        so.ShopID.String(),
			CustomerID:    so.CustomerID.String(),
			Subtotal:      so.Subtotal,
			Status:        so.Status,
			AddressText:   so.AddressText,
			PaymentMethod: so.PaymentMethod,
			RiderAssigned: so.RiderAssigned,
			OrderedAt:     so.OrderedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

type transitionShopOrderRequest struct {
	OwnerID string `json:"owner_id"`
	Status  string `json:"status"`
}

type transitionShopOrderResponse struct {
	Status            string  `json:"status"`
	AssignmentID      *string `json:"assignment_id,omitempty"`
	NoRidersAvailable bool    `json:"no_riders_available,omitempty"`
}

// TransitionShopOrder handles POST /api/v1/shop-orders/:shopOrderID/status.
// Moving into out-for-delivery opens a rider broadcast as part of the move.
func (s *Server) TransitionShopOrder(ctx echo.Context) error {
	shopOrderID, err := parseUUIDParam(ctx, "shopOrderID")
	if err != nil {
		return s.badRequest(ctx, "invalid shop order ID")
	}

	var req transitionShopOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return s.badRequest(ctx, "invalid owner ID")
	}

	next, err := order.StatusFromString(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewTransitionShopOrderCommand(shopOrderID, ownerID, next)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.transitionShopOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := transitionShopOrderResponse{
		Status:            result.Status.String(),
		NoRidersAvailable: result.NoRidersAvailable,
	}
	if result.AssignmentID != nil {
		id := result.AssignmentID.String()
		response.AssignmentID = &id
	}

	return ctx.JSON(http.StatusOK, response)
}

type rebroadcastShopOrderRequest struct {
	OwnerID string `json:"owner_id"`
}

// RebroadcastShopOrder handles POST /api/v1/shop-orders/:shopOrderID/rebroadcast.
// Retries rider matching after an expired or empty broadcast.
func (s *Server) RebroadcastShopOrder(ctx echo.Context) error {
	shopOrderID, err := parseUUIDParam(ctx, "shopOrderID")
	if err != nil {
		return s.badRequest(ctx, "invalid shop order ID")
	}

	var req rebroadcastShopOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return s.badRequest(ctx, "invalid owner ID")
	}

	cmd, err := commands.NewRebroadcastShopOrderCommand(shopOrderID, ownerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.rebroadcastShopOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := transitionShopOrderResponse{
		Status:            order.StatusOutForDelivery.String(),
		NoRidersAvailable: result.NoRidersAvailable,
	}
	if result.AssignmentID != nil {
		id := result.AssignmentID.String()
		response.AssignmentID = &id
	}

	return ctx.JSON(http.StatusOK, response)
}
