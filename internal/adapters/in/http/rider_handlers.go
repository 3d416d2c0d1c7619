package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"foodflow/internal/core/application/usecases/commands"
	"foodflow/internal/core/application/usecases/queries"
	"foodflow/internal/core/domain/model/kernel"
)

type updatePresenceRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Channel   string  `json:"channel"`
}

// UpdatePresence handles POST /api/v1/riders/:riderID/presence.
// Riders heartbeat their position here; the update also refreshes the live
// tracking snapshot of their active delivery, if any.
func (s *Server) UpdatePresence(ctx echo.Context) error {
	riderID, err := parseUUIDParam(ctx, "riderID")
	if err != nil {
		return s.badRequest(ctx, "invalid rider ID")
	}

	var req updatePresenceRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdatePresenceCommand(riderID, req.Latitude, req.Longitude, req.Channel)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.updatePresenceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type setAvailabilityRequest struct {
	Online bool `json:"online"`
}

// SetRiderAvailability handles POST /api/v1/riders/:riderID/availability.
func (s *Server) SetRiderAvailability(ctx echo.Context) error {
	riderID, err := parseUUIDParam(ctx, "riderID")
	if err != nil {
		return s.badRequest(ctx, "invalid rider ID")
	}

	var req setAvailabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSetRiderAvailabilityCommand(riderID, req.Online)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.setRiderAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type broadcastResponse struct {
	AssignmentID string    `json:"assignment_id"`
	ShopOrderID  string    `json:"shop_order_id"`
	ShopID       string    `json:"shop_id"`
	ShopName     string    `json:"shop_name"`
	Subtotal     int64     `json:"subtotal"`
	AddressText  string    `json:"address_text"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	BroadcastAt  time.Time `json:"broadcast_at"`
}

// GetRiderBroadcasts handles GET /api/v1/riders/:riderID/broadcasts.
func (s *Server) GetRiderBroadcasts(ctx echo.Context) error {
	riderID, err := parseUUIDParam(ctx, "riderID")
	if err != nil {
		return s.badRequest(ctx, "invalid rider ID")
	}

	query, err := queries.NewGetRiderBroadcastsQuery(riderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	offers, err := s.getRiderBroadcastsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]broadcastResponse, 0, len(offers))
	for _, offer := range offers {
		response = append(response, broadcastResponse{
			AssignmentID: offer.AssignmentID.String(),
			ShopOrderID:  offer.ShopOrderID.String(),
			ShopID:       offer.ShopID.String(),
			ShopName:     offer.ShopName,
			Subtotal:     offer.Subtotal,
			AddressText:  offer.AddressText,
			Latitude:     offer.Latitude,
			Longitude:    offer.Longitude,
			BroadcastAt:  offer.BroadcastAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

type acceptAssignmentRequest struct {
	RiderID string `json:"rider_id"`
}

type acceptAssignmentResponse struct {
	ShopOrderID string `json:"shop_order_id"`
	ShopID      string `json:"shop_id"`
}

// AcceptAssignment handles POST /api/v1/assignments/:assignmentID/accept.
// Exactly one rider wins a broadcast; the rest get a conflict.
func (s *Server) AcceptAssignment(ctx echo.Context) error {
	assignmentID, err := parseUUIDParam(ctx, "assignmentID")
	if err != nil {
		return s.badRequest(ctx, "invalid assignment ID")
	}

	var req acceptAssignmentRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return s.badRequest(ctx, "invalid rider ID")
	}

	cmd, err := commands.NewAcceptAssignmentCommand(assignmentID, riderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.acceptAssignmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, acceptAssignmentResponse{
		ShopOrderID: result.ShopOrderID.String(),
		ShopID:      result.ShopID.String(),
	})
}

type currentDeliveryResponse struct {
	AssignmentID string    `json:"assignment_id"`
	ShopOrderID  string    `json:"shop_order_id"`
	ShopID       string    `json:"shop_id"`
	ShopName     string    `json:"shop_name"`
	CustomerID   string    `json:"customer_id"`
	Subtotal     int64     `json:"subtotal"`
	AddressText  string    `json:"address_text"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	AcceptedAt   time.Time `json:"accepted_at"`
}

// GetCurrentDelivery handles GET /api/v1/riders/:riderID/delivery.
func (s *Server) GetCurrentDelivery(ctx echo.Context) error {
	riderID, err := parseUUIDParam(ctx, "riderID")
	if err != nil {
		return s.badRequest(ctx, "invalid rider ID")
	}

	query, err := queries.NewGetCurrentDeliveryQuery(riderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	delivery, err := s.getCurrentDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, currentDeliveryResponse{
		AssignmentID: delivery.AssignmentID.String(),
		ShopOrderID:  delivery.ShopOrderID.String(),
		ShopID:       delivery.ShopID.String(),
		ShopName:     delivery.ShopName,
		CustomerID:   delivery.CustomerID.String(),
		Subtotal:     delivery.Subtotal,
		AddressText:  delivery.AddressText,
		Latitude:     delivery.Latitude,
		Longitude:    delivery.Longitude,
		AcceptedAt:   delivery.AcceptedAt,
	})
}

type issueDeliveryCodeRequest struct {
	RiderID string `json:"rider_id"`
}

type issueDeliveryCodeResponse struct {
	Delayed bool `json:"delayed"`
}

// IssueDeliveryCode handles POST /api/v1/shop-orders/:shopOrderID/delivery-code.
// The code goes to the customer, not the rider; the response only reports
// whether the send was delayed.
func (s *Server) IssueDeliveryCode(ctx echo.Context) error {
	shopOrderID, err := parseUUIDParam(ctx, "shopOrderID")
	if err != nil {
		return s.badRequest(ctx, "invalid shop order ID")
	}

	var req issueDeliveryCodeRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return s.badRequest(ctx, "invalid rider ID")
	}

	cmd, err := commands.NewIssueDeliveryCodeCommand(shopOrderID, riderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.issueDeliveryCodeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, issueDeliveryCodeResponse{Delayed: result.Delayed})
}

type verifyDeliveryCodeRequest struct {
	RiderID string `json:"rider_id"`
	Code    string `json:"code"`
}

// VerifyDeliveryCode handles POST /api/v1/shop-orders/:shopOrderID/deliver.
// A matching code completes the delivery and frees the rider.
func (s *Server) VerifyDeliveryCode(ctx echo.Context) error {
	shopOrderID, err := parseUUIDParam(ctx, "shopOrderID")
	if err != nil {
		return s.badRequest(ctx, "invalid shop order ID")
	}

	var req verifyDeliveryCodeRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return s.badRequest(ctx, "invalid rider ID")
	}

	cmd, err := commands.NewVerifyDeliveryCodeCommand(shopOrderID, riderID, req.Code)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.verifyDeliveryCodeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type deliveredOrderResponse struct {
	ShopOrderID string    `json:"shop_order_id"`
	ShopID      string    `json:"shop_id"`
	ShopName    string    `json:"shop_name"`
	Subtotal    int64     `json:"subtotal"`
	AddressText string    `json:"address_text"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// GetRiderDeliveredOrders handles GET /api/v1/riders/:riderID/deliveries.
func (s *Server) GetRiderDeliveredOrders(ctx echo.Context) error {
	riderID, err := parseUUIDParam(ctx, "riderID")
	if err != nil {
		return s.badRequest(ctx, "invalid rider ID")
	}

	query, err := queries.NewGetRiderDeliveredOrdersQuery(riderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	deliveries, err := s.getRiderDeliveredOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]deliveredOrderResponse, 0, len(deliveries))
	for _, d := range deliveries {
		response = append(response, deliveredOrderResponse{
			ShopOrderID: d.ShopOrderID.String(),
			ShopID:      d.ShopID.String(),
			ShopName:    d.ShopName,
			Subtotal:    d.Subtotal,
			AddressText: d.AddressText,
			DeliveredAt: d.DeliveredAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

type deliveryBucketResponse struct {
	Bucket int   `json:"bucket"`
	Count  int   `json:"count"`
	Amount int64 `json:"amount"`
}

type riderStatsResponse struct {
	TodayByHour []deliveryBucketResponse `json:"today_by_hour"`
	MonthByDay  []deliveryBucketResponse `json:"month_by_day"`
}

// GetRiderStats handles GET /api/v1/riders/:riderID/stats.
func (s *Server) GetRiderStats(ctx echo.Context) error {
	riderID, err := parseUUIDParam(ctx, "riderID")
	if err != nil {
		return s.badRequest(ctx, "invalid rider ID")
	}

	query, err := queries.NewGetRiderStatsQuery(riderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	stats, err := s.getRiderStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, riderStatsResponse{
		TodayByHour: bucketsResponse(stats.TodayByHour),
		MonthByDay:  bucketsResponse(stats.MonthByDay),
	})
}

func bucketsResponse(buckets []queries.DeliveryBucket) []deliveryBucketResponse {
	response := make([]deliveryBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		response = append(response, deliveryBucketResponse{
			Bucket: b.Bucket,
			Count:  b.Count,
			Amount: b.Amount,
		})
	}
	return response
}
