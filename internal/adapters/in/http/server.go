// Package http exposes the dispatch core over a REST API. Handlers translate
// requests into commands and queries, and domain errors into status codes;
// they hold no business logic of their own.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"foodflow/internal/core/application/usecases/commands"
	"foodflow/internal/core/application/usecases/queries"
	"foodflow/internal/core/domain/model/assignment"
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler           commands.PlaceOrderCommandHandler
	confirmPaymentHandler       commands.ConfirmPaymentCommandHandler
	transitionShopOrderHandler  commands.TransitionShopOrderCommandHandler
	rebroadcastShopOrderHandler commands.RebroadcastShopOrderCommandHandler
	cancelShopOrderHandler      commands.CancelShopOrderCommandHandler
	acceptAssignmentHandler     commands.AcceptAssignmentCommandHandler
	issueDeliveryCodeHandler    commands.IssueDeliveryCodeCommandHandler
	verifyDeliveryCodeHandler   commands.VerifyDeliveryCodeCommandHandler
	updatePresenceHandler       commands.UpdatePresenceCommandHandler
	setRiderAvailabilityHandler commands.SetRiderAvailabilityCommandHandler

	// Query handlers
	getCustomerOrdersHandler       queries.GetCustomerOrdersQueryHandler
	getOrderByIDHandler            queries.GetOrderByIDQueryHandler
	getOwnerOrdersHandler          queries.GetOwnerOrdersQueryHandler
	getRiderBroadcastsHandler      queries.GetRiderBroadcastsQueryHandler
	getCurrentDeliveryHandler      queries.GetCurrentDeliveryQueryHandler
	getRiderDeliveredOrdersHandler queries.GetRiderDeliveredOrdersQueryHandler
	getRiderStatsHandler           queries.GetRiderStatsQueryHandler
	getRiderLocationHandler        queries.GetRiderLocationQueryHandler
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	transitionShopOrderHandler commands.TransitionShopOrderCommandHandler,
	rebroadcastShopOrderHandler commands.RebroadcastShopOrderCommandHandler,
	cancelShopOrderHandler commands.CancelShopOrderCommandHandler,
	acceptAssignmentHandler commands.AcceptAssignmentCommandHandler,
	issueDeliveryCodeHandler commands.IssueDeliveryCodeCommandHandler,
	verifyDeliveryCodeHandler commands.VerifyDeliveryCodeCommandHandler,
	updatePresenceHandler commands.UpdatePresenceCommandHandler,
	setRiderAvailabilityHandler commands.SetRiderAvailabilityCommandHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	getOrderByIDHandler queries.GetOrderByIDQueryHandler,
	getOwnerOrdersHandler queries.GetOwnerOrdersQueryHandler,
	getRiderBroadcastsHandler queries.GetRiderBroadcastsQueryHandler,
	getCurrentDeliveryHandler queries.GetCurrentDeliveryQueryHandler,
	getRiderDeliveredOrdersHandler queries.GetRiderDeliveredOrdersQueryHandler,
	getRiderStatsHandler queries.GetRiderStatsQueryHandler,
	getRiderLocationHandler queries.GetRiderLocationQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:              placeOrderHandler,
		confirmPaymentHandler:          confirmPaymentHandler,
		transitionShopOrderHandler:     transitionShopOrderHandler,
		rebroadcastShopOrderHandler:    rebroadcastShopOrderHandler,
		cancelShopOrderHandler:         cancelShopOrderHandler,
		acceptAssignmentHandler:        acceptAssignmentHandler,
		issueDeliveryCodeHandler:       issueDeliveryCodeHandler,
		verifyDeliveryCodeHandler:      verifyDeliveryCodeHandler,
		updatePresenceHandler:          updatePresenceHandler,
		setRiderAvailabilityHandler:    setRiderAvailabilityHandler,
		getCustomerOrdersHandler:       getCustomerOrdersHandler,
		getOrderByIDHandler:            getOrderByIDHandler,
		getOwnerOrdersHandler:          getOwnerOrdersHandler,
		getRiderBroadcastsHandler:      getRiderBroadcastsHandler,
		getCurrentDeliveryHandler:      getCurrentDeliveryHandler,
		getRiderDeliveredOrdersHandler: getRiderDeliveredOrdersHandler,
		getRiderStatsHandler:           getRiderStatsHandler,
		getRiderLocationHandler:        getRiderLocationHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	// customer
	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/payments/confirm", s.ConfirmPayment)
	api.GET("/customers/:customerID/orders", s.GetCustomerOrders)
	api.GET("/shop-orders/:shopOrderID/rider-location", s.GetRiderLocation)
	api.POST("/shop-orders/:shopOrderID/cancel", s.CancelShopOrder)

	// shop owner
	api.GET("/owners/:ownerID/orders", s.GetOwnerOrders)
	api.POST("/shop-orders/:shopOrderID/status", s.TransitionShopOrder)
	api.POST("/shop-orders/:shopOrderID/rebroadcast", s.RebroadcastShopOrder)

	// rider
	api.POST("/riders/:riderID/presence", s.UpdatePresence)
	api.POST("/riders/:riderID/availability", s.SetRiderAvailability)
	api.GET("/riders/:riderID/broadcasts", s.GetRiderBroadcasts)
	api.GET("/riders/:riderID/delivery", s.GetCurrentDelivery)
	api.GET("/riders/:riderID/deliveries", s.GetRiderDeliveredOrders)
	api.GET("/riders/:riderID/stats", s.GetRiderStats)
	api.POST("/assignments/:assignmentID/accept", s.AcceptAssignment)
	api.POST("/shop-orders/:shopOrderID/delivery-code", s.IssueDeliveryCode)
	api.POST("/shop-orders/:shopOrderID/deliver", s.VerifyDeliveryCode)
}

// ErrorResponse is the error envelope returned on failures.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// fail renders a domain error with the appropriate status code.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// statusFor maps domain errors to HTTP status codes. Contested state (a lost
// accept race, a busy rider, a stale aggregate) is a conflict; authorization
// failures surface as not found because foreign resources do not exist for the
// caller.
func statusFor(err error) int {
	var notFound *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, assignment.ErrAlreadyResolved),
		errors.Is(err, assignment.ErrRiderBusy),
		errors.Is(err, assignment.ErrRiderNotCandidate),
		errors.Is(err, ports.ErrConcurrentUpdate),
		errors.Is(err, order.ErrPaymentAlreadySettled),
		errors.Is(err, order.ErrAssignmentAlreadyAttached):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUpstreamFailure):
		return http.StatusBadGateway
	case errors.Is(err, order.ErrCodeInvalidOrExpired),
		errors.Is(err, commands.ErrPaymentNotCaptured),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseUUIDParam(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}
