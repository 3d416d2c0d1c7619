package commands

import (
	"context"
	"log/slog"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/ports"
)

// AcceptAssignmentResult reports a successful claim.
type AcceptAssignmentResult struct {
	// ShopOrderID is the shop order the rider will deliver.
	ShopOrderID kernel.UUID

	// ShopID is the pickup shop.
	ShopID kernel.UUID
}

// AcceptAssignmentCommandHandler handles the race on a broadcast offer. The
// claim itself is a single atomic conditional update in the assignment
// repository, so concurrent accepts resolve in the database: the first one
// wins, every later one gets assignment.ErrAlreadyResolved, and a rider who
// already holds a live job gets assignment.ErrRiderBusy regardless of who won.
type AcceptAssignmentCommandHandler struct {
	uowFactory UoWFactory
	geo        ports.GeoIndex
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAcceptAssignmentCommandHandler creates a handler for offer claims.
func NewAcceptAssignmentCommandHandler(
	uowFactory UoWFactory,
	geo ports.GeoIndex,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		geo:        geo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle claims the offer for the rider and records the winner on the shop
// order inside the same transaction. The rider's last known location seeds the
// tracking snapshot when the geo index has one.
func (h *AcceptAssignmentCommandHandler) Handle(
	ctx context.Context,
	cmd AcceptAssignmentCommand,
) (AcceptAssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AcceptAssignmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AcceptAssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	claimed, err := uow.AssignmentRepository().Accept(
		ctx, cmd.AssignmentID(), cmd.RiderID(), time.Now())
	if err != nil {
		return AcceptAssignmentResult{}, err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByShopOrder(ctx, claimed.ShopOrderID())
	if err != nil {
		return AcceptAssignmentResult{}, err
	}

	shopOrder, err := aggregate.ShopOrderByID(claimed.ShopOrderID())
	if err != nil {
		return AcceptAssignmentResult{}, err
	}

	if err = shopOrder.AcceptBy(cmd.RiderID(), h.lastKnownLocation(ctx, cmd.RiderID())); err != nil {
		return AcceptAssignmentResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return AcceptAssignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AcceptAssignmentResult{}, err
	}

	h.announce(ctx, aggregate, shopOrder, cmd.RiderID())

	return AcceptAssignmentResult{
		ShopOrderID: shopOrder.ID(),
		ShopID:      shopOrder.ShopID(),
	}, nil
}

// lastKnownLocation is best effort; a missing presence just leaves the tracking
// snapshot empty until the rider's next heartbeat.
func (h *AcceptAssignmentCommandHandler) lastKnownLocation(
	ctx context.Context,
	riderID kernel.UUID,
) *kernel.GeoPoint {
	presence, err := h.geo.GetPresence(ctx, riderID)
	if err != nil {
		return nil
	}
	return presence.Location()
}

func (h *AcceptAssignmentCommandHandler) announce(
	ctx context.Context,
	aggregate *order.Order,
	shopOrder *order.ShopOrder,
	riderID kernel.UUID,
) {
	payload := map[string]any{
		"orderId":     aggregate.ID().String(),
		"shopOrderId": shopOrder.ID().String(),
		"riderId":     riderID.String(),
	}

	for _, scope := range []kernel.UUID{aggregate.CustomerID(), shopOrder.OwnerID(), riderID} {
		event := ports.Event{
			Name:    ports.EventAssignmentAccepted,
			Scope:   scope.String(),
			Payload: payload,
		}
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("publish failed",
				"event", event.Name, "scope", event.Scope, "error", err)
		}
	}
}
