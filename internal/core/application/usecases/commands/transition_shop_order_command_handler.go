package commands

import (
	"context"
	"log/slog"
	"time"

	"foodflow/internal/core/domain/model/assignment"
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

// TransitionShopOrderResult reports the outcome of an owner-driven status move.
type TransitionShopOrderResult struct {
	// Status is the shop order's status after the move.
	Status order.Status

	// AssignmentID is the broadcast opened by the move, when one was.
	AssignmentID *kernel.UUID

	// NoRidersAvailable is set when the move into out-for-delivery found no
	// candidate rider. The shop order stays dispatchable; a later rebroadcast
	// can retry.
	NoRidersAvailable bool
}

// TransitionShopOrderCommandHandler handles owner-driven status moves. Moving a
// shop order into out-for-delivery additionally opens a delivery broadcast to
// nearby free riders, all inside one transaction with the status change.
type TransitionShopOrderCommandHandler struct {
	uowFactory  UoWFactory
	broadcaster broadcaster
	publisher   ports.EventPublisher
	logger      *slog.Logger
}

// NewTransitionShopOrderCommandHandler creates a handler for status moves.
func NewTransitionShopOrderCommandHandler(
	uowFactory UoWFactory,
	geo ports.GeoIndex,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) TransitionShopOrderCommandHandler {
	return TransitionShopOrderCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: newBroadcaster(geo, logger),
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle processes the status move. Only the owning shop's owner may move a
// shop order; for anyone else the shop order does not exist. A move into
// out-for-delivery with no candidate riders still commits, reporting
// NoRidersAvailable instead of failing.
func (h *TransitionShopOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionShopOrderCommand,
) (TransitionShopOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionShopOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionShopOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByShopOrder(ctx, cmd.ShopOrderID())
	if err != nil {
		return TransitionShopOrderResult{}, err
	}

	shopOrder, err := aggregate.ShopOrderByID(cmd.ShopOrderID())
	if err != nil {
		return TransitionShopOrderResult{}, err
	}
	if !shopOrder.OwnerID().IsEqual(cmd.OwnerID()) {
		return TransitionShopOrderResult{}, errs.NewObjectNotFoundError(
			"shop order", cmd.ShopOrderID().String())
	}

	if err = shopOrder.TransitionTo(cmd.Next()); err != nil {
		return TransitionShopOrderResult{}, err
	}

	result := TransitionShopOrderResult{Status: shopOrder.Status()}

	var opened *assignment.Assignment
	if cmd.Next() == order.StatusOutForDelivery {
		opened, err = h.broadcaster.openBroadcast(
			ctx, uow, shopOrder, aggregate.Address(), time.Now())
		if err != nil {
			return TransitionShopOrderResult{}, err
		}
		if opened == nil {
			result.NoRidersAvailable = true
		} else {
			id := opened.ID()
			result.AssignmentID = &id
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return TransitionShopOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionShopOrderResult{}, err
	}

	h.announce(ctx, aggregate, shopOrder)
	if opened != nil {
		h.broadcaster.announceBroadcast(ctx, h.publisher, opened, shopOrder, aggregate.Address())
	}

	return result, nil
}

func (h *TransitionShopOrderCommandHandler) announce(
	ctx context.Context,
	aggregate *order.Order,
	shopOrder *order.ShopOrder,
) {
	event := ports.Event{
		Name:  ports.EventOrderStatusUpdated,
		Scope: aggregate.CustomerID().String(),
		Payload: map[string]any{
			"orderId":     aggregate.ID().String(),
			"shopOrderId": shopOrder.ID().String(),
			"status":      shopOrder.Status().String(),
		},
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("publish failed",
			"event", event.Name, "scope", event.Scope, "error", err)
	}
}
