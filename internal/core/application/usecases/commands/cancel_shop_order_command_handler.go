package commands

import (
	"context"
	"log/slog"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

// CancelShopOrderCommandHandler cancels a shop order and, when a live
// assignment is bound, closes it in the same transaction so the rider's
// active-job slot is released.
type CancelShopOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCancelShopOrderCommandHandler creates a handler for cancellations.
func NewCancelShopOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelShopOrderCommandHandler {
	return CancelShopOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle cancels the shop order. Refunds for settled online payments are
// handled outside this flow.
func (h *CancelShopOrderCommandHandler) Handle(ctx context.Context, cmd CancelShopOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByShopOrder(ctx, cmd.ShopOrderID())
	if err != nil {
		return err
	}

	shopOrder, err := aggregate.ShopOrderByID(cmd.ShopOrderID())
	if err != nil {
		return err
	}

	isCustomer := aggregate.CustomerID().IsEqual(cmd.ActorID())
	isOwner := shopOrder.OwnerID().IsEqual(cmd.ActorID())
	if !isCustomer && !isOwner {
		return errs.NewObjectNotFoundError("shop order", cmd.ShopOrderID().String())
	}

	// Cancel clears the assignment reference; capture it first so the ledger
	// entry can be closed too.
	assignmentID := shopOrder.Assignment()
	riderID := shopOrder.Rider()

	if err = shopOrder.Cancel(); err != nil {
		return err
	}

	if assignmentID != nil {
		assignmentRepo := uow.AssignmentRepository()
		bound, getErr := assignmentRepo.Get(ctx, *assignmentID)
		if getErr != nil {
			return getErr
		}
		if err = bound.Cancel(time.Now()); err != nil {
			return err
		}
		if err = assignmentRepo.Update(ctx, bound); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.announce(ctx, aggregate, shopOrder, riderID)

	return nil
}

func (h *CancelShopOrderCommandHandler) announce(
	ctx context.Context,
	aggregate *order.Order,
	shopOrder *order.ShopOrder,
	riderID *kernel.UUID,
) {
	payload := map[string]any{
		"orderId":     aggregate.ID().String(),
		"shopOrderId": shopOrder.ID().String(),
		"status":      shopOrder.Status().String(),
	}

	scopes := []kernel.UUID{aggregate.CustomerID(), shopOrder.OwnerID()}
	if riderID != nil {
		scopes = append(scopes, *riderID)
	}

	for _, scope := range scopes {
		event := ports.Event{
			Name:    ports.EventOrderStatusUpdated,
			Scope:   scope.String(),
			Payload: payload,
		}
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("publish failed",
				"event", event.Name, "scope", event.Scope, "error", err)
		}
	}
}
