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

// VerifyDeliveryCodeCommandHandler is the delivery completion gate: it checks
// the one-time code and, on a match, moves the shop order to delivered and
// closes the rider's assignment in the same transaction. This is the only path
// into the delivered status and the only path that frees the rider for new
// offers.
type VerifyDeliveryCodeCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewVerifyDeliveryCodeCommandHandler creates a handler for delivery completion.
func NewVerifyDeliveryCodeCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) VerifyDeliveryCodeCommandHandler {
	return VerifyDeliveryCodeCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle completes the delivery. A wrong or expired code returns
// order.ErrCodeInvalidOrExpired and changes nothing.
func (h *VerifyDeliveryCodeCommandHandler) Handle(ctx context.Context, cmd VerifyDeliveryCodeCommand) error {
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
	if shopOrder.Rider() == nil || !shopOrder.Rider().IsEqual(cmd.RiderID()) {
		return errs.NewObjectNotFoundError("shop order", cmd.ShopOrderID().String())
	}

	// The gate clears the assignment reference on success; capture it first so
	// the ledger entry can be closed in the same transaction.
	assignmentID := shopOrder.Assignment()

	now := time.Now()
	if err = shopOrder.VerifyDeliveryCode(cmd.Code(), now); err != nil {
		return err
	}

	if assignmentID != nil {
		assignmentRepo := uow.AssignmentRepository()
		claimed, getErr := assignmentRepo.Get(ctx, *assignmentID)
		if getErr != nil {
			return getErr
		}
		if err = claimed.Complete(now); err != nil {
			return err
		}
		if err = assignmentRepo.Update(ctx, claimed); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.announce(ctx, aggregate, shopOrder, cmd.RiderID())

	return nil
}

func (h *VerifyDeliveryCodeCommandHandler) announce(
	ctx context.Context,
	aggregate *order.Order,
	shopOrder *order.ShopOrder,
	riderID kernel.UUID,
) {
	payload := map[string]any{
		"orderId":     aggregate.ID().String(),
		"shopOrderId": shopOrder.ID().String(),
		"status":      shopOrder.Status().String(),
	}

	for _, scope := range []kernel.UUID{aggregate.CustomerID(), shopOrder.OwnerID(), riderID} {
		event := ports.Event{
			Name:    ports.EventDeliveryCompleted,
			Scope:   scope.String(),
			Payload: payload,
		}
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("publish failed",
				"event", event.Name, "scope", event.Scope, "error", err)
		}
	}
}
