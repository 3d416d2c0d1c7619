package commands

import (
	"context"
	"log/slog"
	"time"

	"foodflow/internal/core/domain/model/assignment"
	"foodflow/internal/core/ports"
)

// ExpireAssignmentsCommandHandler closes stale broadcasts. The sweep is one
// conditional update in the repository, so it races safely with concurrent
// accepts: an assignment claimed between cutoff and sweep is simply not
// matched. Each expired broadcast is detached from its shop order, which
// returns to the dispatchable state for a rebroadcast.
type ExpireAssignmentsCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewExpireAssignmentsCommandHandler creates a handler for the expiry sweep.
func NewExpireAssignmentsCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ExpireAssignmentsCommandHandler {
	return ExpireAssignmentsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle runs one sweep and returns how many broadcasts were expired.
func (h *ExpireAssignmentsCommandHandler) Handle(ctx context.Context, cmd ExpireAssignmentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now()
	cutoff := now.Add(-cmd.Window())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.AssignmentRepository().ExpireBroadcastedBefore(ctx, cutoff, now)
	if err != nil {
		return 0, err
	}

	orderRepo := uow.OrderRepository()
	for _, a := range expired {
		aggregate, getErr := orderRepo.GetByShopOrder(ctx, a.ShopOrderID())
		if getErr != nil {
			return 0, getErr
		}

		shopOrder, soErr := aggregate.ShopOrderByID(a.ShopOrderID())
		if soErr != nil {
			return 0, soErr
		}

		if err = shopOrder.DetachAssignment(); err != nil {
			return 0, err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.announce(ctx, expired)

	return len(expired), nil
}

// announce tells each shop owner their broadcast found no rider, so they can
// retry dispatch.
func (h *ExpireAssignmentsCommandHandler) announce(ctx context.Context, expired []*assignment.Assignment) {
	for _, a := range expired {
		event := ports.Event{
			Name:  ports.EventAssignmentExpired,
			Scope: a.ShopID().String(),
			Payload: map[string]any{
				"assignmentId": a.ID().String(),
				"shopOrderId":  a.ShopOrderID().String(),
			},
		}
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("publish failed",
				"event", event.Name, "scope", event.Scope, "error", err)
		}
	}
}
