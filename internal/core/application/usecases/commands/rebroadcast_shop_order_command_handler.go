package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

// RebroadcastShopOrderResult reports the outcome of a matching retry.
type RebroadcastShopOrderResult struct {
	// AssignmentID is the newly opened broadcast, when one was opened.
	AssignmentID *kernel.UUID

	// NoRidersAvailable is set when the retry again found no candidate rider.
	NoRidersAvailable bool
}

// RebroadcastShopOrderCommandHandler retries rider matching for a shop order
// that is out for delivery but carries no live broadcast.
type RebroadcastShopOrderCommandHandler struct {
	uowFactory  UoWFactory
	broadcaster broadcaster
	publisher   ports.EventPublisher
}

// NewRebroadcastShopOrderCommandHandler creates a handler for matching retries.
func NewRebroadcastShopOrderCommandHandler(
	uowFactory UoWFactory,
	geo ports.GeoIndex,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RebroadcastShopOrderCommandHandler {
	return RebroadcastShopOrderCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: newBroadcaster(geo, logger),
		publisher:   publisher,
	}
}

// Handle retries matching. The shop order must be out for delivery with no
// assignment bound; anything else means a broadcast or rider is already in
// flight and the retry is rejected.
func (h *RebroadcastShopOrderCommandHandler) Handle(
	ctx context.Context,
	cmd RebroadcastShopOrderCommand,
) (RebroadcastShopOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return RebroadcastShopOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RebroadcastShopOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByShopOrder(ctx, cmd.ShopOrderID())
	if err != nil {
		return RebroadcastShopOrderResult{}, err
	}

	shopOrder, err := aggregate.ShopOrderByID(cmd.ShopOrderID())
	if err != nil {
		return RebroadcastShopOrderResult{}, err
	}
	if !shopOrder.OwnerID().IsEqual(cmd.OwnerID()) {
		return RebroadcastShopOrderResult{}, errs.NewObjectNotFoundError(
			"shop order", cmd.ShopOrderID().String())
	}

	if shopOrder.Status() != order.StatusOutForDelivery {
		return RebroadcastShopOrderResult{}, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to rebroadcast from", shopOrder.Status()))
	}
	if shopOrder.Assignment() != nil {
		return RebroadcastShopOrderResult{}, order.ErrAssignmentAlreadyAttached
	}

	opened, err := h.broadcaster.openBroadcast(
		ctx, uow, shopOrder, aggregate.Address(), time.Now())
	if err != nil {
		return RebroadcastShopOrderResult{}, err
	}

	result := RebroadcastShopOrderResult{NoRidersAvailable: opened == nil}
	if opened != nil {
		id := opened.ID()
		result.AssignmentID = &id

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return RebroadcastShopOrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return RebroadcastShopOrderResult{}, err
	}

	if opened != nil {
		h.broadcaster.announceBroadcast(ctx, h.publisher, opened, shopOrder, aggregate.Address())
	}

	return result, nil
}
