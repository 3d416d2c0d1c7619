package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/rider"
	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

// UpdatePresenceCommandHandler processes rider heartbeats: it refreshes the geo
// index and, when the rider is on an active delivery, mirrors the fix onto the
// shop order so customers see live movement.
type UpdatePresenceCommandHandler struct {
	uowFactory UoWFactory
	geo        ports.GeoIndex
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewUpdatePresenceCommandHandler creates a handler for rider heartbeats.
func NewUpdatePresenceCommandHandler(
	uowFactory UoWFactory,
	geo ports.GeoIndex,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) UpdatePresenceCommandHandler {
	return UpdatePresenceCommandHandler{
		uowFactory: uowFactory,
		geo:        geo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle records the heartbeat. The geo index update is the primary effect;
// mirroring onto an active delivery is best effort and an optimistic-lock
// conflict there is swallowed, the next heartbeat will catch up.
func (h *UpdatePresenceCommandHandler) Handle(ctx context.Context, cmd UpdatePresenceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	point, err := kernel.NewGeoPoint(cmd.Latitude(), cmd.Longitude())
	if err != nil {
		return err
	}

	presence, err := rider.NewPresence(cmd.RiderID(), true, &point, cmd.Channel(), time.Now())
	if err != nil {
		return err
	}

	if err = h.geo.UpdatePresence(ctx, presence); err != nil {
		return err
	}

	if err = h.mirrorOntoActiveDelivery(ctx, cmd.RiderID(), point); err != nil {
		if errors.Is(err, ports.ErrConcurrentUpdate) {
			return nil
		}
		return err
	}

	return nil
}

func (h *UpdatePresenceCommandHandler) mirrorOntoActiveDelivery(
	ctx context.Context,
	riderID kernel.UUID,
	point kernel.GeoPoint,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	active, err := uow.AssignmentRepository().GetActiveByRider(ctx, riderID)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	// Unaccepted broadcasts list the rider as candidate at most; only an
	// accepted job carries a tracking snapshot.
	if active.AcceptedBy() == nil || !active.AcceptedBy().IsEqual(riderID) {
		return nil
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByShopOrder(ctx, active.ShopOrderID())
	if err != nil {
		return err
	}

	shopOrder, err := aggregate.ShopOrderByID(active.ShopOrderID())
	if err != nil {
		return err
	}

	if err = shopOrder.UpdateRiderLocation(point); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := ports.Event{
		Name:  ports.EventRiderLocationUpdated,
		Scope: aggregate.CustomerID().String(),
		Payload: map[string]any{
			"shopOrderId": shopOrder.ID().String(),
			"riderId":     riderID.String(),
			"latitude":    point.Latitude(),
			"longitude":   point.Longitude(),
		},
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("publish failed",
			"event", event.Name, "scope", event.Scope, "error", err)
	}

	return nil
}
