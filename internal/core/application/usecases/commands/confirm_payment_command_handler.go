package commands

import (
	"context"
	"log/slog"

	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/ports"
)

// ConfirmPaymentCommandHandler settles online orders: it verifies the payment
// with the gateway, marks the order settled, and makes the order visible to
// shop owners.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmation.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle verifies the payment against the gateway, never trusting the caller's
// word for it. The order is located by the intent reference the gateway echoes
// back, so a forged payment ref cannot settle an unrelated order.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	payment, err := h.gateway.FetchPayment(ctx, cmd.PaymentRef())
	if err != nil {
		return err
	}
	if payment.Status != ports.PaymentStatusCaptured {
		return ErrPaymentNotCaptured
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByPaymentRef(ctx, payment.IntentRef)
	if err != nil {
		return err
	}

	if err = aggregate.ConfirmPayment(payment.Ref); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.announce(ctx, aggregate)

	return nil
}

// announce makes the settled order visible: owners get order.created (they see
// the order for the first time), the customer gets a status update.
func (h *ConfirmPaymentCommandHandler) announce(ctx context.Context, aggregate *order.Order) {
	events := []ports.Event{{
		Name:  ports.EventOrderStatusUpdated,
		Scope: aggregate.CustomerID().String(),
		Payload: map[string]any{
			"orderId": aggregate.ID().String(),
			"payment": "settled",
		},
	}}

	for _, so := range aggregate.ShopOrders() {
		events = append(events, ports.Event{
			Name:  ports.EventOrderCreated,
			Scope: so.OwnerID().String(),
			Payload: map[string]any{
				"orderId":     aggregate.ID().String(),
				"shopOrderId": so.ID().String(),
				"subtotal":    so.Subtotal(),
			},
		})
	}

	for _, event := range events {
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("publish failed",
				"event", event.Name, "scope", event.Scope, "error", err)
		}
	}
}
