package commands

import (
	"context"
	"log/slog"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/ports"
)

// orderCurrency is the ISO code used for payment intents.
const orderCurrency = "INR"

// PlaceOrderResult reports the outcome of a placed order.
type PlaceOrderResult struct {
	// OrderID is the identifier of the created order.
	OrderID kernel.UUID

	// TotalAmount is the order total in minor currency units.
	TotalAmount int64

	// PaymentIntentRef is the gateway intent the customer pays against.
	// Empty for cash-on-delivery orders.
	PaymentIntentRef string
}

// PlaceOrderCommandHandler handles the business logic for order placement:
// decomposing the cart into one shop order per shop, opening a payment intent
// for online orders, and announcing the order after commit.
//
// Cash orders are visible to shop owners immediately; online orders stay
// invisible to owners until the payment confirmation flow settles them.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	directory  ports.Directory
	gateway    ports.PaymentGateway
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	directory ports.Directory,
	gateway ports.PaymentGateway,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		gateway:    gateway,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order placement command. The cart is grouped by shop in
// first-appearance order; each group becomes a pending shop order owned by that
// shop. For online payment an intent is opened before the transaction so a
// gateway failure places nothing.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	shopOrders, err := h.buildShopOrders(ctx, cmd.Lines())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	address, err := order.NewAddress(cmd.AddressText(), cmd.Latitude(), cmd.Longitude())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), address, cmd.PaymentMethod(), time.Now(), shopOrders)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	result := PlaceOrderResult{
		OrderID:     aggregate.ID(),
		TotalAmount: aggregate.TotalAmount(),
	}

	if cmd.PaymentMethod() == order.PaymentMethodOnline {
		intent, intentErr := h.gateway.CreateIntent(
			ctx, aggregate.TotalAmount(), orderCurrency, aggregate.ID().String())
		if intentErr != nil {
			return PlaceOrderResult{}, intentErr
		}
		if err = aggregate.AttachPaymentRef(intent.Ref); err != nil {
			return PlaceOrderResult{}, err
		}
		result.PaymentIntentRef = intent.Ref
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	h.announce(ctx, aggregate)

	return result, nil
}

func (h *PlaceOrderCommandHandler) buildShopOrders(
	ctx context.Context,
	lines []CartLine,
) ([]*order.ShopOrder, error) {
	type group struct {
		shop  ports.Shop
		items []order.LineItem
	}

	// Group by shop, preserving first-appearance order.
	var keys []string
	groups := make(map[string]*group)

	for _, line := range lines {
		key := line.ShopID.String()
		g, ok := groups[key]
		if !ok {
			shop, err := h.directory.GetShop(ctx, line.ShopID)
			if err != nil {
				return nil, err
			}
			g = &group{shop: shop}
			groups[key] = g
			keys = append(keys, key)
		}

		item, err := order.NewLineItem(line.Name, line.UnitPrice, line.Quantity)
		if err != nil {
			return nil, err
		}
		g.items = append(g.items, item)
	}

	shopOrders := make([]*order.ShopOrder, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		so, err := order.NewShopOrder(kernel.NewUUID(), g.shop.ID, g.shop.OwnerID, g.items)
		if err != nil {
			return nil, err
		}
		shopOrders = append(shopOrders, so)
	}

	return shopOrders, nil
}

// announce fans out order.created after commit. Cash orders notify shop owners
// immediately; online orders notify owners only after payment confirmation.
// Publish failures are logged and never fail the command.
func (h *PlaceOrderCommandHandler) announce(ctx context.Context, aggregate *order.Order) {
	events := []ports.Event{{
		Name:  ports.EventOrderCreated,
		Scope: aggregate.CustomerID().String(),
		Payload: map[string]any{
			"orderId":     aggregate.ID().String(),
			"totalAmount": aggregate.TotalAmount(),
			"payment":     aggregate.PaymentMethod().String(),
		},
	}}

	if aggregate.PaymentMethod() == order.PaymentMethodCashOnDelivery {
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
	}

	for _, event := range events {
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("publish failed",
				"event", event.Name, "scope", event.Scope, "error", err)
		}
	}
}
