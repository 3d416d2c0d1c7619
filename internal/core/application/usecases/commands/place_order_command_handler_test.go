package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodflow/internal/core/application/usecases/commands"
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/ports"
)

func twoShopCart(shopA, shopB kernel.UUID) []commands.CartLine {
	return []commands.CartLine{
		{ShopID: shopA, Name: "Margherita", UnitPrice: 20000, Quantity: 1},
		{ShopID: shopB, Name: "Sushi Set", UnitPrice: 15000, Quantity: 1},
		{ShopID: shopA, Name: "Garlic Bread", UnitPrice: 5000, Quantity: 2},
	}
}

func TestPlaceOrderCommandHandler_Handle_SplitsCartByShop(t *testing.T) {
	ctx := t.Context()
	shopA := kernel.NewUUID()
	shopB := kernel.NewUUID()

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "221B Baker Street", 28.6315, 77.2167,
		order.PaymentMethodCashOnDelivery, twoShopCart(shopA, shopB))
	require.NoError(t, err)

	directory := new(MockDirectory)
	directory.On("GetShop", ctx, shopA).
		Return(ports.Shop{ID: shopA, OwnerID: kernel.NewUUID(), Name: "Pizza Place"}, nil).Once()
	directory.On("GetShop", ctx, shopB).
		Return(ports.Shop{ID: shopB, OwnerID: kernel.NewUUID(), Name: "Sushi Bar"}, nil).Once()

	var placed *order.Order
	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			placed = args.Get(1).(*order.Order)
		}).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("ports.Event")).Return(nil)

	h := commands.NewPlaceOrderCommandHandler(
		factory, directory, new(MockPaymentGateway), publisher, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, int64(45000), result.TotalAmount, "two subtotals of 300.00 and 150.00")
	require.Empty(t, result.PaymentIntentRef, "cash orders open no intent")

	require.NotNil(t, placed)
	require.Len(t, placed.ShopOrders(), 2)
	for _, so := range placed.ShopOrders() {
		require.Equal(t, order.StatusPending, so.Status())
	}

	soA, err := placed.ShopOrderByShop(shopA)
	require.NoError(t, err)
	require.Equal(t, int64(30000), soA.Subtotal())

	soB, err := placed.ShopOrderByShop(shopB)
	require.NoError(t, err)
	require.Equal(t, int64(15000), soB.Subtotal())

	// customer event plus one per shop owner on cash orders
	publisher.AssertNumberOfCalls(t, "Publish", 3)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	directory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_OnlineOpensIntent(t *testing.T) {
	ctx := t.Context()
	shopA := kernel.NewUUID()

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "221B Baker Street", 28.6315, 77.2167,
		order.PaymentMethodOnline,
		[]commands.CartLine{{ShopID: shopA, Name: "Margherita", UnitPrice: 20000, Quantity: 1}})
	require.NoError(t, err)

	directory := new(MockDirectory)
	directory.On("GetShop", ctx, shopA).
		Return(ports.Shop{ID: shopA, OwnerID: kernel.NewUUID()}, nil).Once()

	gateway := new(MockPaymentGateway)
	gateway.On("CreateIntent", ctx, int64(20000), "INR", mock.AnythingOfType("string")).
		Return(ports.PaymentIntent{Ref: "order_R5xJd2", Amount: 20000, Currency: "INR"}, nil).Once()

	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Name == ports.EventOrderCreated
	})).Return(nil)

	h := commands.NewPlaceOrderCommandHandler(factory, directory, gateway, publisher, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, "order_R5xJd2", result.PaymentIntentRef)

	// owners are not notified until payment settles
	publisher.AssertNumberOfCalls(t, "Publish", 1)
	gateway.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_GatewayFailurePlacesNothing(t *testing.T) {
	ctx := t.Context()
	shopA := kernel.NewUUID()

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "221B Baker Street", 28.6315, 77.2167,
		order.PaymentMethodOnline,
		[]commands.CartLine{{ShopID: shopA, Name: "Margherita", UnitPrice: 20000, Quantity: 1}})
	require.NoError(t, err)

	directory := new(MockDirectory)
	directory.On("GetShop", ctx, shopA).
		Return(ports.Shop{ID: shopA, OwnerID: kernel.NewUUID()}, nil).Once()

	gateway := new(MockPaymentGateway)
	gateway.On("CreateIntent", ctx, int64(20000), "INR", mock.AnythingOfType("string")).
		Return(ports.PaymentIntent{}, errors.New("gateway down")).Once()

	factory := new(MockOrderUoWFactory)

	h := commands.NewPlaceOrderCommandHandler(
		factory, directory, gateway, new(MockEventPublisher), discardLogger())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewPlaceOrderCommandHandler(
		new(MockOrderUoWFactory), new(MockDirectory), new(MockPaymentGateway),
		new(MockEventPublisher), discardLogger())

	_, err := h.Handle(context.Background(), commands.PlaceOrderCommand{})
	require.Error(t, err)
}

func TestNewPlaceOrderCommandRejectsBadInput(t *testing.T) {
	validLines := []commands.CartLine{
		{ShopID: kernel.NewUUID(), Name: "Soup", UnitPrice: 5000, Quantity: 1},
	}

	_, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "", 28.63, 77.21,
		order.PaymentMethodCashOnDelivery, validLines)
	require.Error(t, err, "empty address")

	_, err = commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "somewhere", 91, 77.21,
		order.PaymentMethodCashOnDelivery, validLines)
	require.Error(t, err, "latitude out of range")

	_, err = commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "somewhere", 28.63, 77.21,
		order.PaymentMethodUnknown, validLines)
	require.Error(t, err, "unknown payment method")

	_, err = commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "somewhere", 28.63, 77.21,
		order.PaymentMethodCashOnDelivery, nil)
	require.Error(t, err, "empty cart")

	_, err = commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "somewhere", 28.63, 77.21,
		order.PaymentMethodCashOnDelivery,
		[]commands.CartLine{{ShopID: kernel.NewUUID(), Name: "Soup", UnitPrice: 5000, Quantity: 0}})
	require.Error(t, err, "zero quantity")
}
