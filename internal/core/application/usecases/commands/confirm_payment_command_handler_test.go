package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodflow/internal/core/application/usecases/commands"
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/ports"
)

func newOnlineOrderFixture(t *testing.T) orderFixture {
	t.Helper()

	customerID := kernel.NewUUID()
	ownerID := kernel.NewUUID()

	item, err := order.NewLineItem("Margherita", 20000, 1)
	require.NoError(t, err)

	shopOrder, err := order.NewShopOrder(kernel.NewUUID(), kernel.NewUUID(), ownerID, []order.LineItem{item})
	require.NoError(t, err)

	address, err := order.NewAddress("221B Baker Street", 28.6315, 77.2167)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customerID, address, order.PaymentMethodOnline,
		time.Now(), []*order.ShopOrder{shopOrder})
	require.NoError(t, err)
	require.NoError(t, aggregate.AttachPaymentRef("order_R5xJd2"))

	return orderFixture{
		aggregate:  aggregate,
		shopOrder:  shopOrder,
		customerID: customerID,
		ownerID:    ownerID,
	}
}

func TestConfirmPaymentCommandHandler_Handle_SettlesOrder(t *testing.T) {
	ctx := t.Context()
	fixture := newOnlineOrderFixture(t)

	gateway := new(MockPaymentGateway)
	gateway.On("FetchPayment", ctx, "pay_R5xKp9").
		Return(ports.Payment{
			Ref: "pay_R5xKp9", IntentRef: "order_R5xJd2", Status: ports.PaymentStatusCaptured,
		}, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByPaymentRef", ctx, "order_R5xJd2").Return(fixture.aggregate, nil).Once()
	orderRepo.On("Update", ctx, fixture.aggregate).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("ports.Event")).Return(nil)

	cmd, err := commands.NewConfirmPaymentCommand("pay_R5xKp9")
	require.NoError(t, err)

	h := commands.NewConfirmPaymentCommandHandler(factory, gateway, publisher, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	require.True(t, fixture.aggregate.IsPaymentSettled())
	require.Equal(t, "pay_R5xKp9", fixture.aggregate.PaymentRef())

	// status update to the customer plus order.created to the owner
	publisher.AssertNumberOfCalls(t, "Publish", 2)
	gateway.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_NotCaptured(t *testing.T) {
	ctx := t.Context()

	gateway := new(MockPaymentGateway)
	gateway.On("FetchPayment", ctx, "pay_R5xKp9").
		Return(ports.Payment{Ref: "pay_R5xKp9", Status: "failed"}, nil).Once()

	factory := new(MockOrderUoWFactory)

	cmd, err := commands.NewConfirmPaymentCommand("pay_R5xKp9")
	require.NoError(t, err)

	h := commands.NewConfirmPaymentCommandHandler(
		factory, gateway, new(MockEventPublisher), discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrPaymentNotCaptured)
	factory.AssertNotCalled(t, "Create")
}
