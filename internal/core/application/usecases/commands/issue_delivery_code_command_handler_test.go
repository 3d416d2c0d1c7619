package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodflow/internal/core/application/usecases/commands"
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/ports"
)

func TestIssueDeliveryCodeCommandHandler_Handle_StoresAndSends(t *testing.T) {
	ctx := t.Context()
	riderID := kernel.NewUUID()

	fixture := newOrderFixture(t).outForDelivery(t).withAssignment(t, kernel.NewUUID()).acceptedBy(t, riderID)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByShopOrder", ctx, fixture.shopOrder.ID()).Return(fixture.aggregate, nil).Once()
	orderRepo.On("Update", ctx, fixture.aggregate).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	directory := new(MockDirectory)
	directory.On("GetCustomerContact", ctx, fixture.customerID).
		Return(ports.CustomerContact{
			ID: fixture.customerID, Name: "Asha", Email: "asha@example.com",
		}, nil).Once()

	var sentCode string
	sender := new(MockCodeSender)
	sender.On("SendOneTimeCode", ctx, "asha@example.com", "Asha", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			sentCode = args.Get(3).(string)
		}).Return(nil).Once()

	cmd, err := commands.NewIssueDeliveryCodeCommand(fixture.shopOrder.ID(), riderID)
	require.NoError(t, err)

	h := commands.NewIssueDeliveryCodeCommandHandler(factory, directory, sender, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.False(t, result.Delayed)

	require.Len(t, sentCode, 4)
	require.Equal(t, sentCode, fixture.shopOrder.DeliveryCode(), "stored and sent codes match")
	require.NotNil(t, fixture.shopOrder.CodeExpiresAt())

	sender.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestIssueDeliveryCodeCommandHandler_Handle_SendFailureIsDelayedNotFatal(t *testing.T) {
	ctx := t.Context()
	riderID := kernel.NewUUID()

	fixture := newOrderFixture(t).outForDelivery(t).withAssignment(t, kernel.NewUUID()).acceptedBy(t, riderID)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByShopOrder", ctx, fixture.shopOrder.ID()).Return(fixture.aggregate, nil).Once()
	orderRepo.On("Update", ctx, fixture.aggregate).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	directory := new(MockDirectory)
	directory.On("GetCustomerContact", ctx, fixture.customerID).
		Return(ports.CustomerContact{Email: "asha@example.com", Name: "Asha"}, nil).Once()

	sender := new(MockCodeSender)
	sender.On("SendOneTimeCode", ctx, "asha@example.com", "Asha", mock.AnythingOfType("string")).
		Return(errors.New("mail provider down")).Once()

	cmd, err := commands.NewIssueDeliveryCodeCommand(fixture.shopOrder.ID(), riderID)
	require.NoError(t, err)

	h := commands.NewIssueDeliveryCodeCommandHandler(factory, directory, sender, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err, "the code is committed, the send is best effort")
	require.True(t, result.Delayed)
	require.NotEmpty(t, fixture.shopOrder.DeliveryCode(), "code survives the failed send")
}

func TestIssueDeliveryCodeCommandHandler_Handle_OnlyAssignedRider(t *testing.T) {
	ctx := t.Context()

	fixture := newOrderFixture(t).outForDelivery(t).withAssignment(t, kernel.NewUUID()).acceptedBy(t, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByShopOrder", ctx, fixture.shopOrder.ID()).Return(fixture.aggregate, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewIssueDeliveryCodeCommand(fixture.shopOrder.ID(), kernel.NewUUID())
	require.NoError(t, err)

	h := commands.NewIssueDeliveryCodeCommandHandler(
		factory, new(MockDirectory), new(MockCodeSender), discardLogger())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.Empty(t, fixture.shopOrder.DeliveryCode())
}
