package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodflow/internal/core/application/usecases/commands"
	"foodflow/internal/core/domain/model/assignment"
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/ports"
)

func TestExpireAssignmentsCommandHandler_Handle_DetachesExpiredBroadcasts(t *testing.T) {
	ctx := t.Context()
	assignmentID := kernel.NewUUID()

	fixture := newOrderFixture(t).outForDelivery(t).withAssignment(t, assignmentID)

	stale, err := assignment.NewAssignment(
		assignmentID, fixture.shopOrder.ID(), fixture.shopOrder.ShopID(),
		[]kernel.UUID{kernel.NewUUID()}, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, stale.Expire(time.Now()))

	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("ExpireBroadcastedBefore", ctx,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]*assignment.Assignment{stale}, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByShopOrder", ctx, fixture.shopOrder.ID()).Return(fixture.aggregate, nil).Once()
	orderRepo.On("Update", ctx, fixture.aggregate).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AssignmentRepository").Return(assignmentRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Name == ports.EventAssignmentExpired && e.Scope == stale.ShopID().String()
	})).Return(nil).Once()

	cmd, err := commands.NewExpireAssignmentsCommand(10 * time.Minute)
	require.NoError(t, err)

	h := commands.NewExpireAssignmentsCommandHandler(factory, publisher, discardLogger())
	count, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.Nil(t, fixture.shopOrder.Assignment(), "the shop order is dispatchable again")

	publisher.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestExpireAssignmentsCommandHandler_Handle_NothingToExpire(t *testing.T) {
	ctx := t.Context()

	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("ExpireBroadcastedBefore", ctx,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]*assignment.Assignment{}, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AssignmentRepository").Return(assignmentRepo).Once()
	uow.On("OrderRepository").Return(new(MockOrderRepository)).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewExpireAssignmentsCommand(10 * time.Minute)
	require.NoError(t, err)

	h := commands.NewExpireAssignmentsCommandHandler(factory, new(MockEventPublisher), discardLogger())
	count, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestNewExpireAssignmentsCommandRejectsNonPositiveWindow(t *testing.T) {
	_, err := commands.NewExpireAssignmentsCommand(0)
	require.Error(t, err)

	_, err = commands.NewExpireAssignmentsCommand(-time.Minute)
	require.Error(t, err)
}
