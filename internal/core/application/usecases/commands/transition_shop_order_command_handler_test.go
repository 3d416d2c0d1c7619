package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodflow/internal/core/application/usecases/commands"
	"foodflow/internal/core/domain/model/assignment"
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/domain/model/rider"
	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

func TestTransitionShopOrderCommandHandler_Handle_Preparing(t *testing.T) {
	ctx := t.Context()
	fixture := newOrderFixture(t)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByShopOrder", ctx, fixture.shopOrder.ID()).Return(fixture.aggregate, nil).Once()
	orderRepo.On("Update", ctx, fixture.aggregate).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Name == ports.EventOrderStatusUpdated && e.Scope == fixture.customerID.String()
	})).Return(nil).Once()

	cmd, err := commands.NewTransitionShopOrderCommand(
		fixture.shopOrder.ID(), fixture.ownerID, order.StatusPreparing)
	require.NoError(t, err)

	h := commands.NewTransitionShopOrderCommandHandler(
		factory, new(MockGeoIndex), publisher, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.StatusPreparing, result.Status)
	require.Nil(t, result.AssignmentID)
	require.False(t, result.NoRidersAvailable)

	publisher.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestTransitionShopOrderCommandHandler_Handle_OutForDeliveryBroadcasts(t *testing.T) {
	ctx := t.Context()
	fixture := newOrderFixture(t)

	location, err := kernel.NewGeoPoint(28.6320, 77.2170)
	require.NoError(t, err)
	nearby, err := rider.NewPresence(kernel.NewUUID(), true, &location, "chan-1", time.Now())
	require.NoError(t, err)

	geo := new(MockGeoIndex)
	geo.On("RidersNear", mock.Anything, mock.AnythingOfType("kernel.GeoPoint"), float64(10_000)).
		Return([]rider.Presence{nearby}, nil).Once()

	var opened *assignment.Assignment
	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("GetActiveRiders", ctx).Return([]kernel.UUID{}, nil).Once()
	assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).
		Run(func(args mock.Arguments) {
			opened = args.Get(1).(*assignment.Assignment)
		}).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByShopOrder", ctx, fixture.shopOrder.ID()).Return(fixture.aggregate, nil).Once()
	orderRepo.On("Update", ctx, fixture.aggregate).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AssignmentRepository").Return(assignmentRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	var offer ports.Event
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("ports.Event")).
		Run(func(args mock.Arguments) {
			e := args.Get(1).(ports.Event)
			if e.Name == ports.EventAssignmentOffered {
				offer = e
			}
		}).Return(nil)

	cmd, err := commands.NewTransitionShopOrderCommand(
		fixture.shopOrder.ID(), fixture.ownerID, order.StatusOutForDelivery)
	require.NoError(t, err)

	h := commands.NewTransitionShopOrderCommandHandler(factory, geo, publisher, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, order.StatusOutForDelivery, result.Status)
	require.False(t, result.NoRidersAvailable)
	require.NotNil(t, result.AssignmentID)

	require.NotNil(t, opened)
	require.True(t, opened.IsCandidate(nearby.RiderID()))
	require.NotNil(t, fixture.shopOrder.Assignment())
	require.True(t, fixture.shopOrder.Assignment().IsEqual(opened.ID()))

	// status update to the customer plus the offer to the candidate
	publisher.AssertNumberOfCalls(t, "Publish", 2)

	// the offer carries everything the rider needs to decide
	require.Equal(t, nearby.RiderID().String(), offer.Scope)
	payload := offer.Payload.(map[string]any)
	require.Equal(t, opened.ID().String(), payload["assignmentId"])
	require.Equal(t, fixture.shopOrder.Subtotal(), payload["subtotal"])
	items := payload["items"].([]map[string]any)
	require.Len(t, items, 1)
	require.Equal(t, "Margherita", items[0]["name"])
	address := payload["address"].(map[string]any)
	require.Equal(t, "221B Baker Street", address["text"])

	geo.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
}

func TestTransitionShopOrderCommandHandler_Handle_NoRidersAvailable(t *testing.T) {
	ctx := t.Context()
	fixture := newOrderFixture(t)

	geo := new(MockGeoIndex)
	geo.On("RidersNear", mock.Anything, mock.AnythingOfType("kernel.GeoPoint"), float64(10_000)).
		Return([]rider.Presence{}, nil).Once()

	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("GetActiveRiders", ctx).Return([]kernel.UUID{}, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByShopOrder", ctx, fixture.shopOrder.ID()).Return(fixture.aggregate, nil).Once()
	orderRepo.On("Update", ctx, fixture.aggregate).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AssignmentRepository").Return(assignmentRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("ports.Event")).Return(nil).Once()

	cmd, err := commands.NewTransitionShopOrderCommand(
		fixture.shopOrder.ID(), fixture.ownerID, order.StatusOutForDelivery)
	require.NoError(t, err)

	h := commands.NewTransitionShopOrderCommandHandler(factory, geo, publisher, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err, "no riders is a result, not an error")

	require.True(t, result.NoRidersAvailable)
	require.Nil(t, result.AssignmentID)
	require.Equal(t, order.StatusOutForDelivery, result.Status, "the move still commits")
	require.Nil(t, fixture.shopOrder.Assignment())
}

func TestTransitionShopOrderCommandHandler_Handle_ForeignOwnerSeesNothing(t *testing.T) {
	ctx := t.Context()
	fixture := newOrderFixture(t)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByShopOrder", ctx, fixture.shopOrder.ID()).Return(fixture.aggregate, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewTransitionShopOrderCommand(
		fixture.shopOrder.ID(), kernel.NewUUID(), order.StatusPreparing)
	require.NoError(t, err)

	h := commands.NewTransitionShopOrderCommandHandler(
		factory, new(MockGeoIndex), new(MockEventPublisher), discardLogger())
	_, err = h.Handle(ctx, cmd)

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, order.StatusPending, fixture.shopOrder.Status())
}
