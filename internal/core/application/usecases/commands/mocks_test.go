package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"foodflow/internal/core/application/usecases/commands"
	"foodflow/internal/core/domain/model/assignment"
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/domain/model/rider"
	"foodflow/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByShopOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByPaymentRef(ctx context.Context, ref string) (*order.Order, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) Accept(
	ctx context.Context, id kernel.UUID, riderID kernel.UUID, now time.Time,
) (*assignment.Assignment, error) {
	args := m.Called(ctx, id, riderID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetActiveByRider(
	ctx context.Context, riderID kernel.UUID,
) (*assignment.Assignment, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetActiveRiders(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockAssignmentRepository) ExpireBroadcastedBefore(
	ctx context.Context, cutoff time.Time, now time.Time,
) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, cutoff, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockGeoIndex struct{ mock.Mock }

func (m *MockGeoIndex) UpdatePresence(ctx context.Context, p rider.Presence) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockGeoIndex) SetAvailability(
	ctx context.Context, riderID kernel.UUID, online bool, updatedAt time.Time,
) error {
	args := m.Called(ctx, riderID, online, updatedAt)
	return args.Error(0)
}

func (m *MockGeoIndex) GetPresence(ctx context.Context, riderID kernel.UUID) (rider.Presence, error) {
	args := m.Called(ctx, riderID)
	return args.Get(0).(rider.Presence), args.Error(1)
}

func (m *MockGeoIndex) RidersNear(
	ctx context.Context, center kernel.GeoPoint, radiusMeters float64,
) ([]rider.Presence, error) {
	args := m.Called(ctx, center, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rider.Presence), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) GetShop(ctx context.Context, id kernel.UUID) (ports.Shop, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Shop), args.Error(1)
}

func (m *MockDirectory) GetCustomerContact(ctx context.Context, id kernel.UUID) (ports.CustomerContact, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.CustomerContact), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateIntent(
	ctx context.Context, amount int64, currency string, receipt string,
) (ports.PaymentIntent, error) {
	args := m.Called(ctx, amount, currency, receipt)
	return args.Get(0).(ports.PaymentIntent), args.Error(1)
}

func (m *MockPaymentGateway) FetchPayment(ctx context.Context, paymentRef string) (ports.Payment, error) {
	args := m.Called(ctx, paymentRef)
	return args.Get(0).(ports.Payment), args.Error(1)
}

type MockCodeSender struct{ mock.Mock }

func (m *MockCodeSender) SendOneTimeCode(ctx context.Context, email string, name string, code string) error {
	args := m.Called(ctx, email, name, code)
	return args.Error(0)
}
