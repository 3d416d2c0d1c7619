package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type orderFixture struct {
	aggregate *order.Order
	shopOrder *order.ShopOrder

	customerID kernel.UUID
	ownerID    kernel.UUID
}

// newOrderFixture builds a single-shop order in Pending status.
func newOrderFixture(t *testing.T) orderFixture {
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
		kernel.NewUUID(), customerID, address, order.PaymentMethodCashOnDelivery,
		time.Now(), []*order.ShopOrder{shopOrder})
	require.NoError(t, err)

	return orderFixture{
		aggregate:  aggregate,
		shopOrder:  shopOrder,
		customerID: customerID,
		ownerID:    ownerID,
	}
}

// outForDelivery moves the fixture's shop order into OutForDelivery.
func (f orderFixture) outForDelivery(t *testing.T) orderFixture {
	t.Helper()
	require.NoError(t, f.shopOrder.TransitionTo(order.StatusOutForDelivery))
	return f
}

// withAssignment binds a broadcast assignment to the shop order.
func (f orderFixture) withAssignment(t *testing.T, assignmentID kernel.UUID) orderFixture {
	t.Helper()
	require.NoError(t, f.shopOrder.AttachAssignment(assignmentID))
	return f
}

// acceptedBy records the rider on the shop order.
func (f orderFixture) acceptedBy(t *testing.T, riderID kernel.UUID) orderFixture {
	t.Helper()
	require.NoError(t, f.shopOrder.AcceptBy(riderID, nil))
	return f
}
