package fulfillment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/khallark/studio-sub002/internal/domain/fulfillment"
	"github.com/khallark/studio-sub002/internal/domain/shared"
)

func newOrderFixture() (*MockOrderRepository, *OrderService) {
	orders := new(MockOrderRepository)
	return orders, NewOrderService(orders, zap.NewNop())
}

func TestOrderService_Ingest(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a new order for an authorized store", func(t *testing.T) {
		orders, svc := newOrderFixture()
		orders.On("Save", ctx, mock.AnythingOfType("*fulfillment.Order")).Return(nil)

		view, err := svc.Ingest(ctx, testCaller(), IngestInput{
			StoreID:     testStoreID,
			ExternalRef: "SHOP-3001",
			TotalAmount: decimal.NewFromFloat(59.90),
			Payload:     fulfillment.Snapshot(`{"items":[{"product_ref":"SKU-9","name":"Mug","quantity":1,"unit_price":"59.90"}]}`),
		})
		require.NoError(t, err)
		assert.Equal(t, fulfillment.StatusNew, view.Status)
		assert.Equal(t, "SHOP-3001", view.ExternalRef)
		orders.AssertExpectations(t)
	})

	t.Run("rejects unauthorized store", func(t *testing.T) {
		orders, svc := newOrderFixture()
		_, err := svc.Ingest(ctx, testCaller(), IngestInput{StoreID: uuid.New(), ExternalRef: "SHOP-3001"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects anonymous caller", func(t *testing.T) {
		_, svc := newOrderFixture()
		_, err := svc.Ingest(ctx, shared.CallerContext{}, IngestInput{StoreID: testStoreID, ExternalRef: "X"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestOrderService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns an order of an authorized store", func(t *testing.T) {
		orders, svc := newOrderFixture()
		order := newOrderAt(t, fulfillment.StatusNew)
		orders.On("FindByID", ctx, testTenantID, order.ID).Return(order, nil)

		view, err := svc.Get(ctx, testCaller(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, view.ID)
	})

	t.Run("hides orders of other stores", func(t *testing.T) {
		orders, svc := newOrderFixture()
		order := newOrderAt(t, fulfillment.StatusNew)
		order.StoreID = uuid.New()
		orders.On("FindByID", ctx, testTenantID, order.ID).Return(order, nil)

		_, err := svc.Get(ctx, testCaller(), order.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("propagates not found", func(t *testing.T) {
		orders, svc := newOrderFixture()
		id := uuid.New()
		orders.On("FindByID", ctx, testTenantID, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Get(ctx, testCaller(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_ListByStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("filters out stores the caller may not act on", func(t *testing.T) {
		orders, svc := newOrderFixture()
		mine := storeOrder(t, testStoreID, fulfillment.StatusNew)
		other := storeOrder(t, uuid.New(), fulfillment.StatusNew)
		filter := shared.DefaultFilter()

		orders.On("FindByStatus", ctx, testTenantID, fulfillment.StatusNew, filter).
			Return([]fulfillment.Order{mine, other}, nil)

		views, err := svc.ListByStatus(ctx, testCaller(), fulfillment.StatusNew, filter)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, mine.ID, views[0].ID)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, svc := newOrderFixture()
		_, err := svc.ListByStatus(ctx, testCaller(), fulfillment.OrderStatus("SHIPPED"), shared.DefaultFilter())
		require.Error(t, err)
	})
}

func TestOrderService_ListByStore(t *testing.T) {
	ctx := context.Background()
	orders, svc := newOrderFixture()

	t.Run("rejects unauthorized store before querying", func(t *testing.T) {
		_, err := svc.ListByStore(ctx, testCaller(), uuid.New(), shared.DefaultFilter())
		assert.ErrorIs(t, err, shared.ErrForbidden)
		orders.AssertNotCalled(t, "FindByStore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
