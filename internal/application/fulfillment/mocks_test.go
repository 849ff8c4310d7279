package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/khallark/studio-sub002/internal/domain/fulfillment"
	"github.com/khallark/studio-sub002/internal/domain/integration"
	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/domain/warehouse"
)

// MockOrderRepository is a mock implementation of fulfillment.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*fulfillment.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]fulfillment.Order, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fulfillment.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStore(ctx context.Context, tenantID, storeID uuid.UUID, filter shared.Filter) ([]fulfillment.Order, error) {
	args := m.Called(ctx, tenantID, storeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fulfillment.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status fulfillment.OrderStatus, filter shared.Filter) ([]fulfillment.Order, error) {
	args := m.Called(ctx, tenantID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fulfillment.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status fulfillment.OrderStatus) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *fulfillment.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, order *fulfillment.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockStockUnitRepository is a mock implementation of warehouse.StockUnitRepository
type MockStockUnitRepository struct {
	mock.Mock
}

func (m *MockStockUnitRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.StockUnit, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.StockUnit), args.Error(1)
}

func (m *MockStockUnitRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]warehouse.StockUnit, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warehouse.StockUnit), args.Error(1)
}

func (m *MockStockUnitRepository) FindOldestAvailable(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]warehouse.StockUnit, error) {
	args := m.Called(ctx, tenantID, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warehouse.StockUnit), args.Error(1)
}

func (m *MockStockUnitRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]warehouse.StockUnit, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warehouse.StockUnit), args.Error(1)
}

func (m *MockStockUnitRepository) CreateBatch(ctx context.Context, units []*warehouse.StockUnit) error {
	args := m.Called(ctx, units)
	return args.Error(0)
}

func (m *MockStockUnitRepository) RelocateBatch(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, path warehouse.HierarchyPath, callerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, ids, path, callerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockUnitRepository) ConfirmPlacementBatch(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, callerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, ids, callerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockUnitRepository) Reserve(ctx context.Context, tenantID, orderID uuid.UUID, ids []uuid.UUID, callerID uuid.UUID) error {
	args := m.Called(ctx, tenantID, orderID, ids, callerID)
	return args.Error(0)
}

func (m *MockStockUnitRepository) ReleaseByOrder(ctx context.Context, tenantID, orderID uuid.UUID, callerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, orderID, callerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockUnitRepository) CountAvailable(ctx context.Context, tenantID, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCourierGateway is a mock implementation of integration.CourierGateway
type MockCourierGateway struct {
	mock.Mock
}

func (m *MockCourierGateway) CreateShipment(ctx context.Context, req integration.ShipmentRequest) (*integration.Shipment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Shipment), args.Error(1)
}

func (m *MockCourierGateway) BookReturn(ctx context.Context, req integration.ShipmentRequest) (*integration.Shipment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Shipment), args.Error(1)
}

// MockStorefrontGateway is a mock implementation of integration.StorefrontGateway
type MockStorefrontGateway struct {
	mock.Mock
}

func (m *MockStorefrontGateway) NotifyStatus(ctx context.Context, tenantID, storeID uuid.UUID, externalRef, status string) error {
	args := m.Called(ctx, tenantID, storeID, externalRef, status)
	return args.Error(0)
}
