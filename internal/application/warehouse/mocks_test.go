package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/khallark/studio-sub002/internal/domain/fulfillment"
	"github.com/khallark/studio-sub002/internal/domain/integration"
	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/domain/warehouse"
)

// MockLocationRepository is a mock implementation of warehouse.LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindWarehouse(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.Warehouse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Warehouse), args.Error(1)
}

func (m *MockLocationRepository) FindZone(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.Zone, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Zone), args.Error(1)
}

func (m *MockLocationRepository) FindRack(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.Rack, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Rack), args.Error(1)
}

func (m *MockLocationRepository) FindShelf(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.Shelf, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Shelf), args.Error(1)
}

func (m *MockLocationRepository) SaveWarehouse(ctx context.Context, w *warehouse.Warehouse) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockLocationRepository) SaveZone(ctx context.Context, z *warehouse.Zone) error {
	args := m.Called(ctx, z)
	return args.Error(0)
}

func (m *MockLocationRepository) SaveRack(ctx context.Context, r *warehouse.Rack) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockLocationRepository) SaveShelf(ctx context.Context, s *warehouse.Shelf) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockLocationRepository) ListWarehouses(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]warehouse.Warehouse, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warehouse.Warehouse), args.Error(1)
}

func (m *MockLocationRepository) ListZones(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]warehouse.Zone, error) {
	args := m.Called(ctx, tenantID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warehouse.Zone), args.Error(1)
}

func (m *MockLocationRepository) ListRacks(ctx context.Context, tenantID, zoneID uuid.UUID) ([]warehouse.Rack, error) {
	args := m.Called(ctx, tenantID, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warehouse.Rack), args.Error(1)
}

func (m *MockLocationRepository) ListShelves(ctx context.Context, tenantID, rackID uuid.UUID) ([]warehouse.Shelf, error) {
	args := m.Called(ctx, tenantID, rackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warehouse.Shelf), args.Error(1)
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

// MockProductMappingRepository is a mock implementation of integration.ProductMappingRepository
type MockProductMappingRepository struct {
	mock.Mock
}

func (m *MockProductMappingRepository) ResolveRefs(ctx context.Context, tenantID, storeID uuid.UUID, refs []string) (map[string]uuid.UUID, error) {
	args := m.Called(ctx, tenantID, storeID, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]uuid.UUID), args.Error(1)
}

func (m *MockProductMappingRepository) FindByStore(ctx context.Context, tenantID, storeID uuid.UUID) ([]integration.ProductMapping, error) {
	args := m.Called(ctx, tenantID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.ProductMapping), args.Error(1)
}

func (m *MockProductMappingRepository) Save(ctx context.Context, mapping *integration.ProductMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}
