package warehouse

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/domain/warehouse"
)

// LocationService manages the four-level storage location tree. Creating a
// node verifies its parent exists first, so the tree can never contain a
// dangling child.
type LocationService struct {
	locations warehouse.LocationRepository
	logger    *zap.Logger
}

// NewLocationService creates a new location application service
func NewLocationService(locations warehouse.LocationRepository, logger *zap.Logger) *LocationService {
	return &LocationService{locations: locations, logger: logger}
}

// CreateWarehouse creates a new warehouse root
func (s *LocationService) CreateWarehouse(ctx context.Context, caller shared.CallerContext, name, code string) (*warehouse.Warehouse, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	w, err := warehouse.NewWarehouse(caller.TenantID, name, code)
	if err != nil {
		return nil, err
	}
	w.SetUpdatedBy(caller.CallerID)
	if err := s.locations.SaveWarehouse(ctx, w); err != nil {
		return nil, err
	}
	s.logger.Info("Warehouse created",
		zap.String("tenant_id", caller.TenantID.String()),
		zap.String("warehouse_id", w.ID.String()),
	)
	return w, nil
}

// CreateZone creates a zone under an existing warehouse
func (s *LocationService) CreateZone(ctx context.Context, caller shared.CallerContext, warehouseID uuid.UUID, name string) (*warehouse.Zone, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.locations.FindWarehouse(ctx, caller.TenantID, warehouseID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &warehouse.LocationNotFoundError{Level: warehouse.LevelWarehouse, ID: warehouseID}
		}
		return nil, err
	}
	z, err := warehouse.NewZone(caller.TenantID, warehouseID, name)
	if err != nil {
		return nil, err
	}
	z.SetUpdatedBy(caller.CallerID)
	if err := s.locations.SaveZone(ctx, z); err != nil {
		return nil, err
	}
	return z, nil
}

// CreateRack creates a rack under an existing zone
func (s *LocationService) CreateRack(ctx context.Context, caller shared.CallerContext, zoneID uuid.UUID, name string) (*warehouse.Rack, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.locations.FindZone(ctx, caller.TenantID, zoneID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &warehouse.LocationNotFoundError{Level: warehouse.LevelZone, ID: zoneID}
		}
		return nil, err
	}
	r, err := warehouse.NewRack(caller.TenantID, zoneID, name)
	if err != nil {
		return nil, err
	}
	r.SetUpdatedBy(caller.CallerID)
	if err := s.locations.SaveRack(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateShelf creates a shelf under an existing rack
func (s *LocationService) CreateShelf(ctx context.Context, caller shared.CallerContext, rackID uuid.UUID, name string) (*warehouse.Shelf, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.locations.FindRack(ctx, caller.TenantID, rackID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &warehouse.LocationNotFoundError{Level: warehouse.LevelRack, ID: rackID}
		}
		return nil, err
	}
	sh, err := warehouse.NewShelf(caller.TenantID, rackID, name)
	if err != nil {
		return nil, err
	}
	sh.SetUpdatedBy(caller.CallerID)
	if err := s.locations.SaveShelf(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

// ListWarehouses returns a page of the tenant's warehouses
func (s *LocationService) ListWarehouses(ctx context.Context, caller shared.CallerContext, filter shared.Filter) ([]warehouse.Warehouse, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	return s.locations.ListWarehouses(ctx, caller.TenantID, filter)
}

// ListZones returns the zones of a warehouse
func (s *LocationService) ListZones(ctx context.Context, caller shared.CallerContext, warehouseID uuid.UUID) ([]warehouse.Zone, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	return s.locations.ListZones(ctx, caller.TenantID, warehouseID)
}

// ListRacks returns the racks of a zone
func (s *LocationService) ListRacks(ctx context.Context, caller shared.CallerContext, zoneID uuid.UUID) ([]warehouse.Rack, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	return s.locations.ListRacks(ctx, caller.TenantID, zoneID)
}

// ListShelves returns the shelves of a rack
func (s *LocationService) ListShelves(ctx context.Context, caller shared.CallerContext, rackID uuid.UUID) ([]warehouse.Shelf, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	return s.locations.ListShelves(ctx, caller.TenantID, rackID)
}
