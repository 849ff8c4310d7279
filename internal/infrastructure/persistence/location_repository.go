package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/domain/warehouse"
)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindWarehouse finds a warehouse by ID within a tenant
func (r *GormLocationRepository) FindWarehouse(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.Warehouse, error) {
	var w warehouse.Warehouse
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// FindZone finds a zone by ID within a tenant
func (r *GormLocationRepository) FindZone(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.Zone, error) {
	var z warehouse.Zone
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&z).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &z, nil
}

// FindRack finds a rack by ID within a tenant
func (r *GormLocationRepository) FindRack(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.Rack, error) {
	var rack warehouse.Rack
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&rack).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rack, nil
}

// FindShelf finds a shelf by ID within a tenant
func (r *GormLocationRepository) FindShelf(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.Shelf, error) {
	var s warehouse.Shelf
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// SaveWarehouse creates or updates a warehouse
func (r *GormLocationRepository) SaveWarehouse(ctx context.Context, w *warehouse.Warehouse) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// SaveZone creates or updates a zone
func (r *GormLocationRepository) SaveZone(ctx context.Context, z *warehouse.Zone) error {
	return r.db.WithContext(ctx).Save(z).Error
}

// SaveRack creates or updates a rack
func (r *GormLocationRepository) SaveRack(ctx context.Context, rack *warehouse.Rack) error {
	return r.db.WithContext(ctx).Save(rack).Error
}

// SaveShelf creates or updates a shelf
func (r *GormLocationRepository) SaveShelf(ctx context.Context, s *warehouse.Shelf) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// ListWarehouses finds all warehouses for a tenant matching the filter
func (r *GormLocationRepository) ListWarehouses(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]warehouse.Warehouse, error) {
	var warehouses []warehouse.Warehouse
	query := applyFilter(
		r.db.WithContext(ctx).Model(&warehouse.Warehouse{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

// ListZones finds the zones of a warehouse
func (r *GormLocationRepository) ListZones(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]warehouse.Zone, error) {
	var zones []warehouse.Zone
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND warehouse_id = ?", tenantID, warehouseID).
		Order("name ASC").
		Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// ListRacks finds the racks of a zone
func (r *GormLocationRepository) ListRacks(ctx context.Context, tenantID, zoneID uuid.UUID) ([]warehouse.Rack, error) {
	var racks []warehouse.Rack
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND zone_id = ?", tenantID, zoneID).
		Order("name ASC").
		Find(&racks).Error; err != nil {
		return nil, err
	}
	return racks, nil
}

// ListShelves finds the shelves of a rack
func (r *GormLocationRepository) ListShelves(ctx context.Context, tenantID, rackID uuid.UUID) ([]warehouse.Shelf, error) {
	var shelves []warehouse.Shelf
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND rack_id = ?", tenantID, rackID).
		Order("name ASC").
		Find(&shelves).Error; err != nil {
		return nil, err
	}
	return shelves, nil
}

// applyFilter applies pagination and ordering to a query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormLocationRepository implements LocationRepository
var _ warehouse.LocationRepository = (*GormLocationRepository)(nil)
