package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/domain/warehouse"
)

// GormStockUnitRepository implements StockUnitRepository using GORM. The
// batch mutations run in a transaction and compare RowsAffected against the
// requested set, rolling back on any shortfall, so a call either applies to
// every unit or to none.
type GormStockUnitRepository struct {
	db *gorm.DB
}

// NewGormStockUnitRepository creates a new GormStockUnitRepository
func NewGormStockUnitRepository(db *gorm.DB) *GormStockUnitRepository {
	return &GormStockUnitRepository{db: db}
}

// FindByID finds a stock unit by ID within a tenant
func (r *GormStockUnitRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.StockUnit, error) {
	var unit warehouse.StockUnit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindByIDs finds the stock units that exist for the tenant
func (r *GormStockUnitRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]warehouse.StockUnit, error) {
	if len(ids) == 0 {
		return []warehouse.StockUnit{}, nil
	}
	var units []warehouse.StockUnit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// FindOldestAvailable returns unreserved, placement-confirmed units for a
// product ordered oldest-first. created_at ascending is the allocation
// order: stock that entered the warehouse first leaves first.
func (r *GormStockUnitRepository) FindOldestAvailable(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]warehouse.StockUnit, error) {
	var units []warehouse.StockUnit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ? AND order_id IS NULL AND placement_state = ?",
			tenantID, productID, warehouse.PlacementAvailable).
		Order("created_at ASC").
		Limit(limit).
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// FindByOrder returns the units reserved for an order
func (r *GormStockUnitRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]warehouse.StockUnit, error) {
	var units []warehouse.StockUnit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// CreateBatch inserts new stock units in one commit
func (r *GormStockUnitRepository) CreateBatch(ctx context.Context, units []*warehouse.StockUnit) error {
	if len(units) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(units).Error
}

// RelocateBatch moves every listed unit to the path in one commit, resetting
// placement state to PENDING. Reserved units are excluded by the WHERE
// clause; touching fewer rows than requested rolls the whole batch back.
func (r *GormStockUnitRepository) RelocateBatch(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, path warehouse.HierarchyPath, callerID uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var relocated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&warehouse.StockUnit{}).
			Where("tenant_id = ? AND id IN ? AND order_id IS NULL", tenantID, ids).
			Updates(map[string]interface{}{
				"warehouse_id":    path.WarehouseID,
				"zone_id":         path.ZoneID,
				"rack_id":         path.RackID,
				"shelf_id":        path.ShelfID,
				"placement_id":    gorm.Expr("product_id || '_' || ?", path.ShelfID.String()),
				"placement_state": warehouse.PlacementPending,
				"updated_by":      callerID,
				"updated_at":      time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(ids)) {
			return shared.NewDomainError("UNIT_RESERVED",
				"One or more stock units changed state concurrently, no unit was moved")
		}
		relocated = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return relocated, nil
}

// ConfirmPlacementBatch flips the listed units from PENDING to AVAILABLE
func (r *GormStockUnitRepository) ConfirmPlacementBatch(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, callerID uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var confirmed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&warehouse.StockUnit{}).
			Where("tenant_id = ? AND id IN ? AND placement_state = ?",
				tenantID, ids, warehouse.PlacementPending).
			Updates(map[string]interface{}{
				"placement_state": warehouse.PlacementAvailable,
				"updated_by":      callerID,
				"updated_at":      time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(ids)) {
			return shared.NewDomainError("INVALID_STATE",
				"One or more stock units are not awaiting placement confirmation")
		}
		confirmed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return confirmed, nil
}

// Reserve claims every listed unit for the order with a compare-and-set on
// order_id. If another allocation claimed any unit between the caller's
// check phase and this commit, RowsAffected falls short, the transaction
// rolls back and ErrReservationConflict tells the caller to re-query.
func (r *GormStockUnitRepository) Reserve(ctx context.Context, tenantID, orderID uuid.UUID, ids []uuid.UUID, callerID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&warehouse.StockUnit{}).
			Where("tenant_id = ? AND id IN ? AND order_id IS NULL AND placement_state = ?",
				tenantID, ids, warehouse.PlacementAvailable).
			Updates(map[string]interface{}{
				"order_id":   orderID,
				"updated_by": callerID,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(ids)) {
			return warehouse.ErrReservationConflict
		}
		return nil
	})
}

// ReleaseByOrder clears order_id on every unit reserved for the order
func (r *GormStockUnitRepository) ReleaseByOrder(ctx context.Context, tenantID, orderID uuid.UUID, callerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&warehouse.StockUnit{}).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Updates(map[string]interface{}{
			"order_id":   nil,
			"updated_by": callerID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountAvailable counts pickable units of a product
func (r *GormStockUnitRepository) CountAvailable(ctx context.Context, tenantID, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&warehouse.StockUnit{}).
		Where("tenant_id = ? AND product_id = ? AND order_id IS NULL AND placement_state = ?",
			tenantID, productID, warehouse.PlacementAvailable).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormStockUnitRepository implements StockUnitRepository
var _ warehouse.StockUnitRepository = (*GormStockUnitRepository)(nil)
