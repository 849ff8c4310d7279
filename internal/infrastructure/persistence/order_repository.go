package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khallark/studio-sub002/internal/domain/fulfillment"
	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID within a tenant
func (r *GormOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*fulfillment.Order, error) {
	var order fulfillment.Order
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDs returns the orders that exist for the tenant
func (r *GormOrderRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]fulfillment.Order, error) {
	if len(ids) == 0 {
		return []fulfillment.Order{}, nil
	}
	var orders []fulfillment.Order
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStore finds a page of a store's orders
func (r *GormOrderRepository) FindByStore(ctx context.Context, tenantID, storeID uuid.UUID, filter shared.Filter) ([]fulfillment.Order, error) {
	var orders []fulfillment.Order
	query := applyFilter(
		r.db.WithContext(ctx).Model(&fulfillment.Order{}).
			Where("tenant_id = ? AND store_id = ?", tenantID, storeID),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds a page of the tenant's orders in a status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status fulfillment.OrderStatus, filter shared.Filter) ([]fulfillment.Order, error) {
	var orders []fulfillment.Order
	query := applyFilter(
		r.db.WithContext(ctx).Model(&fulfillment.Order{}).
			Where("tenant_id = ? AND custom_status = ?", tenantID, status),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountByStatus counts the tenant's orders in a status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status fulfillment.OrderStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&fulfillment.Order{}).
		Where("tenant_id = ? AND custom_status = ?", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *fulfillment.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// SaveWithLock saves with optimistic locking (version check). Two concurrent
// transitions on the same order cannot both commit.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *fulfillment.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		read := tx.Model(&fulfillment.Order{}).
			Where("id = ?", order.ID).
			Select("version").
			Scan(&currentVersion)
		if read.Error != nil {
			return read.Error
		}
		if read.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if currentVersion != order.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
		}

		order.Version++
		order.UpdatedAt = time.Now()

		result := tx.Model(&fulfillment.Order{}).
			Where("id = ? AND version = ?", order.ID, currentVersion).
			Updates(map[string]interface{}{
				"custom_status":   order.CustomStatus,
				"status_log":      order.StatusLog,
				"awb":             order.AWB,
				"courier":         order.Courier,
				"awb_reverse":     order.AWBReverse,
				"courier_reverse": order.CourierReverse,
				"pick_complete":   order.PickComplete,
				"updated_by":      order.UpdatedBy,
				"updated_at":      order.UpdatedAt,
				"version":         order.Version,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
		}
		return nil
	})
}

// Ensure GormOrderRepository implements OrderRepository
var _ fulfillment.OrderRepository = (*GormOrderRepository)(nil)
