package warehouse

import (
	"context"

	"github.com/google/uuid"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// LocationRepository provides read/write access to the location hierarchy.
// The Find* methods return shared.ErrNotFound when the node is absent; the
// hierarchy validator turns that into a level-specific error.
type LocationRepository interface {
	FindWarehouse(ctx context.Context, tenantID, id uuid.UUID) (*Warehouse, error)
	FindZone(ctx context.Context, tenantID, id uuid.UUID) (*Zone, error)
	FindRack(ctx context.Context, tenantID, id uuid.UUID) (*Rack, error)
	FindShelf(ctx context.Context, tenantID, id uuid.UUID) (*Shelf, error)

	SaveWarehouse(ctx context.Context, w *Warehouse) error
	SaveZone(ctx context.Context, z *Zone) error
	SaveRack(ctx context.Context, r *Rack) error
	SaveShelf(ctx context.Context, s *Shelf) error

	ListWarehouses(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Warehouse, error)
	ListZones(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]Zone, error)
	ListRacks(ctx context.Context, tenantID, zoneID uuid.UUID) ([]Rack, error)
	ListShelves(ctx context.Context, tenantID, rackID uuid.UUID) ([]Shelf, error)
}

// StockUnitRepository provides access to the stock unit registry. The
// mutating batch methods are atomic: they either apply to every unit in the
// call or to none.
type StockUnitRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*StockUnit, error)
	// FindByIDs returns the units that exist; callers diff against the
	// requested set to report missing ids.
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]StockUnit, error)
	// FindOldestAvailable returns unreserved, placement-confirmed units for
	// a product ordered by created_at ascending, limited to limit rows.
	FindOldestAvailable(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]StockUnit, error)
	FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]StockUnit, error)

	CreateBatch(ctx context.Context, units []*StockUnit) error
	// RelocateBatch moves every listed unit to the path in one commit,
	// resetting placement state to PENDING. Returns the number relocated;
	// fewer than len(ids) means the commit was rolled back.
	RelocateBatch(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, path HierarchyPath, callerID uuid.UUID) (int64, error)
	ConfirmPlacementBatch(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, callerID uuid.UUID) (int64, error)
	// Reserve claims every listed unit for the order with a compare-and-set
	// on order_id. If any unit was reserved concurrently the whole call
	// fails with ErrReservationConflict and no unit is claimed.
	Reserve(ctx context.Context, tenantID, orderID uuid.UUID, ids []uuid.UUID, callerID uuid.UUID) error
	// ReleaseByOrder clears order_id on every unit reserved for the order
	ReleaseByOrder(ctx context.Context, tenantID, orderID uuid.UUID, callerID uuid.UUID) (int64, error)

	CountAvailable(ctx context.Context, tenantID, productID uuid.UUID) (int64, error)
}
