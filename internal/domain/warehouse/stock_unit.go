package warehouse

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// PlacementState tracks whether a stock unit's physical position has been
// verified. A unit that has just entered the warehouse, or that has just
// been moved to a different shelf, sits in PENDING until a picker confirms
// it is where the system says it is. Only AVAILABLE units are eligible for
// allocation.
type PlacementState string

const (
	// PlacementPending marks a unit awaiting physical verification at its
	// recorded shelf. Put-away always resets to this state.
	PlacementPending PlacementState = "PENDING"
	// PlacementAvailable marks a verified unit eligible for pick
	PlacementAvailable PlacementState = "AVAILABLE"
)

// IsValid checks if the state is a valid PlacementState
func (s PlacementState) IsValid() bool {
	switch s {
	case PlacementPending, PlacementAvailable:
		return true
	}
	return false
}

// String returns the string representation of PlacementState
func (s PlacementState) String() string {
	return string(s)
}

// StockUnit is one individually tracked physical item instance. It is never
// hard-deleted; reversing an allocation only clears OrderID.
type StockUnit struct {
	shared.TenantAggregateRoot
	ProductID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_stock_units_fifo,priority:2"`
	WarehouseID    uuid.UUID      `gorm:"type:uuid;not null"`
	ZoneID         uuid.UUID      `gorm:"type:uuid;not null"`
	RackID         uuid.UUID      `gorm:"type:uuid;not null"`
	ShelfID        uuid.UUID      `gorm:"type:uuid;not null"`
	PlacementID    string         `gorm:"size:100;index"` // {productId}_{shelfId}, groups co-located units
	PlacementState PlacementState `gorm:"size:20;not null"`
	OrderID        *uuid.UUID     `gorm:"type:uuid;index"` // non-nil: reserved for exactly one order
}

// NewStockUnit registers a unit entering the warehouse (inward). The unit
// starts PENDING at the given path and must be placement-confirmed before
// it becomes pickable.
func NewStockUnit(tenantID, productID uuid.UUID, path HierarchyPath) (*StockUnit, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if err := path.Validate(); err != nil {
		return nil, err
	}

	u := &StockUnit{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		WarehouseID:         path.WarehouseID,
		ZoneID:              path.ZoneID,
		RackID:              path.RackID,
		ShelfID:             path.ShelfID,
		PlacementState:      PlacementPending,
	}
	u.PlacementID = BuildPlacementID(productID, path.ShelfID)
	return u, nil
}

// BuildPlacementID derives the key grouping same-product units on a shelf
func BuildPlacementID(productID, shelfID uuid.UUID) string {
	return fmt.Sprintf("%s_%s", productID, shelfID)
}

// Relocate moves the unit to a new shelf. The placement state drops back to
// PENDING: stock that changes shelves must be re-verified before it can be
// picked again.
func (u *StockUnit) Relocate(path HierarchyPath, callerID uuid.UUID) error {
	if err := path.Validate(); err != nil {
		return err
	}
	if u.OrderID != nil {
		return shared.NewDomainError("UNIT_RESERVED", "Cannot relocate a stock unit reserved for an order")
	}

	u.WarehouseID = path.WarehouseID
	u.ZoneID = path.ZoneID
	u.RackID = path.RackID
	u.ShelfID = path.ShelfID
	u.PlacementID = BuildPlacementID(u.ProductID, path.ShelfID)
	u.PlacementState = PlacementPending
	u.SetUpdatedBy(callerID)
	u.UpdatedAt = time.Now()
	return nil
}

// ConfirmPlacement marks the unit verified at its recorded shelf
func (u *StockUnit) ConfirmPlacement(callerID uuid.UUID) error {
	if u.PlacementState == PlacementAvailable {
		return shared.NewDomainError("INVALID_STATE", "Stock unit placement is already confirmed")
	}
	u.PlacementState = PlacementAvailable
	u.SetUpdatedBy(callerID)
	u.UpdatedAt = time.Now()
	return nil
}

// Reserve claims the unit for an order. Exclusive: a reserved unit cannot
// be claimed again until released. The persistence layer enforces the same
// invariant with a compare-and-set on order_id.
func (u *StockUnit) Reserve(orderID, callerID uuid.UUID) error {
	if orderID == uuid.Nil {
		return shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if u.OrderID != nil {
		return shared.NewDomainError("UNIT_RESERVED", "Stock unit is already reserved for an order")
	}
	if u.PlacementState != PlacementAvailable {
		return shared.NewDomainError("INVALID_STATE", "Stock unit placement has not been confirmed")
	}
	u.OrderID = &orderID
	u.SetUpdatedBy(callerID)
	u.UpdatedAt = time.Now()
	return nil
}

// Release clears the reservation, returning the unit to the available pool
func (u *StockUnit) Release(callerID uuid.UUID) error {
	if u.OrderID == nil {
		return shared.NewDomainError("INVALID_STATE", "Stock unit is not reserved")
	}
	u.OrderID = nil
	u.SetUpdatedBy(callerID)
	u.UpdatedAt = time.Now()
	return nil
}

// IsReserved reports whether the unit is claimed by an order
func (u *StockUnit) IsReserved() bool {
	return u.OrderID != nil
}

// IsPickable reports whether the unit can be selected by allocation
func (u *StockUnit) IsPickable() bool {
	return u.OrderID == nil && u.PlacementState == PlacementAvailable
}
