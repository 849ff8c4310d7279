package warehouse

import (
	"github.com/google/uuid"

	"github.com/khallark/studio-sub002/internal/domain/warehouse"
)

// PutAwayInput is the application-level put-away request
type PutAwayInput struct {
	Path    warehouse.HierarchyPath
	UnitIDs []uuid.UUID
}

// PutAwayResult reports a committed put-away
type PutAwayResult struct {
	Relocated int64                   `json:"relocated"`
	Path      warehouse.HierarchyPath `json:"-"`
}

// InwardInput registers new stock units entering the warehouse
type InwardInput struct {
	ProductID uuid.UUID
	Quantity  int
	Path      warehouse.HierarchyPath
}

// InwardResult reports the created units
type InwardResult struct {
	UnitIDs []uuid.UUID `json:"unit_ids"`
}

// ConfirmPlacementInput marks units verified at their recorded shelf
type ConfirmPlacementInput struct {
	UnitIDs []uuid.UUID
}

// ConfirmPlacementResult reports how many placements were confirmed
type ConfirmPlacementResult struct {
	Confirmed int64 `json:"confirmed"`
}

// AllocationResult reports a committed order allocation
type AllocationResult struct {
	OrderID  uuid.UUID                 `json:"order_id"`
	Units    int                       `json:"units_reserved"`
	Lines    []warehouse.LineSelection `json:"lines"`
	Retried  bool                      `json:"-"` // a reservation race was lost and re-queried
}

// ReleaseResult reports a reversed allocation
type ReleaseResult struct {
	OrderID  uuid.UUID `json:"order_id"`
	Released int64     `json:"units_released"`
}
