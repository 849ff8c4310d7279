package warehouse

import (
	"sort"

	"github.com/google/uuid"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// LineRequirement is one resolved order line: the storefront-facing product
// reference, the internal stock-keeping identity it maps to, and how many
// units the order needs.
type LineRequirement struct {
	ProductRef string
	ProductID  uuid.UUID
	Quantity   int
}

// Validate checks the requirement fields
func (r LineRequirement) Validate() error {
	if r.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Resolved product ID cannot be empty")
	}
	if r.Quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return nil
}

// LineSelection records the units chosen for one line requirement
type LineSelection struct {
	ProductRef string
	ProductID  uuid.UUID
	UnitIDs    []uuid.UUID
}

// AllocationSelection is the outcome of the check phase: the exact unit set
// to claim for the order. Nothing is reserved yet; the commit phase claims
// every unit with a compare-and-set so a lost race surfaces as a conflict
// instead of a double allocation.
type AllocationSelection struct {
	OrderID uuid.UUID
	Lines   []LineSelection
}

// AllUnitIDs flattens the selection across all lines
func (s *AllocationSelection) AllUnitIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, line := range s.Lines {
		ids = append(ids, line.UnitIDs...)
	}
	return ids
}

// UnitCount returns the total number of selected units
func (s *AllocationSelection) UnitCount() int {
	n := 0
	for _, line := range s.Lines {
		n += len(line.UnitIDs)
	}
	return n
}

// AllocationService selects stock units for an order strictly first-in
// first-out by creation time. Selection is all-or-nothing at the order
// level: a shortfall on any line aborts the whole order's allocation.
//
// FIFO is load-bearing: oldest inventory must turn over first so shelf-life
// sensitive operations behave like first-expired-first-out even though
// units carry no expiry data at this layer.
type AllocationService struct{}

// NewAllocationService creates a new allocation domain service
func NewAllocationService() *AllocationService {
	return &AllocationService{}
}

// SelectLine picks the oldest eligible units for one line requirement from
// the supplied candidates. Candidates are re-sorted by creation time so the
// FIFO invariant does not depend on the repository's ordering, and any
// candidate that is reserved or unverified is skipped.
func (s *AllocationService) SelectLine(req LineRequirement, candidates []StockUnit) (*LineSelection, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	eligible := make([]StockUnit, 0, len(candidates))
	for i := range candidates {
		if candidates[i].ProductID == req.ProductID && candidates[i].IsPickable() {
			eligible = append(eligible, candidates[i])
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].CreatedAt.Before(eligible[j].CreatedAt)
	})

	if len(eligible) < req.Quantity {
		return nil, &InsufficientStockError{
			ProductRef: req.ProductRef,
			Needed:     req.Quantity,
			Found:      len(eligible),
		}
	}

	ids := make([]uuid.UUID, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		ids[i] = eligible[i].ID
	}
	return &LineSelection{ProductRef: req.ProductRef, ProductID: req.ProductID, UnitIDs: ids}, nil
}
