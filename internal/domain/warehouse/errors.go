package warehouse

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// HierarchyLevel identifies one level of the storage location tree
type HierarchyLevel string

const (
	LevelWarehouse HierarchyLevel = "WAREHOUSE"
	LevelZone      HierarchyLevel = "ZONE"
	LevelRack      HierarchyLevel = "RACK"
	LevelShelf     HierarchyLevel = "SHELF"
)

// LocationNotFoundError reports a missing node in the location hierarchy.
// The level always names the shallowest missing node because validation
// runs top-down.
type LocationNotFoundError struct {
	Level HierarchyLevel
	ID    uuid.UUID
}

// Error implements the error interface
func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", strings.ToLower(string(e.Level)), e.ID)
}

// DomainError converts to the shared error taxonomy
func (e *LocationNotFoundError) DomainError() *shared.DomainError {
	return shared.NewDomainError("NOT_FOUND", e.Error())
}

// HierarchyMismatchError reports a node whose parent pointer disagrees with
// the supplied ancestor. Distinct from not-found: the node exists but the
// chain is structurally inconsistent.
type HierarchyMismatchError struct {
	Level    HierarchyLevel
	ID       uuid.UUID
	WantedID uuid.UUID // the parent id the caller supplied
	ActualID uuid.UUID // the parent id the node actually references
}

// Error implements the error interface
func (e *HierarchyMismatchError) Error() string {
	return fmt.Sprintf("%s %s belongs to %s, not %s",
		strings.ToLower(string(e.Level)), e.ID, e.ActualID, e.WantedID)
}

// DomainError converts to the shared error taxonomy
func (e *HierarchyMismatchError) DomainError() *shared.DomainError {
	return shared.NewDomainError("HIERARCHY_MISMATCH", e.Error())
}

// MissingUnitsError lists every requested stock unit that could not be
// found, not just the first one.
type MissingUnitsError struct {
	IDs []uuid.UUID
}

// Error implements the error interface
func (e *MissingUnitsError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("stock units not found: %s", strings.Join(ids, ", "))
}

// DomainError converts to the shared error taxonomy
func (e *MissingUnitsError) DomainError() *shared.DomainError {
	return shared.NewDomainError("MISSING_UNITS", e.Error())
}

// InsufficientStockError reports an allocation shortfall for one line item.
// The whole order's allocation is aborted when this is returned.
type InsufficientStockError struct {
	ProductRef string
	Needed     int
	Found      int
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: needed %d, found %d", e.ProductRef, e.Needed, e.Found)
}

// DomainError converts to the shared error taxonomy
func (e *InsufficientStockError) DomainError() *shared.DomainError {
	return shared.NewDomainError("INSUFFICIENT_STOCK", e.Error())
}

// ErrReservationConflict is returned when the compare-and-set reservation
// loses a race: another allocation claimed one of the selected units between
// the eligibility query and the commit. Callers re-query and retry; they
// must never treat this as a partial success.
var ErrReservationConflict = shared.NewDomainError("RESERVATION_CONFLICT",
	"One or more selected stock units were reserved by a concurrent allocation")
