package warehouse

import (
	"github.com/google/uuid"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// Warehouse is the root of the four-level storage location tree
type Warehouse struct {
	shared.TenantAggregateRoot
	Name string `gorm:"size:100;not null"`
	Code string `gorm:"size:50"`
}

// NewWarehouse creates a new warehouse
func NewWarehouse(tenantID uuid.UUID, name, code string) (*Warehouse, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	return &Warehouse{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Code:                code,
	}, nil
}

// Zone is a section of a warehouse
type Zone struct {
	shared.TenantAggregateRoot
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"size:100;not null"`
}

// NewZone creates a new zone under a warehouse
func NewZone(tenantID, warehouseID uuid.UUID, name string) (*Zone, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Zone name cannot be empty")
	}
	return &Zone{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		WarehouseID:         warehouseID,
		Name:                name,
	}, nil
}

// Rack is a shelving unit inside a zone
type Rack struct {
	shared.TenantAggregateRoot
	ZoneID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name   string    `gorm:"size:100;not null"`
}

// NewRack creates a new rack under a zone
func NewRack(tenantID, zoneID uuid.UUID, name string) (*Rack, error) {
	if zoneID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ZONE", "Zone ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Rack name cannot be empty")
	}
	return &Rack{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ZoneID:              zoneID,
		Name:                name,
	}, nil
}

// Shelf is the leaf location stock units are placed on
type Shelf struct {
	shared.TenantAggregateRoot
	RackID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name   string    `gorm:"size:100;not null"`
}

// NewShelf creates a new shelf under a rack
func NewShelf(tenantID, rackID uuid.UUID, name string) (*Shelf, error) {
	if rackID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RACK", "Rack ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Shelf name cannot be empty")
	}
	return &Shelf{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		RackID:              rackID,
		Name:                name,
	}, nil
}

// HierarchyPath names one full path through the location tree
type HierarchyPath struct {
	WarehouseID uuid.UUID
	ZoneID      uuid.UUID
	RackID      uuid.UUID
	ShelfID     uuid.UUID
}

// Validate checks that every level is supplied
func (p HierarchyPath) Validate() error {
	if p.WarehouseID == uuid.Nil || p.ZoneID == uuid.Nil || p.RackID == uuid.Nil || p.ShelfID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "All four location levels are required")
	}
	return nil
}

// ValidateHierarchy checks the fetched nodes against the supplied path.
// Checks run top-down so the reported failure is always the shallowest:
// first presence, then parent-pointer consistency at each level. A nil node
// means the lookup at that level found nothing. Read-only, no side effects.
func ValidateHierarchy(w *Warehouse, z *Zone, r *Rack, s *Shelf, path HierarchyPath) error {
	if w == nil {
		return &LocationNotFoundError{Level: LevelWarehouse, ID: path.WarehouseID}
	}
	if z == nil {
		return &LocationNotFoundError{Level: LevelZone, ID: path.ZoneID}
	}
	if z.WarehouseID != w.ID {
		return &HierarchyMismatchError{Level: LevelZone, ID: z.ID, WantedID: w.ID, ActualID: z.WarehouseID}
	}
	if r == nil {
		return &LocationNotFoundError{Level: LevelRack, ID: path.RackID}
	}
	if r.ZoneID != z.ID {
		return &HierarchyMismatchError{Level: LevelRack, ID: r.ID, WantedID: z.ID, ActualID: r.ZoneID}
	}
	if s == nil {
		return &LocationNotFoundError{Level: LevelShelf, ID: path.ShelfID}
	}
	if s.RackID != r.ID {
		return &HierarchyMismatchError{Level: LevelShelf, ID: s.ID, WantedID: r.ID, ActualID: s.RackID}
	}
	return nil
}
