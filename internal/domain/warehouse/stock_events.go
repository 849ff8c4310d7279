package warehouse

import (
	"github.com/google/uuid"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// Stock unit event types
const (
	EventTypeUnitsInward      = "warehouse.units_inward"
	EventTypeUnitsPutAway     = "warehouse.units_put_away"
	EventTypeUnitsReserved    = "warehouse.units_reserved"
	EventTypeUnitsReleased    = "warehouse.units_released"
	EventTypePlacementsMarked = "warehouse.placements_confirmed"
)

// UnitsPutAwayEvent is emitted after a put-away batch commits
type UnitsPutAwayEvent struct {
	shared.BaseDomainEvent
	UnitIDs []uuid.UUID   `json:"unit_ids"`
	Path    HierarchyPath `json:"path"`
}

// NewUnitsPutAwayEvent creates a put-away event
func NewUnitsPutAwayEvent(tenantID uuid.UUID, unitIDs []uuid.UUID, path HierarchyPath) *UnitsPutAwayEvent {
	return &UnitsPutAwayEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitsPutAway, "StockUnit", path.ShelfID, tenantID),
		UnitIDs:         unitIDs,
		Path:            path,
	}
}

// UnitsReservedEvent is emitted after an order's allocation commits
type UnitsReservedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID   `json:"order_id"`
	UnitIDs []uuid.UUID `json:"unit_ids"`
}

// NewUnitsReservedEvent creates a reservation event
func NewUnitsReservedEvent(tenantID, orderID uuid.UUID, unitIDs []uuid.UUID) *UnitsReservedEvent {
	return &UnitsReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitsReserved, "StockUnit", orderID, tenantID),
		OrderID:         orderID,
		UnitIDs:         unitIDs,
	}
}

// UnitsReleasedEvent is emitted when an order's reservation is reversed
type UnitsReleasedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	Count   int64     `json:"count"`
}

// NewUnitsReleasedEvent creates a release event
func NewUnitsReleasedEvent(tenantID, orderID uuid.UUID, count int64) *UnitsReleasedEvent {
	return &UnitsReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitsReleased, "StockUnit", orderID, tenantID),
		OrderID:         orderID,
		Count:           count,
	}
}
