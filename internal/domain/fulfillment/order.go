package fulfillment

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// StatusLogEntry records one transition in the order's history
type StatusLogEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Remarks   string      `json:"remarks,omitempty"`
}

// StatusLog is the append-only transition history, stored as JSONB
type StatusLog []StatusLogEntry

// Value implements driver.Valuer for JSONB storage
func (l StatusLog) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSONB storage
func (l *StatusLog) Scan(value interface{}) error {
	if value == nil {
		*l = StatusLog{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StatusLog")
	}
}

// Snapshot is the immutable ingested order payload, stored as JSONB. It is
// written once at ingestion and never mutated by the fulfillment core.
type Snapshot json.RawMessage

// Value implements driver.Valuer for JSONB storage
func (s Snapshot) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "{}", nil
	}
	return string(s), nil
}

// Scan implements sql.Scanner for JSONB storage
func (s *Snapshot) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*s = append((*s)[:0], v...)
		return nil
	case string:
		*s = Snapshot(v)
		return nil
	default:
		return errors.New("unsupported type for Snapshot")
	}
}

// MarshalJSON renders the raw payload
func (s Snapshot) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return s, nil
}

// UnmarshalJSON stores the raw payload
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	*s = append((*s)[:0], data...)
	return nil
}

// OrderItem is one line of the ingested order
type OrderItem struct {
	ProductRef string          `json:"product_ref"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// Order is the fulfillment aggregate. StoreID names the owning storefront;
// every bulk operation partitions by it before touching the order.
type Order struct {
	shared.TenantAggregateRoot
	StoreID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExternalRef   string          `gorm:"size:100;index"` // storefront's order identifier
	CustomStatus  OrderStatus     `gorm:"size:40;not null;index"`
	StatusLog     StatusLog       `gorm:"type:jsonb;not null"`
	AWB           string          `gorm:"size:60"`
	Courier       string          `gorm:"size:60"`
	AWBReverse    string          `gorm:"size:60"`
	CourierReverse string         `gorm:"size:60"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(14,2)"`
	Payload       Snapshot        `gorm:"type:jsonb"`
	PickComplete  bool            `gorm:"not null;default:false"`
}

// NewOrder ingests an order from a storefront. The payload snapshot is
// stored verbatim and never rewritten.
func NewOrder(tenantID, storeID uuid.UUID, externalRef string, totalAmount decimal.Decimal, payload Snapshot) (*Order, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if externalRef == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "External order reference cannot be empty")
	}

	o := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		StoreID:             storeID,
		ExternalRef:         externalRef,
		CustomStatus:        StatusNew,
		TotalAmount:         totalAmount,
		Payload:             payload,
	}
	o.StatusLog = StatusLog{{Status: StatusNew, Timestamp: o.CreatedAt, Remarks: "Order ingested"}}
	o.AddDomainEvent(NewOrderIngestedEvent(o))
	return o, nil
}

// appendLog records the transition in the append-only history
func (o *Order) appendLog(status OrderStatus, remarks string, now time.Time) {
	o.StatusLog = append(o.StatusLog, StatusLogEntry{Status: status, Timestamp: now, Remarks: remarks})
}

// TransitionTo moves the order along a declared forward edge. The change is
// in-memory only; the application layer persists it, and for transitions
// with external effects it must invoke the collaborator first so a failed
// call never leaves a committed state change behind.
func (o *Order) TransitionTo(target OrderStatus, remarks string, callerID uuid.UUID) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(target))
	}
	if !o.CustomStatus.CanTransitionTo(target) {
		return &InvalidTransitionError{From: o.CustomStatus, To: target}
	}

	now := time.Now()
	from := o.CustomStatus
	o.CustomStatus = target
	o.appendLog(target, remarks, now)
	o.SetUpdatedBy(callerID)
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))
	return nil
}

// Revert undoes the current status along its declared revert edge. Reverts
// are their own operations with their own table of allowed edges.
func (o *Order) Revert(remarks string, callerID uuid.UUID) error {
	target, ok := o.CustomStatus.RevertTarget()
	if !ok {
		return &InvalidTransitionError{From: o.CustomStatus, To: o.CustomStatus}
	}

	now := time.Now()
	from := o.CustomStatus
	o.CustomStatus = target
	o.appendLog(target, remarks, now)
	o.SetUpdatedBy(callerID)
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))
	return nil
}

// AssignAWB records the forward shipment and moves the order to
// ReadyToDispatch. Callers obtain the AWB from the courier collaborator
// before invoking this, so a courier failure cannot commit the transition.
func (o *Order) AssignAWB(awb, courier string, callerID uuid.UUID) error {
	if awb == "" || courier == "" {
		return shared.NewDomainError("INVALID_SHIPMENT", "AWB and courier are required")
	}
	if err := o.TransitionTo(StatusReadyToDispatch, "AWB "+awb+" assigned via "+courier, callerID); err != nil {
		return err
	}
	o.AWB = awb
	o.Courier = courier
	return nil
}

// BookReturn records the reverse shipment and moves the order to
// DTORequested. Same contract as AssignAWB: the courier call comes first.
func (o *Order) BookReturn(awbReverse, courierReverse string, callerID uuid.UUID) error {
	if awbReverse == "" || courierReverse == "" {
		return shared.NewDomainError("INVALID_SHIPMENT", "Reverse AWB and courier are required")
	}
	if err := o.TransitionTo(StatusDTORequested, "Return booked, AWB "+awbReverse+" via "+courierReverse, callerID); err != nil {
		return err
	}
	o.AWBReverse = awbReverse
	o.CourierReverse = courierReverse
	return nil
}

// MarkPickComplete flags the order as fully allocated
func (o *Order) MarkPickComplete(callerID uuid.UUID) {
	o.PickComplete = true
	o.SetUpdatedBy(callerID)
	o.UpdatedAt = time.Now()
}

// ClearPick flags the order as no longer allocated
func (o *Order) ClearPick(callerID uuid.UUID) {
	o.PickComplete = false
	o.SetUpdatedBy(callerID)
	o.UpdatedAt = time.Now()
}

// Items decodes the line items from the ingested payload snapshot
func (o *Order) Items() ([]OrderItem, error) {
	if len(o.Payload) == 0 {
		return nil, shared.NewDomainError("INVALID_STATE", "Order has no ingested payload")
	}
	var payload struct {
		Items []OrderItem `json:"items"`
	}
	if err := json.Unmarshal(o.Payload, &payload); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order payload is not valid JSON: "+err.Error())
	}
	if len(payload.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_STATE", "Order payload contains no line items")
	}
	return payload.Items, nil
}

// IsTerminal reports whether the order reached a terminal status
func (o *Order) IsTerminal() bool {
	return o.CustomStatus.IsTerminal()
}
