package fulfillment

import (
	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// Order event types
const (
	EventTypeOrderIngested      = "fulfillment.order_ingested"
	EventTypeOrderStatusChanged = "fulfillment.order_status_changed"
)

// OrderIngestedEvent is emitted when an order enters the system
type OrderIngestedEvent struct {
	shared.BaseDomainEvent
	StoreID     string `json:"store_id"`
	ExternalRef string `json:"external_ref"`
}

// NewOrderIngestedEvent creates an order ingested event
func NewOrderIngestedEvent(o *Order) *OrderIngestedEvent {
	return &OrderIngestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderIngested, "Order", o.ID, o.TenantID),
		StoreID:         o.StoreID.String(),
		ExternalRef:     o.ExternalRef,
	}
}

// OrderStatusChangedEvent is emitted on every committed transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	StoreID string      `json:"store_id"`
	From    OrderStatus `json:"from"`
	To      OrderStatus `json:"to"`
}

// NewOrderStatusChangedEvent creates a status change event
func NewOrderStatusChangedEvent(o *Order, from, to OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", o.ID, o.TenantID),
		StoreID:         o.StoreID.String(),
		From:            from,
		To:              to,
	}
}
