package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/khallark/studio-sub002/internal/domain/bulk"
	"github.com/khallark/studio-sub002/internal/domain/fulfillment"
)

// IngestInput is an order arriving from a storefront
type IngestInput struct {
	StoreID     uuid.UUID
	ExternalRef string
	TotalAmount decimal.Decimal
	Payload     fulfillment.Snapshot
}

// OrderView is the transport representation of an order
type OrderView struct {
	ID             uuid.UUID                   `json:"id"`
	StoreID        uuid.UUID                   `json:"store_id"`
	ExternalRef    string                      `json:"external_ref"`
	Status         fulfillment.OrderStatus     `json:"status"`
	StatusLog      []fulfillment.StatusLogEntry `json:"status_log"`
	AWB            string                      `json:"awb,omitempty"`
	Courier        string                      `json:"courier,omitempty"`
	AWBReverse     string                      `json:"awb_reverse,omitempty"`
	CourierReverse string                      `json:"courier_reverse,omitempty"`
	TotalAmount    decimal.Decimal             `json:"total_amount"`
	PickComplete   bool                        `json:"pick_complete"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// NewOrderView maps an order aggregate to its transport form
func NewOrderView(o *fulfillment.Order) OrderView {
	return OrderView{
		ID:             o.ID,
		StoreID:        o.StoreID,
		ExternalRef:    o.ExternalRef,
		Status:         o.CustomStatus,
		StatusLog:      o.StatusLog,
		AWB:            o.AWB,
		Courier:        o.Courier,
		AWBReverse:     o.AWBReverse,
		CourierReverse: o.CourierReverse,
		TotalAmount:    o.TotalAmount,
		PickComplete:   o.PickComplete,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// BulkStatusInput moves a set of orders along the same forward edge
type BulkStatusInput struct {
	OrderIDs []uuid.UUID
	Target   fulfillment.OrderStatus
	Remarks  string
}

// BulkShipmentInput books shipments for a set of orders
type BulkShipmentInput struct {
	OrderIDs    []uuid.UUID
	CourierCode string // optional preferred courier for the whole batch
}

// BulkOrderIDsInput names the orders a bulk operation targets
type BulkOrderIDsInput struct {
	OrderIDs []uuid.UUID
}

// StoreResult reports one store partition's outcome
type StoreResult struct {
	StoreID   uuid.UUID `json:"store_id"`
	Succeeded bool      `json:"succeeded"`
	Processed int       `json:"processed"`
	Error     string    `json:"error,omitempty"`
}

// BulkResult reports every partition of a bulk operation. It is produced
// only after all partitions have settled.
type BulkResult struct {
	AllSucceeded bool          `json:"all_succeeded"`
	Processed    int           `json:"processed"`
	Stores       []StoreResult `json:"stores"`
}

// newBulkResult flattens a fan-out summary into the transport form
func newBulkResult(summary bulk.Summary[uuid.UUID]) *BulkResult {
	stores := make([]StoreResult, 0, len(summary.Results))
	for _, r := range summary.Results {
		stores = append(stores, StoreResult{
			StoreID:   r.Key,
			Succeeded: r.Succeeded,
			Processed: r.Count,
			Error:     r.ErrorMessage(),
		})
	}
	return &BulkResult{
		AllSucceeded: summary.AllSucceeded(),
		Processed:    summary.TotalCount(),
		Stores:       stores,
	}
}
