package integration

import (
	"context"

	"github.com/google/uuid"
)

// Shipment is the courier network's answer to a booking request. The core
// only records the identifiers; it never computes them.
type Shipment struct {
	AWB     string
	Courier string
}

// ShipmentRequest describes one order to book with the courier network
type ShipmentRequest struct {
	TenantID    uuid.UUID
	StoreID     uuid.UUID
	OrderID     uuid.UUID
	ExternalRef string
	CourierCode string // optional preferred courier
}

// CourierGateway is the courier network collaborator. Calls are suspension
// points: implementations may take arbitrarily long and callers must not
// hold exclusive locks across them. A failure here must prevent the
// corresponding state transition from committing.
type CourierGateway interface {
	// CreateShipment books a forward shipment and returns its AWB
	CreateShipment(ctx context.Context, req ShipmentRequest) (*Shipment, error)
	// BookReturn books a reverse (customer-to-origin) shipment
	BookReturn(ctx context.Context, req ShipmentRequest) (*Shipment, error)
}

// StorefrontGateway is the storefront platform collaborator, used to push
// fulfillment status back to the store that owns an order
type StorefrontGateway interface {
	// NotifyStatus informs the storefront of an order's new status
	NotifyStatus(ctx context.Context, tenantID, storeID uuid.UUID, externalRef, status string) error
}
