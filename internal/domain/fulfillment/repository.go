package fulfillment

import (
	"context"

	"github.com/google/uuid"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

// OrderRepository provides access to fulfillment orders. Every method is
// tenant-scoped; bulk callers additionally partition by store before
// loading anything.
type OrderRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)
	// FindByIDs returns the orders that exist for the tenant; callers diff
	// against the requested set when completeness matters.
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Order, error)
	FindByStore(ctx context.Context, tenantID, storeID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status OrderStatus, filter shared.Filter) ([]Order, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status OrderStatus) (int64, error)

	Save(ctx context.Context, order *Order) error
	// SaveWithLock persists with an optimistic version check so two
	// concurrent transitions on the same order cannot both commit.
	SaveWithLock(ctx context.Context, order *Order) error
}
