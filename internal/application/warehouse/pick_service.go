package warehouse

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khallark/studio-sub002/internal/domain/fulfillment"
	"github.com/khallark/studio-sub002/internal/domain/integration"
	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/domain/warehouse"
)

// reservationRetries bounds how many times a lost compare-and-set race is
// re-queried before the shortfall is surfaced to the caller.
const reservationRetries = 2

// PickService allocates stock units to orders. Allocation is two-phase:
// a check phase selects the oldest eligible units for every line, then a
// commit phase claims the exact selected set with a compare-and-set. A lost
// race re-queries; it never double-allocates and never partially reserves.
type PickService struct {
	orders   fulfillment.OrderRepository
	units    warehouse.StockUnitRepository
	mappings integration.ProductMappingRepository
	alloc    *warehouse.AllocationService
	logger   *zap.Logger
}

// NewPickService creates a new pick application service
func NewPickService(
	orders fulfillment.OrderRepository,
	units warehouse.StockUnitRepository,
	mappings integration.ProductMappingRepository,
	logger *zap.Logger,
) *PickService {
	return &PickService{
		orders:   orders,
		units:    units,
		mappings: mappings,
		alloc:    warehouse.NewAllocationService(),
		logger:   logger,
	}
}

// Allocate reserves stock for every line item of the order, all-or-nothing
// at the order level.
func (s *PickService) Allocate(ctx context.Context, caller shared.CallerContext, orderID uuid.UUID) (*AllocationResult, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, caller.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.CanActOn(order.StoreID) {
		return nil, shared.ErrForbidden
	}
	if order.PickComplete {
		return nil, shared.NewDomainError("INVALID_STATE", "Order is already pick-complete")
	}

	requirements, err := s.resolveRequirements(ctx, caller.TenantID, order)
	if err != nil {
		return nil, err
	}

	var result *AllocationResult
	for attempt := 0; ; attempt++ {
		selection, err := s.selectUnits(ctx, caller.TenantID, orderID, requirements)
		if err != nil {
			return nil, err
		}

		err = s.units.Reserve(ctx, caller.TenantID, orderID, selection.AllUnitIDs(), caller.CallerID)
		if err == nil {
			result = &AllocationResult{
				OrderID: orderID,
				Units:   selection.UnitCount(),
				Lines:   selection.Lines,
				Retried: attempt > 0,
			}
			break
		}
		if !errors.Is(err, warehouse.ErrReservationConflict) {
			return nil, err
		}
		// Lost the race for at least one unit: the conflicting allocation
		// owns it now. Re-query for fresh candidates rather than failing.
		if attempt >= reservationRetries {
			return nil, err
		}
		s.logger.Warn("Reservation race lost, re-querying",
			zap.String("order_id", orderID.String()),
			zap.Int("attempt", attempt+1),
		)
	}

	order.MarkPickComplete(caller.CallerID)
	if err := s.orders.SaveWithLock(ctx, order); err != nil {
		// Roll the reservation back so the units return to the pool
		if _, rerr := s.units.ReleaseByOrder(ctx, caller.TenantID, orderID, caller.CallerID); rerr != nil {
			s.logger.Error("Failed to release reservation after save failure",
				zap.String("order_id", orderID.String()), zap.Error(rerr))
		}
		return nil, err
	}

	s.logger.Info("Order allocation committed",
		zap.String("tenant_id", caller.TenantID.String()),
		zap.String("order_id", orderID.String()),
		zap.Int("units", result.Units),
	)
	return result, nil
}

// Release reverses an order's allocation, clearing order_id on every unit
// it holds. Used when an order is cancelled before pick/dispatch.
func (s *PickService) Release(ctx context.Context, caller shared.CallerContext, orderID uuid.UUID) (*ReleaseResult, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, caller.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.CanActOn(order.StoreID) {
		return nil, shared.ErrForbidden
	}

	released, err := s.units.ReleaseByOrder(ctx, caller.TenantID, orderID, caller.CallerID)
	if err != nil {
		return nil, err
	}

	if order.PickComplete {
		order.ClearPick(caller.CallerID)
		if err := s.orders.SaveWithLock(ctx, order); err != nil {
			return nil, err
		}
	}

	return &ReleaseResult{OrderID: orderID, Released: released}, nil
}

// resolveRequirements maps every line item's storefront reference to its
// internal stock-keeping identity, aggregating duplicate refs. A reference
// with no active mapping aborts the whole resolution.
func (s *PickService) resolveRequirements(ctx context.Context, tenantID uuid.UUID, order *fulfillment.Order) ([]warehouse.LineRequirement, error) {
	items, err := order.Items()
	if err != nil {
		return nil, err
	}

	refs := make([]string, 0, len(items))
	quantities := make(map[string]int, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY",
				"Line item quantity must be positive for "+item.ProductRef)
		}
		if _, ok := quantities[item.ProductRef]; !ok {
			refs = append(refs, item.ProductRef)
		}
		quantities[item.ProductRef] += item.Quantity
	}

	resolved, err := s.mappings.ResolveRefs(ctx, tenantID, order.StoreID, refs)
	if err != nil {
		return nil, err
	}

	requirements := make([]warehouse.LineRequirement, 0, len(refs))
	for _, ref := range refs {
		productID, ok := resolved[ref]
		if !ok {
			return nil, &integration.UnmappedProductError{ProductRef: ref}
		}
		requirements = append(requirements, warehouse.LineRequirement{
			ProductRef: ref,
			ProductID:  productID,
			Quantity:   quantities[ref],
		})
	}
	return requirements, nil
}

// selectUnits runs the check phase: FIFO candidates per line, shortfall on
// any line aborts the whole order's selection.
func (s *PickService) selectUnits(ctx context.Context, tenantID, orderID uuid.UUID, requirements []warehouse.LineRequirement) (*warehouse.AllocationSelection, error) {
	selection := &warehouse.AllocationSelection{OrderID: orderID}
	for _, req := range requirements {
		candidates, err := s.units.FindOldestAvailable(ctx, tenantID, req.ProductID, req.Quantity)
		if err != nil {
			return nil, err
		}
		line, err := s.alloc.SelectLine(req, candidates)
		if err != nil {
			return nil, err
		}
		selection.Lines = append(selection.Lines, *line)
	}
	return selection, nil
}
