package warehouse

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/domain/warehouse"
)

// PutAwayService orchestrates stock unit movement: inward registration,
// put-away relocation and placement confirmation. The domain service owns
// the rules; this layer owns fetching and the atomic commit.
type PutAwayService struct {
	locations warehouse.LocationRepository
	units     warehouse.StockUnitRepository
	domain    *warehouse.PutAwayService
	logger    *zap.Logger
}

// NewPutAwayService creates a new put-away application service
func NewPutAwayService(
	locations warehouse.LocationRepository,
	units warehouse.StockUnitRepository,
	logger *zap.Logger,
) *PutAwayService {
	return &PutAwayService{
		locations: locations,
		units:     units,
		domain:    warehouse.NewPutAwayService(),
		logger:    logger,
	}
}

// validateHierarchy fetches all four location nodes and checks the chain
// top-down. A missing node at any level is reported as that level's
// not-found, a present node with a wrong parent as that level's mismatch.
func (s *PutAwayService) validateHierarchy(ctx context.Context, tenantID uuid.UUID, path warehouse.HierarchyPath) error {
	if err := path.Validate(); err != nil {
		return err
	}

	w, err := s.locations.FindWarehouse(ctx, tenantID, path.WarehouseID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	z, err := s.locations.FindZone(ctx, tenantID, path.ZoneID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	r, err := s.locations.FindRack(ctx, tenantID, path.RackID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	sh, err := s.locations.FindShelf(ctx, tenantID, path.ShelfID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	return warehouse.ValidateHierarchy(w, z, r, sh, path)
}

// PutAway relocates a batch of stock units to a validated shelf. Dedup and
// the batch cap apply before any lookup; the hierarchy is validated before
// any unit is touched; the relocation itself is a single all-or-nothing
// commit.
func (s *PutAwayService) PutAway(ctx context.Context, caller shared.CallerContext, input PutAwayInput) (*PutAwayResult, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	ids, err := s.domain.NormalizeUnitIDs(input.UnitIDs)
	if err != nil {
		return nil, err
	}

	if err := s.validateHierarchy(ctx, caller.TenantID, input.Path); err != nil {
		return nil, err
	}

	units, err := s.units.FindByIDs(ctx, caller.TenantID, ids)
	if err != nil {
		return nil, err
	}
	if err := s.domain.CheckUnitsPresent(ids, units); err != nil {
		return nil, err
	}
	if err := s.domain.CheckUnitsMovable(units); err != nil {
		return nil, err
	}

	relocated, err := s.units.RelocateBatch(ctx, caller.TenantID, ids, input.Path, caller.CallerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Put-away committed",
		zap.String("tenant_id", caller.TenantID.String()),
		zap.String("shelf_id", input.Path.ShelfID.String()),
		zap.Int64("relocated", relocated),
	)
	return &PutAwayResult{Relocated: relocated, Path: input.Path}, nil
}

// Inward registers new stock units at a receiving shelf. Units start in
// PENDING placement state and must be confirmed before they are pickable.
func (s *PutAwayService) Inward(ctx context.Context, caller shared.CallerContext, input InwardInput) (*InwardResult, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if input.Quantity > warehouse.MaxPutAwayBatch {
		return nil, shared.NewDomainError("BATCH_TOO_LARGE",
			"An inward request may not exceed 500 stock units")
	}

	if err := s.validateHierarchy(ctx, caller.TenantID, input.Path); err != nil {
		return nil, err
	}

	units := make([]*warehouse.StockUnit, input.Quantity)
	ids := make([]uuid.UUID, input.Quantity)
	for i := 0; i < input.Quantity; i++ {
		u, err := warehouse.NewStockUnit(caller.TenantID, input.ProductID, input.Path)
		if err != nil {
			return nil, err
		}
		u.SetUpdatedBy(caller.CallerID)
		units[i] = u
		ids[i] = u.ID
	}

	if err := s.units.CreateBatch(ctx, units); err != nil {
		return nil, err
	}

	s.logger.Info("Stock units registered inward",
		zap.String("tenant_id", caller.TenantID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.Int("quantity", input.Quantity),
	)
	return &InwardResult{UnitIDs: ids}, nil
}

// ConfirmPlacement flips verified units from PENDING to AVAILABLE
func (s *PutAwayService) ConfirmPlacement(ctx context.Context, caller shared.CallerContext, input ConfirmPlacementInput) (*ConfirmPlacementResult, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	ids, err := s.domain.NormalizeUnitIDs(input.UnitIDs)
	if err != nil {
		return nil, err
	}

	units, err := s.units.FindByIDs(ctx, caller.TenantID, ids)
	if err != nil {
		return nil, err
	}
	if err := s.domain.CheckUnitsPresent(ids, units); err != nil {
		return nil, err
	}

	confirmed, err := s.units.ConfirmPlacementBatch(ctx, caller.TenantID, ids, caller.CallerID)
	if err != nil {
		return nil, err
	}
	return &ConfirmPlacementResult{Confirmed: confirmed}, nil
}
