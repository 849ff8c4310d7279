package warehouse

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/domain/warehouse"
)

// hierarchyFixture wires a consistent location chain into a mock repository
type hierarchyFixture struct {
	warehouse *warehouse.Warehouse
	zone      *warehouse.Zone
	rack      *warehouse.Rack
	shelf     *warehouse.Shelf
	path      warehouse.HierarchyPath
}

func newHierarchyFixture(t *testing.T) *hierarchyFixture {
	w, err := warehouse.NewWarehouse(testTenantID, "Main DC", "DC-01")
	require.NoError(t, err)
	z, err := warehouse.NewZone(testTenantID, w.ID, "Zone A")
	require.NoError(t, err)
	r, err := warehouse.NewRack(testTenantID, z.ID, "Rack A1")
	require.NoError(t, err)
	sh, err := warehouse.NewShelf(testTenantID, r.ID, "Shelf A1-3")
	require.NoError(t, err)
	return &hierarchyFixture{
		warehouse: w, zone: z, rack: r, shelf: sh,
		path: warehouse.HierarchyPath{WarehouseID: w.ID, ZoneID: z.ID, RackID: r.ID, ShelfID: sh.ID},
	}
}

func (f *hierarchyFixture) stub(ctx context.Context, locations *MockLocationRepository) {
	locations.On("FindWarehouse", ctx, testTenantID, f.path.WarehouseID).Return(f.warehouse, nil)
	locations.On("FindZone", ctx, testTenantID, f.path.ZoneID).Return(f.zone, nil)
	locations.On("FindRack", ctx, testTenantID, f.path.RackID).Return(f.rack, nil)
	locations.On("FindShelf", ctx, testTenantID, f.path.ShelfID).Return(f.shelf, nil)
}

func newPutAwayFixture() (*MockLocationRepository, *MockStockUnitRepository, *PutAwayService) {
	locations := new(MockLocationRepository)
	units := new(MockStockUnitRepository)
	svc := NewPutAwayService(locations, units, zap.NewNop())
	return locations, units, svc
}

// storedUnit builds an existing unit with a fixed id for repository stubs
func storedUnit(t *testing.T, id uuid.UUID) warehouse.StockUnit {
	u, err := warehouse.NewStockUnit(testTenantID, uuid.New(), testHierarchyPath())
	require.NoError(t, err)
	u.ID = id
	return *u
}

func TestPutAwayService_PutAway(t *testing.T) {
	ctx := context.Background()

	t.Run("relocates a deduplicated batch", func(t *testing.T) {
		locations, units, svc := newPutAwayFixture()
		fixture := newHierarchyFixture(t)
		fixture.stub(ctx, locations)

		id1, id2 := uuid.New(), uuid.New()
		deduped := []uuid.UUID{id1, id2}
		units.On("FindByIDs", ctx, testTenantID, deduped).
			Return([]warehouse.StockUnit{storedUnit(t, id1), storedUnit(t, id2)}, nil)
		units.On("RelocateBatch", ctx, testTenantID, deduped, fixture.path, testCallerID).
			Return(int64(2), nil)

		result, err := svc.PutAway(ctx, testCaller(), PutAwayInput{
			Path:    fixture.path,
			UnitIDs: []uuid.UUID{id1, id2, id1}, // duplicate collapses
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Relocated)
		units.AssertExpectations(t)
	})

	t.Run("oversized batch touches no data", func(t *testing.T) {
		locations, units, svc := newPutAwayFixture()
		ids := make([]uuid.UUID, warehouse.MaxPutAwayBatch+1)
		for i := range ids {
			ids[i] = uuid.New()
		}

		_, err := svc.PutAway(ctx, testCaller(), PutAwayInput{Path: testHierarchyPath(), UnitIDs: ids})
		require.Error(t, err)
		locations.AssertNotCalled(t, "FindWarehouse", mock.Anything, mock.Anything, mock.Anything)
		units.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("broken hierarchy rejected before any unit lookup", func(t *testing.T) {
		locations, units, svc := newPutAwayFixture()
		fixture := newHierarchyFixture(t)
		// Shelf lookup misses
		locations.On("FindWarehouse", ctx, testTenantID, fixture.path.WarehouseID).Return(fixture.warehouse, nil)
		locations.On("FindZone", ctx, testTenantID, fixture.path.ZoneID).Return(fixture.zone, nil)
		locations.On("FindRack", ctx, testTenantID, fixture.path.RackID).Return(fixture.rack, nil)
		locations.On("FindShelf", ctx, testTenantID, fixture.path.ShelfID).Return(nil, shared.ErrNotFound)

		_, err := svc.PutAway(ctx, testCaller(), PutAwayInput{
			Path: fixture.path, UnitIDs: []uuid.UUID{uuid.New()},
		})
		require.Error(t, err)
		var notFound *warehouse.LocationNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, warehouse.LevelShelf, notFound.Level)
		units.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing units reported together", func(t *testing.T) {
		locations, units, svc := newPutAwayFixture()
		fixture := newHierarchyFixture(t)
		fixture.stub(ctx, locations)

		found := uuid.New()
		missing1, missing2 := uuid.New(), uuid.New()
		requested := []uuid.UUID{found, missing1, missing2}
		units.On("FindByIDs", ctx, testTenantID, requested).
			Return([]warehouse.StockUnit{storedUnit(t, found)}, nil)

		_, err := svc.PutAway(ctx, testCaller(), PutAwayInput{Path: fixture.path, UnitIDs: requested})
		require.Error(t, err)
		var missErr *warehouse.MissingUnitsError
		require.True(t, errors.As(err, &missErr))
		assert.ElementsMatch(t, []uuid.UUID{missing1, missing2}, missErr.IDs)
		units.AssertNotCalled(t, "RelocateBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reserved unit blocks the whole batch", func(t *testing.T) {
		locations, units, svc := newPutAwayFixture()
		fixture := newHierarchyFixture(t)
		fixture.stub(ctx, locations)

		id := uuid.New()
		reserved := storedUnit(t, id)
		require.NoError(t, reserved.ConfirmPlacement(testCallerID))
		require.NoError(t, reserved.Reserve(uuid.New(), testCallerID))

		units.On("FindByIDs", ctx, testTenantID, []uuid.UUID{id}).
			Return([]warehouse.StockUnit{reserved}, nil)

		_, err := svc.PutAway(ctx, testCaller(), PutAwayInput{Path: fixture.path, UnitIDs: []uuid.UUID{id}})
		require.Error(t, err)
		units.AssertNotCalled(t, "RelocateBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPutAwayService_Inward(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("registers pending units at the receiving shelf", func(t *testing.T) {
		locations, units, svc := newPutAwayFixture()
		fixture := newHierarchyFixture(t)
		fixture.stub(ctx, locations)

		units.On("CreateBatch", ctx, mock.MatchedBy(func(batch []*warehouse.StockUnit) bool {
			if len(batch) != 3 {
				return false
			}
			for _, u := range batch {
				if u.ProductID != productID || u.PlacementState != warehouse.PlacementPending {
					return false
				}
			}
			return true
		})).Return(nil)

		result, err := svc.Inward(ctx, testCaller(), InwardInput{
			ProductID: productID, Quantity: 3, Path: fixture.path,
		})
		require.NoError(t, err)
		assert.Len(t, result.UnitIDs, 3)
		units.AssertExpectations(t)
	})

	t.Run("quantity bounds", func(t *testing.T) {
		_, _, svc := newPutAwayFixture()

		_, err := svc.Inward(ctx, testCaller(), InwardInput{ProductID: productID, Quantity: 0, Path: testHierarchyPath()})
		require.Error(t, err)

		_, err = svc.Inward(ctx, testCaller(), InwardInput{
			ProductID: productID, Quantity: warehouse.MaxPutAwayBatch + 1, Path: testHierarchyPath(),
		})
		require.Error(t, err)
	})
}

func TestPutAwayService_ConfirmPlacement(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms a verified batch", func(t *testing.T) {
		_, units, svc := newPutAwayFixture()
		id1, id2 := uuid.New(), uuid.New()
		ids := []uuid.UUID{id1, id2}

		units.On("FindByIDs", ctx, testTenantID, ids).
			Return([]warehouse.StockUnit{storedUnit(t, id1), storedUnit(t, id2)}, nil)
		units.On("ConfirmPlacementBatch", ctx, testTenantID, ids, testCallerID).
			Return(int64(2), nil)

		result, err := svc.ConfirmPlacement(ctx, testCaller(), ConfirmPlacementInput{UnitIDs: ids})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Confirmed)
	})

	t.Run("missing unit rejects the batch", func(t *testing.T) {
		_, units, svc := newPutAwayFixture()
		id, missing := uuid.New(), uuid.New()
		ids := []uuid.UUID{id, missing}

		units.On("FindByIDs", ctx, testTenantID, ids).
			Return([]warehouse.StockUnit{storedUnit(t, id)}, nil)

		_, err := svc.ConfirmPlacement(ctx, testCaller(), ConfirmPlacementInput{UnitIDs: ids})
		require.Error(t, err)
		units.AssertNotCalled(t, "ConfirmPlacementBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
