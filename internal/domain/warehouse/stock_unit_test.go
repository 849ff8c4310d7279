package warehouse

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khallark/studio-sub002/internal/domain/shared"
)

func testPath() HierarchyPath {
	return HierarchyPath{
		WarehouseID: uuid.New(),
		ZoneID:      uuid.New(),
		RackID:      uuid.New(),
		ShelfID:     uuid.New(),
	}
}

func createTestUnit(t *testing.T) *StockUnit {
	u, err := NewStockUnit(uuid.New(), uuid.New(), testPath())
	require.NoError(t, err)
	return u
}

func TestNewStockUnit(t *testing.T) {
	t.Run("starts pending at the given path", func(t *testing.T) {
		tenantID := uuid.New()
		productID := uuid.New()
		path := testPath()

		u, err := NewStockUnit(tenantID, productID, path)
		require.NoError(t, err)

		assert.Equal(t, tenantID, u.TenantID)
		assert.Equal(t, productID, u.ProductID)
		assert.Equal(t, path.ShelfID, u.ShelfID)
		assert.Equal(t, PlacementPending, u.PlacementState)
		assert.Nil(t, u.OrderID)
		assert.Equal(t, fmt.Sprintf("%s_%s", productID, path.ShelfID), u.PlacementID)
	})

	t.Run("rejects empty product", func(t *testing.T) {
		_, err := NewStockUnit(uuid.New(), uuid.Nil, testPath())
		require.Error(t, err)
	})

	t.Run("rejects incomplete path", func(t *testing.T) {
		path := testPath()
		path.ShelfID = uuid.Nil
		_, err := NewStockUnit(uuid.New(), uuid.New(), path)
		require.Error(t, err)
	})
}

func TestStockUnit_Relocate(t *testing.T) {
	callerID := uuid.New()

	t.Run("moves unit and resets placement to pending", func(t *testing.T) {
		u := createTestUnit(t)
		require.NoError(t, u.ConfirmPlacement(callerID))
		require.Equal(t, PlacementAvailable, u.PlacementState)

		newPath := testPath()
		require.NoError(t, u.Relocate(newPath, callerID))

		assert.Equal(t, newPath.ShelfID, u.ShelfID)
		assert.Equal(t, PlacementPending, u.PlacementState)
		assert.Equal(t, BuildPlacementID(u.ProductID, newPath.ShelfID), u.PlacementID)
	})

	t.Run("reserved unit cannot move", func(t *testing.T) {
		u := createTestUnit(t)
		require.NoError(t, u.ConfirmPlacement(callerID))
		require.NoError(t, u.Reserve(uuid.New(), callerID))

		err := u.Relocate(testPath(), callerID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "UNIT_RESERVED", domainErr.Code)
	})
}

func TestStockUnit_ConfirmPlacement(t *testing.T) {
	callerID := uuid.New()
	u := createTestUnit(t)

	require.NoError(t, u.ConfirmPlacement(callerID))
	assert.Equal(t, PlacementAvailable, u.PlacementState)

	// Idempotent re-confirm is rejected
	err := u.ConfirmPlacement(callerID)
	require.Error(t, err)
}

func TestStockUnit_ReserveRelease(t *testing.T) {
	callerID := uuid.New()
	orderID := uuid.New()

	t.Run("reserve claims an available unit", func(t *testing.T) {
		u := createTestUnit(t)
		require.NoError(t, u.ConfirmPlacement(callerID))

		require.NoError(t, u.Reserve(orderID, callerID))
		assert.True(t, u.IsReserved())
		assert.Equal(t, orderID, *u.OrderID)
		assert.False(t, u.IsPickable())
	})

	t.Run("pending unit cannot be reserved", func(t *testing.T) {
		u := createTestUnit(t)
		err := u.Reserve(orderID, callerID)
		require.Error(t, err)
		assert.Nil(t, u.OrderID)
	})

	t.Run("reserved unit cannot be claimed twice", func(t *testing.T) {
		u := createTestUnit(t)
		require.NoError(t, u.ConfirmPlacement(callerID))
		require.NoError(t, u.Reserve(orderID, callerID))

		err := u.Reserve(uuid.New(), callerID)
		require.Error(t, err)
		assert.Equal(t, orderID, *u.OrderID)
	})

	t.Run("release returns unit to the pool", func(t *testing.T) {
		u := createTestUnit(t)
		require.NoError(t, u.ConfirmPlacement(callerID))
		require.NoError(t, u.Reserve(orderID, callerID))

		require.NoError(t, u.Release(callerID))
		assert.Nil(t, u.OrderID)
		assert.True(t, u.IsPickable())
	})

	t.Run("release of unreserved unit fails", func(t *testing.T) {
		u := createTestUnit(t)
		require.Error(t, u.Release(callerID))
	})

	t.Run("reserve requires an order id", func(t *testing.T) {
		u := createTestUnit(t)
		require.NoError(t, u.ConfirmPlacement(callerID))
		require.Error(t, u.Reserve(uuid.Nil, callerID))
	})
}
