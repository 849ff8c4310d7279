package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khallark/studio-sub002/internal/domain/fulfillment"
	"github.com/khallark/studio-sub002/internal/domain/shared"
)

func lockableOrder(t *testing.T) *fulfillment.Order {
	t.Helper()
	order, err := fulfillment.NewOrder(
		uuid.New(), uuid.New(), "SHOP-1001",
		decimal.NewFromInt(499),
		fulfillment.Snapshot(`{"items":[{"product_ref":"SKU-RED-M","quantity":1}]}`),
	)
	require.NoError(t, err)
	return order
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	t.Run("matching version commits and bumps the counter", func(t *testing.T) {
		db, mock, conn := newMockDB(t)
		defer conn.Close()
		repo := NewGormOrderRepository(db)

		order := lockableOrder(t)
		storedVersion := order.Version

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "orders"`).
			WithArgs(order.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(storedVersion))
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveWithLock(context.Background(), order)
		require.NoError(t, err)
		assert.Equal(t, storedVersion+1, order.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version fails before attempting the update", func(t *testing.T) {
		db, mock, conn := newMockDB(t)
		defer conn.Close()
		repo := NewGormOrderRepository(db)

		order := lockableOrder(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "orders"`).
			WithArgs(order.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(order.Version + 1))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), order)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing order maps to not found", func(t *testing.T) {
		db, mock, conn := newMockDB(t)
		defer conn.Close()
		repo := NewGormOrderRepository(db)

		order := lockableOrder(t)

		// Deleted between load and save: the version read returns no rows
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "orders"`).
			WithArgs(order.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), order)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update losing the race reports a conflict", func(t *testing.T) {
		db, mock, conn := newMockDB(t)
		defer conn.Close()
		repo := NewGormOrderRepository(db)

		order := lockableOrder(t)

		// Version matched at read time but another writer committed first
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "orders"`).
			WithArgs(order.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(order.Version))
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), order)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("missing order maps to the shared sentinel", func(t *testing.T) {
		db, mock, conn := newMockDB(t)
		defer conn.Close()
		repo := NewGormOrderRepository(db)

		mock.ExpectQuery(`SELECT .* FROM "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_FindByIDs(t *testing.T) {
	t.Run("empty id list skips the database", func(t *testing.T) {
		db, mock, conn := newMockDB(t)
		defer conn.Close()
		repo := NewGormOrderRepository(db)

		orders, err := repo.FindByIDs(context.Background(), uuid.New(), nil)
		require.NoError(t, err)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
