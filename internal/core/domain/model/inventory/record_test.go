package inventory_test

import (
	"testing"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	t.Run("starts at zero quantity", func(t *testing.T) {
		rec, err := inventory.NewRecord(kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, rec.Validate())
		assert.Equal(t, 0, rec.Quantity())
		assert.Equal(t, int64(0), rec.Version())
	})

	t.Run("rejects invalid product id", func(t *testing.T) {
		_, err := inventory.NewRecord(kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var rec inventory.Record
		require.ErrorIs(t, rec.Validate(), inventory.ErrRecordIsNotConstructed)
	})
}

func TestRestoreRecord(t *testing.T) {
	t.Run("restores quantity and version", func(t *testing.T) {
		rec, err := inventory.RestoreRecord(kernel.NewUUID(), 5, 7)

		require.NoError(t, err)
		assert.Equal(t, 5, rec.Quantity())
		assert.Equal(t, int64(7), rec.Version())
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := inventory.RestoreRecord(kernel.NewUUID(), -1, 0)
		require.Error(t, err)
	})
}

func TestRecord_Reserve(t *testing.T) {
	t.Run("decrements available stock", func(t *testing.T) {
		rec, err := inventory.RestoreRecord(kernel.NewUUID(), 10, 0)
		require.NoError(t, err)

		require.NoError(t, rec.Reserve(8))
		assert.Equal(t, 2, rec.Quantity())
	})

	t.Run("fails when stock is insufficient", func(t *testing.T) {
		rec, err := inventory.RestoreRecord(kernel.NewUUID(), 5, 0)
		require.NoError(t, err)

		require.ErrorIs(t, rec.Reserve(6), inventory.ErrInsufficientStock)
		assert.Equal(t, 5, rec.Quantity(), "failed reservation must not touch the quantity")
	})

	t.Run("quantity never goes negative", func(t *testing.T) {
		rec, err := inventory.RestoreRecord(kernel.NewUUID(), 5, 0)
		require.NoError(t, err)

		require.NoError(t, rec.Reserve(5))
		require.ErrorIs(t, rec.Reserve(1), inventory.ErrInsufficientStock)
		assert.Equal(t, 0, rec.Quantity())
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		rec, err := inventory.RestoreRecord(kernel.NewUUID(), 5, 0)
		require.NoError(t, err)

		require.Error(t, rec.Reserve(0))
		require.Error(t, rec.Reserve(-3))
	})
}

func TestRecord_Release(t *testing.T) {
	t.Run("returns stock to the pool", func(t *testing.T) {
		rec, err := inventory.RestoreRecord(kernel.NewUUID(), 2, 0)
		require.NoError(t, err)

		require.NoError(t, rec.Release(3))
		assert.Equal(t, 5, rec.Quantity())
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		rec, err := inventory.RestoreRecord(kernel.NewUUID(), 2, 0)
		require.NoError(t, err)

		require.Error(t, rec.Release(0))
	})
}

func TestRecord_ReserveReleaseSequence(t *testing.T) {
	rec, err := inventory.RestoreRecord(kernel.NewUUID(), 5, 0)
	require.NoError(t, err)

	require.NoError(t, rec.Reserve(3))
	require.NoError(t, rec.Release(1))
	require.NoError(t, rec.Reserve(3))
	require.ErrorIs(t, rec.Reserve(1), inventory.ErrInsufficientStock)

	assert.Equal(t, 0, rec.Quantity())
}
