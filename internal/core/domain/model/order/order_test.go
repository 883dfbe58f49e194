package order_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount string) kernel.Money {
	t.Helper()
	d, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	m, err := kernel.NewMoney(d, "INR")
	require.NoError(t, err)
	return m
}

func item(t *testing.T, qty int, unitPrice string) order.Item {
	t.Helper()
	it, err := order.NewItem(kernel.NewUUID(), qty, money(t, unitPrice))
	require.NoError(t, err)
	return it
}

func TestNewItem(t *testing.T) {
	t.Run("valid item", func(t *testing.T) {
		it := item(t, 2, "10.00")

		require.NoError(t, it.Validate())
		assert.Equal(t, 2, it.Quantity())
		assert.True(t, it.Subtotal().IsEqual(money(t, "20.00")))
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 0, money(t, "10.00"))
		require.Error(t, err)

		_, err = order.NewItem(kernel.NewUUID(), -1, money(t, "10.00"))
		require.Error(t, err)
	})

	t.Run("unconstructed price is rejected", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 1, kernel.Money{})
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var it order.Item
		require.ErrorIs(t, it.Validate(), order.ErrItemIsNotConstructed)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("computes total from item subtotals", func(t *testing.T) {
		items := []order.Item{item(t, 2, "10.00"), item(t, 1, "129.99")}

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), items)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Created, o.Status())
		assert.True(t, o.TotalAmount().IsEqual(money(t, "149.99")))
		assert.Len(t, o.Items(), 2)
		assert.WithinDuration(t, time.Now().UTC(), o.CreatedAt(), time.Minute)
	})

	t.Run("requires at least one item", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil)
		require.ErrorIs(t, err, order.ErrOrderHasNoItems)
	})

	t.Run("rejects invalid owner", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.UUID{}, []order.Item{item(t, 1, "1.00")})
		require.Error(t, err)
	})

	t.Run("total is frozen against later item mutation", func(t *testing.T) {
		items := []order.Item{item(t, 2, "10.00")}
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), items)
		require.NoError(t, err)

		// The returned slice is a copy; modifying it must not affect the order.
		got := o.Items()
		got[0] = item(t, 5, "99.99")

		assert.True(t, o.TotalAmount().IsEqual(money(t, "20.00")))
		assert.Equal(t, 2, o.Items()[0].Quantity())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores persisted state", func(t *testing.T) {
		id := kernel.NewUUID()
		owner := kernel.NewUUID()
		created := time.Now().UTC().Add(-time.Hour)

		o, err := order.RestoreOrder(id, owner, []order.Item{item(t, 1, "5.00")},
			money(t, "5.00"), order.Paid, created)

		require.NoError(t, err)
		assert.Equal(t, order.Paid, o.Status())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, created, o.CreatedAt())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), nil,
			money(t, "5.00"), order.Unknown, time.Now())
		require.Error(t, err)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	newPlacedOrder := func(t *testing.T) *order.Order {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{item(t, 1, "10.00")})
		require.NoError(t, err)
		require.NoError(t, o.Place())
		return o
	}

	t.Run("pay is idempotent on the aggregate", func(t *testing.T) {
		o := newPlacedOrder(t)

		require.NoError(t, o.Pay())
		require.NoError(t, o.Pay())
		assert.Equal(t, order.Paid, o.Status())
	})

	t.Run("full fulfillment", func(t *testing.T) {
		o := newPlacedOrder(t)

		require.NoError(t, o.Pay())
		require.NoError(t, o.Confirm())
		require.NoError(t, o.Ship())
		require.NoError(t, o.Deliver())
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("cannot cancel after delivery", func(t *testing.T) {
		o := newPlacedOrder(t)
		require.NoError(t, o.Pay())
		require.NoError(t, o.Confirm())
		require.NoError(t, o.Ship())
		require.NoError(t, o.Deliver())

		require.ErrorIs(t, o.Cancel(), order.ErrInvalidStateTransition)
	})

	t.Run("refund requires a paid stage", func(t *testing.T) {
		o := newPlacedOrder(t)
		require.ErrorIs(t, o.Refund(), order.ErrInvalidStateTransition)

		require.NoError(t, o.Pay())
		require.NoError(t, o.Refund())
		assert.Equal(t, order.Refunded, o.Status())
	})
}
