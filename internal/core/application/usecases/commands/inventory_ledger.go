package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// InventoryLedger coordinates stock movements against the versioned stock
// repository. It is the only code path that mutates stock quantities; command
// handlers hand it the repository bound to their current transaction so the
// movement commits or rolls back with the rest of the command.
//
// A movement for a product the catalog does not know fails with
// ObjectNotFoundError; a known product without a stock record behaves as
// zero stock.
type InventoryLedger struct {
	products ports.ProductRepository
}

// NewInventoryLedger creates a ledger over the catalog read model.
func NewInventoryLedger(products ports.ProductRepository) InventoryLedger {
	return InventoryLedger{products: products}
}

// Reserve takes qty units off the product's available stock.
// Returns inventory.ErrInsufficientStock when not enough is available and
// retry.ErrVersionConflict when a concurrent reservation committed first.
func (l InventoryLedger) Reserve(
	ctx context.Context,
	stock ports.InventoryRepository,
	productID kernel.UUID,
	qty int,
) error {
	record, err := l.get(ctx, stock, productID)
	if err != nil {
		return err
	}

	if err = record.Reserve(qty); err != nil {
		return err
	}

	return stock.Save(ctx, record)
}

// Release returns qty units to the product's available stock. Used when a
// placed order is cancelled or refunded.
func (l InventoryLedger) Release(
	ctx context.Context,
	stock ports.InventoryRepository,
	productID kernel.UUID,
	qty int,
) error {
	record, err := stock.Get(ctx, productID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		// Stock row vanished after the original reservation. Recreate it so
		// the released units are not lost.
		if err = l.ensureProduct(ctx, productID); err != nil {
			return err
		}
		record, err = inventory.NewRecord(productID)
		if err != nil {
			return err
		}
		if err = record.Release(qty); err != nil {
			return err
		}
		return stock.Add(ctx, record)
	}
	if err != nil {
		return err
	}

	if err = record.Release(qty); err != nil {
		return err
	}

	return stock.Save(ctx, record)
}

// Available reports the product's current available quantity. A known
// product without a stock record reports zero.
func (l InventoryLedger) Available(
	ctx context.Context,
	stock ports.InventoryRepository,
	productID kernel.UUID,
) (int, error) {
	record, err := l.get(ctx, stock, productID)
	if err != nil {
		return 0, err
	}
	return record.Quantity(), nil
}

// get loads the product's stock record, falling back to a fresh zero-quantity
// record when the product exists but has never been stocked.
func (l InventoryLedger) get(
	ctx context.Context,
	stock ports.InventoryRepository,
	productID kernel.UUID,
) (*inventory.Record, error) {
	record, err := stock.Get(ctx, productID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		if err = l.ensureProduct(ctx, productID); err != nil {
			return nil, err
		}
		return inventory.NewRecord(productID)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (l InventoryLedger) ensureProduct(ctx context.Context, productID kernel.UUID) error {
	exists, err := l.products.Exists(ctx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("product", productID)
	}
	return nil
}
