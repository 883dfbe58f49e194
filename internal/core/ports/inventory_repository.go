package ports

import (
	"context"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for stock records.
// Writes are versioned: every successful save bumps the record's version,
// and a save against a stale version fails so the caller can re-read and
// retry instead of silently losing a concurrent reservation.
type InventoryRepository interface {
	// Add persists a new stock record at version zero.
	Add(ctx context.Context, record *inventory.Record) error

	// Get retrieves the stock record for a product.
	// Returns errs.ObjectNotFoundError when the product has no record.
	Get(ctx context.Context, productID kernel.UUID) (*inventory.Record, error)

	// Save persists the record's quantity conditioned on the version the
	// record was read at. Returns retry.ErrVersionConflict when another
	// writer committed first.
	Save(ctx context.Context, record *inventory.Record) error
}
