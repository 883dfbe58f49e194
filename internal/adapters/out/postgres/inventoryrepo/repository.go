// Package inventoryrepo persists stock records with optimistic concurrency.
// Every successful save bumps the row's version; a save against a stale
// version affects zero rows and is reported as a version conflict so the
// caller's retry loop can re-read and try again.
package inventoryrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/retry"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockRecordDTO represents the database structure for persisting stock
// records.
type StockRecordDTO struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
	Version   int64
}

// TableName specifies the database table name for stock records.
func (StockRecordDTO) TableName() string {
	return "stock_records"
}

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM stock repository.
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Add saves a new stock record at its current version.
func (r *GormInventoryRepository) Add(ctx context.Context, record *inventory.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := StockRecordDTO{
		ProductID: record.ProductID().Bytes(),
		Quantity:  record.Quantity(),
		Version:   record.Version(),
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves the stock record for a product.
func (r *GormInventoryRepository) Get(ctx context.Context, productID kernel.UUID) (*inventory.Record, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dto StockRecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "product_id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stock record", productID.String())
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreRecord(id, dto.Quantity, dto.Version)
}

// Save writes the record's quantity conditioned on the version it was read
// at and bumps the version. Zero affected rows means another writer committed
// first; that is surfaced as retry.ErrVersionConflict.
func (r *GormInventoryRepository) Save(ctx context.Context, record *inventory.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&StockRecordDTO{}).
		Where("product_id = ? AND version = ?", record.ProductID().Bytes(), record.Version()).
		Updates(map[string]any{
			"quantity": record.Quantity(),
			"version":  record.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return retry.ErrVersionConflict
	}

	return nil
}
