// Package cartrepo reads and clears buyer carts. Cart assembly (adding and
// removing lines) belongs to the cart service that owns this table; checkout
// only consumes the rows and deletes them on success.
package cartrepo

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItemDTO represents one cart line with its add-time price snapshot.
type CartItemDTO struct {
	OwnerID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
	Currency  string          `gorm:"type:varchar(3)"`
}

// TableName specifies the database table name for cart lines.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetByOwner retrieves the buyer's cart. A buyer without stored lines gets an
// empty, valid cart.
func (r *GormCartRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*cart.Cart, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CartItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "owner_id = ?", ownerID.Bytes()).Error; err != nil {
		return nil, err
	}

	items := make([]cart.Item, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}
		unitPrice, err := kernel.NewMoney(dto.UnitPrice, dto.Currency)
		if err != nil {
			return nil, err
		}
		item, err := cart.NewItem(productID, dto.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return cart.NewCart(ownerID, items)
}

// Clear removes every line from the buyer's cart.
func (r *GormCartRepository) Clear(ctx context.Context, ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&CartItemDTO{}, "owner_id = ?", ownerID.Bytes()).Error
}
