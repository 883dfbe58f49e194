package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetAvailableStockQueryHandler reads the stock counter for a product the
// catalog knows. An unknown product is an ObjectNotFoundError; a known
// product without a stock record reports zero availability, since stock
// records are created lazily on the first reservation.
type GetAvailableStockQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableStockQueryHandler creates a handler for availability reads.
func NewGetAvailableStockQueryHandler(db *gorm.DB) GetAvailableStockQueryHandler {
	return GetAvailableStockQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAvailableStockQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableStockQuery,
) (GetAvailableStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAvailableStockQueryResponse{}, err
	}

	var known int
	row := h.db.WithContext(ctx).Raw(`
		SELECT count(1)
		FROM products
		WHERE id = ?
	`, query.ProductID().Bytes()).Row()
	if err := row.Scan(&known); err != nil {
		return GetAvailableStockQueryResponse{}, err
	}
	if known == 0 {
		return GetAvailableStockQueryResponse{},
			errs.NewObjectNotFoundError("product", query.ProductID())
	}

	response := GetAvailableStockQueryResponse{ProductID: query.ProductID()}

	var quantity int
	row = h.db.WithContext(ctx).Raw(`
		SELECT quantity
		FROM stock_records
		WHERE product_id = ?
	`, query.ProductID().Bytes()).Row()

	err := row.Scan(&quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return response, nil
		}
		return GetAvailableStockQueryResponse{}, err
	}

	response.Quantity = quantity
	return response, nil
}
