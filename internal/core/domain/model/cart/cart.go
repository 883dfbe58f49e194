// Package cart models the buyer's pending line items. The cart belongs to the
// storefront's cart collaborator; checkout consumes it read-only, converts its
// lines into immutable order items, and asks the repository to clear it.
package cart

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	// ErrEmptyCart rejects a checkout attempt on a cart without line items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrItemIsNotConstructed indicates an Item was not created through NewItem.
	ErrItemIsNotConstructed = errs.NewValueIsRequiredError("cart Item must be created via NewItem")
)

// Item is a single cart line: product, quantity, and the unit price snapshot
// taken when the line was added. The snapshot, not the live catalog price,
// is what checkout copies onto the order.
type Item struct {
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates a cart line with a positive quantity and a price snapshot.
func NewItem(productID kernel.UUID, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := unitPrice.Validate(); err != nil {
		return Item{}, err
	}

	return Item{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Item was created via NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the referenced product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the line quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the add-time price snapshot.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Cart is a buyer's set of pending lines, read-only from checkout's
// perspective.
type Cart struct {
	ownerID kernel.UUID
	items   []Item

	isConstructed bool
}

// NewCart assembles a cart for a buyer. An empty item list is allowed here;
// emptiness is rejected at checkout, not at construction.
func NewCart(ownerID kernel.UUID, items []Item) (*Cart, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Cart{
		ownerID:       ownerID,
		items:         append([]Item(nil), items...),
		isConstructed: true,
	}, nil
}

// Validate ensures the Cart was created via NewCart.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return errs.NewValueIsRequiredError("Cart must be created via NewCart constructor")
	}
	return nil
}

// OwnerID returns the buyer the cart belongs to.
func (c *Cart) OwnerID() kernel.UUID {
	return c.ownerID
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}
