// backend/internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is the persistence port for carts and their lines.
// Methods participate in a transaction when one is carried in ctx.
type Repository interface {
	// GetByUserID returns the user's cart with its lines loaded, or nil
	// when the user has no cart yet.
	GetByUserID(ctx context.Context, userID string) (*Cart, error)

	// Create persists a new, empty cart.
	Create(ctx context.Context, c *Cart) error

	// UpsertLine inserts a line or increments the quantity of the
	// existing (cart, product) line.
	UpsertLine(ctx context.Context, cartID, productID string, qty int) error

	// SetLineQty replaces the quantity of an existing line; returns
	// ErrLineNotFound when the product is not in the cart.
	SetLineQty(ctx context.Context, cartID, productID string, qty int) error

	// RemoveLine deletes a line; returns ErrLineNotFound when absent.
	RemoveLine(ctx context.Context, cartID, productID string) error

	// ClearLines deletes all lines of the cart. The cart row survives.
	ClearLines(ctx context.Context, cartID string) error
}
