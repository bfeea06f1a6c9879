// backend/internal/domain/order/repository_port.go
package order

import (
	"context"
	"time"
)

// Repository is the persistence port for orders and their items.
// Write methods participate in a transaction when one is carried in ctx.
type Repository interface {
	// Create inserts the order row.
	Create(ctx context.Context, o Order) error

	// CreateItems inserts the order's items.
	CreateItems(ctx context.Context, items []Item) error

	// GetByID returns ErrNotFound when the order does not exist.
	GetByID(ctx context.Context, id string) (Order, error)

	// ListByBuyer returns the buyer's orders, newest first, with item
	// aggregates.
	ListByBuyer(ctx context.Context, buyerID string) ([]Summary, error)

	// ListBySeller returns orders containing at least one of the
	// seller's products, newest first.
	ListBySeller(ctx context.Context, sellerID string) ([]Summary, error)

	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]Summary, error)

	// Items returns all items of the order with product/seller context.
	Items(ctx context.Context, orderID string) ([]ItemDetail, error)

	// SellerItems returns only the items whose product belongs to sellerID.
	SellerItems(ctx context.Context, orderID, sellerID string) ([]ItemDetail, error)

	// SellerHasItems reports whether at least one item of the order
	// references a product owned by sellerID.
	SellerHasItems(ctx context.Context, orderID, sellerID string) (bool, error)

	// UpdateStatus persists a new status and update timestamp; returns
	// ErrNotFound when the order does not exist.
	UpdateStatus(ctx context.Context, orderID string, status Status, now time.Time) error
}
