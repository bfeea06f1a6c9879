// backend/internal/domain/product/repository_port.go
package product

import "context"

// Reader is the read-only subset used by display paths. The Redis cache
// adapter implements it on top of the repository; checkout reads the
// repository directly because stock must be fresh.
type Reader interface {
	// GetByID returns ErrNotFound when the product does not exist.
	GetByID(ctx context.Context, id string) (Product, error)
}

// Repository is the persistence port for products.
type Repository interface {
	Reader

	// DecrementStock subtracts qty from the product's stock only if the
	// current stock covers it; otherwise it returns ErrInsufficientStock
	// and leaves the row untouched. Runs inside the caller's transaction
	// when one is carried in ctx.
	DecrementStock(ctx context.Context, id string, qty int) error
}
