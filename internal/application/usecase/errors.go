// backend/internal/application/usecase/errors.go
package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("usecase: invalid argument")

	// ErrEmptyCart is returned when checkout finds no cart or no lines.
	ErrEmptyCart = errors.New("checkout: cart is empty")

	// ErrForbidden is returned when the requester is authenticated but not
	// authorized for the operation.
	ErrForbidden = errors.New("orders: forbidden")

	// ErrTransactionFailed wraps infrastructure failures inside the write
	// unit. Nothing durable was written when it is returned.
	ErrTransactionFailed = errors.New("checkout: transaction failed")
)

// InsufficientStockError names the first product whose stock cannot cover
// the requested quantity, so clients can react precisely.
type InsufficientStockError struct {
	ProductID string
	Title     string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("checkout: insufficient stock for %q (available: %d)", e.Title, e.Available)
}
