// backend/internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("product: not found")
	ErrInvalidProduct    = errors.New("product: invalid")
	ErrInsufficientStock = errors.New("product: insufficient stock")
)

// Status mirrors the products.status column.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

// Product is read-mostly from the order core's perspective: the checkout
// engine reads price/stock/seller and only ever mutates stock, through the
// conditional decrement in the repository.
type Product struct {
	ID          string
	SellerID    string
	Title       string
	Description string

	// Price is exact decimal; monetary math must never go through float64.
	Price decimal.Decimal
	Stock int

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Purchasable reports whether the product can be added to a cart.
// Stock sufficiency is checked separately, per requested quantity.
func (p Product) Purchasable() bool {
	return p.Status == StatusActive
}

func (p Product) validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrInvalidProduct
	}
	if strings.TrimSpace(p.SellerID) == "" {
		return ErrInvalidProduct
	}
	if p.Stock < 0 {
		return ErrInvalidProduct
	}
	if p.Price.IsNegative() {
		return ErrInvalidProduct
	}
	return nil
}

// New normalizes and validates a product read model.
func New(id, sellerID, title, description string, price decimal.Decimal, stock int, status Status, createdAt, updatedAt time.Time) (Product, error) {
	p := Product{
		ID:          strings.TrimSpace(id),
		SellerID:    strings.TrimSpace(sellerID),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Price:       price,
		Stock:       stock,
		Status:      status,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   updatedAt.UTC(),
	}
	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}
