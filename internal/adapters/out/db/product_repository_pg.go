// backend/internal/adapters/out/db/product_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	dbcommon "github.com/TheRipper284/backend/internal/adapters/out/db/common"
	productdom "github.com/TheRipper284/backend/internal/domain/product"
)

// PostgreSQL implementation of product.Repository.
type ProductRepositoryPG struct {
	DB *sql.DB
}

func NewProductRepositoryPG(db *sql.DB) *ProductRepositoryPG {
	return &ProductRepositoryPG{DB: db}
}

func (r *ProductRepositoryPG) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
SELECT id, seller_id, title, description, price, stock, status, created_at, updated_at
FROM products
WHERE id = $1`
	row := run.QueryRowContext(ctx, q, strings.TrimSpace(id))
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	return p, nil
}

// DecrementStock is the conditional decrement closing the race between
// the checkout pre-check and the write unit: the guard re-validates stock
// atomically, and zero affected rows means the stock no longer covers the
// requested quantity.
func (r *ProductRepositoryPG) DecrementStock(ctx context.Context, id string, qty int) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
UPDATE products
SET stock = stock - $2, updated_at = NOW()
WHERE id = $1 AND stock >= $2`
	res, err := run.ExecContext(ctx, q, strings.TrimSpace(id), qty)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return productdom.ErrInsufficientStock
	}
	return nil
}

func scanProduct(s dbcommon.RowScanner) (productdom.Product, error) {
	var (
		id, sellerID, title, status string
		descriptionNS               sql.NullString
		price                       decimal.Decimal
		stock                       int
		createdAt, updatedAt        time.Time
	)
	if err := s.Scan(&id, &sellerID, &title, &descriptionNS, &price, &stock, &status, &createdAt, &updatedAt); err != nil {
		return productdom.Product{}, err
	}

	description := ""
	if descriptionNS.Valid {
		description = descriptionNS.String
	}

	return productdom.Product{
		ID:          strings.TrimSpace(id),
		SellerID:    strings.TrimSpace(sellerID),
		Title:       strings.TrimSpace(title),
		Description: description,
		Price:       price,
		Stock:       stock,
		Status:      productdom.Status(strings.TrimSpace(status)),
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   updatedAt.UTC(),
	}, nil
}
