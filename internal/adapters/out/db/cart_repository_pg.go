// backend/internal/adapters/out/db/cart_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	dbcommon "github.com/TheRipper284/backend/internal/adapters/out/db/common"
	cartdom "github.com/TheRipper284/backend/internal/domain/cart"
)

// PostgreSQL implementation of cart.Repository.
type CartRepositoryPG struct {
	DB *sql.DB
}

func NewCartRepositoryPG(db *sql.DB) *CartRepositoryPG {
	return &CartRepositoryPG{DB: db}
}

func (r *CartRepositoryPG) GetByUserID(ctx context.Context, userID string) (*cartdom.Cart, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `
SELECT id, user_id, created_at
FROM carts
WHERE user_id = $1`
	var (
		id, uid   string
		createdAt time.Time
	)
	err := run.QueryRowContext(ctx, q, strings.TrimSpace(userID)).Scan(&id, &uid, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	lines, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}

	return &cartdom.Cart{
		ID:        strings.TrimSpace(id),
		UserID:    strings.TrimSpace(uid),
		Lines:     lines,
		CreatedAt: createdAt.UTC(),
	}, nil
}

func (r *CartRepositoryPG) Create(ctx context.Context, c *cartdom.Cart) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
INSERT INTO carts (id, user_id, created_at)
VALUES ($1, $2, $3)`
	_, err := run.ExecContext(ctx, q,
		strings.TrimSpace(c.ID),
		strings.TrimSpace(c.UserID),
		c.CreatedAt.UTC(),
	)
	if err != nil && dbcommon.IsUniqueViolation(err) {
		// Another request created the cart first; the row is equivalent.
		return nil
	}
	return err
}

func (r *CartRepositoryPG) UpsertLine(ctx context.Context, cartID, productID string, qty int) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
INSERT INTO cart_items (id, cart_id, product_id, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (cart_id, product_id) DO UPDATE SET
  quantity = cart_items.quantity + EXCLUDED.quantity`
	_, err := run.ExecContext(ctx, q,
		uuid.NewString(),
		strings.TrimSpace(cartID),
		strings.TrimSpace(productID),
		qty,
	)
	return err
}

func (r *CartRepositoryPG) SetLineQty(ctx context.Context, cartID, productID string, qty int) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
UPDATE cart_items
SET quantity = $3
WHERE cart_id = $1 AND product_id = $2`
	res, err := run.ExecContext(ctx, q, strings.TrimSpace(cartID), strings.TrimSpace(productID), qty)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return cartdom.ErrLineNotFound
	}
	return nil
}

func (r *CartRepositoryPG) RemoveLine(ctx context.Context, cartID, productID string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2`
	res, err := run.ExecContext(ctx, q, strings.TrimSpace(cartID), strings.TrimSpace(productID))
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return cartdom.ErrLineNotFound
	}
	return nil
}

func (r *CartRepositoryPG) ClearLines(ctx context.Context, cartID string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	_, err := run.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, strings.TrimSpace(cartID))
	return err
}

func (r *CartRepositoryPG) lines(ctx context.Context, cartID string) ([]cartdom.Line, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
SELECT id, cart_id, product_id, quantity
FROM cart_items
WHERE cart_id = $1`
	rows, err := run.QueryContext(ctx, q, strings.TrimSpace(cartID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []cartdom.Line
	for rows.Next() {
		var l cartdom.Line
		if err := rows.Scan(&l.ID, &l.CartID, &l.ProductID, &l.Qty); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cartdom.NormalizeLines(lines), nil
}
