// backend/internal/adapters/out/db/order_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	dbcommon "github.com/TheRipper284/backend/internal/adapters/out/db/common"
	orderdom "github.com/TheRipper284/backend/internal/domain/order"
)

// PostgreSQL implementation of order.Repository.
type OrderRepositoryPG struct {
	DB *sql.DB
}

func NewOrderRepositoryPG(db *sql.DB) *OrderRepositoryPG {
	return &OrderRepositoryPG{DB: db}
}

func (r *OrderRepositoryPG) Create(ctx context.Context, o orderdom.Order) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
INSERT INTO orders (
  id, buyer_id, total_amount, shipping_address, status,
  payment_method, payment_ref, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := run.ExecContext(ctx, q,
		strings.TrimSpace(o.ID),
		strings.TrimSpace(o.BuyerID),
		o.TotalAmount,
		strings.TrimSpace(o.ShippingAddress),
		strings.TrimSpace(string(o.Status)),
		strings.TrimSpace(o.PaymentMethod),
		dbcommon.ToDBText(o.PaymentRef),
		o.CreatedAt.UTC(),
		o.UpdatedAt.UTC(),
	)
	if err != nil && dbcommon.IsUniqueViolation(err) {
		return errors.New("order: conflict")
	}
	return err
}

func (r *OrderRepositoryPG) CreateItems(ctx context.Context, items []orderdom.Item) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
INSERT INTO order_items (id, order_id, product_id, quantity, price)
VALUES ($1, $2, $3, $4, $5)`
	for _, it := range items {
		_, err := run.ExecContext(ctx, q,
			strings.TrimSpace(it.ID),
			strings.TrimSpace(it.OrderID),
			strings.TrimSpace(it.ProductID),
			it.Quantity,
			it.UnitPrice,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepositoryPG) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
SELECT id, buyer_id, total_amount, shipping_address, status,
       payment_method, payment_ref, created_at, updated_at
FROM orders
WHERE id = $1`
	row := run.QueryRowContext(ctx, q, strings.TrimSpace(id))
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}
	return o, nil
}

func (r *OrderRepositoryPG) ListByBuyer(ctx context.Context, buyerID string) ([]orderdom.Summary, error) {
	const q = `
SELECT o.id, o.buyer_id, o.total_amount, o.shipping_address, o.status,
       o.payment_method, o.payment_ref, o.created_at, o.updated_at,
       COUNT(oi.id), COALESCE(SUM(oi.quantity), 0)
FROM orders o
JOIN order_items oi ON o.id = oi.order_id
WHERE o.buyer_id = $1
GROUP BY o.id
ORDER BY o.created_at DESC`
	return r.querySummaries(ctx, q, strings.TrimSpace(buyerID))
}

func (r *OrderRepositoryPG) ListBySeller(ctx context.Context, sellerID string) ([]orderdom.Summary, error) {
	const q = `
SELECT o.id, o.buyer_id, o.total_amount, o.shipping_address, o.status,
       o.payment_method, o.payment_ref, o.created_at, o.updated_at,
       COUNT(oi.id), COALESCE(SUM(oi.quantity), 0)
FROM orders o
JOIN order_items oi ON o.id = oi.order_id
JOIN products p ON oi.product_id = p.id
WHERE p.seller_id = $1
GROUP BY o.id
ORDER BY o.created_at DESC`
	return r.querySummaries(ctx, q, strings.TrimSpace(sellerID))
}

func (r *OrderRepositoryPG) ListAll(ctx context.Context) ([]orderdom.Summary, error) {
	const q = `
SELECT o.id, o.buyer_id, o.total_amount, o.shipping_address, o.status,
       o.payment_method, o.payment_ref, o.created_at, o.updated_at,
       COUNT(oi.id), COALESCE(SUM(oi.quantity), 0)
FROM orders o
JOIN order_items oi ON o.id = oi.order_id
GROUP BY o.id
ORDER BY o.created_at DESC`
	return r.querySummaries(ctx, q)
}

func (r *OrderRepositoryPG) querySummaries(ctx context.Context, q string, args ...any) ([]orderdom.Summary, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	rows, err := run.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []orderdom.Summary
	for rows.Next() {
		var s orderdom.Summary
		var (
			paymentRefNS         sql.NullString
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&s.ID, &s.BuyerID, &s.TotalAmount, &s.ShippingAddress, &s.Status,
			&s.PaymentMethod, &paymentRefNS, &createdAt, &updatedAt,
			&s.ItemCount, &s.TotalItems); err != nil {
			return nil, err
		}
		s.PaymentRef = dbcommon.FromNullString(paymentRefNS)
		s.CreatedAt = createdAt.UTC()
		s.UpdatedAt = updatedAt.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *OrderRepositoryPG) Items(ctx context.Context, orderID string) ([]orderdom.ItemDetail, error) {
	const q = `
SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
       p.title, p.seller_id, u.name
FROM order_items oi
JOIN products p ON oi.product_id = p.id
JOIN users u ON p.seller_id = u.id
WHERE oi.order_id = $1
ORDER BY oi.id`
	return r.queryItems(ctx, q, strings.TrimSpace(orderID))
}

func (r *OrderRepositoryPG) SellerItems(ctx context.Context, orderID, sellerID string) ([]orderdom.ItemDetail, error) {
	const q = `
SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
       p.title, p.seller_id, u.name
FROM order_items oi
JOIN products p ON oi.product_id = p.id
JOIN users u ON p.seller_id = u.id
WHERE oi.order_id = $1 AND p.seller_id = $2
ORDER BY oi.id`
	return r.queryItems(ctx, q, strings.TrimSpace(orderID), strings.TrimSpace(sellerID))
}

func (r *OrderRepositoryPG) SellerHasItems(ctx context.Context, orderID, sellerID string) (bool, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
SELECT COUNT(*)
FROM order_items oi
JOIN products p ON oi.product_id = p.id
WHERE oi.order_id = $1 AND p.seller_id = $2`
	var count int
	if err := run.QueryRowContext(ctx, q, strings.TrimSpace(orderID), strings.TrimSpace(sellerID)).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *OrderRepositoryPG) UpdateStatus(ctx context.Context, orderID string, status orderdom.Status, now time.Time) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
UPDATE orders
SET status = $2, updated_at = $3
WHERE id = $1`
	res, err := run.ExecContext(ctx, q, strings.TrimSpace(orderID), string(status), now.UTC())
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return orderdom.ErrNotFound
	}
	return nil
}

func (r *OrderRepositoryPG) queryItems(ctx context.Context, q string, args ...any) ([]orderdom.ItemDetail, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	rows, err := run.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []orderdom.ItemDetail
	for rows.Next() {
		var (
			it    orderdom.ItemDetail
			price decimal.Decimal
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &price,
			&it.ProductTitle, &it.SellerID, &it.SellerName); err != nil {
			return nil, err
		}
		it.UnitPrice = price
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanOrder(s dbcommon.RowScanner) (orderdom.Order, error) {
	var (
		id, buyerID, shippingAddress, status, paymentMethod string
		paymentRefNS                                        sql.NullString
		total                                               decimal.Decimal
		createdAt, updatedAt                                time.Time
	)
	if err := s.Scan(&id, &buyerID, &total, &shippingAddress, &status,
		&paymentMethod, &paymentRefNS, &createdAt, &updatedAt); err != nil {
		return orderdom.Order{}, err
	}

	return orderdom.Order{
		ID:              strings.TrimSpace(id),
		BuyerID:         strings.TrimSpace(buyerID),
		TotalAmount:     total,
		ShippingAddress: strings.TrimSpace(shippingAddress),
		Status:          orderdom.Status(strings.TrimSpace(status)),
		PaymentMethod:   strings.TrimSpace(paymentMethod),
		PaymentRef:      dbcommon.FromNullString(paymentRefNS),
		CreatedAt:       createdAt.UTC(),
		UpdatedAt:       updatedAt.UTC(),
	}, nil
}
