// backend/internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartdom "github.com/TheRipper284/backend/internal/domain/cart"
	productdom "github.com/TheRipper284/backend/internal/domain/product"
)

// CartUsecase coordinates cart operations. The cart is created lazily on
// first access and is never deleted afterwards.
type CartUsecase struct {
	carts cartdom.Repository

	// products validates availability with fresh stock; reader serves the
	// display join and may be the cached implementation.
	products productdom.Repository
	reader   productdom.Reader

	now   func() time.Time
	newID func() string
}

func NewCartUsecase(carts cartdom.Repository, products productdom.Repository, reader productdom.Reader) *CartUsecase {
	if reader == nil {
		reader = products
	}
	return &CartUsecase{
		carts:    carts,
		products: products,
		reader:   reader,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// LineView is a cart line joined with product display data.
type LineView struct {
	ProductID string
	Title     string
	UnitPrice decimal.Decimal
	Qty       int
}

// Items returns the cart content, creating the cart when absent.
func (u *CartUsecase) Items(ctx context.Context, userID string) ([]LineView, error) {
	c, err := u.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]LineView, 0, len(c.Lines))
	for _, l := range c.Lines {
		p, err := u.reader.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		out = append(out, LineView{
			ProductID: p.ID,
			Title:     p.Title,
			UnitPrice: p.Price,
			Qty:       l.Qty,
		})
	}
	return out, nil
}

// AddItem puts qty units of productID into the user's cart, merging into
// an existing line. The product must be active and the cart quantity may
// not exceed current stock.
func (u *CartUsecase) AddItem(ctx context.Context, userID, productID string, qty int) error {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" || qty <= 0 {
		return ErrInvalidArgument
	}

	p, err := u.products.GetByID(ctx, pid)
	if err != nil {
		return err
	}
	if !p.Purchasable() {
		return productdom.ErrNotFound
	}
	if p.Stock < qty {
		return &InsufficientStockError{ProductID: p.ID, Title: p.Title, Available: p.Stock}
	}

	c, err := u.getOrCreate(ctx, uid)
	if err != nil {
		return err
	}
	return u.carts.UpsertLine(ctx, c.ID, pid, qty)
}

// SetQty replaces the quantity of an existing line, re-checking stock.
func (u *CartUsecase) SetQty(ctx context.Context, userID, productID string, qty int) error {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" || qty <= 0 {
		return ErrInvalidArgument
	}

	p, err := u.products.GetByID(ctx, pid)
	if err != nil {
		return err
	}
	if p.Stock < qty {
		return &InsufficientStockError{ProductID: p.ID, Title: p.Title, Available: p.Stock}
	}

	c, err := u.carts.GetByUserID(ctx, uid)
	if err != nil {
		return err
	}
	if c == nil {
		return cartdom.ErrLineNotFound
	}
	return u.carts.SetLineQty(ctx, c.ID, pid, qty)
}

// Remove drops the line for productID from the user's cart.
func (u *CartUsecase) Remove(ctx context.Context, userID, productID string) error {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" {
		return ErrInvalidArgument
	}

	c, err := u.carts.GetByUserID(ctx, uid)
	if err != nil {
		return err
	}
	if c == nil {
		return cartdom.ErrLineNotFound
	}
	return u.carts.RemoveLine(ctx, c.ID, pid)
}

func (u *CartUsecase) getOrCreate(ctx context.Context, userID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrInvalidArgument
	}

	c, err := u.carts.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	c, err = cartdom.New(u.newID(), uid, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.carts.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
