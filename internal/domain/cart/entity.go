// backend/internal/domain/cart/entity.go
package cart

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidCart  = errors.New("cart: invalid")
	ErrLineNotFound = errors.New("cart: line not found")
)

// Line is one line item of a cart. Uniqueness is defined by (cartId,
// productId): adding the same product again increments Qty instead of
// creating a second line.
type Line struct {
	ID        string
	CartID    string
	ProductID string
	Qty       int
}

// Cart is the per-user staging area. One cart per user, created lazily on
// first access and never deleted; an order consumes its lines, not the cart.
type Cart struct {
	ID     string
	UserID string

	Lines []Line

	CreatedAt time.Time
}

// New creates an empty cart for userID.
func New(id, userID string, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:        strings.TrimSpace(id),
		UserID:    strings.TrimSpace(userID),
		Lines:     []Line{},
		CreatedAt: now.UTC(),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add increments qty for productID, merging into an existing line when
// present. qty must be >= 1.
func (c *Cart) Add(lineID, productID string, qty int) error {
	if c == nil {
		return ErrInvalidCart
	}
	pid := strings.TrimSpace(productID)
	if pid == "" || qty <= 0 {
		return ErrInvalidCart
	}

	if idx := c.lineIndex(pid); idx >= 0 {
		c.Lines[idx].Qty += qty
		return nil
	}
	c.Lines = append(c.Lines, Line{
		ID:        strings.TrimSpace(lineID),
		CartID:    c.ID,
		ProductID: pid,
		Qty:       qty,
	})
	return nil
}

// SetQty replaces the quantity of an existing line. qty must be >= 1;
// removal is explicit via Remove.
func (c *Cart) SetQty(productID string, qty int) error {
	if c == nil {
		return ErrInvalidCart
	}
	pid := strings.TrimSpace(productID)
	if pid == "" || qty <= 0 {
		return ErrInvalidCart
	}
	idx := c.lineIndex(pid)
	if idx < 0 {
		return ErrLineNotFound
	}
	c.Lines[idx].Qty = qty
	return nil
}

// Remove drops the line for productID.
func (c *Cart) Remove(productID string) error {
	if c == nil {
		return ErrInvalidCart
	}
	pid := strings.TrimSpace(productID)
	idx := c.lineIndex(pid)
	if idx < 0 {
		return ErrLineNotFound
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
	return nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Lines) == 0
}

func (c *Cart) lineIndex(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.UserID) == "" {
		return ErrInvalidCart
	}
	for _, l := range c.Lines {
		if strings.TrimSpace(l.ProductID) == "" || l.Qty <= 0 {
			return ErrInvalidCart
		}
	}
	return nil
}

// NormalizeLines merges duplicate product lines and returns them in a
// stable order. Repositories use it when assembling a cart from rows.
func NormalizeLines(src []Line) []Line {
	merged := map[string]Line{}
	for _, l := range src {
		pid := strings.TrimSpace(l.ProductID)
		if pid == "" || l.Qty <= 0 {
			continue
		}
		if exist, ok := merged[pid]; ok {
			exist.Qty += l.Qty
			merged[pid] = exist
		} else {
			l.ProductID = pid
			merged[pid] = l
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Line, 0, len(keys))
	for _, k := range keys {
		out = append(out, merged[k])
	}
	return out
}
