// backend/internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("order: not found")
	ErrInvalidOrder  = errors.New("order: invalid")
	ErrInvalidStatus = errors.New("order: invalid status")
)

// Status of an order. The set is closed; any member-to-member transition is
// accepted by the status update operation (no directed graph is enforced).
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates membership in the status set.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, nil
	case StatusPaid:
		return StatusPaid, nil
	case StatusShipped:
		return StatusShipped, nil
	case StatusDelivered:
		return StatusDelivered, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Item is one order line. UnitPrice is the price captured at purchase
// time; it never changes when the product's price does.
type Item struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal is quantity times the captured unit price.
func (it Item) Subtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// ItemDetail is an item joined with product/seller context, as returned
// by order queries.
type ItemDetail struct {
	Item

	ProductTitle string
	SellerID     string
	SellerName   string
}

// Summary is an order row with item aggregates, as returned by the
// role-scoped listings.
type Summary struct {
	Order

	// ItemCount is the number of distinct lines; TotalItems sums their
	// quantities.
	ItemCount  int
	TotalItems int
}

// Order is the immutable-after-creation record of a checkout. Only the
// status (and its timestamp) may change afterwards.
type Order struct {
	ID      string
	BuyerID string

	// TotalAmount is the price snapshot at order time.
	TotalAmount     decimal.Decimal
	ShippingAddress string
	Status          Status
	PaymentMethod   string
	PaymentRef      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New builds a pending order.
func New(id, buyerID string, total decimal.Decimal, shippingAddress, paymentMethod string, paymentRef *string, now time.Time) (Order, error) {
	method := strings.TrimSpace(paymentMethod)
	if method == "" {
		method = "cash"
	}
	o := Order{
		ID:              strings.TrimSpace(id),
		BuyerID:         strings.TrimSpace(buyerID),
		TotalAmount:     total,
		ShippingAddress: strings.TrimSpace(shippingAddress),
		Status:          StatusPending,
		PaymentMethod:   method,
		PaymentRef:      trimPtr(paymentRef),
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (o Order) validate() error {
	if o.ID == "" || o.BuyerID == "" {
		return ErrInvalidOrder
	}
	if o.TotalAmount.IsNegative() {
		return ErrInvalidOrder
	}
	if o.ShippingAddress == "" {
		return ErrInvalidOrder
	}
	if _, err := ParseStatus(string(o.Status)); err != nil {
		return err
	}
	if o.CreatedAt.IsZero() {
		return ErrInvalidOrder
	}
	return nil
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
