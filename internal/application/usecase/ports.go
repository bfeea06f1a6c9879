// backend/internal/application/usecase/ports.go
package usecase

import (
	"context"
	"time"
)

// TxManager runs fn inside one atomic unit of work. The transaction is
// carried in the ctx passed to fn; repositories pick it up transparently.
// An error from fn rolls everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// OrderCreatedEvent is published after a checkout commits.
type OrderCreatedEvent struct {
	OrderID     string           `json:"orderId"`
	BuyerID     string           `json:"buyerId"`
	TotalAmount string           `json:"totalAmount"`
	Items       []OrderEventItem `json:"items"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// OrderEventItem is one line of an order event payload.
type OrderEventItem struct {
	ProductID string `json:"productId"`
	SellerID  string `json:"sellerId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// OrderStatusChangedEvent is published after a status update commits.
type OrderStatusChangedEvent struct {
	OrderID   string    `json:"orderId"`
	BuyerID   string    `json:"buyerId"`
	NewStatus string    `json:"newStatus"`
	ChangedAt time.Time `json:"changedAt"`
}

// OrderEventPublisher fans order lifecycle events out to the message
// broker. Publishing happens post-commit and is best-effort.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, evt OrderCreatedEvent) error
	PublishStatusChanged(ctx context.Context, evt OrderStatusChangedEvent) error
}

// Mailer sends a plain-text mail to one recipient. Best-effort.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ProductCache invalidates cached product entries after stock changes.
type ProductCache interface {
	Invalidate(ctx context.Context, productIDs ...string) error
}
