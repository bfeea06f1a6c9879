// backend/internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartdom "github.com/TheRipper284/backend/internal/domain/cart"
	notifdom "github.com/TheRipper284/backend/internal/domain/notification"
	orderdom "github.com/TheRipper284/backend/internal/domain/order"
	productdom "github.com/TheRipper284/backend/internal/domain/product"
	userdom "github.com/TheRipper284/backend/internal/domain/user"
)

// CheckoutUsecase turns a user's cart into a persisted order: one atomic
// unit of work covering the order row, its items, the stock decrements,
// the seller notifications and the cart clearing.
type CheckoutUsecase struct {
	tx            TxManager
	carts         cartdom.Repository
	products      productdom.Repository
	orders        orderdom.Repository
	notifications notifdom.Repository
	users         userdom.Repository

	// Post-commit collaborators; all optional (nil disables).
	events OrderEventPublisher
	mailer Mailer
	cache  ProductCache

	now   func() time.Time
	newID func() string
}

func NewCheckoutUsecase(
	tx TxManager,
	carts cartdom.Repository,
	products productdom.Repository,
	orders orderdom.Repository,
	notifications notifdom.Repository,
	users userdom.Repository,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:            tx,
		carts:         carts,
		products:      products,
		orders:        orders,
		notifications: notifications,
		users:         users,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// WithEvents attaches the post-commit event publisher.
func (c *CheckoutUsecase) WithEvents(p OrderEventPublisher) *CheckoutUsecase {
	c.events = p
	return c
}

// WithMailer attaches the buyer confirmation mailer.
func (c *CheckoutUsecase) WithMailer(m Mailer) *CheckoutUsecase {
	c.mailer = m
	return c
}

// WithCache attaches the product cache for post-commit invalidation.
func (c *CheckoutUsecase) WithCache(pc ProductCache) *CheckoutUsecase {
	c.cache = pc
	return c
}

type CreateOrderInput struct {
	BuyerID         string
	ShippingAddress string
	PaymentMethod   string
	PaymentRef      *string
}

// OrderSummary is the checkout result.
type OrderSummary struct {
	OrderID     string
	TotalAmount decimal.Decimal
}

// purchaseLine is a cart line joined with the product snapshot read before
// the write unit. Unit price is captured here, never re-read.
type purchaseLine struct {
	productID string
	sellerID  string
	title     string
	qty       int
	unitPrice decimal.Decimal
}

// CreateOrder implements the order transaction engine.
//
// Validation happens up front: empty cart, then a stock pre-check across
// all lines. The write unit re-validates stock atomically through the
// conditional decrement, so a concurrent checkout racing for the last
// units can only make one of the two commit.
func (c *CheckoutUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderSummary, error) {
	buyerID := strings.TrimSpace(in.BuyerID)
	shipping := strings.TrimSpace(in.ShippingAddress)
	if buyerID == "" || shipping == "" {
		return OrderSummary{}, ErrInvalidArgument
	}

	cart, err := c.carts.GetByUserID(ctx, buyerID)
	if err != nil {
		return OrderSummary{}, err
	}
	if cart.Empty() {
		return OrderSummary{}, ErrEmptyCart
	}

	lines := make([]purchaseLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		p, err := c.products.GetByID(ctx, l.ProductID)
		if err != nil {
			return OrderSummary{}, err
		}
		if p.Stock < l.Qty {
			return OrderSummary{}, &InsufficientStockError{
				ProductID: p.ID,
				Title:     p.Title,
				Available: p.Stock,
			}
		}
		lines = append(lines, purchaseLine{
			productID: p.ID,
			sellerID:  p.SellerID,
			title:     p.Title,
			qty:       l.Qty,
			unitPrice: p.Price,
		})
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.unitPrice.Mul(decimal.NewFromInt(int64(l.qty))))
	}

	now := c.now().UTC()
	o, err := orderdom.New(c.newID(), buyerID, total, shipping, in.PaymentMethod, in.PaymentRef, now)
	if err != nil {
		return OrderSummary{}, err
	}

	txErr := c.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := c.orders.Create(txCtx, o); err != nil {
			return err
		}

		items := make([]orderdom.Item, 0, len(lines))
		for _, l := range lines {
			items = append(items, orderdom.Item{
				ID:        c.newID(),
				OrderID:   o.ID,
				ProductID: l.productID,
				Quantity:  l.qty,
				UnitPrice: l.unitPrice,
			})
		}
		if err := c.orders.CreateItems(txCtx, items); err != nil {
			return err
		}

		for _, l := range lines {
			if err := c.products.DecrementStock(txCtx, l.productID, l.qty); err != nil {
				if errors.Is(err, productdom.ErrInsufficientStock) {
					// Lost the race since the pre-check; report fresh availability.
					avail := 0
					if p, perr := c.products.GetByID(txCtx, l.productID); perr == nil {
						avail = p.Stock
					}
					return &InsufficientStockError{ProductID: l.productID, Title: l.title, Available: avail}
				}
				return err
			}
		}

		for _, sellerID := range distinctSellers(lines) {
			title := firstTitleBySeller(lines, sellerID)
			n, err := notifdom.New(
				c.newID(),
				sellerID,
				notifdom.TypeOrder,
				fmt.Sprintf("New order received for your product %q", title),
				&o.ID,
				now,
			)
			if err != nil {
				return err
			}
			if err := c.notifications.Create(txCtx, n); err != nil {
				return err
			}
		}

		return c.carts.ClearLines(txCtx, cart.ID)
	})
	if txErr != nil {
		var stockErr *InsufficientStockError
		if errors.As(txErr, &stockErr) {
			return OrderSummary{}, stockErr
		}
		return OrderSummary{}, fmt.Errorf("%w: %v", ErrTransactionFailed, txErr)
	}

	c.afterCheckout(ctx, o, lines)

	return OrderSummary{OrderID: o.ID, TotalAmount: total}, nil
}

// afterCheckout runs the best-effort post-commit fanout: cache
// invalidation, order event, confirmation mail. Failures are logged, never
// surfaced; the order is already durable.
func (c *CheckoutUsecase) afterCheckout(ctx context.Context, o orderdom.Order, lines []purchaseLine) {
	if c.cache != nil {
		ids := make([]string, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.productID)
		}
		if err := c.cache.Invalidate(ctx, ids...); err != nil {
			log.Printf("[checkout] cache invalidate failed for order %s: %v", o.ID, err)
		}
	}

	if c.events != nil {
		evt := OrderCreatedEvent{
			OrderID:     o.ID,
			BuyerID:     o.BuyerID,
			TotalAmount: o.TotalAmount.String(),
			CreatedAt:   o.CreatedAt,
		}
		for _, l := range lines {
			evt.Items = append(evt.Items, OrderEventItem{
				ProductID: l.productID,
				SellerID:  l.sellerID,
				Quantity:  l.qty,
				UnitPrice: l.unitPrice.String(),
			})
		}
		if err := c.events.PublishOrderCreated(ctx, evt); err != nil {
			log.Printf("[checkout] order.created publish failed for order %s: %v", o.ID, err)
		}
	}

	if c.mailer != nil {
		buyer, err := c.users.GetByID(ctx, o.BuyerID)
		if err != nil {
			log.Printf("[checkout] buyer lookup for confirmation mail failed: %v", err)
			return
		}
		body := fmt.Sprintf("Thanks! Your order %s for a total of %s has been received.", o.ID, o.TotalAmount.StringFixed(2))
		if err := c.mailer.Send(ctx, buyer.Email, "Order confirmation", body); err != nil {
			log.Printf("[checkout] confirmation mail failed for order %s: %v", o.ID, err)
		}
	}
}

func distinctSellers(lines []purchaseLine) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, l := range lines {
		if _, ok := seen[l.sellerID]; ok {
			continue
		}
		seen[l.sellerID] = struct{}{}
		out = append(out, l.sellerID)
	}
	return out
}

func firstTitleBySeller(lines []purchaseLine, sellerID string) string {
	for _, l := range lines {
		if l.sellerID == sellerID {
			return l.title
		}
	}
	return ""
}
