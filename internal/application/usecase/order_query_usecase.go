// backend/internal/application/usecase/order_query_usecase.go
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

	notifdom "github.com/TheRipper284/backend/internal/domain/notification"
	orderdom "github.com/TheRipper284/backend/internal/domain/order"
	userdom "github.com/TheRipper284/backend/internal/domain/user"
)

// OrderQueryUsecase serves role-scoped order retrieval and the status
// transition.
type OrderQueryUsecase struct {
	tx            TxManager
	orders        orderdom.Repository
	notifications notifdom.Repository
	users         userdom.Repository

	events OrderEventPublisher

	now   func() time.Time
	newID func() string
}

func NewOrderQueryUsecase(tx TxManager, orders orderdom.Repository, notifications notifdom.Repository, users userdom.Repository) *OrderQueryUsecase {
	return &OrderQueryUsecase{
		tx:            tx,
		orders:        orders,
		notifications: notifications,
		users:         users,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// WithEvents attaches the post-commit event publisher.
func (u *OrderQueryUsecase) WithEvents(p OrderEventPublisher) *OrderQueryUsecase {
	u.events = p
	return u
}

// OrderView is an order with the items visible to the requester. Total is
// role-scoped: for sellers it is the sum of their own line subtotals, not
// the order's grand total. Buyer is nil when the buyer row no longer
// exists.
type OrderView struct {
	Order orderdom.Order
	Items []orderdom.ItemDetail
	Buyer *userdom.User
	Total decimal.Decimal
}

// roleScope is one row of the strategy table: how a role gains visibility
// into an order, which items it may see, and which orders it may list.
type roleScope struct {
	visible     func(ctx context.Context, u *OrderQueryUsecase, o orderdom.Order, requesterID string) (bool, error)
	items       func(ctx context.Context, u *OrderQueryUsecase, o orderdom.Order, requesterID string) ([]orderdom.ItemDetail, error)
	list        func(ctx context.Context, u *OrderQueryUsecase, requesterID string) ([]orderdom.Summary, error)
	scopedTotal bool
}

var orderScopes = map[userdom.Role]roleScope{
	userdom.RoleBuyer: {
		visible: func(_ context.Context, _ *OrderQueryUsecase, o orderdom.Order, requesterID string) (bool, error) {
			return o.BuyerID == requesterID, nil
		},
		items: func(ctx context.Context, u *OrderQueryUsecase, o orderdom.Order, _ string) ([]orderdom.ItemDetail, error) {
			return u.orders.Items(ctx, o.ID)
		},
		list: func(ctx context.Context, u *OrderQueryUsecase, requesterID string) ([]orderdom.Summary, error) {
			return u.orders.ListByBuyer(ctx, requesterID)
		},
	},
	userdom.RoleSeller: {
		visible: func(ctx context.Context, u *OrderQueryUsecase, o orderdom.Order, requesterID string) (bool, error) {
			return u.orders.SellerHasItems(ctx, o.ID, requesterID)
		},
		items: func(ctx context.Context, u *OrderQueryUsecase, o orderdom.Order, requesterID string) ([]orderdom.ItemDetail, error) {
			return u.orders.SellerItems(ctx, o.ID, requesterID)
		},
		list: func(ctx context.Context, u *OrderQueryUsecase, requesterID string) ([]orderdom.Summary, error) {
			return u.orders.ListBySeller(ctx, requesterID)
		},
		scopedTotal: true,
	},
	userdom.RoleAdmin: {
		visible: func(context.Context, *OrderQueryUsecase, orderdom.Order, string) (bool, error) {
			return true, nil
		},
		items: func(ctx context.Context, u *OrderQueryUsecase, o orderdom.Order, _ string) ([]orderdom.ItemDetail, error) {
			return u.orders.Items(ctx, o.ID)
		},
		list: func(ctx context.Context, u *OrderQueryUsecase, _ string) ([]orderdom.Summary, error) {
			return u.orders.ListAll(ctx)
		},
	},
}

// ListOrders returns the orders visible to the requester, newest first:
// buyers their own, sellers those containing their products, admins all.
func (u *OrderQueryUsecase) ListOrders(ctx context.Context, requesterID string, role userdom.Role) ([]orderdom.Summary, error) {
	rid := strings.TrimSpace(requesterID)
	if rid == "" {
		return nil, ErrInvalidArgument
	}

	scope, ok := orderScopes[role]
	if !ok {
		return nil, ErrForbidden
	}
	return scope.list(ctx, u, rid)
}

// GetOrder returns the order as visible to the requester. Absent orders
// and orders the role-scoped check hides answer with the same
// order.ErrNotFound, so existence never leaks to unauthorized roles.
func (u *OrderQueryUsecase) GetOrder(ctx context.Context, requesterID string, role userdom.Role, orderID string) (OrderView, error) {
	rid := strings.TrimSpace(requesterID)
	oid := strings.TrimSpace(orderID)
	if rid == "" || oid == "" {
		return OrderView{}, ErrInvalidArgument
	}

	scope, ok := orderScopes[role]
	if !ok {
		return OrderView{}, orderdom.ErrNotFound
	}

	o, err := u.orders.GetByID(ctx, oid)
	if err != nil {
		return OrderView{}, err
	}

	visible, err := scope.visible(ctx, u, o, rid)
	if err != nil {
		return OrderView{}, err
	}
	if !visible {
		return OrderView{}, orderdom.ErrNotFound
	}

	items, err := scope.items(ctx, u, o, rid)
	if err != nil {
		return OrderView{}, err
	}

	// Buyer contact block; a since-deleted buyer row just leaves it nil.
	var buyer *userdom.User
	switch b, err := u.users.GetByID(ctx, o.BuyerID); {
	case err == nil:
		buyer = &b
	case !errors.Is(err, userdom.ErrNotFound):
		return OrderView{}, err
	}

	total := o.TotalAmount
	if scope.scopedTotal {
		total = decimal.Zero
		for _, it := range items {
			total = total.Add(it.Subtotal())
		}
	}

	return OrderView{Order: o, Items: items, Buyer: buyer, Total: total}, nil
}

// StatusChangeResult reports a successful status transition.
type StatusChangeResult struct {
	OrderID   string
	NewStatus orderdom.Status
}

// UpdateOrderStatus validates the target status, authorizes the requester
// (admin always; seller only with products in the order; everyone else
// forbidden, buyers included) and persists status plus buyer notification
// in one transaction.
func (u *OrderQueryUsecase) UpdateOrderStatus(ctx context.Context, requesterID string, role userdom.Role, orderID, rawStatus string) (StatusChangeResult, error) {
	rid := strings.TrimSpace(requesterID)
	oid := strings.TrimSpace(orderID)
	if rid == "" || oid == "" {
		return StatusChangeResult{}, ErrInvalidArgument
	}

	status, err := orderdom.ParseStatus(rawStatus)
	if err != nil {
		return StatusChangeResult{}, err
	}

	o, err := u.orders.GetByID(ctx, oid)
	if err != nil {
		return StatusChangeResult{}, err
	}

	switch role {
	case userdom.RoleAdmin:
	case userdom.RoleSeller:
		owns, err := u.orders.SellerHasItems(ctx, oid, rid)
		if err != nil {
			return StatusChangeResult{}, err
		}
		if !owns {
			return StatusChangeResult{}, ErrForbidden
		}
	default:
		return StatusChangeResult{}, ErrForbidden
	}

	now := u.now().UTC()
	txErr := u.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := u.orders.UpdateStatus(txCtx, oid, status, now); err != nil {
			return err
		}
		n, err := notifdom.New(
			u.newID(),
			o.BuyerID,
			notifdom.TypeOrder,
			fmt.Sprintf("Your order %s has been updated to: %s", oid, status),
			&oid,
			now,
		)
		if err != nil {
			return err
		}
		return u.notifications.Create(txCtx, n)
	})
	if txErr != nil {
		if errors.Is(txErr, orderdom.ErrNotFound) {
			return StatusChangeResult{}, orderdom.ErrNotFound
		}
		return StatusChangeResult{}, fmt.Errorf("%w: %v", ErrTransactionFailed, txErr)
	}

	if u.events != nil {
		evt := OrderStatusChangedEvent{
			OrderID:   oid,
			BuyerID:   o.BuyerID,
			NewStatus: string(status),
			ChangedAt: now,
		}
		if err := u.events.PublishStatusChanged(ctx, evt); err != nil {
			log.Printf("[orders] order.status_changed publish failed for order %s: %v", oid, err)
		}
	}

	return StatusChangeResult{OrderID: oid, NewStatus: status}, nil
}
