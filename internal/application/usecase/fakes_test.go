// backend/internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	cartdom "github.com/TheRipper284/backend/internal/domain/cart"
	notifdom "github.com/TheRipper284/backend/internal/domain/notification"
	orderdom "github.com/TheRipper284/backend/internal/domain/order"
	productdom "github.com/TheRipper284/backend/internal/domain/product"
	userdom "github.com/TheRipper284/backend/internal/domain/user"
)

// memStore backs every repository port with in-memory maps. A failOn
// entry makes the named operation return its error, which lets tests
// break a unit of work at any step.
type memStore struct {
	mu sync.Mutex

	carts         map[string]*cartdom.Cart // keyed by user id
	products      map[string]productdom.Product
	orders        map[string]orderdom.Order
	orderItems    map[string][]orderdom.Item
	notifications []notifdom.Notification
	users         map[string]userdom.User

	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		carts:      map[string]*cartdom.Cart{},
		products:   map[string]productdom.Product{},
		orders:     map[string]orderdom.Order{},
		orderItems: map[string][]orderdom.Item{},
		users:      map[string]userdom.User{},
		failOn:     map[string]error{},
	}
}

func (s *memStore) fail(op string) error {
	if err, ok := s.failOn[op]; ok {
		return err
	}
	return nil
}

// snapshot deep-copies the mutable state so a failed unit of work can be
// rolled back.
func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, c := range s.carts {
		cc := *c
		cc.Lines = append([]cartdom.Line{}, c.Lines...)
		cp.carts[k] = &cc
	}
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.orders {
		cp.orders[k] = v
	}
	for k, v := range s.orderItems {
		cp.orderItems[k] = append([]orderdom.Item{}, v...)
	}
	cp.notifications = append([]notifdom.Notification{}, s.notifications...)
	for k, v := range s.users {
		cp.users[k] = v
	}
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.carts = from.carts
	s.products = from.products
	s.orders = from.orders
	s.orderItems = from.orderItems
	s.notifications = from.notifications
	s.users = from.users
}

// --- cart.Repository ---

type memCarts struct{ s *memStore }

func (r memCarts) GetByUserID(_ context.Context, userID string) (*cartdom.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.carts[userID]
	if !ok {
		return nil, nil
	}
	cc := *c
	cc.Lines = append([]cartdom.Line{}, c.Lines...)
	return &cc, nil
}

func (r memCarts) Create(_ context.Context, c *cartdom.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.carts[c.UserID]; ok {
		return nil
	}
	cc := *c
	cc.Lines = append([]cartdom.Line{}, c.Lines...)
	r.s.carts[c.UserID] = &cc
	return nil
}

func (r memCarts) UpsertLine(_ context.Context, cartID, productID string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.cartByID(cartID)
	if c == nil {
		return cartdom.ErrInvalidCart
	}
	return c.Add(fmt.Sprintf("line-%s-%s", cartID, productID), productID, qty)
}

func (r memCarts) SetLineQty(_ context.Context, cartID, productID string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.cartByID(cartID)
	if c == nil {
		return cartdom.ErrLineNotFound
	}
	if err := c.SetQty(productID, qty); err != nil {
		return cartdom.ErrLineNotFound
	}
	return nil
}

func (r memCarts) RemoveLine(_ context.Context, cartID, productID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.cartByID(cartID)
	if c == nil {
		return cartdom.ErrLineNotFound
	}
	return c.Remove(productID)
}

func (r memCarts) ClearLines(_ context.Context, cartID string) error {
	if err := r.s.fail("carts.ClearLines"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.cartByID(cartID)
	if c == nil {
		return nil
	}
	c.Lines = []cartdom.Line{}
	return nil
}

func (s *memStore) cartByID(cartID string) *cartdom.Cart {
	for _, c := range s.carts {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

// --- product.Repository ---

type memProducts struct{ s *memStore }

func (r memProducts) GetByID(_ context.Context, id string) (productdom.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	return p, nil
}

func (r memProducts) DecrementStock(_ context.Context, id string, qty int) error {
	if err := r.s.fail("products.DecrementStock"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return productdom.ErrNotFound
	}
	if p.Stock < qty {
		return productdom.ErrInsufficientStock
	}
	p.Stock -= qty
	r.s.products[id] = p
	return nil
}

// --- order.Repository ---

type memOrders struct{ s *memStore }

func (r memOrders) Create(_ context.Context, o orderdom.Order) error {
	if err := r.s.fail("orders.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID] = o
	return nil
}

func (r memOrders) CreateItems(_ context.Context, items []orderdom.Item) error {
	if err := r.s.fail("orders.CreateItems"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range items {
		r.s.orderItems[it.OrderID] = append(r.s.orderItems[it.OrderID], it)
	}
	return nil
}

func (r memOrders) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r memOrders) ListByBuyer(_ context.Context, buyerID string) ([]orderdom.Summary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.summaries(func(o orderdom.Order) bool { return o.BuyerID == buyerID }), nil
}

func (r memOrders) ListBySeller(_ context.Context, sellerID string) ([]orderdom.Summary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.summaries(func(o orderdom.Order) bool {
		for _, it := range r.s.orderItems[o.ID] {
			if r.s.products[it.ProductID].SellerID == sellerID {
				return true
			}
		}
		return false
	}), nil
}

func (r memOrders) ListAll(_ context.Context) ([]orderdom.Summary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.summaries(func(orderdom.Order) bool { return true }), nil
}

// summaries aggregates item counts for the orders the filter keeps,
// newest first. Callers hold s.mu.
func (s *memStore) summaries(keep func(orderdom.Order) bool) []orderdom.Summary {
	out := []orderdom.Summary{}
	for _, o := range s.orders {
		if !keep(o) || len(s.orderItems[o.ID]) == 0 {
			continue
		}
		sum := orderdom.Summary{Order: o, ItemCount: len(s.orderItems[o.ID])}
		for _, it := range s.orderItems[o.ID] {
			sum.TotalItems += it.Quantity
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r memOrders) Items(_ context.Context, orderID string) ([]orderdom.ItemDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.details(orderID, ""), nil
}

func (r memOrders) SellerItems(_ context.Context, orderID, sellerID string) ([]orderdom.ItemDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.details(orderID, sellerID), nil
}

func (r memOrders) SellerHasItems(_ context.Context, orderID, sellerID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.details(orderID, sellerID)) > 0, nil
}

func (r memOrders) UpdateStatus(_ context.Context, orderID string, status orderdom.Status, now time.Time) error {
	if err := r.s.fail("orders.UpdateStatus"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[orderID]
	if !ok {
		return orderdom.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = now
	r.s.orders[orderID] = o
	return nil
}

// details joins items with product and seller data, optionally filtered
// by seller. Callers hold s.mu.
func (s *memStore) details(orderID, sellerID string) []orderdom.ItemDetail {
	out := []orderdom.ItemDetail{}
	for _, it := range s.orderItems[orderID] {
		p := s.products[it.ProductID]
		if sellerID != "" && p.SellerID != sellerID {
			continue
		}
		sellerName := s.users[p.SellerID].Name
		out = append(out, orderdom.ItemDetail{
			Item:         it,
			ProductTitle: p.Title,
			SellerID:     p.SellerID,
			SellerName:   sellerName,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- notification.Repository ---

type memNotifications struct{ s *memStore }

func (r memNotifications) Create(_ context.Context, n notifdom.Notification) error {
	if err := r.s.fail("notifications.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications = append(r.s.notifications, n)
	return nil
}

func (r memNotifications) ListByUser(_ context.Context, userID string, limit int) ([]notifdom.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []notifdom.Notification{}
	for i := len(r.s.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.notifications[i].UserID == userID {
			out = append(out, r.s.notifications[i])
		}
	}
	return out, nil
}

func (r memNotifications) MarkAllRead(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		if r.s.notifications[i].UserID == userID {
			r.s.notifications[i].Read = true
		}
	}
	return nil
}

func (r memNotifications) MarkRead(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		if r.s.notifications[i].ID == id && r.s.notifications[i].UserID == userID {
			r.s.notifications[i].Read = true
			return nil
		}
	}
	return notifdom.ErrNotFound
}

// --- user.Repository ---

type memUsers struct{ s *memStore }

func (r memUsers) GetByID(_ context.Context, id string) (userdom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return userdom.User{}, userdom.ErrNotFound
	}
	return u, nil
}

// --- TxManager ---

// memTx serializes units of work and rolls the store back when the
// function fails, mirroring what a database transaction guarantees.
type memTx struct {
	s    *memStore
	txMu sync.Mutex
}

func (t *memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()

	t.s.mu.Lock()
	before := t.s.snapshot()
	t.s.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.s.mu.Lock()
		t.s.restore(before)
		t.s.mu.Unlock()
		return err
	}
	return nil
}

// --- fixtures ---

type fixture struct {
	store *memStore
	tx    *memTx

	carts         memCarts
	products      memProducts
	orders        memOrders
	notifications memNotifications
	users         memUsers
}

func newFixture() *fixture {
	s := newMemStore()
	return &fixture{
		store:         s,
		tx:            &memTx{s: s},
		carts:         memCarts{s: s},
		products:      memProducts{s: s},
		orders:        memOrders{s: s},
		notifications: memNotifications{s: s},
		users:         memUsers{s: s},
	}
}

func (f *fixture) checkout() *CheckoutUsecase {
	uc := NewCheckoutUsecase(f.tx, f.carts, f.products, f.orders, f.notifications, f.users)
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return uc
}

func (f *fixture) queries() *OrderQueryUsecase {
	uc := NewOrderQueryUsecase(f.tx, f.orders, f.notifications, f.users)
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return uc
}

func (f *fixture) addUser(id, name, email string, role userdom.Role) {
	f.store.users[id] = userdom.User{ID: id, Name: name, Email: email, Role: role}
}

func (f *fixture) addProduct(id, sellerID, title string, price string, stock int) {
	f.store.products[id] = productdom.Product{
		ID:       id,
		SellerID: sellerID,
		Title:    title,
		Price:    mustDecimal(price),
		Stock:    stock,
		Status:   productdom.StatusActive,
	}
}

func (f *fixture) addCart(userID string, lines ...cartdom.Line) {
	cartID := "cart-" + userID
	for i := range lines {
		lines[i].CartID = cartID
		if lines[i].ID == "" {
			lines[i].ID = fmt.Sprintf("line-%d", i)
		}
	}
	f.store.carts[userID] = &cartdom.Cart{
		ID:     cartID,
		UserID: userID,
		Lines:  lines,
	}
}

func (f *fixture) notificationsFor(userID string) []notifdom.Notification {
	out := []notifdom.Notification{}
	for _, n := range f.store.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strptr(s string) *string { return &s }

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
