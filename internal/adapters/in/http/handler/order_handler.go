// backend/internal/adapters/in/http/handler/order_handler.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/TheRipper284/backend/internal/adapters/in/http/middleware"
	"github.com/TheRipper284/backend/internal/application/usecase"
	orderdom "github.com/TheRipper284/backend/internal/domain/order"
	userdom "github.com/TheRipper284/backend/internal/domain/user"
)

// CheckoutService turns the requester's cart into an order.
type CheckoutService interface {
	CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (usecase.OrderSummary, error)
}

// OrderQueryService reads and transitions existing orders, role-scoped.
type OrderQueryService interface {
	GetOrder(ctx context.Context, requesterID string, role userdom.Role, orderID string) (usecase.OrderView, error)
	ListOrders(ctx context.Context, requesterID string, role userdom.Role) ([]orderdom.Summary, error)
	UpdateOrderStatus(ctx context.Context, requesterID string, role userdom.Role, orderID, rawStatus string) (usecase.StatusChangeResult, error)
}

// OrderHandler serves /api/orders:
// - POST /api/orders
// - GET  /api/orders
// - GET  /api/orders/{id}
// - PUT  /api/orders/{id}/status
type OrderHandler struct {
	checkout CheckoutService
	queries  OrderQueryService
}

func NewOrderHandler(checkout CheckoutService, queries OrderQueryService) http.Handler {
	return &OrderHandler{checkout: checkout, queries: queries}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	if !strings.HasPrefix(path, "/orders") {
		notFoundRoute(w)
		return
	}

	switch {
	case r.Method == http.MethodPost && (path == "/orders" || path == "/orders/"):
		h.post(w, r)
		return

	case r.Method == http.MethodGet && (path == "/orders" || path == "/orders/"):
		h.list(w, r)
		return

	case r.Method == http.MethodPut && strings.HasSuffix(path, "/status"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/orders/"), "/status")
		h.putStatus(w, r, strings.TrimSuffix(id, "/"))
		return

	case r.Method == http.MethodGet && strings.HasPrefix(path, "/orders/"):
		h.get(w, r, strings.TrimPrefix(path, "/orders/"))
		return

	default:
		notFoundRoute(w)
		return
	}
}

type createOrderRequest struct {
	ShippingAddress string  `json:"shippingAddress"`
	PaymentMethod   string  `json:"paymentMethod"`
	PaymentRef      *string `json:"paymentRef"`
}

type createOrderResponse struct {
	OrderID     string `json:"orderId"`
	TotalAmount string `json:"totalAmount"`
}

func (h *OrderHandler) post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}

	in := usecase.CreateOrderInput{
		BuyerID:         middleware.UserID(ctx),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		PaymentMethod:   strings.TrimSpace(req.PaymentMethod),
		PaymentRef:      req.PaymentRef,
	}

	out, err := h.checkout.CreateOrder(ctx, in)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createOrderResponse{
		OrderID:     out.OrderID,
		TotalAmount: out.TotalAmount.StringFixed(2),
	})
}

type orderItemResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	ProductTitle string `json:"productTitle"`
	SellerID     string `json:"sellerId"`
	SellerName   string `json:"sellerName"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unitPrice"`
	Subtotal     string `json:"subtotal"`
}

type buyerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type orderResponse struct {
	ID              string              `json:"id"`
	BuyerID         string              `json:"buyerId"`
	Buyer           *buyerResponse      `json:"buyer,omitempty"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	PaymentRef      *string             `json:"paymentRef,omitempty"`
	Total           string              `json:"total"`
	Items           []orderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type orderSummaryResponse struct {
	ID              string    `json:"id"`
	BuyerID         string    `json:"buyerId"`
	Status          string    `json:"status"`
	ShippingAddress string    `json:"shippingAddress"`
	PaymentMethod   string    `json:"paymentMethod"`
	PaymentRef      *string   `json:"paymentRef,omitempty"`
	TotalAmount     string    `json:"totalAmount"`
	ItemCount       int       `json:"itemCount"`
	TotalItems      int       `json:"totalItems"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type listOrdersResponse struct {
	Count  int                    `json:"count"`
	Orders []orderSummaryResponse `json:"orders"`
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summaries, err := h.queries.ListOrders(ctx, middleware.UserID(ctx), middleware.Role(ctx))
	if err != nil {
		writeErr(w, err)
		return
	}

	out := make([]orderSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, orderSummaryResponse{
			ID:              s.ID,
			BuyerID:         s.BuyerID,
			Status:          string(s.Status),
			ShippingAddress: s.ShippingAddress,
			PaymentMethod:   s.PaymentMethod,
			PaymentRef:      s.PaymentRef,
			TotalAmount:     s.TotalAmount.StringFixed(2),
			ItemCount:       s.ItemCount,
			TotalItems:      s.TotalItems,
			CreatedAt:       s.CreatedAt,
			UpdatedAt:       s.UpdatedAt,
		})
	}

	writeJSON(w, http.StatusOK, listOrdersResponse{Count: len(out), Orders: out})
}

func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	id = strings.TrimSpace(strings.TrimSuffix(id, "/"))
	if id == "" {
		badRequest(w, "invalid id")
		return
	}

	view, err := h.queries.GetOrder(ctx, middleware.UserID(ctx), middleware.Role(ctx), id)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(view))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) putStatus(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	id = strings.TrimSpace(id)
	if id == "" {
		badRequest(w, "invalid id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}

	out, err := h.queries.UpdateOrderStatus(ctx, middleware.UserID(ctx), middleware.Role(ctx), id, strings.TrimSpace(req.Status))
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"orderId": out.OrderID,
		"status":  string(out.NewStatus),
	})
}

func toOrderResponse(view usecase.OrderView) orderResponse {
	items := make([]orderItemResponse, 0, len(view.Items))
	for _, it := range view.Items {
		items = append(items, orderItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductTitle: it.ProductTitle,
			SellerID:     it.SellerID,
			SellerName:   it.SellerName,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice.StringFixed(2),
			Subtotal:     it.Subtotal().StringFixed(2),
		})
	}

	var buyer *buyerResponse
	if view.Buyer != nil {
		buyer = &buyerResponse{
			ID:      view.Buyer.ID,
			Name:    view.Buyer.Name,
			Email:   view.Buyer.Email,
			Phone:   view.Buyer.Phone,
			Address: view.Buyer.Address,
		}
	}

	return orderResponse{
		ID:              view.Order.ID,
		BuyerID:         view.Order.BuyerID,
		Buyer:           buyer,
		Status:          string(view.Order.Status),
		ShippingAddress: view.Order.ShippingAddress,
		PaymentMethod:   view.Order.PaymentMethod,
		PaymentRef:      view.Order.PaymentRef,
		Total:           view.Total.StringFixed(2),
		Items:           items,
		CreatedAt:       view.Order.CreatedAt,
		UpdatedAt:       view.Order.UpdatedAt,
	}
}
