// backend/internal/adapters/in/http/handler/cart_handler.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/TheRipper284/backend/internal/adapters/in/http/middleware"
	"github.com/TheRipper284/backend/internal/application/usecase"
)

// CartService mutates and reads the requester's cart.
type CartService interface {
	Items(ctx context.Context, userID string) ([]usecase.LineView, error)
	AddItem(ctx context.Context, userID, productID string, qty int) error
	SetQty(ctx context.Context, userID, productID string, qty int) error
	Remove(ctx context.Context, userID, productID string) error
}

// CartHandler serves /api/carts:
// - GET    /api/carts/items
// - POST   /api/carts/items
// - PUT    /api/carts/items/{productId}
// - DELETE /api/carts/items/{productId}
type CartHandler struct {
	svc CartService
}

func NewCartHandler(svc CartService) http.Handler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	if !strings.HasPrefix(path, "/carts") {
		notFoundRoute(w)
		return
	}
	path = strings.TrimRight(path, "/")

	switch {
	case r.Method == http.MethodGet && path == "/carts/items":
		h.list(w, r)
		return

	case r.Method == http.MethodPost && path == "/carts/items":
		h.add(w, r)
		return

	case r.Method == http.MethodPut && strings.HasPrefix(path, "/carts/items/"):
		h.setQty(w, r, strings.TrimPrefix(path, "/carts/items/"))
		return

	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/carts/items/"):
		h.remove(w, r, strings.TrimPrefix(path, "/carts/items/"))
		return

	default:
		notFoundRoute(w)
		return
	}
}

type cartLineResponse struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	UnitPrice string `json:"unitPrice"`
	Qty       int    `json:"qty"`
}

func (h *CartHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lines, err := h.svc.Items(ctx, middleware.UserID(ctx))
	if err != nil {
		writeErr(w, err)
		return
	}

	out := make([]cartLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, cartLineResponse{
			ProductID: l.ProductID,
			Title:     l.Title,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Qty:       l.Qty,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		badRequest(w, "productId is required")
		return
	}
	if req.Qty <= 0 {
		req.Qty = 1
	}

	if err := h.svc.AddItem(ctx, middleware.UserID(ctx), strings.TrimSpace(req.ProductID), req.Qty); err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

type setQtyRequest struct {
	Qty int `json:"qty"`
}

func (h *CartHandler) setQty(w http.ResponseWriter, r *http.Request, productID string) {
	ctx := r.Context()

	productID = strings.TrimSpace(productID)
	if productID == "" {
		badRequest(w, "invalid product id")
		return
	}

	var req setQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if req.Qty < 1 {
		badRequest(w, "qty must be at least 1")
		return
	}

	if err := h.svc.SetQty(ctx, middleware.UserID(ctx), productID, req.Qty); err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request, productID string) {
	ctx := r.Context()

	productID = strings.TrimSpace(productID)
	if productID == "" {
		badRequest(w, "invalid product id")
		return
	}

	if err := h.svc.Remove(ctx, middleware.UserID(ctx), productID); err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
