// backend/internal/adapters/in/http/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/TheRipper284/backend/internal/application/usecase"
	cartdom "github.com/TheRipper284/backend/internal/domain/cart"
	notifdom "github.com/TheRipper284/backend/internal/domain/notification"
	orderdom "github.com/TheRipper284/backend/internal/domain/order"
	productdom "github.com/TheRipper284/backend/internal/domain/product"
	userdom "github.com/TheRipper284/backend/internal/domain/user"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps usecase and domain errors onto HTTP statuses. Unknown
// errors become 500 with a generic message so internals never leak.
func writeErr(w http.ResponseWriter, err error) {
	var stockErr *usecase.InsufficientStockError
	if errors.As(err, &stockErr) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":     "insufficient_stock",
			"message":   stockErr.Error(),
			"productId": stockErr.ProductID,
			"available": stockErr.Available,
		})
		return
	}

	code := http.StatusInternalServerError
	kind := "internal"

	switch {
	case errors.Is(err, orderdom.ErrNotFound),
		errors.Is(err, productdom.ErrNotFound),
		errors.Is(err, notifdom.ErrNotFound),
		errors.Is(err, userdom.ErrNotFound),
		errors.Is(err, cartdom.ErrLineNotFound):
		code = http.StatusNotFound
		kind = "not_found"

	case errors.Is(err, usecase.ErrForbidden):
		code = http.StatusForbidden
		kind = "forbidden"

	case errors.Is(err, usecase.ErrEmptyCart),
		errors.Is(err, usecase.ErrInvalidArgument),
		errors.Is(err, orderdom.ErrInvalidStatus),
		errors.Is(err, orderdom.ErrInvalidOrder),
		errors.Is(err, cartdom.ErrInvalidCart):
		code = http.StatusBadRequest
		kind = "bad_request"
	}

	if code == http.StatusInternalServerError {
		log.Printf("[http] internal error: %v", err)
		writeJSON(w, code, map[string]string{"error": kind, "message": "internal server error"})
		return
	}

	writeJSON(w, code, map[string]string{"error": kind, "message": err.Error()})
}

func notFoundRoute(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_request", "message": msg})
}
