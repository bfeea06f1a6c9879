// backend/internal/adapters/in/http/handler/notification_handler.go
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/TheRipper284/backend/internal/adapters/in/http/middleware"
	notifdom "github.com/TheRipper284/backend/internal/domain/notification"
)

// NotificationService reads and acknowledges the requester's mailbox.
type NotificationService interface {
	List(ctx context.Context, userID string) ([]notifdom.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	MarkRead(ctx context.Context, id, userID string) error
}

// NotificationHandler serves /api/notifications:
// - GET /api/notifications
// - PUT /api/notifications/read
// - PUT /api/notifications/{id}/read
type NotificationHandler struct {
	svc NotificationService
}

func NewNotificationHandler(svc NotificationService) http.Handler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	if !strings.HasPrefix(path, "/notifications") {
		notFoundRoute(w)
		return
	}
	path = strings.TrimRight(path, "/")

	switch {
	case r.Method == http.MethodGet && path == "/notifications":
		h.list(w, r)
		return

	case r.Method == http.MethodPut && path == "/notifications/read":
		h.markAllRead(w, r)
		return

	case r.Method == http.MethodPut && strings.HasSuffix(path, "/read"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/notifications/"), "/read")
		h.markRead(w, r, id)
		return

	default:
		notFoundRoute(w)
		return
	}
}

type notificationResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	ReferenceID *string   `json:"referenceId,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (h *NotificationHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notifs, err := h.svc.List(ctx, middleware.UserID(ctx))
	if err != nil {
		writeErr(w, err)
		return
	}

	out := make([]notificationResponse, 0, len(notifs))
	for _, n := range notifs {
		out = append(out, notificationResponse{
			ID:          n.ID,
			Type:        n.Type,
			Content:     n.Content,
			ReferenceID: n.ReferenceID,
			Read:        n.Read,
			CreatedAt:   n.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"notifications": out})
}

func (h *NotificationHandler) markAllRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.svc.MarkAllRead(ctx, middleware.UserID(ctx)); err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *NotificationHandler) markRead(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	id = strings.TrimSpace(id)
	if id == "" {
		badRequest(w, "invalid id")
		return
	}

	if err := h.svc.MarkRead(ctx, id, middleware.UserID(ctx)); err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
