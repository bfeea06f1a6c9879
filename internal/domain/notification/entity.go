// backend/internal/domain/notification/entity.go
package notification

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound            = errors.New("notification: not found")
	ErrInvalidNotification = errors.New("notification: invalid")
)

// TypeOrder tags notifications emitted by the order workflow.
const TypeOrder = "order"

// Notification is one row of a user's append-only mailbox. The order core
// only ever creates notifications; reading and marking happen elsewhere.
type Notification struct {
	ID      string
	UserID  string
	Type    string
	Content string

	// ReferenceID points at the triggering resource (an order id here).
	ReferenceID *string

	Read      bool
	CreatedAt time.Time
}

// New builds an unread notification addressed to userID.
func New(id, userID, typ, content string, referenceID *string, now time.Time) (Notification, error) {
	n := Notification{
		ID:          strings.TrimSpace(id),
		UserID:      strings.TrimSpace(userID),
		Type:        strings.TrimSpace(typ),
		Content:     strings.TrimSpace(content),
		ReferenceID: referenceID,
		Read:        false,
		CreatedAt:   now.UTC(),
	}
	if n.ID == "" || n.UserID == "" || n.Type == "" || n.Content == "" {
		return Notification{}, ErrInvalidNotification
	}
	return n, nil
}
