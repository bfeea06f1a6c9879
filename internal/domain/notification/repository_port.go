// backend/internal/domain/notification/repository_port.go
package notification

import "context"

// Repository is the persistence port for the notification mailbox.
// Create participates in a transaction when one is carried in ctx: a
// notification must land in the same unit of work as its trigger.
type Repository interface {
	Create(ctx context.Context, n Notification) error

	// ListByUser returns the newest notifications first, capped at limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error)

	// MarkAllRead flags every unread notification of the user.
	MarkAllRead(ctx context.Context, userID string) error

	// MarkRead flags a single notification; returns ErrNotFound when the
	// row does not exist or belongs to another user.
	MarkRead(ctx context.Context, id, userID string) error
}
