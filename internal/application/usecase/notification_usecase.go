// backend/internal/application/usecase/notification_usecase.go
package usecase

import (
	"context"
	"strings"

	notifdom "github.com/TheRipper284/backend/internal/domain/notification"
)

// mailboxLimit caps how many notifications a single list call returns.
const mailboxLimit = 50

// NotificationUsecase serves the per-user mailbox.
type NotificationUsecase struct {
	notifications notifdom.Repository
}

func NewNotificationUsecase(notifications notifdom.Repository) *NotificationUsecase {
	return &NotificationUsecase{notifications: notifications}
}

// List returns the user's newest notifications.
func (u *NotificationUsecase) List(ctx context.Context, userID string) ([]notifdom.Notification, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrInvalidArgument
	}
	return u.notifications.ListByUser(ctx, uid, mailboxLimit)
}

// MarkAllRead flags every unread notification of the user.
func (u *NotificationUsecase) MarkAllRead(ctx context.Context, userID string) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return ErrInvalidArgument
	}
	return u.notifications.MarkAllRead(ctx, uid)
}

// MarkRead flags one notification; notification.ErrNotFound when the row
// is absent or belongs to another user.
func (u *NotificationUsecase) MarkRead(ctx context.Context, id, userID string) error {
	nid := strings.TrimSpace(id)
	uid := strings.TrimSpace(userID)
	if nid == "" || uid == "" {
		return ErrInvalidArgument
	}
	return u.notifications.MarkRead(ctx, nid, uid)
}
