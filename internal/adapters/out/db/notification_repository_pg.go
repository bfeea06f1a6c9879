// backend/internal/adapters/out/db/notification_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	dbcommon "github.com/TheRipper284/backend/internal/adapters/out/db/common"
	notifdom "github.com/TheRipper284/backend/internal/domain/notification"
)

// PostgreSQL implementation of notification.Repository.
type NotificationRepositoryPG struct {
	DB *sql.DB
}

func NewNotificationRepositoryPG(db *sql.DB) *NotificationRepositoryPG {
	return &NotificationRepositoryPG{DB: db}
}

func (r *NotificationRepositoryPG) Create(ctx context.Context, n notifdom.Notification) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
INSERT INTO notifications (id, user_id, type, content, reference_id, is_read, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := run.ExecContext(ctx, q,
		strings.TrimSpace(n.ID),
		strings.TrimSpace(n.UserID),
		strings.TrimSpace(n.Type),
		n.Content,
		dbcommon.ToDBText(n.ReferenceID),
		n.Read,
		n.CreatedAt.UTC(),
	)
	return err
}

func (r *NotificationRepositoryPG) ListByUser(ctx context.Context, userID string, limit int) ([]notifdom.Notification, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
SELECT id, user_id, type, content, reference_id, is_read, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := run.QueryContext(ctx, q, strings.TrimSpace(userID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notifdom.Notification
	for rows.Next() {
		var (
			n           notifdom.Notification
			referenceNS sql.NullString
			createdAt   time.Time
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Content, &referenceNS, &n.Read, &createdAt); err != nil {
			return nil, err
		}
		n.ReferenceID = dbcommon.FromNullString(referenceNS)
		n.CreatedAt = createdAt.UTC()
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationRepositoryPG) MarkAllRead(ctx context.Context, userID string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
UPDATE notifications
SET is_read = TRUE
WHERE user_id = $1 AND is_read = FALSE`
	_, err := run.ExecContext(ctx, q, strings.TrimSpace(userID))
	return err
}

func (r *NotificationRepositoryPG) MarkRead(ctx context.Context, id, userID string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
UPDATE notifications
SET is_read = TRUE
WHERE id = $1 AND user_id = $2`
	res, err := run.ExecContext(ctx, q, strings.TrimSpace(id), strings.TrimSpace(userID))
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return notifdom.ErrNotFound
	}
	return nil
}
