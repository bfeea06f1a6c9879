// backend/internal/domain/user/repository_port.go
package user

import "context"

// Repository is the persistence port for user lookups.
type Repository interface {
	// GetByID returns ErrNotFound when the user does not exist.
	GetByID(ctx context.Context, id string) (User, error)
}
