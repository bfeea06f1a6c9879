// backend/internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
)

var (
	ErrNotFound    = errors.New("user: not found")
	ErrInvalidRole = errors.New("user: invalid role")
)

// Role controls what a requester may see and mutate.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole normalizes a raw role string.
// "user" is accepted as a legacy alias for buyer.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buyer", "user":
		return RoleBuyer, nil
	case "seller":
		return RoleSeller, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// User is the minimal read model this service needs (the full profile
// lives with the account subsystem). Phone and Address may be blank; they
// feed the buyer contact block on order detail responses.
type User struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
	Role    Role
}
