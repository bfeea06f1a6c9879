// backend/internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	userdom "github.com/TheRipper284/backend/internal/domain/user"
)

type ctxKey string

const (
	userIDKey ctxKey = "userId"
	roleKey   ctxKey = "role"
)

// Auth verifies the HS256 bearer token and loads the requester's id and
// role into the context. Token issuance happens in the auth service; this
// backend only consumes.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				unauthorized(w, "missing token")
				return
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			uid, _ := claims["id"].(string)
			rawRole, _ := claims["role"].(string)
			role, rerr := userdom.ParseRole(rawRole)
			if strings.TrimSpace(uid) == "" || rerr != nil {
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, strings.TrimSpace(uid))
			ctx = context.WithValue(ctx, roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id from ctx ("" when absent).
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// Role returns the authenticated role from ctx ("" when absent).
func Role(ctx context.Context) userdom.Role {
	if v, ok := ctx.Value(roleKey).(userdom.Role); ok {
		return v
	}
	return ""
}

// WithIdentity stores an identity in ctx; used by handler tests.
func WithIdentity(ctx context.Context, userID string, role userdom.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "message": msg})
}
