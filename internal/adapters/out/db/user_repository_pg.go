// backend/internal/adapters/out/db/user_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	dbcommon "github.com/TheRipper284/backend/internal/adapters/out/db/common"
	userdom "github.com/TheRipper284/backend/internal/domain/user"
)

// PostgreSQL implementation of user.Repository (read model only; account
// management lives elsewhere).
type UserRepositoryPG struct {
	DB *sql.DB
}

func NewUserRepositoryPG(db *sql.DB) *UserRepositoryPG {
	return &UserRepositoryPG{DB: db}
}

func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (userdom.User, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
SELECT id, name, email, phone, address, role
FROM users
WHERE id = $1`
	var (
		uid, name, email, rawRole string
		phoneNS, addressNS        sql.NullString
	)
	err := run.QueryRowContext(ctx, q, strings.TrimSpace(id)).Scan(&uid, &name, &email, &phoneNS, &addressNS, &rawRole)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return userdom.User{}, userdom.ErrNotFound
		}
		return userdom.User{}, err
	}

	role, err := userdom.ParseRole(rawRole)
	if err != nil {
		return userdom.User{}, err
	}

	return userdom.User{
		ID:      strings.TrimSpace(uid),
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Phone:   strings.TrimSpace(phoneNS.String),
		Address: strings.TrimSpace(addressNS.String),
		Role:    role,
	}, nil
}
