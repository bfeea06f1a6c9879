// backend/internal/adapters/out/db/common/tx.go
package common

import (
	"context"
	"database/sql"
	"fmt"
)

// TxManager runs a function inside one database transaction, carried in
// the ctx so every repository statement issued by fn joins it. An error
// from fn rolls the transaction back; otherwise it commits.
type TxManager struct {
	DB *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{DB: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(CtxWithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
