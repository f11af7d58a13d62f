package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNoRowsAffected signals that an update or delete matched nothing.
var ErrNoRowsAffected = errors.New("no rows affected")

type ExecType int

const (
	ExecInsert ExecType = iota
	ExecUpdate
	ExecDelete
)

// ExecWithCheck runs a statement against either a *sqlx.DB or a *sqlx.Tx and
// treats zero affected rows as a failure for updates and deletes.
func ExecWithCheck(ctx context.Context, ext sqlx.ExtContext, query string, execType ExecType, args ...any) error {
	result, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	// if Insert operation, don't need to check rows affected
	if execType == ExecInsert {
		return nil
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
