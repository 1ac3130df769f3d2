package database

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier là phần của *pgxpool.Pool mà repositories cần.
// pgxmock.PgxPoolIface cũng thoả interface này nên repositories test được không cần DB.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// IsUniqueViolation - SQLSTATE 23505, constraint rỗng = bất kỳ constraint nào
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsNoRows - QueryRow không trả về dòng nào
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
