package repositories

import (
	"context"
	"database/sql"
)

// queryer lets guard helpers run against either the pool or an open
// transaction, so conflict checks can share the transactional boundary of
// the write they gate.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
