package persistence

import (
	"context"
	_ "embed"

	"github.com/jmoiron/sqlx"

	"deal_radar/internal/domain"
	"deal_radar/pkg/errcodes"
)

//go:embed migrations/001_init.sql
var initSchema string

// EnsureSchema создаёт таблицы, если их ещё нет.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, initSchema); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to apply schema")
	}

	return nil
}
