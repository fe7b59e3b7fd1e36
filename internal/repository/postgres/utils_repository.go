package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	apperrors "github.com/bikeshare-loader/internal/pkg/errors"
)

// Query limits for the read API
const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = 1000
)

// SQLSTATE codes inspected by the repositories
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgUndefinedTable      = "42P01"
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		return MaxQueryLimit
	}
	return limit
}

// pgError extracts the server error, if any
func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// pgDetails collects the server-side context of a failed statement
func pgDetails(err error, details map[string]interface{}) map[string]interface{} {
	if details == nil {
		details = make(map[string]interface{})
	}
	if pgErr, ok := pgError(err); ok {
		details["sqlstate"] = pgErr.Code
		if pgErr.Where != "" {
			details["where"] = pgErr.Where
		}
		if pgErr.Detail != "" {
			details["detail"] = pgErr.Detail
		}
		if pgErr.ConstraintName != "" {
			details["constraint"] = pgErr.ConstraintName
		}
		if pgErr.Code == pgUniqueViolation {
			details["reason"] = "duplicate key"
		}
	}
	return details
}

// constraintError maps a foreign key violation onto ErrConstraint and leaves other errors wrapped as is
func constraintError(op string, err error) error {
	if pgErr, ok := pgError(err); ok && pgErr.Code == pgForeignKeyViolation {
		return apperrors.Wrap(apperrors.ErrConstraint, err, pgDetails(err, map[string]interface{}{"operation": op}))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func columnExists(ctx context.Context, q sqlx.QueryerContext, table, column string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, q, &exists, `
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.columns
			WHERE table_schema = current_schema()
				AND table_name = $1
				AND column_name = $2
		)`, table, column)
	if err != nil {
		return false, fmt.Errorf("check column %s.%s: %w", table, column, err)
	}
	return exists, nil
}
