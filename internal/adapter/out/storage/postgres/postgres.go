package postgres

import (
	"errors"
	"fmt"
	"strings"

	"blogapi/internal/service"
	"blogapi/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

var ErrBuildingQuery = errors.New("error building sql-query")

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// mapError translates driver errors into service sentinels and wraps the rest with op.
func mapError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return service.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", service.ErrConflict, pgErr.ConstraintName)
		case foreignKeyViolation:
			if pgErr.ConstraintName == tableinfo.CommentParentFKConstraint {
				return service.ErrParentNotFound
			}
			return fmt.Errorf("%w: %s", service.ErrNotFound, pgErr.ConstraintName)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

func returning(cols ...string) string {
	return "RETURNING " + strings.Join(cols, ", ")
}
