// Package pgerr translates database/sql and PostgreSQL errors, including
// exceptions raised by the stored procedures, into common sentinels.
package pgerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Map wraps err so that callers can match it with errors.Is. Unknown errors
// become "db error: ..." like the rest of the repositories.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			// Postgres reports the side that failed: deleting a parent row
			// still in use versus inserting a row pointing at nothing.
			if strings.HasPrefix(pgErr.Message, "update or delete on table") {
				return fmt.Errorf("%w: record is still referenced", common.ErrorConflict)
			}
			return fmt.Errorf("%w: referenced record does not exist", common.ErrorValidation)
		case pgerrcode.NumericValueOutOfRange:
			return fmt.Errorf("%w: numeric value out of range", common.ErrorValidation)
		case pgerrcode.CheckViolation, pgerrcode.InvalidTextRepresentation:
			return fmt.Errorf("%w: %s", common.ErrorValidation, pgErr.Message)
		case pgerrcode.NoDataFound:
			return common.ErrorNotFound
		case pgerrcode.RaiseException:
			switch pgErr.Message {
			case "insufficient_stock":
				return common.ErrInsufficientStock
			case "already_void":
				return fmt.Errorf("%w: invoice already void", common.ErrorConflict)
			case "invalid_quantity":
				return fmt.Errorf("%w: quantity must be positive", common.ErrorValidation)
			}
		}
	}

	return fmt.Errorf("db error: %w", err)
}
