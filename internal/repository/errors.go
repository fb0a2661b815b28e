package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"boardcamp/internal/domain"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueConstraints maps unique constraint names to the error reported when
// an insert or update collides with them
var uniqueConstraints = map[string]error{
	"categories_name_key": ErrCategoryAlreadyExists,
	"games_name_key":      ErrGameAlreadyExists,
	"customers_cpf_key":   ErrCustomerCPFTaken,
}

// classify turns driver errors into domain errors. Errors that are already
// classified, and the package's not-found sentinels, pass through unchanged.
func classify(err error, action string) error {
	if err == nil {
		return nil
	}

	var appErr *domain.Error
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			if sentinel, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
				return domain.NewConflictError(sentinel.Error(), sentinel)
			}
			return domain.NewConflictError("resource already exists", err)
		case pgErr.Code == pgerrcode.ForeignKeyViolation:
			return domain.NewUnknownReferenceError("referenced resource does not exist")
		case pgErr.Code == pgerrcode.QueryCanceled,
			pgErr.Code == pgerrcode.LockNotAvailable,
			pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsOperatorIntervention(pgErr.Code),
			pgerrcode.IsInsufficientResources(pgErr.Code):
			return domain.NewUnavailableError(err)
		}
		return fmt.Errorf("failed to %s: %w", action, err)
	}

	if isUnavailable(err) {
		return domain.NewUnavailableError(err)
	}

	return fmt.Errorf("failed to %s: %w", action, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
