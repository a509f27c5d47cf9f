package adapters

import (
	"errors"
	"fmt"

	"analyst_app/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

// dbError normalizes a storage failure into a KindDatabase error.
// Postgres errors contribute their SQLSTATE to the detail.
func dbError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperror.Database(fmt.Sprintf("%s (sqlstate %s)", op, pgErr.Code), err)
	}
	return apperror.Database(op, err)
}
