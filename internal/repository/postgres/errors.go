// internal/repository/postgres/errors.go
package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"coursehub/internal/util"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// storeFailure tags a driver error as a store availability problem so callers
// can match it with errors.Is. Rows that simply do not exist are translated to
// ErrNotFound at each call site before reaching here.
func storeFailure(err error) error {
	return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
}
