package repos

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE classes that a single transparent retry can resolve.
const (
	pgUniqueViolation  = "23505"
	pgSerialization    = "40001"
	pgDeadlockDetected = "40P01"
	pgLockNotAvailable = "55P03"
)

// IsRetryableWriteError reports whether a storage error is a transient
// conflict or timeout worth exactly one automatic retry. A unique-violation
// on the (commitment, day) key counts: it means a concurrent writer won the
// insert and the retried statement will take the update path.
func IsRetryableWriteError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgSerialization, pgDeadlockDetected, pgLockNotAvailable:
			return true
		}
	}
	return false
}
