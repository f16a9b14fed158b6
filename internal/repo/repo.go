package repo

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation reports whether err is a Postgres unique constraint
// violation, optionally on one specific constraint.
func uniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
