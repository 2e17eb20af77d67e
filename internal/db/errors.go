package db

import (
	"errors"
	"fmt"
)

// ErrConnect marks failures to establish the database connection:
// unreachable host, rejected credentials, missing database. It is the
// only failure that aborts a whole sync run; schema statement failures
// are reported per unit instead.
//
// Check with errors.Is:
//
//	if errors.Is(err, db.ErrConnect) {
//	    // nothing was synced, report aborted
//	}
var ErrConnect = errors.New("database connection failed")

// IsConnectError reports whether err came from establishing the
// connection rather than from schema work.
func IsConnectError(err error) bool {
	return errors.Is(err, ErrConnect)
}

// connectError tags err as a connection failure while keeping the driver
// cause in the chain for errors.Is/As.
func connectError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrConnect, op, err)
}
