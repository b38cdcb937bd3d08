package errors

import "errors"

var (
	// ErrTimeout indicates a store call did not complete in time.
	ErrTimeout = errors.New("timeout")
	// ErrConnectionClosed indicates the store connection is gone.
	ErrConnectionClosed = errors.New("connection closed")
	// ErrBadRecord indicates stored bytes did not decode as a lock record.
	ErrBadRecord = errors.New("bad lock record")
)
