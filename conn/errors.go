package conn

import "errors"

// Errors returned by Conn lifecycle and async operations. All are sentinel
// errors; operation-specific detail (the key, the status name) is wrapped
// around them, so match with errors.Is.
var (
	// ErrNotSet is returned by Send when no output has been set.
	ErrNotSet = errors.New("conn: output not set")

	// ErrAlreadySent is returned by any output-mutating operation after the
	// connection has been sent.
	ErrAlreadySent = errors.New("conn: already sent")

	// ErrNoPending is returned by AwaitAssign when the key holds no pending
	// async handle.
	ErrNoPending = errors.New("conn: no pending async value")

	// ErrAwaitTimeout is returned by AwaitAssign when the handle does not
	// resolve within the timeout.
	ErrAwaitTimeout = errors.New("conn: await timed out")

	// ErrUnknownStatus is returned when a symbolic status name is not in the
	// status table.
	ErrUnknownStatus = errors.New("conn: unknown status name")
)
