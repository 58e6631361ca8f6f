// Package conn provides the mutable context value that flows through a
// compiled pipeline. A Conn carries the caller's input, the eventual output
// and status, two key/value scopes (public assigns and a library-private
// scope), a halted flag, and a strict output lifecycle:
//
//	unset -> set -> sent
//
// The state only moves forward. Output and status may be written while the
// state is unset or set (SetOutput); Send requires set and moves to sent.
// Any output mutation after sent fails with ErrAlreadySent.
//
// A Conn is owned by exactly one goroutine at a time: the one currently
// running the pipeline invocation. The only concurrency a Conn participates
// in is the async-assign pair: StartAsync forks a background computation and
// stores a pending handle in Assigns; AwaitAssign blocks the calling stage
// until the handle resolves (or times out) and replaces it with the value.
//
// Statuses are symbolic names or integer codes. The name-to-code table is a
// package-level registry (see StatusCode and RegisterStatus) so callers can
// supply their own vocabulary.
package conn
