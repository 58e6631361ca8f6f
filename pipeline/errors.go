package pipeline

import (
	"errors"
	"fmt"
)

// ContractError reports a stage declaration that cannot be compiled: the
// target is neither a function stage nor a component, or it exposes Init
// without Process. It is returned by Compile; no executor is produced.
type ContractError struct {
	Pipeline string
	Stage    string
	Reason   string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("pipeline %q: stage %q: %s", e.Pipeline, e.Stage, e.Reason)
}

// ContractViolationError reports a stage invocation that returned a nil Conn
// without an error. It aborts the current invocation only; the compiled
// executor stays valid for subsequent invocations.
type ContractViolationError struct {
	Pipeline string
	Stage    string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("pipeline %q: stage %q must receive a *conn.Conn and return a *conn.Conn", e.Pipeline, e.Stage)
}

// IsContractViolation reports whether err is (or wraps) a ContractViolationError.
func IsContractViolation(err error) bool {
	var e *ContractViolationError
	return errors.As(err, &e)
}
