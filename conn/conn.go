package conn

import "fmt"

// State is the output lifecycle of a Conn. It only advances forward.
type State int

const (
	// StateUnset means no output has been set.
	StateUnset State = iota
	// StateSet means output and status are set but not yet sent.
	StateSet
	// StateSent means the output has been sent; the Conn is read-only with
	// respect to output, status, and state.
	StateSent
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateUnset:
		return "unset"
	case StateSet:
		return "set"
	case StateSent:
		return "sent"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Conn is the context value threaded through a pipeline. Input and Assigns
// are exported maps for direct stage access; the output lifecycle fields and
// the private scope are unexported so the state machine cannot be bypassed.
//
// Assigns and the private scope are disjoint: the same key in each refers to
// two independent values. The private scope is reserved for stage and
// library bookkeeping; keys are conventionally namespaced ("mylib.token").
type Conn struct {
	// Input holds the caller-supplied parameters. Stages should treat it as
	// read-only; derived data belongs in Assigns.
	Input map[string]any

	// Assigns holds user and stage data.
	Assigns map[string]any

	output  any
	status  int
	state   State
	halted  bool
	private map[string]any
}

// New returns a Conn in state unset with the given input. A nil input is
// replaced with an empty map so stages can read it without nil checks.
func New(input map[string]any) *Conn {
	if input == nil {
		input = map[string]any{}
	}
	return &Conn{
		Input:   input,
		Assigns: map[string]any{},
		private: map[string]any{},
	}
}

// Output returns the output value, or nil while the state is unset.
func (c *Conn) Output() any { return c.output }

// Status returns the numeric status code, or 0 until one is set.
func (c *Conn) Status() int { return c.status }

// State returns the current lifecycle state.
func (c *Conn) State() State { return c.state }

// Halted reports whether a stage has halted the pipeline for this Conn.
func (c *Conn) Halted() bool { return c.halted }

// Assign inserts or overwrites key in Assigns and returns the Conn for
// chaining. It always succeeds.
func (c *Conn) Assign(key string, value any) *Conn {
	c.Assigns[key] = value
	return c
}

// PutPrivate inserts or overwrites key in the private scope and returns the
// Conn for chaining.
func (c *Conn) PutPrivate(key string, value any) *Conn {
	c.private[key] = value
	return c
}

// GetPrivate returns the private value for key and whether it was present.
func (c *Conn) GetPrivate(key string) (any, bool) {
	v, ok := c.private[key]
	return v, ok
}

// PutStatus sets the status. status is an int code or a symbolic name looked
// up via StatusCode. Fails with ErrAlreadySent once the Conn is sent.
func (c *Conn) PutStatus(status any) error {
	if c.state == StateSent {
		return fmt.Errorf("%w: cannot set status", ErrAlreadySent)
	}
	code, err := StatusCode(status)
	if err != nil {
		return err
	}
	c.status = code
	return nil
}

// SetOutput sets status and output and advances the state to set. Calling it
// again while still in state set overwrites both (the advance is idempotent).
// Fails with ErrAlreadySent once the Conn is sent.
func (c *Conn) SetOutput(status, output any) error {
	if c.state == StateSent {
		return fmt.Errorf("%w: cannot set output", ErrAlreadySent)
	}
	code, err := StatusCode(status)
	if err != nil {
		return err
	}
	c.status = code
	c.output = output
	c.state = StateSet
	return nil
}

// Send marks the output as sent. Requires state set: fails with ErrNotSet
// from unset and ErrAlreadySent from sent.
func (c *Conn) Send() error {
	switch c.state {
	case StateUnset:
		return ErrNotSet
	case StateSent:
		return ErrAlreadySent
	}
	c.state = StateSent
	return nil
}

// SendOutput is SetOutput followed by Send.
func (c *Conn) SendOutput(status, output any) error {
	if err := c.SetOutput(status, output); err != nil {
		return err
	}
	return c.Send()
}

// Halt marks the Conn halted so the executing pipeline stops advancing after
// the current stage. It does not change the output state; a halted Conn can
// still be read, logged, and awaited.
func (c *Conn) Halt() *Conn {
	c.halted = true
	return c
}
