package conn

import (
	"context"
	"fmt"
	"time"
)

// DefaultAwaitTimeout is used by AwaitAssign when the caller passes a
// non-positive timeout.
const DefaultAwaitTimeout = 5 * time.Second

// AsyncFunc is a background computation started by StartAsync.
type AsyncFunc func(ctx context.Context) (any, error)

// pending is the handle stored in Assigns between StartAsync and AwaitAssign.
type pending struct {
	done  chan struct{}
	value any
	err   error
}

// StartAsync runs fn in a new goroutine and stores a pending handle under key
// in Assigns. It returns immediately; AwaitAssign later replaces the handle
// with fn's result. The context is passed through to fn. A computation that
// is never awaited is abandoned: there is no cancellation, and cleanup of its
// resources is fn's own responsibility.
func (c *Conn) StartAsync(ctx context.Context, key string, fn AsyncFunc) *Conn {
	p := &pending{done: make(chan struct{})}
	go func() {
		p.value, p.err = fn(ctx)
		close(p.done)
	}()
	c.Assigns[key] = p
	return c
}

// AwaitAssign blocks until the pending handle stored under key resolves, then
// replaces Assigns[key] with the resolved value. A non-positive timeout means
// DefaultAwaitTimeout. Fails with ErrNoPending when key holds no pending
// handle, with ErrAwaitTimeout when the handle does not resolve in time, and
// with the computation's own error if it returned one (the handle is removed
// in that case).
//
// Awaiting is legal on a halted Conn: halt stops stage advancement, not reads
// against the connection.
func (c *Conn) AwaitAssign(ctx context.Context, key string, timeout time.Duration) error {
	v, ok := c.Assigns[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoPending, key)
	}
	p, ok := v.(*pending)
	if !ok {
		return fmt.Errorf("%w: %q holds %T", ErrNoPending, key, v)
	}
	if timeout <= 0 {
		timeout = DefaultAwaitTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-p.done:
		if p.err != nil {
			delete(c.Assigns, key)
			return fmt.Errorf("await %q: %w", key, p.err)
		}
		c.Assigns[key] = p.value
		return nil
	case <-timer.C:
		return fmt.Errorf("%w: %q after %v", ErrAwaitTimeout, key, timeout)
	case <-ctx.Done():
		return fmt.Errorf("await %q: %w", key, ctx.Err())
	}
}
