package pipeline

import (
	"context"
	"fmt"

	"github.com/dcshock/conduit/conn"
)

// Identity returns a stage that passes the Conn through unchanged. Useful as
// a no-op placeholder or an observer boundary.
func Identity() Stage {
	return func(ctx context.Context, c *conn.Conn, _ any) (*conn.Conn, error) {
		return c, nil
	}
}

// Tap returns a stage that calls fn then passes the Conn through unchanged.
// Use for logging, metrics, or side effects that don't change the Conn.
func Tap(fn func(context.Context, *conn.Conn)) Stage {
	return func(ctx context.Context, c *conn.Conn, _ any) (*conn.Conn, error) {
		fn(ctx, c)
		return c, nil
	}
}

// Put returns a stage that assigns a fixed value under key.
func Put(key string, value any) Stage {
	return func(ctx context.Context, c *conn.Conn, _ any) (*conn.Conn, error) {
		return c.Assign(key, value), nil
	}
}

// Respond returns a stage that sets status and output (state becomes set).
// The Conn continues down the pipeline; pair with HaltWith to also stop it.
func Respond(status, output any) Stage {
	return func(ctx context.Context, c *conn.Conn, _ any) (*conn.Conn, error) {
		if err := c.SetOutput(status, output); err != nil {
			return nil, fmt.Errorf("respond: %w", err)
		}
		return c, nil
	}
}

// HaltWith returns a stage that sets status and output and halts the
// pipeline, so no later stage runs for this invocation.
func HaltWith(status, output any) Stage {
	return func(ctx context.Context, c *conn.Conn, _ any) (*conn.Conn, error) {
		if err := c.SetOutput(status, output); err != nil {
			return nil, fmt.Errorf("halt with: %w", err)
		}
		return c.Halt(), nil
	}
}

// Require returns a stage that checks every key is present in the Conn's
// input. On the first missing key it sets a bad_request output naming the
// key and halts.
func Require(keys ...string) Stage {
	return func(ctx context.Context, c *conn.Conn, _ any) (*conn.Conn, error) {
		for _, key := range keys {
			if _, ok := c.Input[key]; !ok {
				if err := c.SetOutput("bad_request", fmt.Sprintf("missing required input %q", key)); err != nil {
					return nil, fmt.Errorf("require: %w", err)
				}
				return c.Halt(), nil
			}
		}
		return c, nil
	}
}
