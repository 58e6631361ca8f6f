package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dcshock/conduit/conn"
)

// Stage is a single pipeline element. It receives the Conn, transforms it,
// and returns it (the same pointer or a replacement). opts is whatever was
// declared for the stage: the frozen declaration value for function stages,
// or the component's Init result for component stages.
//
// Returning (nil, nil) violates the stage contract and aborts the invocation
// with ContractViolationError. Returning an error aborts the invocation and
// propagates to the caller, wrapped with the stage name.
type Stage func(ctx context.Context, c *conn.Conn, opts any) (*conn.Conn, error)

// Component is a stage with a compile-time initialization step. Init runs
// exactly once, when the pipeline is compiled; its return value becomes the
// opts passed to Process on every invocation.
type Component interface {
	Init(opts any) any
	Process(ctx context.Context, c *conn.Conn, opts any) (*conn.Conn, error)
}

// Exec is a compiled pipeline: it runs one Conn through all stages in
// declaration order and returns the transformed Conn. An Exec is immutable
// and safe for concurrent invocations.
type Exec func(ctx context.Context, c *conn.Conn) (*conn.Conn, error)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for halt logging. Defaults to
// slog.Default() at compile time.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// LogOnHalt makes every halt emit one log record at the given level, naming
// the pipeline and the halting stage.
func LogOnHalt(level slog.Level) Option {
	return func(b *Builder) { b.haltLevel, b.logOnHalt = level, true }
}

// WithObserver attaches pre/post hooks around the pipeline and each executed
// stage. Guard-skipped stages are not observed.
func WithObserver(obs Observer) Option {
	return func(b *Builder) { b.observer = obs }
}

// Builder accumulates stage entries in declaration order. Declaration is
// single-threaded and finishes before Compile; the Builder itself is not
// used after compilation.
type Builder struct {
	name      string
	logger    *slog.Logger
	haltLevel slog.Level
	logOnHalt bool
	observer  Observer
	entries   []entry
}

type entry struct {
	name   string
	target any
	opts   any
	guard  Guard
}

// New returns a Builder for a pipeline with the given name.
func New(name string, opts ...Option) *Builder {
	b := &Builder{name: name}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Use appends an unconditional stage. target is a Stage (or a function with
// the Stage signature) or a Component; anything else fails Compile with
// ContractError. The name identifies the stage in errors and logs.
func (b *Builder) Use(name string, target, opts any) *Builder {
	return b.UseIf(nil, name, target, opts)
}

// UseIf appends a stage gated by guard. A nil guard means the stage always
// runs; when the guard evaluates false for an invocation the stage is
// skipped entirely and the Conn passes through unchanged.
func (b *Builder) UseIf(guard Guard, name string, target, opts any) *Builder {
	b.entries = append(b.entries, entry{name: name, target: target, opts: opts, guard: guard})
	return b
}

// step is a resolved entry: component Init already applied, options frozen.
type step struct {
	name   string
	invoke Stage
	opts   any
	guard  Guard
}

// Compile resolves every entry (running component Init once each, freezing
// function-stage options) and composes the stages right-to-left into nested
// continuations. The innermost continuation returns the Conn unchanged,
// representing "pipeline exhausted". Compilation either fully succeeds or
// fails with ContractError; no partial executor is produced.
func (b *Builder) Compile() (Exec, error) {
	steps := make([]step, len(b.entries))
	for i, e := range b.entries {
		st, err := b.resolve(e)
		if err != nil {
			return nil, err
		}
		steps[i] = st
	}

	// Capture configuration now so later Builder mutation cannot reach the
	// compiled executor.
	pipeName := b.name
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	logOnHalt, haltLevel := b.logOnHalt, b.haltLevel
	obs := b.observer

	next := Exec(func(ctx context.Context, c *conn.Conn) (*conn.Conn, error) {
		return c, nil
	})
	for i := len(steps) - 1; i >= 0; i-- {
		st := steps[i]
		idx := i
		inner := next
		next = func(ctx context.Context, c *conn.Conn) (*conn.Conn, error) {
			if st.guard != nil && !st.guard(c) {
				return inner(ctx, c)
			}
			var runID string
			var start time.Time
			if obs != nil {
				runID = runIDFromContext(ctx)
				if err := obs.BeforeStage(ctx, runID, idx, st.name, c); err != nil {
					return nil, fmt.Errorf("before stage %q: %w", st.name, err)
				}
				start = time.Now()
			}
			out, err := st.invoke(ctx, c, st.opts)
			if obs != nil {
				if postErr := obs.AfterStage(ctx, runID, idx, st.name, out, err, time.Since(start)); postErr != nil && err == nil {
					err = fmt.Errorf("after stage: %w", postErr)
				}
			}
			if err != nil {
				return nil, fmt.Errorf("stage %q: %w", st.name, err)
			}
			if out == nil {
				return nil, &ContractViolationError{Pipeline: pipeName, Stage: st.name}
			}
			if out.Halted() {
				if logOnHalt {
					logger.Log(ctx, haltLevel, "pipeline halted",
						"pipeline", pipeName, "stage", st.name)
				}
				return out, nil
			}
			return inner(ctx, out)
		}
	}

	if obs == nil {
		return next, nil
	}
	chain := next
	return func(ctx context.Context, c *conn.Conn) (*conn.Conn, error) {
		ctx, runID := ensureRunID(ctx)
		if err := obs.BeforePipeline(ctx, runID, pipeName, c); err != nil {
			return nil, fmt.Errorf("before pipeline: %w", err)
		}
		out, err := chain(ctx, c)
		if postErr := obs.AfterPipeline(ctx, runID, out, err); postErr != nil && err == nil {
			err = fmt.Errorf("after pipeline: %w", postErr)
		}
		return out, err
	}, nil
}

func (b *Builder) resolve(e entry) (step, error) {
	st := step{name: e.name, guard: e.guard}
	switch t := e.target.(type) {
	case Stage:
		if t == nil {
			return step{}, &ContractError{Pipeline: b.name, Stage: e.name, Reason: "stage is nil"}
		}
		st.invoke = t
		st.opts = freezeOpts(e.opts)
	case func(context.Context, *conn.Conn, any) (*conn.Conn, error):
		if t == nil {
			return step{}, &ContractError{Pipeline: b.name, Stage: e.name, Reason: "stage is nil"}
		}
		st.invoke = t
		st.opts = freezeOpts(e.opts)
	case Component:
		st.opts = t.Init(e.opts)
		st.invoke = t.Process
	default:
		if _, ok := e.target.(interface{ Init(opts any) any }); ok {
			return step{}, &ContractError{Pipeline: b.name, Stage: e.name, Reason: "component must implement Process(ctx, conn, opts)"}
		}
		return step{}, &ContractError{Pipeline: b.name, Stage: e.name, Reason: fmt.Sprintf("target %T is neither a Stage nor a Component", e.target)}
	}
	return st, nil
}

// freezeOpts shallow-copies declaration-time option containers so mutating
// the original after declaration does not reach the compiled pipeline.
func freezeOpts(opts any) any {
	switch o := opts.(type) {
	case map[string]any:
		cp := make(map[string]any, len(o))
		for k, v := range o {
			cp[k] = v
		}
		return cp
	case []any:
		cp := make([]any, len(o))
		copy(cp, o)
		return cp
	default:
		return opts
	}
}
