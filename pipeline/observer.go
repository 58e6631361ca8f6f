package pipeline

import (
	"context"
	"time"

	"github.com/dcshock/conduit/conn"
	"github.com/google/uuid"
)

// Observer provides pre/post hooks for pipeline and stage execution, for
// logging and metrics. BeforePipeline runs before any stage; BeforeStage and
// AfterStage run around each executed stage (skipped stages are invisible);
// AfterPipeline runs when the invocation finishes, whether it completed,
// halted, or failed. A BeforeStage/BeforePipeline error aborts the
// invocation; an After hook error is reported only when the underlying
// invocation succeeded, so it never masks a stage error.
type Observer interface {
	BeforePipeline(ctx context.Context, runID, pipeline string, c *conn.Conn) error
	AfterPipeline(ctx context.Context, runID string, c *conn.Conn, err error) error
	BeforeStage(ctx context.Context, runID string, index int, stage string, c *conn.Conn) error
	AfterStage(ctx context.Context, runID string, index int, stage string, c *conn.Conn, stageErr error, duration time.Duration) error
}

// MultiObserver combines observers into one; hooks run in order and the
// first error wins.
func MultiObserver(list ...Observer) Observer {
	return multiObserver(list)
}

type multiObserver []Observer

func (m multiObserver) BeforePipeline(ctx context.Context, runID, pipeline string, c *conn.Conn) error {
	for _, o := range m {
		if err := o.BeforePipeline(ctx, runID, pipeline, c); err != nil {
			return err
		}
	}
	return nil
}

func (m multiObserver) AfterPipeline(ctx context.Context, runID string, c *conn.Conn, err error) error {
	for _, o := range m {
		if hookErr := o.AfterPipeline(ctx, runID, c, err); hookErr != nil {
			return hookErr
		}
	}
	return nil
}

func (m multiObserver) BeforeStage(ctx context.Context, runID string, index int, stage string, c *conn.Conn) error {
	for _, o := range m {
		if err := o.BeforeStage(ctx, runID, index, stage, c); err != nil {
			return err
		}
	}
	return nil
}

func (m multiObserver) AfterStage(ctx context.Context, runID string, index int, stage string, c *conn.Conn, stageErr error, d time.Duration) error {
	for _, o := range m {
		if err := o.AfterStage(ctx, runID, index, stage, c, stageErr, d); err != nil {
			return err
		}
	}
	return nil
}

// run ID plumbing: the observed executor generates a UUID per invocation
// unless the caller already put one in the context with WithRunID.

type runIDKey struct{}

// WithRunID returns a context carrying an explicit run ID for observer
// hooks. Without it, each observed invocation generates a fresh UUID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

func runIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

func ensureRunID(ctx context.Context) (context.Context, string) {
	if id := runIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.New().String()
	return WithRunID(ctx, id), id
}
