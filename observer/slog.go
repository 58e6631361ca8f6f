package observer

import (
	"context"
	"log/slog"
	"time"

	"github.com/dcshock/conduit/conn"
	"github.com/dcshock/conduit/pipeline"
)

// SlogObserver logs pipeline and stage execution through slog. Routine
// records use the configured level; a failed stage or run logs at error
// level regardless, and a halted run is marked on its stage record.
type SlogObserver struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogObserver returns an observer writing to logger at level. A nil
// logger means slog.Default().
func NewSlogObserver(logger *slog.Logger, level slog.Level) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger, level: level}
}

// BeforePipeline implements pipeline.Observer.
func (o *SlogObserver) BeforePipeline(ctx context.Context, runID, name string, c *conn.Conn) error {
	o.logger.Log(ctx, o.level, "pipeline start",
		"run_id", runID, "pipeline", name)
	return nil
}

// AfterPipeline implements pipeline.Observer.
func (o *SlogObserver) AfterPipeline(ctx context.Context, runID string, c *conn.Conn, err error) error {
	if err != nil {
		o.logger.Log(ctx, slog.LevelError, "pipeline failed",
			"run_id", runID, "error", err.Error())
		return nil
	}
	halted := c != nil && c.Halted()
	o.logger.Log(ctx, o.level, "pipeline done",
		"run_id", runID, "halted", halted, "state", stateName(c))
	return nil
}

// BeforeStage implements pipeline.Observer.
func (o *SlogObserver) BeforeStage(ctx context.Context, runID string, index int, stage string, c *conn.Conn) error {
	o.logger.Log(ctx, o.level, "stage start",
		"run_id", runID, "index", index, "stage", stage)
	return nil
}

// AfterStage implements pipeline.Observer.
func (o *SlogObserver) AfterStage(ctx context.Context, runID string, index int, stage string, c *conn.Conn, stageErr error, d time.Duration) error {
	if stageErr != nil {
		o.logger.Log(ctx, slog.LevelError, "stage failed",
			"run_id", runID, "index", index, "stage", stage,
			"duration", d, "error", stageErr.Error())
		return nil
	}
	halted := c != nil && c.Halted()
	o.logger.Log(ctx, o.level, "stage done",
		"run_id", runID, "index", index, "stage", stage,
		"duration", d, "halted", halted)
	return nil
}

func stateName(c *conn.Conn) string {
	if c == nil {
		return ""
	}
	return c.State().String()
}

// Ensure SlogObserver implements pipeline.Observer.
var _ pipeline.Observer = (*SlogObserver)(nil)
