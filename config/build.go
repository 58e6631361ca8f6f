package config

import (
	"fmt"
	"log/slog"

	"github.com/dcshock/conduit/pipeline"
)

// BuildOptions configures how a pipeline is built from config.
type BuildOptions struct {
	// Logger is passed to the builder for halt logging. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// Observer, when set, is attached to every built pipeline.
	Observer pipeline.Observer

	// Settings supply engine defaults; a pipeline config's own log_on_halt
	// wins over Settings.LogOnHalt.
	Settings *Settings
}

// BuildPipeline builds a compiled executor from config and registry. Stage
// names in config must be registered; `when` guard expressions are compiled
// here, so bad guard syntax fails the build along with unknown stages and
// bad component contracts. No partial executor is ever produced.
func BuildPipeline(reg *Registry, cfg *PipelineConfig, opts *BuildOptions) (pipeline.Exec, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	var pOpts []pipeline.Option
	if opts != nil && opts.Logger != nil {
		pOpts = append(pOpts, pipeline.WithLogger(opts.Logger))
	}
	if opts != nil && opts.Observer != nil {
		pOpts = append(pOpts, pipeline.WithObserver(opts.Observer))
	}
	haltLog := cfg.LogOnHalt
	if haltLog == "" && opts != nil && opts.Settings != nil {
		haltLog = opts.Settings.LogOnHalt
	}
	if haltLog != "" {
		level, err := ParseLevel(haltLog)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q: %w", cfg.Name, err)
		}
		pOpts = append(pOpts, pipeline.LogOnHalt(level))
	}

	b := pipeline.New(cfg.Name, pOpts...)
	for i, ref := range cfg.Stages {
		if ref.Name == "" {
			return nil, fmt.Errorf("stage %d: name required", i)
		}
		target, ok := reg.Get(ref.Name)
		if !ok {
			return nil, fmt.Errorf("stage %d: %q not in registry", i, ref.Name)
		}
		var guard pipeline.Guard
		if ref.When != "" {
			g, err := CompileGuard(ref.When)
			if err != nil {
				return nil, fmt.Errorf("stage %d (%q): %w", i, ref.Name, err)
			}
			guard = g
		}
		var stageOpts any
		if ref.Options != nil {
			stageOpts = ref.Options
		}
		b.UseIf(guard, ref.Name, target, stageOpts)
	}
	return b.Compile()
}

// BuildAllPipelines builds an executor for each entry in multi. Keys are
// pipeline names; if a config's Name is empty, the map key is used.
func BuildAllPipelines(reg *Registry, multi *MultiPipelineConfig, opts *BuildOptions) (map[string]pipeline.Exec, error) {
	if multi == nil {
		return nil, fmt.Errorf("MultiPipelineConfig is nil")
	}
	out := make(map[string]pipeline.Exec, len(multi.Pipelines))
	for name, cfg := range multi.Pipelines {
		if cfg.Name == "" {
			cfg.Name = name
		}
		exec, err := BuildPipeline(reg, &cfg, opts)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q: %w", name, err)
		}
		out[name] = exec
	}
	return out, nil
}

// ParseLevel maps a config level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log level %q not supported (use debug, info, warn, or error)", s)
	}
}
