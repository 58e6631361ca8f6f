// Package observer provides pipeline.Observer implementations.
//
//   - SlogObserver: logs each pipeline run and executed stage through an
//     injected slog.Logger, with a distinct record when a stage halts or
//     fails. Attach with pipeline.WithObserver or config.BuildOptions.
//
// Observers are in-process hooks only; they carry no storage.
package observer
