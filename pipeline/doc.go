// Package pipeline compiles an ordered list of stages into a single executor
// over conn.Conn. A Builder collects stage entries (stage, options, guard) in
// declaration order; Compile resolves and validates them once, then folds
// them right-to-left into nested continuations. At runtime the executor is
// just a function call: guards decide whether each stage runs, and a halted
// Conn short-circuits the rest of the chain.
//
//	exec, err := pipeline.New("authed",
//		pipeline.LogOnHalt(slog.LevelInfo),
//	).
//		Use("require_token", requireToken, nil).
//		UseIf(pipeline.HasAssign("user"), "audit", audit, nil).
//		Use("respond", respond, nil).
//		Compile()
//
//	out, err := exec(ctx, conn.New(params))
//
// Stages come in two shapes. A function stage is any Stage value; its options
// are frozen at compile time and passed back on every invocation. A component
// stage implements Component: Init runs exactly once at compile time and its
// result becomes the options passed to Process. A declared component that
// lacks Process fails compilation with ContractError; no executor is
// produced.
//
// The compiled executor is immutable and safe for concurrent invocations:
// all per-run state lives in the Conn, which is owned by one goroutine at a
// time. A runtime failure (stage error, ContractViolationError) aborts only
// that invocation; the executor stays reusable.
//
// Optional hooks: LogOnHalt emits one log record (through the injected
// slog.Logger) naming the pipeline and the halting stage whenever a stage
// halts. WithObserver attaches pre/post hooks around the run and each
// executed stage; guard-skipped stages are not observed.
package pipeline
