// Package config provides a stage registry and human-readable pipeline
// declarations.
//
// Register stage targets (function stages or components) by name, then
// define pipelines in YAML that reference those names with optional options
// and a guard expression:
//
//	pipelines:
//	  authed:
//	    log_on_halt: info
//	    stages:
//	      - require_token
//	      - name: authorize
//	        options: {realm: admin}
//	        when: 'assigns.role == "admin"'
//	      - respond
//
// Build an executor with BuildPipeline(registry, cfg, opts). The `when`
// guard is an HCL expression parsed once at build time and evaluated per
// invocation against the connection: the bindings `input`, `assigns`,
// `status`, `state`, and `halted` are in scope. A stage written as a plain
// string is shorthand for name-only with no options and no guard.
//
// Engine-wide defaults (halt-log level, default await timeout) load from a
// YAML file and CONDUIT_* environment variables via LoadSettings.
package config
