// Package cli contains the command line interface for appdsl.
//
// # Usage
//
// The CLI exposes the DSL front end as three subcommands:
//
//	appdsl check app.dsl
//	appdsl generate app.dsl --platform web --out ./build
//	appdsl dump app.dsl
//
// check runs the full pipeline (lex, parse, extract, reconcile, validate)
// and renders every diagnostic; its exit status is nonzero when any
// error-severity diagnostic exists. generate runs check first and then
// writes the platform scaffolds. dump prints the parsed document as JSON
// for debugging.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorized human-readable output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//
// # Configuration
//
// Defaults for any flag may be set in a YAML config file (written by the
// init subcommand); command-line flags override config file values.
package cli
