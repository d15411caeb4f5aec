// Package profile provides optional runtime profiling for the appdsl
// command.
//
// It integrates [github.com/pkg/profile] behind the "pprof" build tag.
// When built without the tag (the default), every operation is a no-op with
// zero runtime overhead, and the CLI hides the profiling flags.
//
// Supported modes with the pprof tag: allocs, block, clock, cpu, goroutine,
// heap, mem, mutex, thread, trace. Use [Modes] to retrieve the list
// programmatically.
package profile
