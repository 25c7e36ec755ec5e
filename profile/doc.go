// Package profile provides optional runtime profiling with
// [github.com/pkg/profile].
//
// Profiling must be enabled at build time with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] always returns a
// no-op stopper.
//
// # Usage
//
//	p := profile.Make(profile.WithMode("cpu"), profile.WithPath("/tmp/prof"))
//	defer p.Start().Stop()
//
// Profile files are written to the configured directory with names matching
// the profiling mode (e.g., cpu.pprof, mem.pprof) and are analyzed with:
//
//	go tool pprof -http=: /tmp/prof/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
