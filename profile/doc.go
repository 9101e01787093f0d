// Package profile starts optional runtime profiling through
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof -o twig .
//	twig --pprof-mode cpu run fib.twig
//	go tool pprof twig ~/.cache/twig/pprof/cpu.pprof
//
// Without the tag, [Modes] is empty and [Profiler.Start] always returns a
// no-op [Stopper], so callers never need their own build constraints.
//
// CPU and clock profiles are the useful ones for the interpreter: deep
// recursion in user functions shows up as exec/eval/invoke cycles.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
