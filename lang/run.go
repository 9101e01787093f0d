package lang

import (
	"context"
	"log/slog"
)

// State is the outcome of running a program: the final top-level environment,
// the function table, and how execution completed.
type State struct {
	Program   *Program
	Env       Environment
	Functions FunctionTable
	Result    Result
}

// Run scans, parses, and executes source with a fresh environment and
// function table populated by the installers given via [WithBuiltins].
//
// When execution fails the returned State is still non-nil and holds every
// binding made before the failure. Scan and parse failures return a nil
// State since nothing ran.
func Run(ctx context.Context, source string, opts ...Option) (*State, error) {
	prog, err := ParseString(ctx, source, opts...)
	if err != nil {
		return nil, err
	}

	return prog.Run(ctx, opts...)
}

// Run executes the program with a fresh environment and function table.
func (prog *Program) Run(ctx context.Context, opts ...Option) (*State, error) {
	cfg := makeConfig(opts...)

	st := &State{
		Program:   prog,
		Env:       NewEnvironment(),
		Functions: NewFunctionTable(),
	}

	for _, install := range cfg.installers {
		install(st.Functions)
	}

	cfg.logger.TraceContext(ctx, "run",
		slog.Int("builtins", len(st.Functions)),
		slog.Int("statements", len(Statements(prog.Root))))

	res, err := Execute(ctx, prog.Root, st.Env, st.Functions, opts...)
	st.Result = res

	return st, err
}
