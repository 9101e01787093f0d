package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/twig/lang"
	"github.com/ardnew/twig/log"
)

// Run executes programs. Several sources run in order against one
// environment and function table, so later files see what earlier files
// defined. A top-level return stops the remaining sources.
type Run struct {
	Sources  []string `arg:"" default:"-"           help:"Program file(s) or '-' for stdin"             name:"source"         optional:""`
	Eval     string   `                             help:"Run program text instead of source files"     placeholder:"PROGRAM" short:"e"`
	Dump     bool     `                             help:"Print source, tokens, and AST before running" short:"d"`
	State    string   `       default:""            help:"Print final variables and functions"          placeholder:"FORMAT"  short:"s"   enum:",text,json,yaml"`
	Indent   int      `       default:"2"           help:"Indent width for json and yaml state"`
	MaxDepth int      `       default:"${maxDepth}" help:"Limit on nested function calls (0 disables)"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources := []Source{{Name: "eval", Text: r.Eval}}
	if r.Eval == "" {
		if sources, err = ReadSources(ctx, r.Sources); err != nil {
			return err
		}
	}

	if len(sources) == 0 {
		return ErrNoSource.With(slog.Any("sources", r.Sources))
	}

	out := streamsFrom(ctx).out
	opts := interpreter(r.MaxDepth)

	st := &lang.State{
		Env:       lang.NewEnvironment(),
		Functions: lang.NewFunctionTable(),
	}
	builtins(ctx)(st.Functions)

	err = r.execute(ctx, out, st, sources, opts)

	if r.State != "" {
		if serr := r.printState(ctx, out, st); serr != nil && err == nil {
			err = serr
		}
	}

	return err
}

func (r *Run) execute(
	ctx context.Context,
	out io.Writer,
	st *lang.State,
	sources []Source,
	opts []lang.Option,
) error {
	for _, src := range sources {
		prog, err := lang.ParseString(ctx, src.Text, opts...)
		if err != nil {
			return sourceError(err, src)
		}

		if r.Dump {
			if err := dump(out, src, prog); err != nil {
				return err
			}
		}

		st.Program = prog

		st.Result, err = lang.Execute(ctx, prog.Root, st.Env, st.Functions, opts...)
		if err != nil {
			return sourceError(err, src)
		}

		log.DebugContext(ctx, "source complete",
			slog.String("source", src.Name),
			slog.Int("variables", len(st.Env)),
			slog.Bool("returned", st.Result.Returned))

		if st.Result.Returned {
			break
		}
	}

	return nil
}

func (r *Run) printState(ctx context.Context, w io.Writer, st *lang.State) error {
	var err error

	switch r.State {
	case "json":
		err = st.FormatJSON(w, r.Indent)
	case "yaml":
		err = st.FormatYAML(ctx, w, r.Indent)
	default:
		err = st.FormatText(w)
	}

	if err != nil {
		return ErrWriteOutput.With(slog.String("format", r.State)).Wrap(err)
	}

	return nil
}

// dump writes each pipeline stage of prog under a heading.
func dump(w io.Writer, src Source, prog *lang.Program) error {
	if _, err := fmt.Fprintf(w, "== source (%s) ==\n%s\n== tokens ==\n", src.Name, prog.Source); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	if err := lang.FprintTokens(w, prog.Tokens); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	if _, err := io.WriteString(w, "== ast ==\n"); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	if err := lang.Fprint(w, prog.Root); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	_, err := io.WriteString(w, "== output ==\n")

	return err
}
