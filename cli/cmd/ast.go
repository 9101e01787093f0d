package cmd

import (
	"context"
	"fmt"

	"github.com/kr/pretty"

	"github.com/ardnew/twig/lang"
)

// AST prints the syntax tree of a program.
type AST struct {
	Go     bool   `help:"Print Go syntax of the tree instead of the indented outline"`
	Source string `help:"Program file or '-' for stdin"                                arg:"" default:"-" name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := readOne(ctx, a.Source)
	if err != nil {
		return err
	}

	prog, err := lang.ParseString(ctx, src.Text, interpreter(0)...)
	if err != nil {
		return sourceError(err, src)
	}

	out := streamsFrom(ctx).out

	if a.Go {
		_, err = fmt.Fprintf(out, "%# v\n", pretty.Formatter(prog.Root))
	} else {
		err = lang.Fprint(out, prog.Root)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
