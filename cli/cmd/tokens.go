package cmd

import (
	"context"

	"github.com/ardnew/twig/lang"
)

// Tokens prints the token stream of a program, one token per line.
type Tokens struct {
	Source string `arg:"" default:"-" help:"Program file or '-' for stdin" name:"source"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := readOne(ctx, t.Source)
	if err != nil {
		return err
	}

	tokens, err := lang.Scan(ctx, src.Text, interpreter(0)...)
	if err != nil {
		return sourceError(err, src)
	}

	if err := lang.FprintTokens(streamsFrom(ctx).out, tokens); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// readOne reads a single named source.
func readOne(ctx context.Context, path string) (Source, error) {
	sources, err := ReadSources(ctx, []string{path})
	if err != nil {
		return Source{}, err
	}

	return sources[0], nil
}
