package cmd

import (
	"context"
	"os"

	"github.com/ardnew/twig/cli/cmd/repl"
	"github.com/ardnew/twig/log"
)

// REPL starts an interactive session.
type REPL struct {
	Load     []string `arg:"" help:"Program file(s) to run before the first prompt" name:"source" optional:"" type:"existingfile"`
	MaxDepth int      `       help:"Limit on nested function calls (0 disables)"   default:"${maxDepth}"`
}

// Run executes the repl command.
func (r *REPL) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := ReadSources(ctx, r.Load)
	if err != nil {
		return err
	}

	preload := make([]string, len(sources))
	for i, src := range sources {
		preload[i] = src.Text
	}

	return repl.Run(ctx,
		kongVar(ctx, CacheIdentifier, os.TempDir()),
		log.Default(),
		preload,
		interpreter(r.MaxDepth)...)
}
