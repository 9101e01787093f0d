package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/twig/pkg"
)

// Version prints the program version.
type Version struct {
	Verbose bool `help:"Include the description and author" short:"v"`
}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) error {
	out := streamsFrom(ctx).out

	if !v.Verbose {
		_, err := fmt.Fprintln(out, pkg.Name, pkg.Version)

		return err
	}

	if _, err := fmt.Fprintf(out, "%s %s\n%s\n", pkg.Name, pkg.Version, pkg.Description); err != nil {
		return err
	}

	for _, a := range pkg.Author {
		if _, err := fmt.Fprintf(out, "%s <%s>\n", a.Name, a.Email); err != nil {
			return err
		}
	}

	return nil
}
