package cli

import "github.com/ardnew/twig/cli/cmd"

// ErrConfig reports a configuration file that could not be loaded.
var ErrConfig = cmd.NewError("load configuration")
