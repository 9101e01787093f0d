// Package cmd implements the twig subcommands: run, tokens, ast, repl, and
// version.
//
// Commands receive a [context.Context] carrying the parsed [kong.Context]
// (see [WithContext]) and the standard streams (see [WithStreams]), so tests
// can drive them without touching the process's stdin and stdout.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file, without extension.
	ConfigIdentifier = "config"

	// MaxDepthIdentifier is the kong variable identifier containing the
	// default limit on nested function calls.
	MaxDepthIdentifier = "maxDepth"
)
