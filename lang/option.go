package lang

import "github.com/ardnew/twig/log"

// DefaultMaxCallDepth is the default limit on nested user-function calls.
// Users may modify this before executing to change the default.
var DefaultMaxCallDepth = 10000

// config holds the settings shared by every pipeline stage.
type config struct {
	logger       log.Logger // zero value discards everything
	maxCallDepth int
	installers   []func(FunctionTable)
}

// Option configures scanning, parsing, or execution behavior.
type Option func(*config)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxCallDepth limits how deeply user functions may recurse.
// A depth of 0 disables the limit.
func WithMaxCallDepth(depth int) Option {
	return func(c *config) {
		c.maxCallDepth = depth
	}
}

// WithBuiltins registers install to populate the function table that [Run]
// creates before executing. Installers run in the order given.
func WithBuiltins(install func(FunctionTable)) Option {
	return func(c *config) {
		c.installers = append(c.installers, install)
	}
}

func makeConfig(opts ...Option) config {
	c := config{maxCallDepth: DefaultMaxCallDepth}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}
