// Package cli contains the command line interface for twig.
//
// # Usage
//
// The default command runs programs named on the command line, or standard
// input when none are given:
//
//	twig hello.twig
//	echo 'print("hi")' | twig
//	twig run -e 'x = 6 * 7; print(x)' -s yaml
//
// Other commands inspect a program without running it, or start an
// interactive session:
//
//	twig tokens hello.twig
//	twig ast hello.twig
//	twig repl --load lib.twig
//
// # Configuration
//
// Flag defaults may be set in files under the user configuration directory
// (for example ~/.config/twig). Each file is optional, and later files take
// precedence over earlier ones:
//
//   - config.json: flat JSON object keyed by flag name
//   - config.toml: tables nest flag name segments ([log] level = "debug")
//   - config.twig: a twig program run without builtins, whose top-level
//     variables become flag values (log_level = "debug")
//
// Command-line flags always take precedence over configuration files.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o twig .
//
// It adds --pprof-mode to select a profile and --pprof-dir to choose where it
// is written (by default the profile directory under the user cache
// directory).
package cli
