// Package log is a small leveled logger built on [log/slog].
//
// A [Logger] is configured once with functional options and then passed by
// value. The zero Logger is valid and discards everything, which lets the
// interpreter packages hold one unconditionally.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//	logger.Trace("call", slog.String("function", "fib"), slog.Int("depth", 3))
//
// Messages take typed [slog.Attr] values only; there is no key/value
// variadic form.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is rendered as TRACE. The lexer,
// parser, and evaluator log at that level, so it is normally hidden.
//
// # Formats
//
// [FormatJSON] and [FormatText] select the slog handler. With [WithPretty]
// (the default) both are colorized: text drops its quoting and JSON becomes
// an indented block.
//
// # Package-Level Logger
//
// Functions such as [Info] and [Trace] write through [Default], which
// initially writes to standard error. [Config] reconfigures it.
package log
