package builtin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/mung"
	"github.com/expr-lang/expr"

	"github.com/ardnew/twig/lang"
	"github.com/ardnew/twig/log"
)

// config holds the settings captured by the builtin closures.
type config struct {
	output io.Writer
	lookup func(string) (string, bool)
	logger log.Logger
}

// Option configures the installed builtins.
type Option func(*config)

// WithOutput sets the writer used by the print builtins.
// The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithLookupEnv sets the function getenv uses to read variables.
// The default is os.LookupEnv.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(c *config) {
		c.lookup = lookup
	}
}

// WithLogger sets the structured logger for trace-level debugging.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// entry describes one builtin: its documented parameters and a constructor
// for the native implementation over the shared configuration.
type entry struct {
	params []string
	native func(*config) lang.Native
}

var builtins = map[string]entry{
	"print":       {[]string{"...values"}, newPrint},
	"print_int":   {[]string{"n"}, newPrintInt},
	"print_str":   {[]string{"s"}, newPrintStr},
	"len":         {[]string{"s"}, newLen},
	"str":         {[]string{"v"}, newStr},
	"int":         {[]string{"s"}, newInt},
	"expr":        {[]string{"src", "...args"}, newExpr},
	"path_prefix": {[]string{"list", "...items"}, newPathPrefix},
	"getenv":      {[]string{"name"}, newGetenv},
}

// Params returns the parameter names of the named builtin. A variadic
// parameter is prefixed with "...".
func Params(name string) ([]string, bool) {
	e, ok := builtins[name]
	if !ok {
		return nil, false
	}

	return slices.Clone(e.params), true
}

// Names returns the names of all builtin functions in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Register installs every builtin into ft.
func Register(ft lang.FunctionTable, opts ...Option) {
	cfg := &config{
		output: os.Stdout,
		lookup: os.LookupEnv,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	for _, name := range Names() {
		ft.Register(name, builtins[name].native(cfg))
	}

	cfg.logger.Trace("builtins registered", slog.Int("count", len(builtins)))
}

// Installer returns a function suitable for [lang.WithBuiltins].
func Installer(opts ...Option) func(lang.FunctionTable) {
	return func(ft lang.FunctionTable) {
		Register(ft, opts...)
	}
}

func newPrint(c *config) lang.Native {
	return lang.NativeFunc(func(_ context.Context, args []lang.Value) (lang.Value, error) {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = arg.String()
		}

		return lang.UnitValue(), writeLine(c.output, strings.Join(parts, " "))
	})
}

func newPrintInt(c *config) lang.Native {
	return lang.NativeFunc(func(_ context.Context, args []lang.Value) (lang.Value, error) {
		if err := arity(args, 1); err != nil {
			return lang.Value{}, err
		}

		n, err := intArg(args, 0)
		if err != nil {
			return lang.Value{}, err
		}

		return lang.UnitValue(), writeLine(c.output, strconv.FormatInt(int64(n), 10))
	})
}

func newPrintStr(c *config) lang.Native {
	return lang.NativeFunc(func(_ context.Context, args []lang.Value) (lang.Value, error) {
		if err := arity(args, 1); err != nil {
			return lang.Value{}, err
		}

		s, err := stringArg(args, 0)
		if err != nil {
			return lang.Value{}, err
		}

		return lang.UnitValue(), writeLine(c.output, s)
	})
}

func newLen(*config) lang.Native {
	return lang.NativeFunc(func(_ context.Context, args []lang.Value) (lang.Value, error) {
		if err := arity(args, 1); err != nil {
			return lang.Value{}, err
		}

		s, err := stringArg(args, 0)
		if err != nil {
			return lang.Value{}, err
		}

		if len(s) > math.MaxInt32 {
			return lang.Value{}, lang.ErrBuiltin.
				With(slog.String("error", "length out of range"))
		}

		return lang.IntValue(int32(len(s))), nil
	})
}

func newStr(*config) lang.Native {
	return lang.NativeFunc(func(_ context.Context, args []lang.Value) (lang.Value, error) {
		if err := arity(args, 1); err != nil {
			return lang.Value{}, err
		}

		return lang.StringValue(args[0].String()), nil
	})
}

func newInt(*config) lang.Native {
	return lang.NativeFunc(func(_ context.Context, args []lang.Value) (lang.Value, error) {
		if err := arity(args, 1); err != nil {
			return lang.Value{}, err
		}

		if n, ok := args[0].Int(); ok {
			return lang.IntValue(n), nil
		}

		s, err := stringArg(args, 0)
		if err != nil {
			return lang.Value{}, err
		}

		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return lang.Value{}, lang.ErrBuiltin.Wrap(err).
				With(slog.String("input", s))
		}

		return lang.IntValue(int32(n)), nil
	})
}

// newExpr evaluates its first argument as an expr-lang expression with the
// remaining arguments bound to a0, a1, and so on.
func newExpr(*config) lang.Native {
	return lang.NativeFunc(func(_ context.Context, args []lang.Value) (lang.Value, error) {
		if len(args) < 1 {
			return lang.Value{}, lang.ErrBuiltin.
				With(slog.String("error", "missing expression"))
		}

		src, err := stringArg(args, 0)
		if err != nil {
			return lang.Value{}, err
		}

		env := make(map[string]any, len(args)-1)
		for i, arg := range args[1:] {
			env["a"+strconv.Itoa(i)] = hostValue(arg)
		}

		program, err := expr.Compile(src, expr.Env(env))
		if err != nil {
			return lang.Value{}, lang.ErrBuiltin.Wrap(err).
				With(slog.String("expr", src))
		}

		out, err := expr.Run(program, env)
		if err != nil {
			return lang.Value{}, lang.ErrBuiltin.Wrap(err).
				With(slog.String("expr", src))
		}

		return fromHost(src, out)
	})
}

func newPathPrefix(*config) lang.Native {
	return lang.NativeFunc(func(_ context.Context, args []lang.Value) (lang.Value, error) {
		if len(args) < 1 {
			return lang.Value{}, lang.ErrBuiltin.
				With(slog.String("error", "missing path list"))
		}

		items := make([]string, len(args))
		for i := range args {
			s, err := stringArg(args, i)
			if err != nil {
				return lang.Value{}, err
			}

			items[i] = s
		}

		return lang.StringValue(mung.Make(
			mung.WithSubjectItems(items[0]),
			mung.WithDelim(string(os.PathListSeparator)),
			mung.WithPrefixItems(items[1:]...),
		).String()), nil
	})
}

func newGetenv(c *config) lang.Native {
	return lang.NativeFunc(func(_ context.Context, args []lang.Value) (lang.Value, error) {
		if err := arity(args, 1); err != nil {
			return lang.Value{}, err
		}

		key, err := stringArg(args, 0)
		if err != nil {
			return lang.Value{}, err
		}

		value, _ := c.lookup(key)

		return lang.StringValue(value), nil
	})
}

// Helpers

func writeLine(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s+"\n"); err != nil {
		return lang.ErrBuiltin.Wrap(err)
	}

	return nil
}

func arity(args []lang.Value, want int) error {
	if len(args) != want {
		return lang.ErrBuiltin.
			With(slog.Int("want_args", want)).
			With(slog.Int("got_args", len(args)))
	}

	return nil
}

func intArg(args []lang.Value, i int) (int32, error) {
	n, ok := args[i].Int()
	if !ok {
		return 0, argTypeError(args, i, lang.TypeInt)
	}

	return n, nil
}

func stringArg(args []lang.Value, i int) (string, error) {
	s, ok := args[i].Str()
	if !ok {
		return "", argTypeError(args, i, lang.TypeString)
	}

	return s, nil
}

func argTypeError(args []lang.Value, i int, want lang.Type) error {
	return lang.ErrBuiltin.
		With(slog.Int("arg", i)).
		With(slog.String("want", want.String())).
		With(slog.String("got", args[i].Type().String()))
}

// hostValue converts a value for use in an expr-lang environment.
func hostValue(v lang.Value) any {
	if n, ok := v.Int(); ok {
		return int(n)
	}

	return v.Interface()
}

// fromHost converts an expr-lang result back to a value.
func fromHost(src string, out any) (lang.Value, error) {
	switch v := out.(type) {
	case nil:
		return lang.UnitValue(), nil
	case bool:
		return lang.BoolValue(v), nil
	case string:
		return lang.StringValue(v), nil
	case int:
		return intValue(src, int64(v))
	case int64:
		return intValue(src, v)
	case int32:
		return lang.IntValue(v), nil
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32 {
			return lang.IntValue(int32(v)), nil
		}
	}

	return lang.Value{}, lang.ErrBuiltin.
		With(slog.String("expr", src)).
		With(slog.String("result_type", fmt.Sprintf("%T", out)))
}

func intValue(src string, n int64) (lang.Value, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return lang.Value{}, lang.ErrBuiltin.
			With(slog.String("expr", src)).
			With(slog.String("error", "result out of range"))
	}

	return lang.IntValue(int32(n)), nil
}
