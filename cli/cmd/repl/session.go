package repl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/twig/builtin"
	"github.com/ardnew/twig/lang"
	"github.com/ardnew/twig/log"
)

// Session is the interpreter state shared by every line of one REPL run.
// Builtin output is captured so the terminal UI can print it above the
// prompt.
type Session struct {
	env    lang.Environment
	ft     lang.FunctionTable
	out    bytes.Buffer
	opts   []lang.Option
	logger log.Logger
}

// NewSession returns a session with the builtins installed.
func NewSession(logger log.Logger, opts ...lang.Option) *Session {
	s := &Session{
		logger: logger,
		opts:   append([]lang.Option{lang.WithLogger(logger)}, opts...),
	}
	s.Reset()

	return s
}

// Reset discards every variable and user function.
func (s *Session) Reset() {
	s.env = lang.NewEnvironment()
	s.ft = lang.NewFunctionTable()
	builtin.Register(s.ft, builtin.WithOutput(&s.out), builtin.WithLogger(s.logger))
}

// Load executes a whole program in the session, as if each of its
// statements had been entered in turn.
func (s *Session) Load(ctx context.Context, source string) (string, error) {
	prog, err := lang.ParseString(ctx, source, s.opts...)
	if err != nil {
		return "", err
	}

	return s.Exec(ctx, prog)
}

// Exec executes a parsed program in the session.
func (s *Session) Exec(ctx context.Context, prog *lang.Program) (string, error) {
	return s.execute(ctx, prog.Root)
}

// Eval runs one line of input and returns the text it produced: builtin
// output followed by the value of the line, if it has one.
//
// A line is first parsed as a statement, so "x = 1" stays an assignment and
// a call statement shows the value of the call. Lines that are not
// statements, or that parse only to empty statements (a bare identifier),
// are evaluated as an expression instead, so "x" and "1 + x" show a value.
func (s *Session) Eval(ctx context.Context, line string) (string, error) {
	tokens, err := lang.Scan(ctx, line, s.opts...)
	if err != nil || len(tokens) == 0 {
		return "", err
	}

	root, err := lang.Parse(ctx, tokens, s.opts...)
	if err == nil && len(lang.Statements(root)) != 0 {
		return s.execute(ctx, root)
	}

	expr, exprErr := lang.ParseExpr(ctx, tokens, s.opts...)
	if exprErr != nil {
		// Parsed as empty statements, e.g. "x;".
		if err == nil {
			return "", nil
		}

		return "", err
	}

	s.logger.TraceContext(ctx, "repl expression", slog.String("expr", expr.String()))

	v, err := lang.Eval(ctx, expr, s.env, s.ft, s.opts...)
	out := s.flush()

	if err != nil {
		return out, err
	}

	if v.Type() != lang.TypeUnit {
		out += display(v) + "\n"
	}

	return out, nil
}

// execute runs root and shows its value: the returned value of a top-level
// return, or the value of a trailing call.
func (s *Session) execute(ctx context.Context, root lang.Statement) (string, error) {
	res, err := lang.Execute(ctx, root, s.env, s.ft, s.opts...)
	out := s.flush()

	if err == nil && res.Value.Type() != lang.TypeUnit {
		out += display(res.Value) + "\n"
	}

	return out, err
}

func (s *Session) flush() string {
	out := s.out.String()
	s.out.Reset()

	return out
}

// Names returns every name worth completing: keywords, functions, and
// variables.
func (s *Session) Names() []string {
	names := lang.Keywords()
	names = append(names, s.ft.Names()...)

	return append(names, s.env.Names()...)
}

// Params returns the parameter names of the named function.
func (s *Session) Params(name string) ([]string, bool) {
	decl, ok := s.ft.Lookup(name)
	if !ok {
		return nil, false
	}

	if fn, ok := decl.(*lang.Function); ok {
		return fn.Params, true
	}

	return builtin.Params(name)
}

// Vars lists the variables one per line.
func (s *Session) Vars() string {
	var b strings.Builder

	for name, v := range s.env.All() {
		fmt.Fprintf(&b, "  %s = %s\n", name, display(v))
	}

	if b.Len() == 0 {
		return "  (no variables)\n"
	}

	return b.String()
}

// Funcs lists the functions one per line, user functions first.
func (s *Session) Funcs() string {
	var user, native strings.Builder

	for name, decl := range s.ft.All() {
		params, _ := s.Params(name)
		sig := name + "(" + strings.Join(params, ", ") + ")"

		if _, ok := decl.(*lang.Function); ok {
			user.WriteString("  " + sig + "\n")
		} else {
			native.WriteString("  " + sig + "  [builtin]\n")
		}
	}

	return user.String() + native.String()
}

// display renders v as the REPL shows it: strings quoted, Unit as "()".
func display(v lang.Value) string {
	switch v.Type() {
	case lang.TypeString:
		return strconv.Quote(v.String())
	case lang.TypeUnit:
		return "()"
	default:
		return v.String()
	}
}
