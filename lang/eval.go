package lang

import (
	"context"
	"errors"
	"log/slog"
	"maps"
)

// Result reports how a program completed. Returned is set when a top-level
// return statement stopped the program early, in which case Value holds the
// returned value. Otherwise, when the last statement executed was a call,
// Value holds the value of that call (Unit for a function that did not
// return).
type Result struct {
	Value    Value
	Returned bool
}

// Execute runs the statement tree root against env and ft.
//
// Both env and ft are mutated in place and reflect every effect that
// happened before a failure; there is no rollback. The first failing
// operation stops execution and its error is returned.
func Execute(
	ctx context.Context,
	root Statement,
	env Environment,
	ft FunctionTable,
	opts ...Option,
) (Result, error) {
	ev := newEvaluator(ft, opts...)

	done, err := ev.exec(ctx, root, env)
	if err != nil {
		ev.logger.TraceContext(ctx, "execute failed",
			slog.Any("error", err))

		return Result{}, err
	}

	ev.logger.TraceContext(ctx, "execute complete",
		slog.Int("variables", len(env)),
		slog.Int("functions", len(ft)),
		slog.Bool("returned", done.returned))

	return Result{Value: done.value, Returned: done.returned}, nil
}

// Eval evaluates a single expression against env and ft.
func Eval(
	ctx context.Context,
	e Expr,
	env Environment,
	ft FunctionTable,
	opts ...Option,
) (Value, error) {
	return newEvaluator(ft, opts...).eval(ctx, e, env)
}

// evaluator walks the tree for one execution. The function table is shared
// by every frame; each user call gets its own environment.
type evaluator struct {
	ft    FunctionTable
	depth int
	config
}

// completion is the outcome of executing a statement. returned is set once
// a return statement ran; enclosing sequences stop at that point. A call
// statement reports its value without setting returned.
type completion struct {
	value    Value
	returned bool
}

func newEvaluator(ft FunctionTable, opts ...Option) *evaluator {
	return &evaluator{ft: ft, config: makeConfig(opts...)}
}

func (ev *evaluator) exec(
	ctx context.Context,
	st Statement,
	env Environment,
) (completion, error) {
	switch st := st.(type) {
	case *Compound:
		done, err := ev.exec(ctx, st.First, env)
		if err != nil || done.returned {
			return done, err
		}

		// A trailing separator keeps the value of the statement before it.
		if _, ok := st.Rest.(*Null); ok {
			return done, nil
		}

		return ev.exec(ctx, st.Rest, env)

	case *FunctionDefine:
		ev.ft.Define(st.ID, st.Params, st.Body)

		return completion{}, nil

	case *CallStatement:
		v, err := ev.call(ctx, st.Call, env, false)
		if err != nil {
			return completion{}, err
		}

		return completion{value: v}, nil

	case *Return:
		v, err := ev.eval(ctx, st.Expr, env)
		if err != nil {
			return completion{}, err
		}

		return completion{value: v, returned: true}, nil

	case *Assign:
		v, err := ev.eval(ctx, st.Expr, env)
		if err != nil {
			return completion{}, err
		}

		env.Set(st.ID, v)

		return completion{}, nil

	case *If:
		cond, err := ev.eval(ctx, st.Cond, env)
		if err != nil {
			return completion{}, err
		}

		if cond.Truthy() {
			return ev.exec(ctx, st.Then, env)
		}

		return ev.exec(ctx, st.Else, env)

	case *Null:
		return completion{}, nil

	default:
		return completion{}, ErrParse.
			With(slog.String("error", "statement cannot be executed"))
	}
}

func (ev *evaluator) eval(
	ctx context.Context,
	e Expr,
	env Environment,
) (Value, error) {
	switch e := e.(type) {
	case *Binary:
		lhs, err := ev.eval(ctx, e.LHS, env)
		if err != nil {
			return Value{}, err
		}

		rhs, err := ev.eval(ctx, e.RHS, env)
		if err != nil {
			return Value{}, err
		}

		return arithmetic(e, lhs, rhs)

	case *Comparison:
		lhs, err := ev.eval(ctx, e.LHS, env)
		if err != nil {
			return Value{}, err
		}

		rhs, err := ev.eval(ctx, e.RHS, env)
		if err != nil {
			return Value{}, err
		}

		return compare(e, lhs, rhs)

	case *Number:
		return IntValue(e.Value), nil

	case *Str:
		return StringValue(e.Value), nil

	case *Var:
		v, ok := env.Get(e.Name)
		if !ok {
			return Value{}, ErrUndefinedVariable.WithPosition(e.At).
				With(slog.String("name", e.Name)).
				With(slog.Any("env", maps.Clone(env)))
		}

		return v, nil

	case *Call:
		return ev.call(ctx, e, env, true)

	default:
		return Value{}, ErrParse.
			With(slog.String("error", "expression cannot be evaluated"))
	}
}

// call invokes the function named by c. Arguments are evaluated in the
// caller's environment before the callee is looked up. wantValue reports
// whether the call appears where its value is used.
func (ev *evaluator) call(
	ctx context.Context,
	c *Call,
	env Environment,
	wantValue bool,
) (Value, error) {
	args := make([]Value, len(c.Args))

	for i, arg := range c.Args {
		v, err := ev.eval(ctx, arg, env)
		if err != nil {
			return Value{}, err
		}

		args[i] = v
	}

	decl, ok := ev.ft.Lookup(c.ID)
	if !ok {
		return Value{}, ErrUndefinedFunction.WithPosition(c.At).
			With(slog.String("name", c.ID))
	}

	switch decl := decl.(type) {
	case *Builtin:
		v, err := decl.Native.Call(ctx, args)
		if err != nil {
			return Value{}, builtinError(c, err)
		}

		return v, nil

	case *Function:
		return ev.invoke(ctx, c, decl, args, wantValue)

	default:
		return Value{}, ErrUndefinedFunction.WithPosition(c.At).
			With(slog.String("name", c.ID))
	}
}

// invoke runs a user function body in a fresh environment holding only its
// parameters. Parameters without a matching argument stay unbound.
func (ev *evaluator) invoke(
	ctx context.Context,
	c *Call,
	fn *Function,
	args []Value,
	wantValue bool,
) (Value, error) {
	if err := ctx.Err(); err != nil {
		return Value{}, ErrCanceled.WithPosition(c.At).
			Wrap(context.Cause(ctx)).
			With(slog.String("function", c.ID))
	}

	ev.depth++
	defer func() { ev.depth-- }()

	if ev.maxCallDepth > 0 && ev.depth > ev.maxCallDepth {
		return Value{}, ErrCallDepthExceeded.WithPosition(c.At).
			With(slog.String("function", c.ID)).
			With(slog.Int("max_depth", ev.maxCallDepth))
	}

	ev.logger.TraceContext(ctx, "call",
		slog.String("function", c.ID),
		slog.Int("args", len(args)),
		slog.Int("depth", ev.depth))

	local := NewEnvironment()
	for i, param := range fn.Params {
		if i >= len(args) {
			break
		}

		local.Set(param, args[i])
	}

	done, err := ev.exec(ctx, fn.Body, local)
	if err != nil {
		return Value{}, err
	}

	if !done.returned {
		if wantValue {
			return Value{}, ErrMissingReturn.WithPosition(c.At).
				With(slog.String("function", c.ID))
		}

		return UnitValue(), nil
	}

	return done.value, nil
}

func builtinError(c *Call, err error) error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.WithPosition(c.At).With(slog.String("function", c.ID))
	}

	return ErrBuiltin.WithPosition(c.At).
		Wrap(err).
		With(slog.String("function", c.ID))
}

func arithmetic(e *Binary, lhs, rhs Value) (Value, error) {
	if e.Op == OpAdd {
		if a, ok := lhs.Str(); ok {
			if b, ok := rhs.Str(); ok {
				return StringValue(a + b), nil
			}
		}
	}

	a, lok := lhs.Int()
	b, rok := rhs.Int()

	if !lok || !rok {
		return Value{}, ErrTypeMismatch.WithPosition(e.At).
			With(slog.String("op", e.Op.String())).
			With(slog.String("lhs", lhs.Type().String())).
			With(slog.String("rhs", rhs.Type().String()))
	}

	switch e.Op {
	case OpAdd:
		return IntValue(a + b), nil
	case OpSub:
		return IntValue(a - b), nil
	case OpMul:
		return IntValue(a * b), nil
	default:
		if b == 0 {
			return Value{}, ErrDivisionByZero.WithPosition(e.At).
				With(slog.String("lhs", lhs.GoString())).
				With(slog.String("rhs", rhs.GoString()))
		}

		return IntValue(a / b), nil
	}
}

func compare(e *Comparison, lhs, rhs Value) (Value, error) {
	c, err := lhs.Compare(rhs)
	if err != nil {
		return Value{}, WrapError(err).WithPosition(e.At).
			With(slog.String("op", e.Op.String()))
	}

	var holds bool

	switch e.Op {
	case OpLt:
		holds = c < 0
	case OpGt:
		holds = c > 0
	default:
		holds = c == 0
	}

	if holds {
		return IntValue(1), nil
	}

	return IntValue(0), nil
}
