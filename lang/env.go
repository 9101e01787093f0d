package lang

import (
	"context"
	"iter"
	"log/slog"
)

// Environment maps variable names to values. The top level of a program has
// one Environment; every user-function call gets a fresh, empty one.
type Environment map[string]Value

// NewEnvironment returns an empty environment.
func NewEnvironment() Environment { return make(Environment) }

// Get returns the value bound to name.
func (env Environment) Get(name string) (Value, bool) {
	v, ok := env[name]

	return v, ok
}

// Set binds name to v, replacing any previous binding.
func (env Environment) Set(name string, v Value) { env[name] = v }

// Names returns the bound names in sorted order.
func (env Environment) Names() []string { return sortedKeys(env) }

// All iterates the bindings in name order.
func (env Environment) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range env.Names() {
			if !yield(name, env[name]) {
				return
			}
		}
	}
}

// LogValue implements slog.LogValuer as a snapshot of the bindings.
func (env Environment) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(env))
	for name, v := range env.All() {
		attrs = append(attrs, slog.Any(name, v))
	}

	return slog.GroupValue(attrs...)
}

// Declaration is a function definition: either a user [*Function] or a host
// [*Builtin].
type Declaration interface {
	declaration()
}

// Function is a user-defined function bound to its syntax tree.
type Function struct {
	Params []string
	Body   Statement
}

// Builtin is a host-implemented function.
type Builtin struct {
	ID     string
	Native Native
}

func (*Function) declaration() {}
func (*Builtin) declaration()  {}

// Native is the capability a builtin function provides to the evaluator.
// Call receives the evaluated arguments in order.
type Native interface {
	Call(ctx context.Context, args []Value) (Value, error)
}

// NativeFunc adapts an ordinary function to the [Native] interface.
type NativeFunc func(ctx context.Context, args []Value) (Value, error)

// Call calls f(ctx, args).
func (f NativeFunc) Call(ctx context.Context, args []Value) (Value, error) {
	return f(ctx, args)
}

// FunctionTable maps function names to declarations. It is shared by every
// call frame of an execution; defining a name that already exists replaces
// it.
type FunctionTable map[string]Declaration

// NewFunctionTable returns an empty function table.
func NewFunctionTable() FunctionTable { return make(FunctionTable) }

// Lookup returns the declaration bound to name.
func (ft FunctionTable) Lookup(name string) (Declaration, bool) {
	d, ok := ft[name]

	return d, ok
}

// Define binds name to a user function.
func (ft FunctionTable) Define(name string, params []string, body Statement) {
	ft[name] = &Function{Params: params, Body: body}
}

// Register installs a builtin under name.
func (ft FunctionTable) Register(name string, native Native) {
	ft[name] = &Builtin{ID: name, Native: native}
}

// Names returns the declared names in sorted order.
func (ft FunctionTable) Names() []string { return sortedKeys(ft) }

// All iterates the declarations in name order.
func (ft FunctionTable) All() iter.Seq2[string, Declaration] {
	return func(yield func(string, Declaration) bool) {
		for _, name := range ft.Names() {
			if !yield(name, ft[name]) {
				return
			}
		}
	}
}
