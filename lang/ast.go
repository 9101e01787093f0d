package lang

import (
	"strconv"
	"strings"
)

// Node is any syntax tree element.
type Node interface {
	// Pos returns the position of the token that starts the node.
	Pos() Position

	print(p *printer, indent int)
}

// Expr is an expression node. Evaluating it yields a [Value].
type Expr interface {
	Node
	String() string
	exprNode()
}

// Statement is a statement node. Executing it has effects on the environment
// and function table.
type Statement interface {
	Node
	stmtNode()
}

// BinOp is an arithmetic operator.
type BinOp int

// Arithmetic operators.
const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	default:
		return "BinOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// Symbol returns the operator's source spelling.
func (op BinOp) Symbol() string {
	return [...]string{OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/"}[op]
}

// CompareOp is a comparison operator.
type CompareOp int

// Comparison operators.
const (
	OpLt CompareOp = iota
	OpGt
	OpEq
)

func (op CompareOp) String() string {
	switch op {
	case OpLt:
		return "Lt"
	case OpGt:
		return "Gt"
	case OpEq:
		return "Eq"
	default:
		return "CompareOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// Symbol returns the operator's source spelling.
func (op CompareOp) Symbol() string {
	return [...]string{OpLt: "<", OpGt: ">", OpEq: "="}[op]
}

// Expressions

// Binary is an arithmetic expression.
type Binary struct {
	Op  BinOp
	LHS Expr
	RHS Expr
	At  Position
}

// Comparison evaluates to Int 1 when the relation holds and Int 0 otherwise.
type Comparison struct {
	Op  CompareOp
	LHS Expr
	RHS Expr
	At  Position
}

// Number is an integer literal.
type Number struct {
	Value int32
	At    Position
}

// Str is a string literal.
type Str struct {
	Value string
	At    Position
}

// Var references a variable in the current environment.
type Var struct {
	Name string
	At   Position
}

// Call invokes a function with arguments evaluated left to right.
type Call struct {
	ID   string
	Args []Expr
	At   Position
}

func (e *Binary) Pos() Position     { return e.At }
func (e *Comparison) Pos() Position { return e.At }
func (e *Number) Pos() Position     { return e.At }
func (e *Str) Pos() Position        { return e.At }
func (e *Var) Pos() Position        { return e.At }
func (e *Call) Pos() Position       { return e.At }

func (*Binary) exprNode()     {}
func (*Comparison) exprNode() {}
func (*Number) exprNode()     {}
func (*Str) exprNode()        {}
func (*Var) exprNode()        {}
func (*Call) exprNode()       {}

// String renders the expression as source text. Nested operations are
// parenthesized so the result parses back to the same tree.
func (e *Binary) String() string {
	return operand(e.LHS) + " " + e.Op.Symbol() + " " + operand(e.RHS)
}

func (e *Comparison) String() string {
	return operand(e.LHS) + " " + e.Op.Symbol() + " " + operand(e.RHS)
}

func (e *Number) String() string { return strconv.FormatInt(int64(e.Value), 10) }
func (e *Str) String() string    { return `"` + e.Value + `"` }
func (e *Var) String() string    { return e.Name }

func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg.String()
	}

	return e.ID + "(" + strings.Join(args, ", ") + ")"
}

func operand(e Expr) string {
	switch e.(type) {
	case *Binary, *Comparison:
		return "(" + e.String() + ")"
	default:
		return e.String()
	}
}

// Statements

// Compound executes First then Rest. Sequences form a right-leaning chain
// terminated by [Null].
type Compound struct {
	First Statement
	Rest  Statement
}

// Assign binds the value of Expr to ID in the current environment.
type Assign struct {
	ID   string
	Expr Expr
	At   Position
}

// If executes Then when Cond is truthy and Else otherwise.
type If struct {
	Cond Expr
	Then Statement
	Else Statement
	At   Position
}

// Return completes the enclosing function with the value of Expr.
type Return struct {
	Expr Expr
	At   Position
}

// FunctionDefine installs a user function in the function table.
type FunctionDefine struct {
	ID     string
	Params []string
	Body   Statement
	At     Position
}

// CallStatement evaluates a call for its effects and discards the value.
type CallStatement struct {
	Call *Call
}

// Null is the empty statement.
type Null struct {
	At Position
}

func (s *Compound) Pos() Position       { return s.First.Pos() }
func (s *Assign) Pos() Position         { return s.At }
func (s *If) Pos() Position             { return s.At }
func (s *Return) Pos() Position         { return s.At }
func (s *FunctionDefine) Pos() Position { return s.At }
func (s *CallStatement) Pos() Position  { return s.Call.At }
func (s *Null) Pos() Position           { return s.At }

func (*Compound) stmtNode()       {}
func (*Assign) stmtNode()         {}
func (*If) stmtNode()             {}
func (*Return) stmtNode()         {}
func (*FunctionDefine) stmtNode() {}
func (*CallStatement) stmtNode()  {}
func (*Null) stmtNode()           {}

// Statements returns the statements of a compound chain in execution order,
// omitting the terminating [Null] links. A non-compound statement yields
// itself.
func Statements(s Statement) []Statement {
	var list []Statement

	for {
		c, ok := s.(*Compound)
		if !ok {
			break
		}

		if _, null := c.First.(*Null); !null {
			list = append(list, c.First)
		}

		s = c.Rest
	}

	if _, null := s.(*Null); !null {
		list = append(list, s)
	}

	return list
}
