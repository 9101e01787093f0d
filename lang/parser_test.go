package lang

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"gotest.tools/v3/golden"
)

// stripPositions zeroes every position in the tree so expected trees can be
// written without them.
func stripPositions(n Node) Node {
	switch n := n.(type) {
	case *Binary:
		return &Binary{Op: n.Op, LHS: stripExpr(n.LHS), RHS: stripExpr(n.RHS)}
	case *Comparison:
		return &Comparison{Op: n.Op, LHS: stripExpr(n.LHS), RHS: stripExpr(n.RHS)}
	case *Number:
		return &Number{Value: n.Value}
	case *Str:
		return &Str{Value: n.Value}
	case *Var:
		return &Var{Name: n.Name}
	case *Call:
		var args []Expr
		for _, arg := range n.Args {
			args = append(args, stripExpr(arg))
		}

		return &Call{ID: n.ID, Args: args}
	case *Compound:
		return &Compound{First: stripStmt(n.First), Rest: stripStmt(n.Rest)}
	case *Assign:
		return &Assign{ID: n.ID, Expr: stripExpr(n.Expr)}
	case *If:
		return &If{
			Cond: stripExpr(n.Cond),
			Then: stripStmt(n.Then),
			Else: stripStmt(n.Else),
		}
	case *Return:
		return &Return{Expr: stripExpr(n.Expr)}
	case *FunctionDefine:
		return &FunctionDefine{ID: n.ID, Params: n.Params, Body: stripStmt(n.Body)}
	case *CallStatement:
		call, _ := stripPositions(n.Call).(*Call)

		return &CallStatement{Call: call}
	case *Null:
		return &Null{}
	default:
		return n
	}
}

func stripExpr(e Expr) Expr {
	s, _ := stripPositions(e).(Expr)

	return s
}

func stripStmt(st Statement) Statement {
	s, _ := stripPositions(st).(Statement)

	return s
}

func parse(t *testing.T, input string) Statement {
	t.Helper()

	tokens, err := Scan(t.Context(), input)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	root, err := Parse(t.Context(), tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return root
}

func num(n int32) *Number    { return &Number{Value: n} }
func ident(name string) *Var { return &Var{Name: name} }

func TestParse_Trees(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Statement
	}{
		{
			name:  "empty program",
			input: "",
			want:  &Null{},
		},
		{
			name:  "assignment",
			input: "x = 123",
			want:  &Assign{ID: "x", Expr: num(123)},
		},
		{
			name:  "negative literal",
			input: "x = -1",
			want:  &Assign{ID: "x", Expr: num(-1)},
		},
		{
			name:  "precedence",
			input: "x = 1 + 2 * 3",
			want: &Assign{ID: "x", Expr: &Binary{
				Op:  OpAdd,
				LHS: num(1),
				RHS: &Binary{Op: OpMul, LHS: num(2), RHS: num(3)},
			}},
		},
		{
			name:  "left associativity",
			input: "x = 1 - 2 - 3",
			want: &Assign{ID: "x", Expr: &Binary{
				Op:  OpSub,
				LHS: &Binary{Op: OpSub, LHS: num(1), RHS: num(2)},
				RHS: num(3),
			}},
		},
		{
			name:  "braces group like parentheses",
			input: "x = 2 * {3 + 4}",
			want: &Assign{ID: "x", Expr: &Binary{
				Op:  OpMul,
				LHS: num(2),
				RHS: &Binary{Op: OpAdd, LHS: num(3), RHS: num(4)},
			}},
		},
		{
			name:  "comparison binds loosest",
			input: "x = a + 1 < b * 2",
			want: &Assign{ID: "x", Expr: &Comparison{
				Op:  OpLt,
				LHS: &Binary{Op: OpAdd, LHS: ident("a"), RHS: num(1)},
				RHS: &Binary{Op: OpMul, LHS: ident("b"), RHS: num(2)},
			}},
		},
		{
			name:  "equality after assignment",
			input: "x = a = b",
			want: &Assign{ID: "x", Expr: &Comparison{
				Op: OpEq, LHS: ident("a"), RHS: ident("b"),
			}},
		},
		{
			name:  "if else",
			input: "if 0 { x = 2 } else { x = 3 }",
			want: &If{
				Cond: num(0),
				Then: &Assign{ID: "x", Expr: num(2)},
				Else: &Assign{ID: "x", Expr: num(3)},
			},
		},
		{
			name:  "empty blocks",
			input: "if x {} else {}",
			want:  &If{Cond: ident("x"), Then: &Null{}, Else: &Null{}},
		},
		{
			name:  "sequence is right nested",
			input: "a = 1; b = 2; c = 3",
			want: &Compound{
				First: &Assign{ID: "a", Expr: num(1)},
				Rest: &Compound{
					First: &Assign{ID: "b", Expr: num(2)},
					Rest:  &Assign{ID: "c", Expr: num(3)},
				},
			},
		},
		{
			name:  "trailing semicolon",
			input: "a = 1;",
			want: &Compound{
				First: &Assign{ID: "a", Expr: num(1)},
				Rest:  &Null{},
			},
		},
		{
			name:  "bare identifier",
			input: "x; y = 1",
			want: &Compound{
				First: &Null{},
				Rest:  &Assign{ID: "y", Expr: num(1)},
			},
		},
		{
			name:  "function definition",
			input: "fn add(a, b) { return a + b }",
			want: &FunctionDefine{
				ID:     "add",
				Params: []string{"a", "b"},
				Body: &Return{Expr: &Binary{
					Op: OpAdd, LHS: ident("a"), RHS: ident("b"),
				}},
			},
		},
		{
			name:  "function without parameters",
			input: "fn one() { return 1 }",
			want: &FunctionDefine{
				ID:   "one",
				Body: &Return{Expr: num(1)},
			},
		},
		{
			name:  "call statement",
			input: `print("a", x, 1 + 2)`,
			want: &CallStatement{Call: &Call{
				ID: "print",
				Args: []Expr{
					&Str{Value: "a"},
					ident("x"),
					&Binary{Op: OpAdd, LHS: num(1), RHS: num(2)},
				},
			}},
		},
		{
			name:  "call without arguments",
			input: "x = now()",
			want:  &Assign{ID: "x", Expr: &Call{ID: "now"}},
		},
		{
			name:  "nested calls",
			input: "x = (test(2) + 3)",
			want: &Assign{ID: "x", Expr: &Binary{
				Op:  OpAdd,
				LHS: &Call{ID: "test", Args: []Expr{num(2)}},
				RHS: num(3),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripPositions(parse(t, tt.input))

			if diff := pretty.Diff(tt.want, got); len(diff) > 0 {
				t.Errorf("tree mismatch:\n%s", strings.Join(diff, "\n"))
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{
			name:    "missing else",
			input:   "if 1 { x = 1 }",
			message: `expected="else" actual="end of input"`,
		},
		{
			name:    "missing closing paren",
			input:   "x = (1 + 2",
			message: `expected=")" actual="end of input"`,
		},
		{
			name:    "unexpected token",
			input:   "x = 1 +",
			message: `expected="expression" actual="end of input"`,
		},
		{
			name:    "stray closing brace",
			input:   "x = 1 }",
			message: `expected="end of input" actual="\"}\""`,
		},
		{
			name:    "negated variable",
			input:   "x = -y",
			message: "negation applies only to numeric literals",
		},
		{
			name:    "negated group",
			input:   "x = -(1)",
			message: "negation applies only to numeric literals",
		},
		{
			name:    "chained comparison",
			input:   "x = 1 < 2 < 3",
			message: "comparisons do not chain",
		},
		{
			name:    "function name required",
			input:   "fn (a) { return a }",
			message: `expected="identifier" actual="\"(\""`,
		},
		{
			name:    "parameters are identifiers",
			input:   "fn f(1) { return 1 }",
			message: `expected="identifier" actual="number 1"`,
		},
		{
			name:    "expression statement",
			input:   "1 + 2",
			message: `expected="end of input" actual="number 1"`,
		},
		{
			name:    "number out of range",
			input:   "x = 2147483648",
			message: "number out of range",
		},
		{
			name:    "assignment needs expression",
			input:   "x = ;",
			message: `expected="expression" actual="\";\""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Scan(t.Context(), tt.input)
			if err != nil {
				t.Fatalf("scan error: %v", err)
			}

			_, err = Parse(t.Context(), tokens)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !errors.Is(err, ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}

			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("expected error to contain %q, got %q", tt.message, err)
			}
		})
	}
}

func TestParseExpr(t *testing.T) {
	tokens, err := Scan(t.Context(), "1 + 2 * x")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	e, err := ParseExpr(t.Context(), tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got := e.String(); got != "1 + (2 * x)" {
		t.Errorf("expected %q, got %q", "1 + (2 * x)", got)
	}

	tokens, err = Scan(t.Context(), "x = 1")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if _, err := ParseExpr(t.Context(), tokens); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for assignment, got %v", err)
	}
}

func TestExpr_StringRoundTrip(t *testing.T) {
	inputs := []string{
		"1 - (2 - 3)",
		"(1 - 2) - 3",
		`f("a", g(1), -4) + x`,
		"(a < b) = 1",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens, err := Scan(t.Context(), input)
			if err != nil {
				t.Fatalf("scan error: %v", err)
			}

			first, err := ParseExpr(t.Context(), tokens)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			tokens, err = Scan(t.Context(), first.String())
			if err != nil {
				t.Fatalf("rescan error: %v", err)
			}

			second, err := ParseExpr(t.Context(), tokens)
			if err != nil {
				t.Fatalf("reparse error: %v", err)
			}

			if diff := pretty.Diff(stripPositions(first), stripPositions(second)); len(diff) > 0 {
				t.Errorf("round trip mismatch:\n%s", strings.Join(diff, "\n"))
			}
		})
	}
}

func TestStatements(t *testing.T) {
	root := parse(t, "a = 1; ; b = 2;")

	list := Statements(root)
	if len(list) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(list))
	}

	if a, ok := list[0].(*Assign); !ok || a.ID != "a" {
		t.Errorf("expected assignment to a, got %# v", pretty.Formatter(list[0]))
	}

	if b, ok := list[1].(*Assign); !ok || b.ID != "b" {
		t.Errorf("expected assignment to b, got %# v", pretty.Formatter(list[1]))
	}
}

func TestFprint_Golden(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name: "fib",
			input: "fn fib(n) { if (n < 3) { return 1 } else " +
				"{ return fib(n - 1) + fib(n - 2) } }; x = fib(22)",
		},
		{
			name:  "compound",
			input: `if 0 { x = 0 } else { x = 1 }; if x { s = "a" + "b" } else { print(x) }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Fprint(&buf, parse(t, tt.input)); err != nil {
				t.Fatalf("print error: %v", err)
			}

			golden.Assert(t, buf.String(), tt.name+".ast.golden")
		})
	}
}

func TestFprintTokens_Golden(t *testing.T) {
	tokens, err := Scan(t.Context(), "x = 1 + 2; print_int(x)")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	var buf bytes.Buffer
	if err := FprintTokens(&buf, tokens); err != nil {
		t.Fatalf("print error: %v", err)
	}

	golden.Assert(t, buf.String(), "tokens.golden")
}
