// Package lang implements the twig language: a lexer, a recursive-descent
// parser, and a tree-walking evaluator for a small imperative language of
// integers, strings, arithmetic, comparisons, assignment, conditionals, and
// user-defined functions.
//
// # Pipeline
//
// Source text passes through three stages in strict sequence:
//
//	tokens, err := lang.Scan(ctx, source)
//	root, err := lang.Parse(ctx, tokens)
//	res, err := lang.Execute(ctx, root, env, ft)
//
// [Run] performs all three with a fresh [Environment] and [FunctionTable].
// Each stage fails with an [*Error] derived from one of the package
// sentinels ([ErrLex], [ErrParse], [ErrUndefinedVariable], ...).
//
// # Grammar
//
// Informal EBNF:
//
//	Program        = Statement
//	Statement      = (IfStmt | AssignStmt | ReturnStmt | FnDefStmt | CallStmt | ε) [';' Statement]
//	IfStmt         = 'if' Expr '{' Statement '}' 'else' '{' Statement '}'
//	AssignStmt     = IDENT '=' Expr
//	ReturnStmt     = 'return' Expr
//	FnDefStmt      = 'fn' IDENT '(' [IDENT {',' IDENT}] ')' '{' Statement '}'
//	CallStmt       = IDENT '(' [Expr {',' Expr}] ')'
//	Expr           = Relational
//	Relational     = Additive [('<'|'>'|'=') Additive]
//	Additive       = Multiplicative {('+'|'-') Multiplicative}
//	Multiplicative = Primary {('*'|'/') Primary}
//	Primary        = NUMBER | STRING | '-' NUMBER | IDENT ['(' [Expr {',' Expr}] ')']
//	               | '(' Expr ')' | '{' Expr '}'
//
// Negation applies only to numeric literals; -x and -(expr) are rejected.
// A comparison takes at most one operator; parenthesize to compose them.
//
// # Example
//
//	fn fib(n) {
//	  if n < 3 { return 1 } else { return fib(n - 1) + fib(n - 2) }
//	};
//	x = fib(22)
//
// # Scoping
//
// There are no closures. Every call to a user function runs in a fresh
// environment holding only its parameters; the caller's variables are not
// visible. The function table is global and shared by every frame, so
// functions may call any function defined so far, including themselves.
//
// Arguments are matched to parameters positionally. Parameters without a
// matching argument stay unbound and fail only when referenced.
//
// # Return values
//
// A return statement ends the enclosing function body. A function that
// finishes without returning yields Unit when called as a statement, and
// fails with [ErrMissingReturn] when its value is used. A return at the top
// level ends the program, and the value is reported in [Result].
package lang
