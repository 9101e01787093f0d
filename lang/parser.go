package lang

import (
	"context"
	"log/slog"
	"math"

	"github.com/ardnew/twig/log"
)

// Parse builds the statement tree for a complete token sequence.
//
// The entire sequence must be consumed; leftover tokens are an [ErrParse]
// error, as is any token that does not fit the grammar. No partial tree is
// returned on failure.
func Parse(ctx context.Context, tokens []Token, opts ...Option) (Statement, error) {
	cfg := makeConfig(opts...)
	p := &parser{tokens: tokens, logger: cfg.logger}

	root, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if !p.eof() {
		return nil, p.unexpected("end of input")
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("token_count", len(tokens)),
		slog.Int("statement_count", len(Statements(root))))

	return root, nil
}

// ParseExpr builds the expression tree for a token sequence holding exactly
// one expression.
func ParseExpr(ctx context.Context, tokens []Token, opts ...Option) (Expr, error) {
	cfg := makeConfig(opts...)
	p := &parser{tokens: tokens, logger: cfg.logger}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if !p.eof() {
		return nil, p.unexpected("end of input")
	}

	p.logger.TraceContext(ctx, "parse expression complete",
		slog.Int("token_count", len(tokens)))

	return e, nil
}

// parser holds the parser state.
type parser struct {
	tokens []Token
	pos    int
	logger log.Logger
}

// parseStatement parses:
//
//	(IfStmt | AssignStmt | ReturnStmt | FnDefStmt | CallStmt | ε) [';' Statement]
func (p *parser) parseStatement() (Statement, error) {
	var (
		st  Statement
		err error
	)

	tok, ok := p.current()

	switch {
	case !ok:
		st = &Null{At: p.position()}
	case tok.Kind == KindIf:
		st, err = p.parseIf()
	case tok.Kind == KindReturn:
		st, err = p.parseReturn()
	case tok.Kind == KindFn:
		st, err = p.parseFunctionDefine()
	case tok.Kind == KindIdent:
		st, err = p.parseIdentStatement(tok)
	default:
		st = &Null{At: tok.Pos}
	}

	if err != nil {
		return nil, err
	}

	if !p.at(KindSemicolon) {
		return st, nil
	}

	p.advance()

	rest, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &Compound{First: st, Rest: rest}, nil
}

// parseIf parses: 'if' Expr '{' Statement '}' 'else' '{' Statement '}'.
func (p *parser) parseIf() (Statement, error) {
	pos := p.position()
	p.advance()

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	if err := p.expect(KindElse); err != nil {
		return nil, err
	}

	els, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &If{Cond: cond, Then: then, Else: els, At: pos}, nil
}

// parseReturn parses: 'return' Expr.
func (p *parser) parseReturn() (Statement, error) {
	pos := p.position()
	p.advance()

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Return{Expr: e, At: pos}, nil
}

// parseFunctionDefine parses: 'fn' IDENT '(' [IDENT {',' IDENT}] ')' Block.
func (p *parser) parseFunctionDefine() (Statement, error) {
	pos := p.position()
	p.advance()

	id, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if err := p.expect(KindLParen); err != nil {
		return nil, err
	}

	var params []string

	if !p.at(KindRParen) {
		for {
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}

			params = append(params, name)

			if !p.at(KindComma) {
				break
			}

			p.advance()
		}
	}

	if err := p.expect(KindRParen); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	p.logger.Trace("function defined",
		slog.String("function", id),
		slog.Int("params", len(params)))

	return &FunctionDefine{ID: id, Params: params, Body: body, At: pos}, nil
}

// parseIdentStatement disambiguates identifier-led statements with one token
// of lookahead: IDENT '=' is an assignment, IDENT '(' is a call, and a bare
// identifier is the empty statement.
func (p *parser) parseIdentStatement(tok Token) (Statement, error) {
	next, _ := p.lookahead()

	switch next.Kind {
	case KindEqual:
		p.advance()
		p.advance()

		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &Assign{ID: tok.Text, Expr: e, At: tok.Pos}, nil

	case KindLParen:
		p.advance()

		call, err := p.parseCall(tok)
		if err != nil {
			return nil, err
		}

		return &CallStatement{Call: call}, nil

	default:
		p.advance()

		return &Null{At: tok.Pos}, nil
	}
}

// parseBlock parses: '{' Statement '}'.
func (p *parser) parseBlock() (Statement, error) {
	if err := p.expect(KindLBrace); err != nil {
		return nil, err
	}

	st, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if err := p.expect(KindRBrace); err != nil {
		return nil, err
	}

	return st, nil
}

// parseExpr parses an expression at the lowest precedence.
func (p *parser) parseExpr() (Expr, error) {
	return p.parseRelational()
}

// parseRelational parses: Additive [('<'|'>'|'=') Additive].
func (p *parser) parseRelational() (Expr, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	op, ok := p.compareOp()
	if !ok {
		return lhs, nil
	}

	pos := p.position()
	p.advance()

	rhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if _, chained := p.compareOp(); chained {
		return nil, ErrParse.WithPosition(p.position()).
			With(slog.String("error", "comparisons do not chain; use parentheses"))
	}

	return &Comparison{Op: op, LHS: lhs, RHS: rhs, At: pos}, nil
}

// parseAdditive parses: Multiplicative {('+'|'-') Multiplicative}.
func (p *parser) parseAdditive() (Expr, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		var op BinOp

		switch {
		case p.at(KindPlus):
			op = OpAdd
		case p.at(KindMinus):
			op = OpSub
		default:
			return lhs, nil
		}

		pos := p.position()
		p.advance()

		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		lhs = &Binary{Op: op, LHS: lhs, RHS: rhs, At: pos}
	}
}

// parseMultiplicative parses: Primary {('*'|'/') Primary}.
func (p *parser) parseMultiplicative() (Expr, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		var op BinOp

		switch {
		case p.at(KindStar):
			op = OpMul
		case p.at(KindSlash):
			op = OpDiv
		default:
			return lhs, nil
		}

		pos := p.position()
		p.advance()

		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		lhs = &Binary{Op: op, LHS: lhs, RHS: rhs, At: pos}
	}
}

// parsePrimary parses:
//
//	NUMBER | STRING | '-' NUMBER | IDENT ['(' Args ')'] | '(' Expr ')' | '{' Expr '}'
func (p *parser) parsePrimary() (Expr, error) {
	tok, ok := p.current()
	if !ok {
		return nil, p.unexpected("expression")
	}

	switch tok.Kind {
	case KindNumber:
		p.advance()

		return numberLiteral(tok, tok.Num)

	case KindString:
		p.advance()

		return &Str{Value: tok.Text, At: tok.Pos}, nil

	case KindMinus:
		p.advance()

		num, ok := p.current()
		if !ok || num.Kind != KindNumber {
			return nil, ErrParse.WithPosition(tok.Pos).
				With(slog.String("error", "negation applies only to numeric literals"))
		}

		p.advance()

		return numberLiteral(tok, -num.Num)

	case KindIdent:
		p.advance()

		if p.at(KindLParen) {
			return p.parseCall(tok)
		}

		return &Var{Name: tok.Text, At: tok.Pos}, nil

	case KindLParen:
		return p.parseGroup(KindLParen, KindRParen)

	case KindLBrace:
		return p.parseGroup(KindLBrace, KindRBrace)

	default:
		return nil, p.unexpected("expression")
	}
}

// parseGroup parses a parenthesized expression delimited by open and close.
func (p *parser) parseGroup(open, closing Kind) (Expr, error) {
	if err := p.expect(open); err != nil {
		return nil, err
	}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.expect(closing); err != nil {
		return nil, err
	}

	return e, nil
}

// parseCall parses: '(' [Expr {',' Expr}] ')' following the identifier id,
// which has already been consumed.
func (p *parser) parseCall(id Token) (*Call, error) {
	if err := p.expect(KindLParen); err != nil {
		return nil, err
	}

	var args []Expr

	if !p.at(KindRParen) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if !p.at(KindComma) {
				break
			}

			p.advance()
		}
	}

	if err := p.expect(KindRParen); err != nil {
		return nil, err
	}

	return &Call{ID: id.Text, Args: args, At: id.Pos}, nil
}

func (p *parser) compareOp() (CompareOp, bool) {
	tok, ok := p.current()
	if !ok {
		return 0, false
	}

	switch tok.Kind {
	case KindLess:
		return OpLt, true
	case KindGreater:
		return OpGt, true
	case KindEqual:
		return OpEq, true
	default:
		return 0, false
	}
}

// Helper methods

func (p *parser) eof() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) current() (Token, bool) {
	if p.eof() {
		return Token{}, false
	}

	return p.tokens[p.pos], true
}

func (p *parser) lookahead() (Token, bool) {
	if p.pos+1 >= len(p.tokens) {
		return Token{Kind: -1}, false
	}

	return p.tokens[p.pos+1], true
}

func (p *parser) at(kind Kind) bool {
	tok, ok := p.current()

	return ok && tok.Kind == kind
}

func (p *parser) advance() {
	if !p.eof() {
		p.pos++
	}
}

// position returns the position of the current token, or of the last token
// once the input is exhausted.
func (p *parser) position() Position {
	switch {
	case !p.eof():
		return p.tokens[p.pos].Pos
	case len(p.tokens) > 0:
		return p.tokens[len(p.tokens)-1].Pos
	default:
		return Position{}
	}
}

// expect consumes a token of the given kind or fails.
func (p *parser) expect(kind Kind) error {
	if !p.at(kind) {
		return p.unexpected(kind.Symbol())
	}

	p.advance()

	return nil
}

func (p *parser) expectIdent() (string, error) {
	tok, ok := p.current()
	if !ok || tok.Kind != KindIdent {
		return "", p.unexpected(KindIdent.Symbol())
	}

	p.advance()

	return tok.Text, nil
}

// unexpected reports the current token (or end of input) where expected was
// required.
func (p *parser) unexpected(expected string) *Error {
	actual := "end of input"
	if tok, ok := p.current(); ok {
		actual = tok.Describe()
	}

	return ErrParse.WithPosition(p.position()).
		With(slog.String("expected", expected)).
		With(slog.String("actual", actual))
}

// numberLiteral range-checks n, the possibly negated value of a NUMBER
// token, as an Int. tok positions the literal.
func numberLiteral(tok Token, n int64) (Expr, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, ErrParse.WithPosition(tok.Pos).
			With(slog.String("error", "number out of range")).
			With(slog.Int64("literal", n))
	}

	return &Number{Value: int32(n), At: tok.Pos}, nil
}
