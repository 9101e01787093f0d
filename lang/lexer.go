package lang

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/ardnew/twig/log"
)

// Scan converts source text into its token sequence.
//
// Scanning is total: it either consumes the entire input or fails with an
// [ErrLex] error located at the offending character.
func Scan(ctx context.Context, source string, opts ...Option) ([]Token, error) {
	cfg := makeConfig(opts...)

	l := &lexer{
		input:  source,
		line:   1,
		col:    1,
		logger: cfg.logger,
	}

	tokens, err := l.scan()
	if err != nil {
		return nil, err
	}

	l.logger.TraceContext(ctx, "scan complete",
		slog.Int("source_bytes", len(source)),
		slog.Int("token_count", len(tokens)))

	return tokens, nil
}

// lexer holds the scanner state.
type lexer struct {
	input  string
	pos    int
	line   int
	col    int
	logger log.Logger
}

func (l *lexer) scan() ([]Token, error) {
	tokens := make([]Token, 0, len(l.input)/2)

	for {
		l.skipWhitespace()

		if l.eof() {
			return tokens, nil
		}

		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
	}
}

// next reads exactly one token starting at the current position.
func (l *lexer) next() (Token, error) {
	pos := l.position()
	ch := l.peek()

	if kind, ok := punctuation(ch); ok {
		l.advance()

		return Token{Kind: kind, Pos: pos}, nil
	}

	switch {
	case ch == '"':
		return l.scanString(pos)

	case isDigit(ch):
		return l.scanNumber(pos)

	case isLetter(ch):
		return l.scanWord(pos), nil

	default:
		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])

		return Token{}, ErrLex.WithPosition(pos).
			With(slog.String("character", string(r)))
	}
}

func (l *lexer) scanString(pos Position) (Token, error) {
	l.advance() // opening quote

	start := l.pos
	for !l.eof() && l.peek() != '"' {
		l.advance()
	}

	if l.eof() {
		return Token{}, ErrLex.WithPosition(pos).
			With(slog.String("error", "unterminated string"))
	}

	text := l.input[start:l.pos]

	l.advance() // closing quote

	return Token{Kind: KindString, Text: text, Pos: pos}, nil
}

func (l *lexer) scanNumber(pos Position) (Token, error) {
	start := l.pos
	for !l.eof() && isDigit(l.peek()) {
		l.advance()
	}

	digits := l.input[start:l.pos]

	// One past MaxInt32 is kept so that the parser can negate it to MinInt32.
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n > math.MaxInt32+1 {
		return Token{}, ErrLex.WithPosition(pos).
			With(slog.String("error", "number out of range")).
			With(slog.String("literal", digits))
	}

	return Token{Kind: KindNumber, Num: n, Pos: pos}, nil
}

func (l *lexer) scanWord(pos Position) Token {
	start := l.pos
	for !l.eof() && (isLetter(l.peek()) || isDigit(l.peek()) || l.peek() == '_') {
		l.advance()
	}

	word := l.input[start:l.pos]

	if kind, ok := keywords[word]; ok {
		return Token{Kind: kind, Pos: pos}
	}

	return Token{Kind: KindIdent, Text: word, Pos: pos}
}

func (l *lexer) skipWhitespace() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\n', '\r':
			l.advance()
		default:
			return
		}
	}
}

// Helper methods

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) peek() byte {
	if l.eof() {
		return 0
	}

	return l.input[l.pos]
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	l.pos++
}

func (l *lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

// Character classification

func punctuation(ch byte) (Kind, bool) {
	switch ch {
	case '+':
		return KindPlus, true
	case '-':
		return KindMinus, true
	case '*':
		return KindStar, true
	case '/':
		return KindSlash, true
	case '<':
		return KindLess, true
	case '>':
		return KindGreater, true
	case '=':
		return KindEqual, true
	case '(':
		return KindLParen, true
	case ')':
		return KindRParen, true
	case '{':
		return KindLBrace, true
	case '}':
		return KindRBrace, true
	case ',':
		return KindComma, true
	case ';':
		return KindSemicolon, true
	default:
		return 0, false
	}
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}
