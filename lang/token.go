package lang

import (
	"log/slog"
	"strconv"
)

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	KindPlus      Kind = iota // PLUS
	KindMinus                 // MINUS
	KindStar                  // STAR
	KindSlash                 // SLASH
	KindLParen                // LPAR
	KindRParen                // RPAR
	KindLBrace                // LBRACE
	KindRBrace                // RBRACE
	KindLess                  // LT
	KindGreater               // GT
	KindEqual                 // EQ
	KindComma                 // COMMA
	KindSemicolon             // SEMICOLON
	KindIf                    // IF
	KindElse                  // ELSE
	KindFn                    // FN
	KindReturn                // RETURN
	KindNumber                // NUMBER
	KindIdent                 // IDENT
	KindString                // STR
)

var kindNames = [...]string{
	KindPlus:      "PLUS",
	KindMinus:     "MINUS",
	KindStar:      "STAR",
	KindSlash:     "SLASH",
	KindLParen:    "LPAR",
	KindRParen:    "RPAR",
	KindLBrace:    "LBRACE",
	KindRBrace:    "RBRACE",
	KindLess:      "LT",
	KindGreater:   "GT",
	KindEqual:     "EQ",
	KindComma:     "COMMA",
	KindSemicolon: "SEMICOLON",
	KindIf:        "IF",
	KindElse:      "ELSE",
	KindFn:        "FN",
	KindReturn:    "RETURN",
	KindNumber:    "NUMBER",
	KindIdent:     "IDENT",
	KindString:    "STR",
}

// String returns the debug name of the token kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Symbol returns the source spelling of fixed tokens, or a descriptive name
// for payload-bearing kinds. It is used in diagnostics.
func (k Kind) Symbol() string {
	switch k {
	case KindPlus:
		return "+"
	case KindMinus:
		return "-"
	case KindStar:
		return "*"
	case KindSlash:
		return "/"
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	case KindLBrace:
		return "{"
	case KindRBrace:
		return "}"
	case KindLess:
		return "<"
	case KindGreater:
		return ">"
	case KindEqual:
		return "="
	case KindComma:
		return ","
	case KindSemicolon:
		return ";"
	case KindIf:
		return "if"
	case KindElse:
		return "else"
	case KindFn:
		return "fn"
	case KindReturn:
		return "return"
	case KindNumber:
		return "number"
	case KindIdent:
		return "identifier"
	case KindString:
		return "string"
	default:
		return k.String()
	}
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]Kind{
	"if":     KindIf,
	"else":   KindElse,
	"fn":     KindFn,
	"return": KindReturn,
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]

	return ok
}

// Keywords returns the reserved words of the language.
func Keywords() []string {
	return sortedKeys(keywords)
}

// Position identifies a location in source text.
// Line and Column are 1-based; Offset is a 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether the position was set.
func (p Position) IsValid() bool { return p.Line > 0 }

// LogValue implements slog.LogValuer.
func (p Position) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
		slog.Int("offset", p.Offset),
	)
}

// Token is an immutable lexical unit. Num is set for [KindNumber]; Text holds
// the identifier name or string contents for [KindIdent] and [KindString].
type Token struct {
	Kind Kind
	Num  int64
	Text string
	Pos  Position
}

// String renders the token the way the diagnostic dumps print it, for
// example NUMBER(3), IDENT(x), STR("hi"), or PLUS.
func (t Token) String() string {
	switch t.Kind {
	case KindNumber:
		return t.Kind.String() + "(" + strconv.FormatInt(t.Num, 10) + ")"
	case KindIdent:
		return t.Kind.String() + "(" + t.Text + ")"
	case KindString:
		return t.Kind.String() + "(" + strconv.Quote(t.Text) + ")"
	default:
		return t.Kind.String()
	}
}

// Describe returns a short human-readable spelling of the token for error
// messages.
func (t Token) Describe() string {
	switch t.Kind {
	case KindNumber:
		return "number " + strconv.FormatInt(t.Num, 10)
	case KindIdent:
		return "identifier " + strconv.Quote(t.Text)
	case KindString:
		return "string " + strconv.Quote(t.Text)
	default:
		return strconv.Quote(t.Kind.Symbol())
	}
}
