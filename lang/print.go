package lang

import (
	"io"
	"strconv"
	"strings"
)

// printer writes indented tree dumps, remembering the first write error.
type printer struct {
	w   io.Writer
	err error
}

// put writes item joined by ": " at the given indent, followed by a newline.
func (p *printer) put(indent int, item ...string) {
	if p.err != nil {
		return
	}

	_, p.err = io.WriteString(p.w,
		strings.Repeat("  ", indent)+strings.Join(item, ": ")+"\n")
}

// Fprint writes an indented dump of the tree rooted at n to w.
func Fprint(w io.Writer, n Node) error {
	p := &printer{w: w}
	n.print(p, 0)

	return p.err
}

// FprintTokens writes one token per line to w, prefixed by its position.
func FprintTokens(w io.Writer, tokens []Token) error {
	p := &printer{w: w}
	for _, tok := range tokens {
		p.put(0, tok.Pos.String(), tok.String())
	}

	return p.err
}

func (e *Binary) print(p *printer, indent int) {
	p.put(indent, "Binary", e.Op.String())
	e.LHS.print(p, indent+1)
	e.RHS.print(p, indent+1)
}

func (e *Comparison) print(p *printer, indent int) {
	p.put(indent, "Comparison", e.Op.String())
	e.LHS.print(p, indent+1)
	e.RHS.print(p, indent+1)
}

func (e *Number) print(p *printer, indent int) {
	p.put(indent, "Number", strconv.FormatInt(int64(e.Value), 10))
}

func (e *Str) print(p *printer, indent int) {
	p.put(indent, "Str", strconv.Quote(e.Value))
}

func (e *Var) print(p *printer, indent int) {
	p.put(indent, "Var", e.Name)
}

func (e *Call) print(p *printer, indent int) {
	p.put(indent, "Call", e.ID)

	for _, arg := range e.Args {
		arg.print(p, indent+1)
	}
}

func (s *Compound) print(p *printer, indent int) {
	p.put(indent, "Compound")
	s.First.print(p, indent+1)
	s.Rest.print(p, indent+1)
}

func (s *Assign) print(p *printer, indent int) {
	p.put(indent, "Assign", s.ID)
	s.Expr.print(p, indent+1)
}

func (s *If) print(p *printer, indent int) {
	p.put(indent, "If")
	p.put(indent+1, "Cond")
	s.Cond.print(p, indent+2)
	p.put(indent+1, "Then")
	s.Then.print(p, indent+2)
	p.put(indent+1, "Else")
	s.Else.print(p, indent+2)
}

func (s *Return) print(p *printer, indent int) {
	p.put(indent, "Return")
	s.Expr.print(p, indent+1)
}

func (s *FunctionDefine) print(p *printer, indent int) {
	p.put(indent, "FunctionDefine", s.ID+"("+strings.Join(s.Params, ", ")+")")
	s.Body.print(p, indent+1)
}

func (s *CallStatement) print(p *printer, indent int) {
	p.put(indent, "CallStatement")
	s.Call.print(p, indent+1)
}

func (s *Null) print(p *printer, indent int) {
	p.put(indent, "Null")
}
