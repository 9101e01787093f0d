package repl

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/twig/lang"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall describes the innermost call whose argument list contains the
// cursor.
type functionCall struct {
	name     string
	argIndex int  // 0-based
	inCall   bool // cursor is inside the parameter list
}

// detectCall scans the input up to cursor and reports the innermost open
// call. Parentheses that do not follow an identifier are grouping and are
// tracked only so their commas are not counted. Input that does not scan,
// such as an unterminated string, reports no call.
func detectCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	tokens, err := lang.Scan(context.Background(), input[:cursor])
	if err != nil {
		return functionCall{}
	}

	var stack []functionCall

	for i, tok := range tokens {
		switch tok.Kind {
		case lang.KindLParen:
			var frame functionCall
			if i > 0 && tokens[i-1].Kind == lang.KindIdent {
				frame = functionCall{name: tokens[i-1].Text, inCall: true}
			}

			stack = append(stack, frame)

		case lang.KindRParen:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case lang.KindComma:
			if len(stack) > 0 {
				stack[len(stack)-1].argIndex++
			}
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].inCall {
			return stack[i]
		}
	}

	return functionCall{}
}

// renderSignatureHint renders name(params...) with the parameter at argIndex
// highlighted. A variadic parameter, written with a "..." prefix, stays
// highlighted for every argument from its position on.
func renderSignatureHint(name string, params []string, argIndex int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		current := argIndex == i
		if strings.HasPrefix(param, "...") {
			current = argIndex >= i
		}

		if current {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
