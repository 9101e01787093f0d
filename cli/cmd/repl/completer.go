package repl

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/twig/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "vars", "funcs", "edit", "reset", "clear", "quit"}

// isWordRune reports whether r may appear in an identifier.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordBounds returns the identifier at the cursor and its byte boundaries
// within input. The word is empty when the cursor is not touching one.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isWordRune(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isWordRune(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// insideString reports whether position pos of input falls within an
// unterminated string literal.
func insideString(input string, pos int) bool {
	return strings.Count(input[:pos], `"`)%2 == 1
}

// candidates returns the names offered for completion in the current mode.
func (m model) candidates() []string {
	if m.mode == modeCtrl || strings.HasPrefix(m.input.Value(), ":") {
		return ctrlCommands
	}

	names := m.session.Names()
	slices.Sort(names)

	return slices.Compact(names)
}

// computeMatches ranks the candidates against the word at the cursor, best
// first. An empty word yields no matches so the hint line stays visible.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()
	cursor := min(m.input.Position(), len(input))

	word, wordStart, wordEnd := wordBounds(input, cursor)
	if word == "" || (m.mode == modeEval && insideString(input, wordStart)) {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, m.candidates()), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. Matched characters are highlighted and the selected candidate
// (when tabbing) is inverted.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)
		w := lipgloss.Width(rendered)

		if i > 0 {
			w += lipgloss.Width(sep)

			if i < len(matches)-1 && used+w+reserve > width {
				b.WriteString(sep + ellipsis)

				break
			}

			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base := suggestionStyle
	highlight := lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)

	if selected {
		base = selectedStyle
		highlight = selectedStyle.Bold(true)
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if lang.IsKeyword(match.Str) {
		b.WriteString(hintStyle.Render("*"))
	}

	return b.String()
}
