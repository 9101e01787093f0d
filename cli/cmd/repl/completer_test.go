package repl

import "testing"

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "double(fo", 9, "fo", 7, 9},
		{"after_comma", "add(a, fo", 9, "fo", 7, 9},
		{"after_assign", "x=fo", 4, "fo", 2, 4},
		{"underscore", "print_in", 8, "print_in", 0, 8},
		{"digits", "x2", 2, "x2", 0, 2},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestInsideString(t *testing.T) {
	tests := []struct {
		input string
		pos   int
		want  bool
	}{
		{`print("he`, 9, true},
		{`print("hi", x`, 13, false},
		{`x`, 1, false},
	}

	for _, tt := range tests {
		if got := insideString(tt.input, tt.pos); got != tt.want {
			t.Errorf("insideString(%q, %d) = %v, want %v", tt.input, tt.pos, got, tt.want)
		}
	}
}

func TestRenderCandidateBar_Ellipsis(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("p")
	m.input.SetCursor(1)
	refreshMatches(&m, false)

	if len(m.matches) < 2 {
		t.Fatalf("expected several matches for %q, got %d", "p", len(m.matches))
	}

	if bar := renderCandidateBar(m.matches, -1, false, 12); bar == "" {
		t.Error("expected a non-empty bar")
	}

	if bar := renderCandidateBar(nil, -1, false, 80); bar != "" {
		t.Errorf("expected empty bar without matches, got %q", bar)
	}
}

func TestComputeMatches_Modes(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("prin")
	m.input.SetCursor(4)
	refreshMatches(&m, false)

	if len(m.matches) == 0 || m.matches[0].Str != "print" {
		t.Fatalf("expected print to rank first, got %v", m.matches)
	}

	m.input.SetValue(`print("prin`)
	m.input.SetCursor(11)
	refreshMatches(&m, false)

	if len(m.matches) != 0 {
		t.Errorf("expected no completion inside a string, got %v", m.matches)
	}

	m = m.switchToMode(modeCtrl)
	m.input.SetValue("fu")
	m.input.SetCursor(2)
	refreshMatches(&m, false)

	if len(m.matches) != 1 || m.matches[0].Str != "funcs" {
		t.Errorf("expected funcs, got %v", m.matches)
	}
}

func TestCycle(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("print_")
	m.input.SetCursor(6)
	refreshMatches(&m, false)

	if len(m.matches) < 2 {
		t.Fatalf("expected several print_ matches, got %v", m.matches)
	}

	first := m.matches[0].Str
	last := m.matches[len(m.matches)-1].Str

	m = m.cycle(1)
	if m.input.Value() != first || !m.tabActive {
		t.Errorf("expected %q while cycling, got %q", first, m.input.Value())
	}

	m = m.cycle(-1)
	if m.input.Value() != last {
		t.Errorf("expected wrap to %q, got %q", last, m.input.Value())
	}
}
