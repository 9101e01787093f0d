package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistory_PersistAndDedupe(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	for _, e := range []HistoryEntry{
		{"x = 1", modeEval},
		{"vars", modeCtrl},
		{"x", modeEval},
		{"x", modeEval},
		{"x = 1", modeEval},
	} {
		if _, err := h.WriteWithMode(e.Line, e.Mode); err != nil {
			t.Fatalf("write %q: %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"vars", modeCtrl},
		{"x", modeEval},
		{"x = 1", modeEval},
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	for name, got := range map[string][]HistoryEntry{
		"memory": h.Entries(),
		"file":   reloaded.Entries(),
	} {
		if len(got) != len(want) {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}

		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s[%d]: expected %v, got %v", name, i, want[i], got[i])
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "C:vars\nE:x\nE:x = 1\n" {
		t.Errorf("unexpected file contents %q", data)
	}
}

func TestHistory_LoadMissingAndBounds(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing"))

	if err := h.Load(); err != nil {
		t.Fatalf("expected missing file to load empty, got %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d", h.Len())
	}

	if _, err := h.GetEntry(0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}

	if n, err := h.WriteWithMode("   ", modeEval); n != 0 || err != nil {
		t.Errorf("expected blank line ignored, got %d %v", n, err)
	}
}

func TestHistoryStep(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.history.WriteWithMode("a = 1", modeEval)
	_, _ = m.history.WriteWithMode("vars", modeCtrl)
	_, _ = m.history.WriteWithMode("a", modeEval)
	m.historyIdx = m.history.Len()

	m = m.historyStep(-1, false)
	if m.input.Value() != "a" || m.mode != modeEval {
		t.Fatalf("expected newest eval entry, got %q mode %d", m.input.Value(), m.mode)
	}

	m = m.historyStep(-1, false)
	if m.input.Value() != "vars" || m.mode != modeCtrl {
		t.Fatalf("expected command entry to switch mode, got %q mode %d",
			m.input.Value(), m.mode)
	}

	m = m.switchToMode(modeEval)
	m = m.historyStep(-1, true)

	if m.input.Value() != "a = 1" {
		t.Errorf("expected same-mode step to skip the command, got %q", m.input.Value())
	}

	for range 3 {
		m = m.historyStep(1, false)
	}

	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("expected stepping past the end to clear input, got %q at %d",
			m.input.Value(), m.historyIdx)
	}
}

func TestExecuteInput_InlineCommand(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue(":quit")

	m, cmd := m.executeInput()
	if !m.quitting || cmd == nil {
		t.Error("expected :quit to quit from eval mode")
	}

	if m.mode != modeEval {
		t.Errorf("expected to stay in eval mode, got %d", m.mode)
	}
}
