package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestReadSources_Order(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.twig", "a = 1")
	second := writeFile(t, dir, "second.twig", "b = 2")

	ctx := WithStreams(t.Context(), strings.NewReader("c = 3"), &bytes.Buffer{})

	sources, err := ReadSources(ctx, []string{"-", first, "-", second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Source{
		{Name: first, Text: "a = 1"},
		{Name: second, Text: "b = 2"},
		{Name: "stdin", Text: "c = 3"},
	}

	if len(sources) != len(want) {
		t.Fatalf("expected %d sources, got %+v", len(want), sources)
	}

	for i := range want {
		if sources[i] != want[i] {
			t.Errorf("source %d: expected %+v, got %+v", i, want[i], sources[i])
		}
	}
}

func TestReadSources_Duplicates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prog.twig", "x = 1")

	link := filepath.Join(dir, "link.twig")
	if err := os.Symlink(path, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	relative, err := filepath.Rel(mustGetwd(t), path)
	if err != nil {
		relative = path
	}

	sources, err := ReadSources(t.Context(), []string{path, link, relative, path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sources) != 1 {
		t.Errorf("expected one source, got %d: %+v", len(sources), sources)
	}
}

func TestReadSources_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.twig")

	_, err := ReadSources(t.Context(), []string{missing})
	if !errors.Is(err, ErrReadSource) {
		t.Fatalf("expected ErrReadSource, got %v", err)
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
}

func TestReadSources_Empty(t *testing.T) {
	sources, err := ReadSources(t.Context(), nil)
	if err != nil || len(sources) != 0 {
		t.Errorf("expected no sources, got %v %v", sources, err)
	}
}

func TestKongVar_Default(t *testing.T) {
	if got := kongVar(t.Context(), CacheIdentifier, "fallback"); got != "fallback" {
		t.Errorf("expected fallback without kong context, got %q", got)
	}
}

func TestError_Is(t *testing.T) {
	err := ErrReadSource.With().Wrap(os.ErrPermission)

	if !errors.Is(err, ErrReadSource) {
		t.Error("expected decorated error to match its sentinel")
	}

	if errors.Is(err, ErrNoSource) {
		t.Error("expected no match with a different sentinel")
	}

	if got := err.Error(); got != "read source: permission denied" {
		t.Errorf("expected joined message, got %q", got)
	}
}

func mustGetwd(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	return wd
}
