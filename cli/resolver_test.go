package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/twig/log"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	val, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", name, err)
	}

	return val
}

func TestLoadTwig_ReturnsFlagValues(t *testing.T) {
	src := `
log_level = "debug";
max_depth = 25 * 2;
log_caller = 1 < 2
`

	resolver, err := loadTwig(t.Context())(strings.NewReader(src))
	if err != nil {
		t.Fatalf("loadTwig failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log_level", "debug"},
		{"max-depth", "50"},
		{"log-caller", true},
		{"log-format", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			if got := resolveFlag(t, resolver, tt.flag); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLoadTwig_NoBuiltins(t *testing.T) {
	_, err := loadTwig(t.Context())(strings.NewReader(`print("x")`))
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestLoadTwig_SyntaxError(t *testing.T) {
	_, err := loadTwig(t.Context())(strings.NewReader(`log_level = "debug`))
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestLoadTOML_FlattensTables(t *testing.T) {
	src := `
max-depth = 7

[log]
level = "warn"
pretty = false
`

	resolver, err := loadTOML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("loadTOML failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"max-depth", "7"},
		{"log-level", "warn"},
		{"log-pretty", false},
		{"log", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			if got := resolveFlag(t, resolver, tt.flag); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLoadTOML_Invalid(t *testing.T) {
	_, err := loadTOML(strings.NewReader("[log\n"))
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestNewParser_ConfigPrecedence(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	dir := t.TempDir()
	base := filepath.Join(dir, baseConfig)

	write := func(ext, content string) {
		t.Helper()

		if err := os.WriteFile(base+ext, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	write(".json", `{"max-depth": "5", "indent": "8"}`)
	write(".twig", `max_depth = 77`)

	tests := []struct {
		name       string
		args       []string
		wantDepth  int
		wantIndent int
	}{
		{"twig over json", []string{"run"}, 77, 8},
		{"flag over files", []string{"run", "--max-depth=3"}, 3, 8},
		{"flag over json", []string{"run", "--indent=4"}, 77, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI

			parser, err := newParser(t.Context(), &cli, func(int) {}, base)
			if err != nil {
				t.Fatalf("newParser failed: %v", err)
			}

			if _, err := parser.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if cli.Run.MaxDepth != tt.wantDepth {
				t.Errorf("expected max depth %d, got %d", tt.wantDepth, cli.Run.MaxDepth)
			}

			if cli.Run.Indent != tt.wantIndent {
				t.Errorf("expected indent %d, got %d", tt.wantIndent, cli.Run.Indent)
			}
		})
	}
}

func TestNewParser_ConfigError(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, baseConfig)

	if err := os.WriteFile(base+".twig", []byte(`x = (1`), 0o600); err != nil {
		t.Fatal(err)
	}

	var cli CLI

	_, err := newParser(t.Context(), &cli, func(int) {}, base)
	if err == nil {
		t.Fatal("expected error from invalid config.twig")
	}

	if !strings.Contains(err.Error(), "load configuration") {
		t.Errorf("expected configuration error, got %v", err)
	}
}
