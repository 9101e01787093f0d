package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_UsesDefault(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	var buf bytes.Buffer

	Config(
		WithOutput(&buf),
		WithLevel(LevelTrace),
		WithFormat(FormatJSON),
		WithPretty(false))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			output := buf.String()
			if !strings.Contains(output, `"level":"`+tt.level+`"`) {
				t.Errorf("expected level %s, got: %s", tt.level, output)
			}

			if !strings.Contains(output, `"key":"value"`) {
				t.Errorf("expected attribute, got: %s", output)
			}
		})
	}
}

func TestPackage_CallerFrame(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithCaller(true), WithPretty(false))
	InfoContext(t.Context(), "here")

	if !strings.Contains(buf.String(), "pkg_test.go") {
		t.Errorf("expected caller in pkg_test.go, got %s", buf.String())
	}
}
