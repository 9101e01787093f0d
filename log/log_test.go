package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"testing"
)

var ansi = regexp.MustCompile("\033\\[[0-9;]*m")

func plain(s string) string { return ansi.ReplaceAllString(s, "") }

func TestLogger_ZeroValueDiscards(t *testing.T) {
	var logger Logger

	logger.Info("ignored")
	logger.TraceContext(t.Context(), "ignored", slog.Int("n", 1))

	if logger.Level() != DefaultLevel {
		t.Errorf("expected %v, got %v", DefaultLevel, logger.Level())
	}

	if logger.Enabled(t.Context(), LevelError) {
		t.Error("zero logger must not be enabled")
	}

	if got := logger.With(slog.String("k", "v")); got.Logger != nil {
		t.Error("With on zero logger must stay zero")
	}
}

func TestLogger_MakeDefaults(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != LevelInfo {
		t.Errorf("expected level info, got %v", logger.Level())
	}

	if logger.Format() != FormatJSON {
		t.Errorf("expected format json, got %v", logger.Format())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}

	if !logger.pretty {
		t.Error("expected pretty enabled by default")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		log    func(Logger, string, ...slog.Attr)
		min    Level
		logged bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at trace", Logger.Error, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf, WithLevel(tt.min), WithPretty(false))
			tt.log(logger, "message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("expected logged=%v, got %v: %s", tt.logged, logged, buf.String())
			}
		})
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithPretty(false))
	logger.Trace("call", slog.String("function", "fib"), slog.Int("depth", 2))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	want := map[string]any{
		"level":    "TRACE",
		"msg":      "call",
		"function": "fib",
		"depth":    float64(2),
	}

	for key, value := range want {
		if record[key] != value {
			t.Errorf("expected %s=%v, got %v", key, value, record[key])
		}
	}

	if _, ok := record["time"]; !ok {
		t.Error("expected a time field")
	}
}

func TestLogger_TextWithoutTime(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatText),
		WithPretty(false),
		WithTimeLayout("none"))
	logger.Warn("slow", slog.String("op", "parse"))

	want := "level=WARN msg=slow op=parse\n"
	if got := buf.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithCaller(true), WithPretty(false))
	logger.Info("here")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected source to name this file, got %s", buf.String())
	}

	buf.Reset()
	Make(&buf, WithPretty(false)).Info("here")

	if strings.Contains(buf.String(), "source") {
		t.Errorf("expected no source, got %s", buf.String())
	}
}

func TestLogger_WrapKeepsBase(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithFormat(FormatText), WithPretty(false))
	debug := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelInfo {
		t.Errorf("Wrap modified the original: %v", base.Level())
	}

	if debug.Level() != LevelDebug || debug.Format() != FormatText {
		t.Errorf("expected text/debug, got %v/%v", debug.Format(), debug.Level())
	}

	debug.Debug("visible")

	if !strings.Contains(buf.String(), "msg=visible") {
		t.Errorf("expected wrapped logger to share output, got %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(false), WithTimeLayout(""))
	scoped := logger.With(slog.String("component", "repl"))

	scoped.Info("started")
	logger.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}

	if !strings.Contains(lines[0], "component=repl") {
		t.Errorf("expected attribute on scoped logger, got %q", lines[0])
	}

	if strings.Contains(lines[1], "component") {
		t.Errorf("attribute leaked into original logger: %q", lines[1])
	}
}

func TestLogger_PrettyText(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatText),
		WithTimeLayout("none"),
		WithLevel(LevelTrace))
	logger.With(slog.String("run", "a")).
		Trace("call", slog.Group("fn", slog.String("name", "fib"), slog.Bool("native", false)))

	raw := buf.String()
	if !strings.Contains(raw, colorGray) {
		t.Errorf("expected colorized output, got %q", raw)
	}

	want := "level=TRACE msg=call run=a fn.name=fib fn.native=false\n"
	if got := plain(raw); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLogger_PrettyJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))
	logger.Error("failed", slog.Int("line", 3))

	want := "{\n  level: ERROR,\n  msg: failed,\n  line: 3\n}\n"
	if got := plain(buf.String()); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
