package cli

import (
	"testing"

	"github.com/ardnew/twig/log"
)

func TestLogConfig_Scan(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	tests := []struct {
		name       string
		args       []string
		wantLevel  logLevel
		wantFormat logFormat
		wantCaller bool
		wantPretty bool
	}{
		{
			name:       "separate values",
			args:       []string{"run", "--log-level", "debug", "--log-format", "text"},
			wantLevel:  "debug",
			wantFormat: "text",
			wantPretty: true,
		},
		{
			name:       "assigned values",
			args:       []string{"--log-level=warn", "x.twig", "--log-caller"},
			wantLevel:  "warn",
			wantCaller: true,
			wantPretty: true,
		},
		{
			name: "negated boolean",
			args: []string{"--no-log-pretty", "--log-caller=false"},
		},
		{
			name:       "value not consumed from flag",
			args:       []string{"--log-level", "--log-pretty"},
			wantPretty: true,
		},
		{
			name:       "unrelated flags",
			args:       []string{"--level", "debug", "-e", "--log"},
			wantPretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.wantLevel {
				t.Errorf("expected level %q, got %q", tt.wantLevel, f.Level)
			}

			if f.Format != tt.wantFormat {
				t.Errorf("expected format %q, got %q", tt.wantFormat, f.Format)
			}

			if f.Caller != tt.wantCaller {
				t.Errorf("expected caller %v, got %v", tt.wantCaller, f.Caller)
			}

			if f.Pretty != tt.wantPretty {
				t.Errorf("expected pretty %v, got %v", tt.wantPretty, f.Pretty)
			}
		})
	}
}

func TestLogConfig_ScanAppliesLevel(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	var f logConfig

	f.scan([]string{"--log-level=error"})

	if got := log.Default().Level(); got != log.ParseLevel("error") {
		t.Errorf("expected default logger level error, got %v", got)
	}
}
