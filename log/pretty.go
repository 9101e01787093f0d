package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler writes colorized records either as a single line of
// key=value pairs or as an indented block resembling JSON.
//
// Group names are flattened into dotted keys in both layouts.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	json   bool
	groups []string
	attrs  []field
}

// field is one rendered key/value pair. An empty color selects one from the
// value kind.
type field struct {
	key   string
	value slog.Value
	color string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, json bool) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w, json: json}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := h.clone()
	for _, a := range attrs {
		c.attrs = c.appendAttr(c.attrs, c.groups, a)
	}

	return c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := h.clone()
	c.groups = append(c.groups[:len(c.groups):len(c.groups)], name)

	return c
}

func (h *prettyHandler) clone() *prettyHandler {
	c := *h
	c.attrs = h.attrs[:len(h.attrs):len(h.attrs)]

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = h.appendBuiltin(fields, slog.Time(slog.TimeKey, r.Time.Round(0)), "")
	}

	fields = h.appendBuiltin(fields, slog.Any(slog.LevelKey, r.Level), levelColor(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			fields = h.appendBuiltin(fields,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)), "")
		}
	}

	fields = h.appendBuiltin(fields, slog.String(slog.MessageKey, r.Message), "")
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = h.appendAttr(fields, h.groups, a)

		return true
	})

	buf := new(bytes.Buffer)
	if h.json {
		writeBlock(buf, fields)
	} else {
		writeLine(buf, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// appendBuiltin adds one of the record's own fields after ReplaceAttr.
func (h *prettyHandler) appendBuiltin(fields []field, a slog.Attr, color string) []field {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return fields
	}

	return append(fields, field{key: a.Key, value: a.Value.Resolve(), color: color})
}

// appendAttr flattens a into fields, qualifying keys by the open groups.
func (h *prettyHandler) appendAttr(fields []field, groups []string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		sub := a.Value.Group()
		if len(sub) == 0 {
			return fields
		}

		if a.Key != "" {
			groups = append(groups[:len(groups):len(groups)], a.Key)
		}

		for _, s := range sub {
			fields = h.appendAttr(fields, groups, s)
		}

		return fields
	}

	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Equal(slog.Attr{}) {
		return fields
	}

	key := a.Key
	for i := len(groups) - 1; i >= 0; i-- {
		key = groups[i] + "." + key
	}

	return append(fields, field{key: key, value: a.Value})
}

func writeLine(buf *bytes.Buffer, fields []field) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(colorGray + f.key + colorReset + "=")
		writeValue(buf, f)
	}

	buf.WriteByte('\n')
}

func writeBlock(buf *bytes.Buffer, fields []field) {
	buf.WriteString("{\n")

	for i, f := range fields {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  " + colorGray + f.key + colorReset + ": ")
		writeValue(buf, f)
	}

	buf.WriteString("\n}\n")
}

func writeValue(buf *bytes.Buffer, f field) {
	color := f.color
	var text string
	v := f.value

	switch v.Kind() {
	case slog.KindString:
		text, color = v.String(), pick(color, colorCyan)
	case slog.KindInt64:
		text, color = strconv.FormatInt(v.Int64(), 10), pick(color, colorYellow)
	case slog.KindUint64:
		text, color = strconv.FormatUint(v.Uint64(), 10), pick(color, colorYellow)
	case slog.KindFloat64:
		text, color = strconv.FormatFloat(v.Float64(), 'g', -1, 64), pick(color, colorYellow)
	case slog.KindBool:
		text = strconv.FormatBool(v.Bool())
		if v.Bool() {
			color = pick(color, colorGreen)
		} else {
			color = pick(color, colorRed)
		}
	case slog.KindDuration:
		text, color = v.Duration().String(), pick(color, colorMagenta)
	case slog.KindTime:
		text, color = v.Time().Format(time.RFC3339), pick(color, colorBlue)
	case slog.KindAny:
		if v.Any() == nil {
			text, color = "null", pick(color, colorGray)
		} else {
			text, color = v.String(), pick(color, colorCyan)
		}
	default:
		text, color = v.String(), pick(color, colorCyan)
	}

	buf.WriteString(color + text + colorReset)
}

func pick(color, fallback string) string {
	if color != "" {
		return color
	}

	return fallback
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	case level >= slog.LevelDebug:
		return colorBlue
	default:
		return colorMagenta
	}
}
