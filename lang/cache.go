package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// Program is a parsed source text. Programs are immutable and may be shared
// between executions.
type Program struct {
	Source string
	Tokens []Token
	Root   Statement
}

// globalCache stores parsed programs keyed by source hash.
var globalCache sync.Map

// entry tracks parsing state for one source.
type entry struct {
	once sync.Once
	prog *Program
	err  error
}

// ParseReader reads all of r and parses it as a program.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Program, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	makeConfig(opts...).logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true))

	return ParseString(ctx, string(data), opts...)
}

// ParseString scans and parses source. The result is cached by content, so
// parsing the same text again returns the same [Program].
func ParseString(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Program, error) {
	cfg := makeConfig(opts...)

	hash := xxh3.HashString(source)
	key := strconv.FormatUint(hash, 36)

	value, hit := globalCache.LoadOrStore(key, new(entry))
	e, _ := value.(*entry)

	cfg.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", hit))

	e.once.Do(func() {
		tokens, err := Scan(ctx, source, opts...)
		if err != nil {
			e.err = err

			return
		}

		root, err := Parse(ctx, tokens, opts...)
		if err != nil {
			e.err = err

			return
		}

		e.prog = &Program{Source: source, Tokens: tokens, Root: root}
	})

	return e.prog, e.err
}

// ClearCache removes all cached programs.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
