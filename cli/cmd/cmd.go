package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/twig/builtin"
	"github.com/ardnew/twig/lang"
	"github.com/ardnew/twig/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the named kong variable, or def when there is no kong
// context or the variable is unset.
func kongVar(ctx context.Context, name, def string) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if v, ok := ktx.Model.Vars()[name]; ok {
			return v
		}
	}

	return def
}

type streamsKey struct{}

type streams struct {
	in  io.Reader
	out io.Writer
}

// WithStreams returns a new context.Context whose commands read stdin from
// in and write program output to out.
func WithStreams(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams{in: in, out: out})
}

func streamsFrom(ctx context.Context) streams {
	s, ok := ctx.Value(streamsKey{}).(streams)
	if !ok {
		return streams{in: os.Stdin, out: os.Stdout}
	}

	return s
}

// interpreter returns the options shared by every command that scans, parses,
// or executes: the process logger and the call depth limit.
func interpreter(maxDepth int) []lang.Option {
	return []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithMaxCallDepth(maxDepth),
	}
}

// builtins returns the builtin installer writing to the command's output.
func builtins(ctx context.Context) func(lang.FunctionTable) {
	return builtin.Installer(
		builtin.WithOutput(streamsFrom(ctx).out),
		builtin.WithLogger(log.Default()),
	)
}

// Source is one program text and where it came from.
type Source struct {
	Name string
	Text string
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// ReadSources reads the named files in order. The same file named twice, by
// any path, is read once. All occurrences of "-" are replaced with a single
// read of stdin placed last, after every regular file.
func ReadSources(ctx context.Context, paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	seen := make(map[fileKey]struct{})
	stdin := false

	for _, path := range paths {
		if path == stdinSource {
			stdin = true

			continue
		}

		src, ok, err := readUniqueFile(path, seen)
		if err != nil {
			return nil, ErrReadSource.With(slog.String("source", path)).Wrap(err)
		}

		if !ok {
			log.DebugContext(ctx, "skip duplicate source", slog.String("source", path))

			continue
		}

		sources = append(sources, src)
	}

	if stdin {
		data, err := io.ReadAll(streamsFrom(ctx).in)
		if err != nil {
			return nil, ErrReadSource.With(slog.String("source", "stdin")).Wrap(err)
		}

		sources = append(sources, Source{Name: "stdin", Text: string(data)})
	}

	return sources, nil
}

// readUniqueFile reads the file at path unless a file with the same identity
// is already in seen.
func readUniqueFile(path string, seen map[fileKey]struct{}) (Source, bool, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return Source{}, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return Source{}, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return Source{}, false, nil
		}

		seen[key] = struct{}{}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return Source{}, false, err
	}

	return Source{Name: path, Text: string(data)}, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// sourceError decorates a scan, parse, or execution error with the source it
// came from and, when the error has a position, the offending line.
func sourceError(err error, src Source) error {
	ee := lang.WrapError(err).With(slog.String("source", src.Name))

	if snippet := lang.Snippet(err, src.Text); snippet != "" {
		ee = ee.With(slog.String("context", snippet))
	}

	return ee
}
