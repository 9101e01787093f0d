package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"

	"github.com/ardnew/twig/lang"
	"github.com/ardnew/twig/log"
)

// loadTwig returns a [kong.ConfigurationLoader] for configuration written as
// a twig program. The program runs with no builtins, and every top-level
// variable it leaves behind becomes a flag value:
//
//	log_level = "debug";
//	log_caller = 1;
//	max_depth = 500
//
// Flag names with hyphens may use underscores instead. Integers are passed to
// kong as decimal strings, so 0 and 1 also serve as booleans. Command-line
// flags override configuration values.
func loadTwig(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		opts := []lang.Option{lang.WithLogger(log.Default())}

		prog, err := lang.ParseReader(ctx, r, opts...)
		if err != nil {
			return nil, ErrConfig.With(slog.String("format", "twig")).Wrap(err)
		}

		st, err := prog.Run(ctx, opts...)
		if err != nil {
			return nil, ErrConfig.With(slog.String("format", "twig")).Wrap(err)
		}

		cfg := make(config, len(st.Env))
		for name, v := range st.Env.All() {
			if v.Type() == lang.TypeBool {
				cfg[name] = v.Interface()
			} else {
				cfg[name] = v.String()
			}
		}

		log.DebugContext(ctx, "twig configuration loaded",
			slog.Int("values", len(cfg)))

		return cfg, nil
	}
}

// loadTOML is a [kong.ConfigurationLoader] for TOML. Tables nest flag name
// segments, so [log] level = "debug" sets --log-level.
func loadTOML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, ErrConfig.With(slog.String("format", "toml")).Wrap(err)
	}

	cfg := make(config)
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over flat flag names.
type config map[string]any

func (c config) flatten(prefix string, doc map[string]any) {
	for key, value := range doc {
		name := prefix + key

		switch v := value.(type) {
		case map[string]any:
			c.flatten(name+"-", v)
		case int64:
			// Kong requires numbers as strings for parsing
			c[name] = strconv.FormatInt(v, 10)
		case float64:
			c[name] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			c[name] = v
		}
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. It tries the flag name as declared,
// then with hyphens replaced by underscores.
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}
