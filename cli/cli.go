package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/twig/cli/cmd"
	"github.com/ardnew/twig/lang"
	"github.com/ardnew/twig/pkg"
)

// CLI is the top-level command-line interface for twig.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Run     cmd.Run     `cmd:"" default:"withargs" help:"Run programs (default)"`
	Tokens  cmd.Tokens  `cmd:""                    help:"Print the token stream of a program"`
	AST     cmd.AST     `cmd:""                    help:"Print the syntax tree of a program"  name:"ast"`
	REPL    cmd.REPL    `cmd:""                    help:"Start an interactive session"        name:"repl"`
	Version cmd.Version `cmd:""                    help:"Print version information"`
}

// Run executes the twig CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before parsing so that they take effect
	// regardless of their position on the command line.
	cli.Log.scan(args)

	parser, err := newParser(ctx, &cli, exit, configPath(baseConfig))
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// newParser builds the kong parser for cli. Flag defaults are overridden, in
// increasing priority, by config.json, config.toml, and config.twig under
// configFile's directory, then by the command line.
func newParser(
	ctx context.Context,
	cli *CLI,
	exit func(int),
	configFile string,
) (*kong.Kong, error) {
	vars := kong.Vars{
		cmd.ConfigIdentifier:   configFile,
		cmd.CacheIdentifier:    cacheDir(),
		cmd.MaxDepthIdentifier: strconv.Itoa(lang.DefaultMaxCallDepth),
	}.CloneWith(cli.Pprof.vars())

	return kong.New(cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, configFile+".json"),
		kong.Configuration(loadTOML, configFile+".toml"),
		kong.Configuration(loadTwig(ctx), configFile+".twig"),
		vars,
	)
}
