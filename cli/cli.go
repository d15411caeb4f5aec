package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/halmstraw/finance-app-dsl/cli/cmd"
	"github.com/halmstraw/finance-app-dsl/pkg"
)

// CLI is the top-level command-line interface for appdsl.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Init cmd.Init `cmd:"" help:"Write a default configuration file"`

	Check    cmd.Check    `cmd:"" default:"withargs" help:"Validate a source file and report diagnostics"`
	Generate cmd.Generate `cmd:""                    help:"Generate platform scaffolds from a source file"`
	Dump     cmd.Dump     `cmd:""                    help:"Print the parsed document as JSON"`
}

// Run executes the appdsl CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier:   configFilePath,
		cmd.CacheIdentifier:    cacheDir(),
		cmd.PlatformIdentifier: cmd.PlatformEnum(),
	}.CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so early log output (including parse errors
	// below) honors them regardless of flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolveYAML, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Apply the fully parsed logger configuration, including values that
	// only arrive via the config file.
	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode was selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
