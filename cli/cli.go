package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/opline/cli/cmd"
	"github.com/ardnew/opline/pkg"
)

// CLI is the top-level command-line interface for opline.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit."`

	Resolution cmd.Resolution `embed:"" group:"resolve"`

	Source []string `help:"Input file(s) of lines, or '-' for stdin." name:"source" short:"s" type:"existingfile"`

	Parse   cmd.Parse   `cmd:"" default:"withargs" help:"Print the assembled request of each line."`
	Model   cmd.Model   `cmd:""                    help:"Print the request model of each operation request."`
	Query   cmd.Query   `cmd:""                    help:"Evaluate an expression against each parsed line."`
	Trace   cmd.Trace   `cmd:""                    help:"Print the state transitions of each parse."`
	Inspect cmd.Inspect `cmd:""                    help:"Parse input interactively as it is typed."`
}

// Run executes the opline CLI with the given context and arguments.
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

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version":             pkg.Version,
		cmd.ConfigIdentifier:  configFilePath,
		cmd.CacheIdentifier:   cachePath(),
		cmd.HistoryIdentifier: cachePath(baseHistory),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags apply before kong parses so that parse errors are logged
	// with them wherever they appear on the command line.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{
			cli.Resolution.Group(),
			cli.Log.group(),
			cli.Pprof.group(),
		}),
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
		kong.Configuration(kong.JSON, configPath("config.json")),
		kong.Configuration(resolve, configFilePath),
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
	ctx = cmd.WithResolution(ctx, cli.Resolution)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	cli.Log.start(ctx)

	// no-op unless built with tag pprof and a mode is selected
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}
