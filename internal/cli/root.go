// Package cli is the budgetctl command line: a terminal front end over the
// session store, navigation guard and request pipeline.
package cli

import (
	"context"
	"io"

	"github.com/jrsteele09/go-budget-console/internal/config"
	"github.com/jrsteele09/go-budget-console/notify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type runner struct {
	cfg  config.Config
	opts Options
	out  io.Writer
	errw io.Writer
	app  *App
}

// NewRootCommand builds the budgetctl command tree
func NewRootCommand(cfg config.Config, out, errw io.Writer) *cobra.Command {
	r := &runner{cfg: cfg, out: out, errw: errw}

	rootCmd := &cobra.Command{
		Use:   "budgetctl",
		Short: "Terminal console for the project budget backend",
		Long: `budgetctl logs in to the budget backend, keeps the session between runs
and moves between the console screens your role is allowed to open.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return r.setup()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errw)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&r.opts.APIBaseURL, "api", "", "API base URL (default $API_BASE_URL or "+cfg.GetAPIBaseURL()+")")
	flags.StringVar(&r.opts.SessionFile, "session-file", "", "where the session is kept between runs (default "+cfg.GetSessionFile()+")")
	flags.StringVar(&r.opts.RoutesFile, "routes", "", "YAML route table replacing the built-in one")
	flags.BoolVar(&r.opts.NoColour, "no-color", false, "disable coloured output")
	flags.BoolVar(&r.opts.Debug, "debug", false, "log requests and navigation decisions; notices go to the log")

	rootCmd.AddCommand(
		r.newLoginCmd(),
		r.newLogoutCmd(),
		r.newWhoAmICmd(),
		r.newNavigateCmd(),
		r.newGetCmd(),
		r.newUsersCmd(),
	)
	return rootCmd
}

// ExecuteContext runs the command tree with os arguments
func ExecuteContext(ctx context.Context, cfg config.Config, out, errw io.Writer) error {
	return NewRootCommand(cfg, out, errw).ExecuteContext(ctx)
}

func (r *runner) setup() error {
	level := zerolog.WarnLevel
	if r.opts.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: r.errw, NoColor: r.opts.NoColour})

	// Under --debug notices join the request log instead of interleaving with it
	var notifier notify.Notifier = notify.NewConsole(r.errw, !r.opts.NoColour)
	if r.opts.Debug {
		notifier = notify.NewLog()
	}

	app, err := NewApp(r.cfg, r.opts, notifier)
	if err != nil {
		return err
	}
	r.app = app
	return nil
}
