package cli

import (
	"fmt"
	"os"

	"github.com/jrsteele09/go-budget-console/api"
	"github.com/jrsteele09/go-budget-console/internal/config"
	"github.com/jrsteele09/go-budget-console/kvstore"
	"github.com/jrsteele09/go-budget-console/navigation"
	"github.com/jrsteele09/go-budget-console/notify"
	"github.com/jrsteele09/go-budget-console/session"
)

// Options override configuration from the command line
type Options struct {
	APIBaseURL  string
	SessionFile string
	RoutesFile  string
	NoColour    bool
	Debug       bool
}

// App wires the session store, navigation guard and request pipeline
type App struct {
	Config   config.Config
	Store    *session.Store
	Guard    *navigation.Guard
	Client   *api.Client
	Auth     *api.AuthAPI
	Notifier notify.Notifier
}

func NewApp(cfg config.Config, opts Options, notifier notify.Notifier) (*App, error) {
	baseURL := cfg.GetAPIBaseURL()
	if opts.APIBaseURL != "" {
		baseURL = opts.APIBaseURL
	}
	sessionFile := cfg.GetSessionFile()
	if opts.SessionFile != "" {
		sessionFile = opts.SessionFile
	}

	table := navigation.DefaultTable()
	if opts.RoutesFile != "" {
		f, err := os.Open(opts.RoutesFile)
		if err != nil {
			return nil, fmt.Errorf("[cli NewApp] open route table: %w", err)
		}
		defer f.Close()
		if table, err = navigation.LoadTable(f); err != nil {
			return nil, fmt.Errorf("[cli NewApp] %w", err)
		}
	}

	app := &App{Config: cfg, Notifier: notifier}
	app.Store = session.New(kvstore.NewFileStore(sessionFile), nil)
	app.Guard = navigation.NewGuard(table, app.Store, notifier)
	app.Client = api.New(baseURL, cfg.GetRequestTimeout(), app.Store, app.Guard, notifier)
	app.Auth = api.NewAuthAPI(app.Client)
	app.Store.SetAuthenticator(app.Auth)

	if app.Store.Snapshot().Corrupt {
		notifier.Warning("Saved session was unreadable and has been cleared")
	}
	return app, nil
}
