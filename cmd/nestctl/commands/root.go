package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/projectnest/nestctl/internal/api"
	"github.com/projectnest/nestctl/internal/models"
	"github.com/projectnest/nestctl/internal/session"
	"github.com/projectnest/nestctl/internal/ui"
	"github.com/projectnest/nestctl/pkg/config"
	appErrors "github.com/projectnest/nestctl/pkg/errors"
	"github.com/projectnest/nestctl/pkg/logger"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nestctl",
	Short: "ProjectNest - track academic projects from the terminal",
	Long: `nestctl is the terminal client for ProjectNest, the academic project
tracker. Students and professors browse their projects and post progress
updates with threaded comments; admins manage users and projects through
filtered, paginated listings.

Point it at a backend with API_BASE_URL (see .env support) and start with
"nestctl login".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// app bundles the wired collaborators every command needs. The session
// manager owns the token; the API client only reads it.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	api     *api.Client
	session *session.Manager
}

var current *app

// ensureApp wires config, logger, API client and session manager once per
// invocation. Initialize finishes before any command logic runs, so role
// gates never observe a loading session.
func ensureApp() (*app, error) {
	if current != nil {
		return current, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	ui.SetColorEnabled(!cfg.UI.NoColor)

	store := session.NewFileStore(cfg.Token.Path)

	// The manager needs the client for login and the client needs the
	// manager for the 401 hook; the closure breaks the cycle.
	var mgr *session.Manager
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout,
		api.WithLogger(logr),
		api.WithTokenSource(func() string {
			token, loadErr := store.Load()
			if loadErr != nil {
				return ""
			}
			return token
		}),
		api.WithOnUnauthorized(func() {
			// An expired or revoked token is purged so the next
			// invocation starts unauthenticated instead of retrying it.
			if mgr != nil {
				mgr.Logout()
				fmt.Println(ui.Errorf("session expired, please log in again"))
			}
		}),
	)

	mgr = session.NewManager(store, client, nil, logr)
	if err := mgr.Initialize(); err != nil {
		return nil, err
	}

	current = &app{cfg: cfg, logger: logr, api: client, session: mgr}
	return current, nil
}

// requireAuth enforces the advisory client-side gate. The backend remains
// the actual authorization enforcement point for every request sent.
func (a *app) requireAuth(roles ...models.Role) error {
	if !a.session.Current().Authenticated() {
		return appErrors.Clone(appErrors.ErrUnauthorized, `not logged in, run "nestctl login" first`)
	}
	if !a.session.IsAuthorized(roles...) {
		return appErrors.Clone(appErrors.ErrForbidden, "your role does not have access to this command")
	}
	return nil
}
