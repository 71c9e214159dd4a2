package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"tinqs/internal/api"
	"tinqs/internal/data"
	"tinqs/internal/format"
	"tinqs/internal/store"
	"tinqs/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	APIURL     string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tinqs",
		Short:        "tinqs task client (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tinqs

  # Scriptable commands
  tinqs tasks list --status pending

  # Direct task lookup (shortcut for: tinqs tasks show <task-id>)
  tinqs 64f1c0ffee64f1c0ffee64f1
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api", envOr("TINQS_API_URL", ""), "API base URL (overrides config)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newSignupCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newDashboardCmd(app))
	cmd.AddCommand(newProfileCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// env is the wiring a command needs: persisted state, session, API client.
type env struct {
	kv      *store.KV
	session *store.Session
	client  *api.Client
	store   *data.Store
}

func (e *env) Close() {
	if e.kv != nil {
		_ = e.kv.Close()
	}
}

func openEnv(ctx context.Context, app *App) (*env, error) {
	kv, err := store.OpenKV(ctx)
	if err != nil {
		return nil, err
	}
	session, err := store.LoadSession(ctx, kv)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	base, err := resolveAPIURL(app)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	client := api.New(base, session.Token)
	return &env{
		kv:      kv,
		session: session,
		client:  client,
		store:   data.New(client),
	}, nil
}

// resolveAPIURL: --api flag (or TINQS_API_URL) first, then config.json.
func resolveAPIURL(app *App) (string, error) {
	if u := strings.TrimSpace(app.APIURL); u != "" {
		return u, nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return "", err
	}
	if u := strings.TrimSpace(cfg.APIURL); u != "" {
		return u, nil
	}
	return "", errors.New("no API URL configured (pass --api, set TINQS_API_URL, or run `tinqs config set-api <url>`)")
}

func requireLogin(e *env) error {
	if !e.session.LoggedIn() {
		return errors.New("not logged in (run `tinqs login`)")
	}
	return nil
}

func runTUI(app *App) error {
	ctx := context.Background()
	e, err := openEnv(ctx, app)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	return tui.Run(ctx, tui.Options{
		KV:      e.kv,
		Session: e.session,
		Client:  e.client,
		Store:   e.store,
		Config:  cfg,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
