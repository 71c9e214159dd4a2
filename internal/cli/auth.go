package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" || password == "" {
				return writeErr(cmd, errors.New("missing --email or --password"))
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			token, err := e.client.Login(cmd.Context(), email, password)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(token) == "" {
				return writeErr(cmd, errors.New("server returned an empty token"))
			}
			if err := e.session.Store(cmd.Context(), token); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"loggedIn": true, "email": email},
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", envOr("TINQS_PASSWORD", ""), "Account password (or TINQS_PASSWORD)")
	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	var email string
	var password string
	var name string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account (log in afterwards)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" || password == "" || strings.TrimSpace(name) == "" {
				return writeErr(cmd, errors.New("missing --email, --password or --name"))
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			user, err := e.client.Signup(cmd.Context(), email, password, name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data":   user,
				"_hints": []string{"run `tinqs login --email " + email + "` to start a session"},
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", envOr("TINQS_PASSWORD", ""), "Account password (or TINQS_PASSWORD)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			if err := e.session.Clear(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"loggedIn": false}})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Verify the session and show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := requireLogin(e); err != nil {
				return writeErr(cmd, err)
			}

			user, err := e.client.Verify(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": user})
		},
	}
}
