package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Account commands",
	}
	cmd.AddCommand(newProfileUpdateCmd(app))
	cmd.AddCommand(newProfileChangePasswordCmd(app))
	cmd.AddCommand(newProfileDeleteAccountCmd(app))
	return cmd
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the display name",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return writeErr(cmd, errors.New("missing --name"))
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := requireLogin(e); err != nil {
				return writeErr(cmd, err)
			}

			user, err := e.client.UpdateProfile(cmd.Context(), strings.TrimSpace(name))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": user})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	return cmd
}

func newProfileChangePasswordCmd(app *App) *cobra.Command {
	var current string
	var next string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if current == "" || next == "" {
				return writeErr(cmd, errors.New("missing --current or --new"))
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := requireLogin(e); err != nil {
				return writeErr(cmd, err)
			}

			if err := e.client.ChangePassword(cmd.Context(), current, next); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": true}})
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&next, "new", "", "New password")
	return cmd
}

func newProfileDeleteAccountCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Delete the account and discard the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errors.New("refusing to delete the account without --yes"))
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := requireLogin(e); err != nil {
				return writeErr(cmd, err)
			}

			if err := e.client.DeleteAccount(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			// The token is useless now even if the clear fails; report the
			// deletion regardless.
			_ = e.session.Clear(cmd.Context())
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": true}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation")
	return cmd
}
