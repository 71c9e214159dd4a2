package cli

import (
	"errors"
	"strings"

	"tinqs/internal/api"

	"github.com/spf13/cobra"
)

// Shown instead of the server's 409 payload; the server message leaks
// schema details ("duplicate key").
const msgDuplicateCategory = "You already have a category with this name."

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Category commands",
	}
	cmd.AddCommand(newCategoriesListCmd(app))
	cmd.AddCommand(newCategoriesCreateCmd(app))
	cmd.AddCommand(newCategoriesRenameCmd(app))
	cmd.AddCommand(newCategoriesDeleteCmd(app))
	return cmd
}

func newCategoriesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := requireLogin(e); err != nil {
				return writeErr(cmd, err)
			}

			cats, err := e.store.Categories(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cats})
		},
	}
}

func newCategoriesCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return writeErr(cmd, errors.New("category name is empty"))
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := requireLogin(e); err != nil {
				return writeErr(cmd, err)
			}

			cat, err := e.store.CreateCategory(cmd.Context(), name)
			if api.IsConflict(err) {
				return writeErr(cmd, errors.New(msgDuplicateCategory))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cat})
		},
	}
}

func newCategoriesRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <category-id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			name := strings.TrimSpace(args[1])
			if name == "" {
				return writeErr(cmd, errors.New("category name is empty"))
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := requireLogin(e); err != nil {
				return writeErr(cmd, err)
			}

			cat, err := e.store.RenameCategory(cmd.Context(), id, name)
			if api.IsConflict(err) {
				return writeErr(cmd, errors.New(msgDuplicateCategory))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cat})
		},
	}
}

func newCategoriesDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category (tasks keep everything but the reference)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errors.New("refusing to delete without --yes (referencing tasks will show no category)"))
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := requireLogin(e); err != nil {
				return writeErr(cmd, err)
			}

			id := strings.TrimSpace(args[0])
			if err := e.store.DeleteCategory(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation")
	return cmd
}
