package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tinqs/internal/agenda"
	"tinqs/internal/model"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var categoryID string
	var status string
	var today bool
	var week bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (newest date first; undated last)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !model.Status(status).Valid() {
				return writeErr(cmd, fmt.Errorf("invalid status %q (pending|in-progress|done)", status))
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := requireLogin(e); err != nil {
				return writeErr(cmd, err)
			}

			tasks, err := e.store.Tasks(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			f := agenda.Filter{CategoryID: strings.TrimSpace(categoryID), Status: model.Status(status)}
			tasks = agenda.Apply(tasks, f)

			now := time.Now()
			switch {
			case today:
				tasks = agenda.Today(tasks, now)
			case week:
				board := agenda.BuildWeek(tasks, now)
				days := make([]map[string]any, 0, len(board.Days))
				for _, d := range board.Days {
					days = append(days, map[string]any{
						"day":   d.Name,
						"date":  d.Date.Format("2006-01-02"),
						"tasks": d.Tasks,
					})
				}
				return writeOut(cmd, app, map[string]any{"data": days})
			default:
				tasks = agenda.SortByDateDesc(tasks, now.Location())
			}
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "Only tasks in this category id")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status (pending|in-progress|done)")
	cmd.Flags().BoolVar(&today, "today", false, "Only tasks due today")
	cmd.Flags().BoolVar(&week, "week", false, "Group this week's tasks by weekday")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := requireLogin(e); err != nil {
				return writeErr(cmd, err)
			}

			task, err := e.store.Task(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}
}

// taskFlags are the draft fields shared by create and update.
type taskFlags struct {
	title       string
	description string
	date        string
	location    string
	priority    string
	categoryID  string
	status      string
}

func (tf *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&tf.title, "title", "", "Task title")
	cmd.Flags().StringVar(&tf.description, "description", "", "Task description")
	cmd.Flags().StringVar(&tf.date, "date", "", "Due date (YYYY-MM-DD; empty for none)")
	cmd.Flags().StringVar(&tf.location, "location", "", "Location (indoor|outdoor)")
	cmd.Flags().StringVar(&tf.priority, "priority", "", "Priority (low|medium|high)")
	cmd.Flags().StringVar(&tf.categoryID, "category", "", "Category id (empty for none)")
	cmd.Flags().StringVar(&tf.status, "status", "", "Status (pending|in-progress|done)")
}

func (tf *taskFlags) apply(d *model.Draft, changed func(string) bool) error {
	if changed("title") {
		d.Title = strings.TrimSpace(tf.title)
	}
	if changed("description") {
		d.Description = tf.description
	}
	if changed("date") {
		date := strings.TrimSpace(tf.date)
		if date != "" {
			if _, ok := agenda.ParseDate(date, time.Local); !ok {
				return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
			}
		}
		d.Date = date
	}
	if changed("location") {
		loc := model.Location(strings.TrimSpace(tf.location))
		if loc != "" && !loc.Valid() {
			return fmt.Errorf("invalid location %q (indoor|outdoor)", tf.location)
		}
		d.Location = loc
	}
	if changed("priority") {
		p := model.Priority(strings.TrimSpace(tf.priority))
		if !p.Valid() {
			return fmt.Errorf("invalid priority %q (low|medium|high)", tf.priority)
		}
		d.Priority = p
	}
	if changed("category") {
		d.CategoryID = strings.TrimSpace(tf.categoryID)
	}
	if changed("status") {
		s := model.Status(strings.TrimSpace(tf.status))
		if !s.Valid() {
			return fmt.Errorf("invalid status %q (pending|in-progress|done)", tf.status)
		}
		d.Status = s
	}
	if d.Title == "" {
		return errors.New("missing --title")
	}
	return nil
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var tf taskFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := model.NewDraft()
			if err := tf.apply(&d, cmd.Flags().Changed); err != nil {
				return writeErr(cmd, err)
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := requireLogin(e); err != nil {
				return writeErr(cmd, err)
			}

			task, err := e.store.CreateTask(cmd.Context(), d.Payload())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}

	tf.register(cmd)
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var tf taskFlags

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task (unchanged flags keep their current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := requireLogin(e); err != nil {
				return writeErr(cmd, err)
			}

			id := strings.TrimSpace(args[0])
			current, err := e.store.Task(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			d := model.DraftFrom(current)
			if err := tf.apply(&d, cmd.Flags().Changed); err != nil {
				return writeErr(cmd, err)
			}

			task, err := e.store.UpdateTask(cmd.Context(), id, d.Payload())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}

	tf.register(cmd)
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errors.New("refusing to delete without --yes"))
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
			if err := e.store.DeleteTask(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation")
	return cmd
}
