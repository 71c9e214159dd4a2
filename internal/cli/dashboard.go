package cli

import (
	"time"

	"tinqs/internal/agenda"

	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Dashboard projections: today, this week, progress, upcoming",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			now := time.Now()
			board := agenda.BuildWeek(tasks, now)
			days := make([]map[string]any, 0, len(board.Days))
			for _, d := range board.Days {
				days = append(days, map[string]any{
					"day":   d.Name,
					"date":  d.Date.Format("2006-01-02"),
					"tasks": d.Tasks,
				})
			}
			counts := agenda.MonthCounts(tasks, now)

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"today":    agenda.Today(tasks, now),
					"week":     days,
					"upcoming": agenda.Upcoming(tasks, now),
					"progress": map[string]int{
						"pending":    counts.Pending,
						"inProgress": counts.InProgress,
						"done":       counts.Done,
						"total":      counts.Total,
					},
				},
			})
		},
	}
}
