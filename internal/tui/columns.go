package tui

import (
	"strings"

	"tinqs/internal/agenda"
	"tinqs/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// weekSelection tracks the focused cell of the week board. TaskID is the
// stable handle; the indexes are recomputed from it after a refresh.
type weekSelection struct {
	Day    int
	Item   int
	TaskID string
}

func (sel weekSelection) clamp(board agenda.WeekBoard) weekSelection {
	if ci, ii, ok := indexOfBoardTask(board, sel.TaskID); ok {
		sel.Day = ci
		sel.Item = ii
	} else {
		sel.TaskID = ""
	}

	if sel.Day < 0 {
		sel.Day = 0
	}
	if sel.Day >= len(board.Days) {
		sel.Day = len(board.Days) - 1
	}

	n := len(board.Days[sel.Day].Tasks)
	if n == 0 {
		sel.Item = -1
		return sel
	}
	if sel.Item < 0 {
		sel.Item = 0
	}
	if sel.Item >= n {
		sel.Item = n - 1
	}
	sel.TaskID = board.Days[sel.Day].Tasks[sel.Item].ID
	return sel
}

func indexOfBoardTask(board agenda.WeekBoard, id string) (day, item int, ok bool) {
	if id == "" {
		return 0, 0, false
	}
	for d := range board.Days {
		for i, t := range board.Days[d].Tasks {
			if t.ID == id {
				return d, i, true
			}
		}
	}
	return 0, 0, false
}

func selectedBoardTask(board agenda.WeekBoard, sel weekSelection) (model.Task, bool) {
	sel = sel.clamp(board)
	if sel.Day < 0 || sel.Day >= len(board.Days) {
		return model.Task{}, false
	}
	if sel.Item < 0 || sel.Item >= len(board.Days[sel.Day].Tasks) {
		return model.Task{}, false
	}
	return board.Days[sel.Day].Tasks[sel.Item], true
}

// renderWeekBoard draws the Monday..Sunday columns. focused controls whether
// the selection highlight is shown at all (the dashboard also has a Today
// pane that can hold focus).
func renderWeekBoard(board agenda.WeekBoard, sel weekSelection, focused bool, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	n := len(board.Days)
	if n == 0 {
		return normalizePane("", width, height)
	}
	sel = sel.clamp(board)

	gap := 1
	avail := width - gap*(n-1)
	if avail < n {
		avail = n
	}
	colW := avail / n
	if colW < 8 {
		colW = 8
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Background(colorControlBg).Width(colW)
	headerSelectedStyle := lipgloss.NewStyle().Bold(true).Foreground(colorAccentFg).Background(colorAccent).Width(colW)
	itemStyle := lipgloss.NewStyle().Width(colW).Padding(0, 1)
	itemSelectedStyle := itemStyle.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	innerW := colW - 2
	if innerW < 1 {
		innerW = 1
	}

	rendered := make([]string, 0, n)
	for d, day := range board.Days {
		header := day.Date.Format("Mon 02")
		hs := headerStyle
		if focused && d == sel.Day {
			hs = headerSelectedStyle
		}
		lines := []string{hs.Render(header)}

		if len(day.Tasks) == 0 {
			lines = append(lines, styleMuted().Render(" ·"))
		}
		for i, t := range day.Tasks {
			title := strings.TrimSpace(t.Title)
			if title == "" {
				title = "(untitled)"
			}
			row := statusGlyph(t.Status) + " " + title
			if xansi.StringWidth(row) > innerW {
				if innerW == 1 {
					row = xansi.Cut(row, 0, 1)
				} else {
					row = xansi.Cut(row, 0, innerW-1) + "…"
				}
			}
			st := itemStyle
			if focused && d == sel.Day && i == sel.Item {
				st = itemSelectedStyle
			}
			lines = append(lines, st.Render(row))
		}
		rendered = append(rendered, normalizePane(strings.Join(lines, "\n"), colW, height))
	}

	out := rendered[0]
	sep := strings.Repeat(" ", gap)
	for i := 1; i < len(rendered); i++ {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, sep, rendered[i])
	}
	return normalizePane(out, width, height)
}
