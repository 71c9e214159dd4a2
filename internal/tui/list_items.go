package tui

import (
	"strings"

	"tinqs/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

type taskRowItem struct {
	task    model.Task
	catName string
}

func (i taskRowItem) FilterValue() string { return strings.TrimSpace(i.task.Title) }

func (i taskRowItem) Title() string {
	title := strings.TrimSpace(i.task.Title)
	if title == "" {
		title = "(untitled)"
	}
	status := i.task.Status
	if status == "" {
		status = model.StatusPending
	}
	badge := lipgloss.NewStyle().Foreground(statusColor(string(status))).Render(statusGlyph(status))
	return badge + " " + title
}

func (i taskRowItem) Description() string {
	parts := make([]string, 0, 4)
	if d := i.task.DateOnly(); d != "" {
		parts = append(parts, d)
	}
	if i.task.Priority != "" {
		parts = append(parts, string(i.task.Priority))
	}
	if i.catName != "" {
		parts = append(parts, i.catName)
	}
	if i.task.Location != "" {
		parts = append(parts, string(i.task.Location))
	}
	if len(parts) == 0 {
		return "no date"
	}
	return strings.Join(parts, "  ")
}

func statusGlyph(s model.Status) string {
	switch s {
	case model.StatusDone:
		return "[x]"
	case model.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

type categoryRowItem struct {
	cat model.Category
}

func (i categoryRowItem) FilterValue() string { return strings.TrimSpace(i.cat.Name) }
func (i categoryRowItem) Title() string {
	n := strings.TrimSpace(i.cat.Name)
	if n == "" {
		return "(unnamed)"
	}
	return n
}
func (i categoryRowItem) Description() string { return i.cat.ID }

func newTaskList(title string) list.Model {
	l := newList(title, nil)
	l.SetStatusBarItemName("task", "tasks")
	return l
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// The app renders its own header and footer; keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	// Bubble list defaults to quitting on ESC; here ESC means "back".
	l.KeyMap.Quit.SetKeys("ctrl+c")

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
