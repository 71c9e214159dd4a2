package tui

import (
	"fmt"
	"strings"

	"tinqs/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.modal == modalConfirm {
		return m.placeCentered(renderConfirmModal(m.width, "Confirm", m.confirmBody, "Delete", "Cancel", m.confirmFocus))
	}
	if m.modal == modalCategories {
		return m.renderCategoriesModal()
	}

	switch m.view {
	case viewLogin, viewSignup:
		return m.renderAuth()
	case viewForm:
		return m.renderForm()
	case viewDetail:
		return m.renderDetail()
	case viewTasks:
		return m.renderTasks()
	default:
		return m.renderDashboard()
	}
}

func (m appModel) renderHeader(sub string) string {
	brand := styleHeading().Render("tinqs")
	if sub != "" {
		brand += styleMuted().Render("  ·  " + sub)
	}
	right := ""
	if m.user.Email != "" {
		right = styleMuted().Render(m.user.Email)
	}
	line := brand
	if right != "" && m.width > 0 {
		pad := m.width - lipgloss.Width(brand) - lipgloss.Width(right) - 4
		if pad > 0 {
			line = brand + strings.Repeat(" ", pad) + right
		}
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(line)
}

func (m appModel) renderFooter(help string) string {
	var parts []string
	if m.loading {
		parts = append(parts, "loading…")
	}
	if m.minibufferText != "" {
		parts = append(parts, m.minibufferText)
	}
	out := styleMuted().Render(help)
	if len(parts) > 0 {
		out = styleAccent().Render(strings.Join(parts, "   ")) + "   " + out
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(out)
}

func (m appModel) renderAuth() string {
	heading := "Sign in"
	help := "enter: sign in   tab: next field   ctrl+n: create account   ctrl+c: quit"
	if m.view == viewSignup {
		heading = "Create account"
		help = "enter: create account   tab: next field   esc: back to sign in"
	}

	var b strings.Builder
	b.WriteString(styleHeading().Render("tinqs"))
	b.WriteString("\n\n")
	b.WriteString(heading)
	b.WriteString("\n\n")
	if m.view == viewSignup {
		b.WriteString(m.nameInput.View())
		b.WriteString("\n")
	}
	b.WriteString(m.emailInput.View())
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	if m.authBusy {
		b.WriteString("\n\n")
		b.WriteString(styleMuted().Render("working…"))
	}
	if m.authErr != "" {
		b.WriteString("\n\n")
		b.WriteString(styleError().Render(m.authErr))
	}
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render(help))

	return m.placeCentered(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 3).
		Render(b.String()))
}

func (m appModel) renderDashboard() string {
	var b strings.Builder
	b.WriteString(m.renderHeader("dashboard"))
	b.WriteString("\n\n")

	if m.dashErr != "" {
		b.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(styleError().Render(m.dashErr)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(m.renderTodayPane()))
	b.WriteString("\n\n")

	weekTitle := "This week"
	if m.dashFocus == paneWeek {
		weekTitle = styleAccent().Render(weekTitle)
	} else {
		weekTitle = styleMuted().Render(weekTitle)
	}
	b.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(weekTitle))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(
		renderWeekBoard(m.board, m.weekSel, m.dashFocus == paneWeek, m.boardWidth(), m.boardHeight())))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(m.renderProgress()))
	b.WriteString("\n")
	b.WriteString(m.renderFooter("tab: pane   enter: open   e: edit   n: new   t: tasks   c: categories   r: refresh   q: quit"))
	return b.String()
}

func (m appModel) boardWidth() int {
	w := m.width - 4
	if w < 56 {
		w = 56
	}
	return w
}

func (m appModel) boardHeight() int {
	longest := 0
	for _, d := range m.board.Days {
		if len(d.Tasks) > longest {
			longest = len(d.Tasks)
		}
	}
	h := longest + 1 // header row
	if h < 3 {
		h = 3
	}
	if max := m.height - 16; max > 3 && h > max {
		h = max
	}
	return h
}

func (m appModel) renderTodayPane() string {
	title := "Today"
	if m.dashFocus == paneToday {
		title = styleAccent().Render(title)
	} else {
		title = styleMuted().Render(title)
	}

	lines := []string{title}
	if len(m.today) == 0 {
		lines = append(lines, styleMuted().Render("Nothing scheduled for today."))
	}
	for i, t := range m.today {
		row := statusGlyph(t.Status) + " " + t.Title
		if name := m.categoryName(t.Category.ID); name != "" {
			row += "  " + styleMuted().Render(name)
		}
		if m.dashFocus == paneToday && i == m.todaySel {
			row = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true).Render(" " + row + " ")
		} else {
			row = " " + row
		}
		lines = append(lines, row)
	}
	if n := len(m.upcoming); n > 0 {
		lines = append(lines, styleMuted().Render(fmt.Sprintf("%d more later this week", n)))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderProgress() string {
	c := m.counts
	if c.Total == 0 {
		return styleMuted().Render("No tasks scheduled this month.")
	}
	done := lipgloss.NewStyle().Foreground(colorStatusDone).Render(fmt.Sprintf("%d done", c.Done))
	prog := lipgloss.NewStyle().Foreground(colorStatusInProgress).Render(fmt.Sprintf("%d in progress", c.InProgress))
	pend := lipgloss.NewStyle().Foreground(colorStatusPending).Render(fmt.Sprintf("%d pending", c.Pending))
	return fmt.Sprintf("This month: %s · %s · %s (%d total)", done, prog, pend, c.Total)
}

func (m appModel) renderTasks() string {
	var b strings.Builder
	b.WriteString(m.renderHeader("all tasks"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(m.renderFilterLine()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Padding(0, 1).Render(m.tasksList.View()))
	b.WriteString("\n")
	b.WriteString(m.renderFooter("enter: open   e: edit   d: delete   s: status filter   S: category filter   x: clear   /: search   esc: dashboard"))
	return b.String()
}

func (m appModel) renderFilterLine() string {
	status := "all"
	if m.filter.Status != "" {
		status = string(m.filter.Status)
	}
	cat := "all"
	if m.filter.CategoryID != "" {
		cat = m.categoryName(m.filter.CategoryID)
	}
	return styleMuted().Render("status: ") + status + styleMuted().Render("   category: ") + cat
}

func (m appModel) renderDetail() string {
	t := m.openTask
	var b strings.Builder
	b.WriteString(m.renderHeader("task"))
	b.WriteString("\n\n")

	body := &strings.Builder{}
	body.WriteString(styleHeading().Render(t.Title))
	body.WriteString("\n\n")

	meta := make([]string, 0, 5)
	if d := t.DateOnly(); d != "" {
		meta = append(meta, d)
	}
	status := t.Status
	if status == "" {
		status = model.StatusPending
	}
	meta = append(meta, lipgloss.NewStyle().Foreground(statusColor(string(status))).Render(string(status)))
	if t.Priority != "" {
		meta = append(meta, string(t.Priority)+" priority")
	}
	if name := m.categoryName(t.Category.ID); name != "" {
		meta = append(meta, name)
	}
	if t.Location != "" {
		meta = append(meta, string(t.Location))
	}
	body.WriteString(styleMuted().Render(strings.Join(meta, "  ·  ")))
	body.WriteString("\n")

	if desc := strings.TrimSpace(t.Description); desc != "" {
		body.WriteString("\n")
		body.WriteString(renderMarkdown(desc, m.detailWidth()))
		body.WriteString("\n")
	}
	if m.detailErr != "" {
		body.WriteString("\n")
		body.WriteString(styleError().Render(m.detailErr))
	}

	b.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(body.String()))
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter("e: edit   d: delete   esc: back"))
	return b.String()
}

func (m appModel) detailWidth() int {
	w := m.width - 8
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = 20
	}
	return w
}
