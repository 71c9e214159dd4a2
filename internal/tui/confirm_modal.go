package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderConfirmModal draws a two-button destructive confirmation. Borders
// are avoided inside the box: nested bordered components show background
// artifacts on some terminals.
func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	btn := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnDanger := btn.
		Foreground(colorAccentFg).
		Background(colorError).
		Bold(true)
	btnFocused := btn.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btn.Render(confirmLabel)
	if focus == confirmFocusConfirm {
		confirm = btnDanger.Render(confirmLabel)
	}
	cancel := btn.Render(cancelLabel)
	if focus == confirmFocusCancel {
		cancel = btnFocused.Render(cancelLabel)
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel))
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Width(modalBodyWidth(width)).Render("tab: focus   enter: select   esc: cancel"))

	return renderModalBox(width, title, b.String())
}
