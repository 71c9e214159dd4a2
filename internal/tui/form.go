package tui

import (
	"strings"
	"time"

	"tinqs/internal/agenda"
	"tinqs/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDate
	fieldCategory
	fieldPriority
	fieldStatus
	fieldLocation
	fieldDescription
	fieldCount
)

func (f formField) label() string {
	switch f {
	case fieldTitle:
		return "Title"
	case fieldDate:
		return "Date"
	case fieldCategory:
		return "Category"
	case fieldPriority:
		return "Priority"
	case fieldStatus:
		return "Status"
	case fieldLocation:
		return "Location"
	case fieldDescription:
		return "Description"
	}
	return "?"
}

// formState is the create/edit screen. taskID is empty for create.
type formState struct {
	taskID string
	draft  model.Draft

	title textinput.Model
	date  textinput.Model
	desc  textarea.Model

	focus formField
	busy  bool
}

func newFormState() formState {
	f := formState{draft: model.NewDraft()}

	f.title = textinput.New()
	f.title.Placeholder = "task title"
	f.title.CharLimit = 200

	f.date = textinput.New()
	f.date.Placeholder = "YYYY-MM-DD (optional)"
	f.date.CharLimit = 10

	f.desc = textarea.New()
	f.desc.Placeholder = "notes (markdown)"
	f.desc.SetHeight(5)
	f.desc.CharLimit = 4000

	return f
}

// load seeds the form from a draft and focuses the title field.
func (f *formState) load(taskID string, d model.Draft) {
	f.taskID = taskID
	f.draft = d
	f.title.SetValue(d.Title)
	f.date.SetValue(d.Date)
	f.desc.SetValue(d.Description)
	f.busy = false
	f.setFocus(fieldTitle)
}

func (f *formState) setFocus(target formField) {
	f.focus = target
	f.title.Blur()
	f.date.Blur()
	f.desc.Blur()
	switch target {
	case fieldTitle:
		f.title.Focus()
	case fieldDate:
		f.date.Focus()
	case fieldDescription:
		f.desc.Focus()
	}
}

func (f *formState) nextField() { f.setFocus((f.focus + 1) % fieldCount) }
func (f *formState) prevField() { f.setFocus((f.focus + fieldCount - 1) % fieldCount) }

// sync copies text inputs back into the draft.
func (f *formState) sync() {
	f.draft.Title = strings.TrimSpace(f.title.Value())
	f.draft.Date = strings.TrimSpace(f.date.Value())
	f.draft.Description = f.desc.Value()
}

// validate returns a user-facing problem, or "" when the draft can be sent.
func (f *formState) validate() string {
	f.sync()
	if f.draft.Title == "" {
		return "Title is required."
	}
	if f.draft.Date != "" {
		if _, ok := agenda.ParseDate(f.draft.Date, time.Local); !ok {
			return "Date must be YYYY-MM-DD."
		}
	}
	return ""
}

func (f *formState) isEnumFocused() bool {
	switch f.focus {
	case fieldCategory, fieldPriority, fieldStatus, fieldLocation:
		return true
	}
	return false
}

// cycle advances the focused enum field. dir is +1 or -1.
func (f *formState) cycle(dir int, cats []model.Category) {
	switch f.focus {
	case fieldPriority:
		f.draft.Priority = cycleChoice(f.draft.Priority, dir,
			model.PriorityLow, model.PriorityMedium, model.PriorityHigh)
	case fieldStatus:
		f.draft.Status = cycleChoice(f.draft.Status, dir,
			model.StatusPending, model.StatusInProgress, model.StatusDone)
	case fieldLocation:
		// Location is optional; "" is a valid stop in the cycle.
		f.draft.Location = cycleChoice(f.draft.Location, dir,
			model.Location(""), model.LocationIndoor, model.LocationOutdoor)
	case fieldCategory:
		f.draft.CategoryID = cycleCategory(f.draft.CategoryID, dir, cats)
	}
}

func cycleChoice[T comparable](cur T, dir int, choices ...T) T {
	idx := 0
	for i, c := range choices {
		if c == cur {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(choices)) % len(choices)
	return choices[idx]
}

// cycleCategory steps through "" (none) plus every known category id.
func cycleCategory(cur string, dir int, cats []model.Category) string {
	ids := make([]string, 0, len(cats)+1)
	ids = append(ids, "")
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	return cycleChoice(cur, dir, ids...)
}

func (f *formState) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	case fieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	}
	return cmd
}

func (m appModel) renderForm() string {
	f := m.form
	heading := "New task"
	if f.taskID != "" {
		heading = "Edit task"
	}

	labelStyle := styleMuted().Width(13)
	focusMark := func(field formField) string {
		if f.focus == field {
			return styleAccent().Render("› ")
		}
		return "  "
	}
	enumValue := func(field formField, v string) string {
		if v == "" {
			v = "(none)"
		}
		if f.focus == field {
			return styleAccent().Render("‹ " + v + " ›")
		}
		return v
	}

	rows := []string{
		focusMark(fieldTitle) + labelStyle.Render("Title") + f.title.View(),
		focusMark(fieldDate) + labelStyle.Render("Date") + f.date.View(),
		focusMark(fieldCategory) + labelStyle.Render("Category") + enumValue(fieldCategory, m.categoryName(f.draft.CategoryID)),
		focusMark(fieldPriority) + labelStyle.Render("Priority") + enumValue(fieldPriority, string(f.draft.Priority)),
		focusMark(fieldStatus) + labelStyle.Render("Status") + enumValue(fieldStatus, string(f.draft.Status)),
		focusMark(fieldLocation) + labelStyle.Render("Location") + enumValue(fieldLocation, string(f.draft.Location)),
		focusMark(fieldDescription) + labelStyle.Render("Description"),
		f.desc.View(),
	}

	var b strings.Builder
	b.WriteString(styleHeading().Render(heading))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(rows, "\n"))
	if m.formErr != "" {
		b.WriteString("\n\n")
		b.WriteString(styleError().Render(m.formErr))
	}
	b.WriteString("\n\n")
	help := "tab: next field   ←/→: change value   ctrl+s: save   esc: cancel"
	if f.busy {
		help = "saving…"
	}
	b.WriteString(styleMuted().Render(help))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
