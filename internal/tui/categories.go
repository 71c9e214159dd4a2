package tui

import (
	"strings"

	"tinqs/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type catManagerMode int

const (
	catModeBrowse catManagerMode = iota
	catModeCreate
	catModeRename
)

// catManagerState is the category manager modal: browse, create, rename,
// delete (with confirmation handled by the shared confirm modal).
type catManagerState struct {
	list  list.Model
	input textinput.Model
	mode  catManagerMode
	// renameID is the category being renamed in catModeRename.
	renameID string
	busy     bool
	errText  string
}

func newCatManagerState() catManagerState {
	s := catManagerState{}
	s.list = newList("Categories", nil)
	s.list.SetFilteringEnabled(false)
	s.input = textinput.New()
	s.input.Placeholder = "category name"
	s.input.CharLimit = 60
	return s
}

func (s *catManagerState) setCategories(cats []model.Category) {
	items := make([]list.Item, 0, len(cats))
	for _, c := range cats {
		items = append(items, categoryRowItem{cat: c})
	}
	s.list.SetItems(items)
}

func (s *catManagerState) selected() (model.Category, bool) {
	it, ok := s.list.SelectedItem().(categoryRowItem)
	if !ok {
		return model.Category{}, false
	}
	return it.cat, true
}

func (s *catManagerState) startCreate() {
	s.mode = catModeCreate
	s.errText = ""
	s.input.SetValue("")
	s.input.Focus()
}

func (s *catManagerState) startRename(c model.Category) {
	s.mode = catModeRename
	s.renameID = c.ID
	s.errText = ""
	s.input.SetValue(c.Name)
	s.input.CursorEnd()
	s.input.Focus()
}

func (s *catManagerState) cancelInput() {
	s.mode = catModeBrowse
	s.renameID = ""
	s.errText = ""
	s.input.Blur()
}

// submit returns the command to run for the pending create/rename, or nil
// when the input is not submittable.
func (s *catManagerState) submit(m *appModel) tea.Cmd {
	name := strings.TrimSpace(s.input.Value())
	if name == "" {
		s.errText = "Name is required."
		return nil
	}
	s.busy = true
	s.errText = ""
	if s.mode == catModeRename {
		return m.renameCategoryCmd(s.renameID, name)
	}
	return m.createCategoryCmd(name)
}

func (m appModel) renderCategoriesModal() string {
	s := m.catMgr
	var b strings.Builder

	switch s.mode {
	case catModeCreate:
		b.WriteString("New category\n\n")
		b.WriteString(s.input.View())
		b.WriteString("\n\n")
		b.WriteString(styleMuted().Render("enter: create   esc: back"))
	case catModeRename:
		b.WriteString("Rename category\n\n")
		b.WriteString(s.input.View())
		b.WriteString("\n\n")
		b.WriteString(styleMuted().Render("enter: rename   esc: back"))
	default:
		b.WriteString(s.list.View())
		b.WriteString("\n")
		b.WriteString(styleMuted().Render("n: new   r: rename   d: delete   esc: close"))
	}

	if s.busy {
		b.WriteString("\n")
		b.WriteString(styleMuted().Render("working…"))
	}
	if s.errText != "" {
		b.WriteString("\n")
		b.WriteString(styleError().Render(s.errText))
	}

	return m.placeCentered(renderModalBox(m.width, "Categories", b.String()))
}
