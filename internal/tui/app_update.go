package tui

import (
	"strings"

	"tinqs/internal/agenda"
	"tinqs/internal/api"
	"tinqs/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const dupCategoryMsg = "You already have a category with this name."

func (m appModel) Init() tea.Cmd {
	if m.session.LoggedIn() {
		return tea.Batch(m.loadTasksCmd(), m.loadCatsCmd(), textinput.Blink)
	}
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		if !m.seenWindowSize {
			m.seenWindowSize = true
		}
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.minibufferText = ""
		}
		return m, nil

	case tasksLoadedMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.dashErr = api.UserMessage(msg.err, "Could not load tasks.")
			if api.IsUnauthorized(msg.err) {
				return m.handleExpiredSession()
			}
			return m, nil
		}
		m.dashErr = ""
		m.tasks = msg.tasks
		m.tasksLoaded = true
		m.refreshDerived()
		return m, nil

	case catsLoadedMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return m.handleExpiredSession()
			}
			m.dashErr = api.UserMessage(msg.err, "Could not load categories.")
			return m, nil
		}
		m.cats = msg.cats
		m.catsLoaded = true
		m.refreshDerived()
		return m, nil

	case loginDoneMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.authBusy = false
		if msg.err != nil {
			m.authErr = api.UserMessage(msg.err, "Could not sign in.")
			return m, nil
		}
		m.authErr = ""
		m.user = msg.user
		m.view = viewDashboard
		m.passwordInput.SetValue("")
		return m, m.reload()

	case signupDoneMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.authBusy = false
		if msg.err != nil {
			m.authErr = api.UserMessage(msg.err, "Could not create the account.")
			return m, nil
		}
		m.authErr = ""
		m.view = viewLogin
		m.passwordInput.SetValue("")
		m.authFocus = 0
		m.focusAuthField()
		return m, m.flash("Account created. Sign in to continue.")

	case taskOpenedMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		if msg.err != nil {
			m.detailErr = api.UserMessage(msg.err, "Could not load the task.")
			return m, nil
		}
		m.detailErr = ""
		m.openTask = msg.task
		m.view = viewDetail
		return m, nil

	case taskSavedMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.form.busy = false
		if msg.err != nil {
			m.formErr = api.UserMessage(msg.err, "Could not save the task.")
			return m, nil
		}
		m.formErr = ""
		m.view = m.returnView
		if m.view == viewDetail {
			m.openTask = msg.task
		}
		return m, tea.Batch(m.reload(), m.flash("Saved."))

	case taskDeletedMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		if msg.err != nil {
			return m, m.flash(api.UserMessage(msg.err, "Could not delete the task."))
		}
		if m.view == viewDetail && m.openTask.ID == msg.id {
			m.view = m.returnView
			if m.view == viewDetail {
				m.view = viewDashboard
			}
		}
		return m, tea.Batch(m.reload(), m.flash("Task deleted."))

	case categorySavedMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.catMgr.busy = false
		if msg.err != nil {
			if api.IsConflict(msg.err) {
				m.catMgr.errText = dupCategoryMsg
			} else {
				m.catMgr.errText = api.UserMessage(msg.err, "Could not save the category.")
			}
			return m, nil
		}
		m.catMgr.cancelInput()
		return m, m.reload()

	case categoryDeletedMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.catMgr.busy = false
		if msg.err != nil {
			m.modal = modalCategories
			m.catMgr.errText = api.UserMessage(msg.err, "Could not delete the category.")
			return m, nil
		}
		// The server clears the reference on stored tasks; mirror that in
		// local state that the reload won't touch.
		m.form.draft.ClearCategory(msg.id)
		if m.filter.CategoryID == msg.id {
			m.filter.CategoryID = ""
		}
		m.modal = modalCategories
		return m, m.reload()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedComponent(msg)
}

// reload bumps fetchSeq (so in-flight responses are discarded), drops the
// cache, and fetches both collections.
func (m *appModel) reload() tea.Cmd {
	m.store.Invalidate()
	m.fetchSeq++
	m.loading = true
	return tea.Batch(m.loadTasksCmd(), m.loadCatsCmd())
}

func (m appModel) handleExpiredSession() (tea.Model, tea.Cmd) {
	_ = m.session.Clear(bgContext())
	m.view = viewLogin
	m.modal = modalNone
	m.authErr = "Session expired. Sign in again."
	m.authFocus = 0
	m.focusAuthField()
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.modal == modalConfirm {
		return m.handleConfirmKey(msg)
	}
	if m.modal == modalCategories {
		return m.handleCategoriesKey(msg)
	}

	switch m.view {
	case viewLogin, viewSignup:
		return m.handleAuthKey(msg)
	case viewForm:
		return m.handleFormKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	case viewTasks:
		return m.handleTasksKey(msg)
	default:
		return m.handleDashboardKey(msg)
	}
}

func (m appModel) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := 2
	if m.view == viewSignup {
		fields = 3
	}

	switch msg.String() {
	case "tab", "down":
		m.authFocus = (m.authFocus + 1) % fields
		m.focusAuthField()
		return m, nil
	case "shift+tab", "up":
		m.authFocus = (m.authFocus + fields - 1) % fields
		m.focusAuthField()
		return m, nil
	case "enter":
		if m.authFocus < fields-1 {
			m.authFocus++
			m.focusAuthField()
			return m, nil
		}
		return m.submitAuth()
	case "ctrl+n":
		if m.view == viewLogin {
			m.view = viewSignup
			m.authErr = ""
			m.authFocus = 0
			m.focusAuthField()
			return m, nil
		}
	case "esc":
		if m.view == viewSignup {
			m.view = viewLogin
			m.authErr = ""
			m.authFocus = 0
			m.focusAuthField()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focusedAuthField() {
	case &m.nameInput:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case &m.passwordInput:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	default:
		m.emailInput, cmd = m.emailInput.Update(msg)
	}
	return m, cmd
}

// focusedAuthField maps authFocus to the active view's field order. Signup
// puts the name field first.
func (m *appModel) focusedAuthField() *textinput.Model {
	if m.view == viewSignup {
		switch m.authFocus {
		case 0:
			return &m.nameInput
		case 1:
			return &m.emailInput
		default:
			return &m.passwordInput
		}
	}
	if m.authFocus == 0 {
		return &m.emailInput
	}
	return &m.passwordInput
}

func (m *appModel) focusAuthField() {
	m.nameInput.Blur()
	m.emailInput.Blur()
	m.passwordInput.Blur()
	m.focusedAuthField().Focus()
}

func (m appModel) submitAuth() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()
	if email == "" || password == "" {
		m.authErr = "Email and password are required."
		return m, nil
	}
	m.authBusy = true
	m.authErr = ""
	m.fetchSeq++
	if m.view == viewSignup {
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.authBusy = false
			m.authErr = "Name is required."
			return m, nil
		}
		return m, m.signupCmd(email, password, name)
	}
	return m, m.loginCmd(email, password)
}

func (m appModel) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		if m.dashFocus == paneToday {
			m.dashFocus = paneWeek
		} else {
			m.dashFocus = paneToday
		}
		return m, nil
	case "2", "t":
		m.view = viewTasks
		return m, nil
	case "n":
		return m.openForm("", model.NewDraft())
	case "c":
		m.modal = modalCategories
		m.catMgr.cancelInput()
		return m, nil
	case "r":
		return m, m.reload()
	case "j", "down":
		if m.dashFocus == paneToday {
			if m.todaySel < len(m.today)-1 {
				m.todaySel++
			}
		} else {
			m.weekSel.Item++
			m.weekSel.TaskID = ""
			m.weekSel = m.weekSel.clamp(m.board)
		}
		return m, nil
	case "k", "up":
		if m.dashFocus == paneToday {
			if m.todaySel > 0 {
				m.todaySel--
			}
		} else {
			if m.weekSel.Item > 0 {
				m.weekSel.Item--
			}
			m.weekSel.TaskID = ""
			m.weekSel = m.weekSel.clamp(m.board)
		}
		return m, nil
	case "h", "left":
		if m.dashFocus == paneWeek && m.weekSel.Day > 0 {
			m.weekSel.Day--
			m.weekSel.Item = 0
			m.weekSel.TaskID = ""
			m.weekSel = m.weekSel.clamp(m.board)
		}
		return m, nil
	case "l", "right":
		if m.dashFocus == paneWeek && m.weekSel.Day < len(m.board.Days)-1 {
			m.weekSel.Day++
			m.weekSel.Item = 0
			m.weekSel.TaskID = ""
			m.weekSel = m.weekSel.clamp(m.board)
		}
		return m, nil
	case "enter":
		if t, ok := m.dashboardSelection(); ok {
			m.returnView = viewDashboard
			m.fetchSeq++
			return m, m.openTaskCmd(t.ID)
		}
		return m, nil
	case "e":
		if t, ok := m.dashboardSelection(); ok {
			return m.openForm(t.ID, model.DraftFrom(t))
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) dashboardSelection() (model.Task, bool) {
	if m.dashFocus == paneToday {
		if m.todaySel >= 0 && m.todaySel < len(m.today) {
			return m.today[m.todaySel], true
		}
		return model.Task{}, false
	}
	return selectedBoardTask(m.board, m.weekSel)
}

func (m appModel) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list's fuzzy filter is open, it owns the keyboard.
	if m.tasksList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.tasksList, cmd = m.tasksList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "1":
		m.view = viewDashboard
		return m, nil
	case "n":
		return m.openForm("", model.NewDraft())
	case "c":
		m.modal = modalCategories
		m.catMgr.cancelInput()
		return m, nil
	case "r":
		return m, m.reload()
	case "s":
		m.filter.Status = cycleChoice(m.filter.Status, 1,
			model.Status(""), model.StatusPending, model.StatusInProgress, model.StatusDone)
		m.refreshDerived()
		return m, nil
	case "S":
		m.filter.CategoryID = cycleCategory(m.filter.CategoryID, 1, m.cats)
		m.refreshDerived()
		return m, nil
	case "x":
		m.filter = agenda.Filter{}
		m.refreshDerived()
		return m, nil
	case "enter":
		if it, ok := m.tasksList.SelectedItem().(taskRowItem); ok {
			m.returnView = viewTasks
			m.fetchSeq++
			return m, m.openTaskCmd(it.task.ID)
		}
		return m, nil
	case "e":
		if it, ok := m.tasksList.SelectedItem().(taskRowItem); ok {
			return m.openForm(it.task.ID, model.DraftFrom(it.task))
		}
		return m, nil
	case "d":
		if it, ok := m.tasksList.SelectedItem().(taskRowItem); ok {
			m.openConfirm(confirmDeleteTask, it.task.ID,
				"Delete \""+it.task.Title+"\"? This cannot be undone.")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.tasksList, cmd = m.tasksList.Update(msg)
	return m, cmd
}

func (m appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.view = m.returnView
		if m.view == viewDetail {
			m.view = viewDashboard
		}
		return m, nil
	case "e":
		return m.openForm(m.openTask.ID, model.DraftFrom(m.openTask))
	case "d":
		m.openConfirm(confirmDeleteTask, m.openTask.ID,
			"Delete \""+m.openTask.Title+"\"? This cannot be undone.")
		return m, nil
	}
	return m, nil
}

func (m appModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.busy {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.view = m.returnView
		m.formErr = ""
		return m, nil
	case "tab":
		m.form.sync()
		m.form.nextField()
		return m, nil
	case "shift+tab":
		m.form.sync()
		m.form.prevField()
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		// Enter inserts a newline in the description; elsewhere it advances.
		if m.form.focus != fieldDescription {
			m.form.sync()
			m.form.nextField()
			return m, nil
		}
	case "left":
		if m.form.isEnumFocused() {
			m.form.cycle(-1, m.cats)
			return m, nil
		}
	case "right":
		if m.form.isEnumFocused() {
			m.form.cycle(1, m.cats)
			return m, nil
		}
	}

	return m, m.form.handleKey(msg)
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	if problem := m.form.validate(); problem != "" {
		m.formErr = problem
		return m, nil
	}
	m.formErr = ""
	m.form.busy = true
	m.fetchSeq++
	return m, m.saveTaskCmd(m.form.taskID, m.form.draft)
}

func (m appModel) openForm(taskID string, d model.Draft) (tea.Model, tea.Cmd) {
	if m.view != viewForm {
		m.returnView = m.view
	}
	m.form.load(taskID, d)
	m.formErr = ""
	m.view = viewForm
	return m, textarea.Blink
}

func (m appModel) handleCategoriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.catMgr.busy {
		return m, nil
	}

	if m.catMgr.mode != catModeBrowse {
		switch msg.String() {
		case "esc":
			m.catMgr.cancelInput()
			return m, nil
		case "enter":
			m.fetchSeq++
			cmd := m.catMgr.submit(&m)
			return m, cmd
		}
		var cmd tea.Cmd
		m.catMgr.input, cmd = m.catMgr.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return m, nil
	case "n":
		m.catMgr.startCreate()
		return m, textinput.Blink
	case "r":
		if c, ok := m.catMgr.selected(); ok {
			m.catMgr.startRename(c)
			return m, textinput.Blink
		}
		return m, nil
	case "d":
		if c, ok := m.catMgr.selected(); ok {
			m.openConfirm(confirmDeleteCategory, c.ID,
				"Delete category \""+c.Name+"\"? Tasks keep their other fields; the category reference is removed.")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.catMgr.list, cmd = m.catMgr.list.Update(msg)
	return m, cmd
}

func (m *appModel) openConfirm(action confirmAction, id, body string) {
	m.modal = modalConfirm
	m.confirmFor = action
	m.confirmID = id
	m.confirmBody = body
	m.confirmFocus = confirmFocusCancel
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "esc":
		return m.closeConfirm(), nil
	case "enter":
		if m.confirmFocus != confirmFocusConfirm {
			return m.closeConfirm(), nil
		}
		action, id := m.confirmFor, m.confirmID
		mm := m.closeConfirm()
		mm.fetchSeq++
		switch action {
		case confirmDeleteTask:
			return mm, mm.deleteTaskCmd(id)
		case confirmDeleteCategory:
			mm.catMgr.busy = true
			return mm, mm.deleteCategoryCmd(id)
		}
		return mm, nil
	}
	return m, nil
}

// closeConfirm dismisses the confirm modal, restoring the category manager
// when the confirmation belonged to it.
func (m appModel) closeConfirm() appModel {
	if m.confirmFor == confirmDeleteCategory {
		m.modal = modalCategories
	} else {
		m.modal = modalNone
	}
	m.confirmFor = confirmNone
	m.confirmID = ""
	m.confirmBody = ""
	return m
}

// updateFocusedComponent forwards non-key messages (blink ticks and the
// like) to whichever text component currently has focus.
func (m appModel) updateFocusedComponent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.view {
	case viewLogin, viewSignup:
		m.emailInput, cmd = m.emailInput.Update(msg)
		cmds = append(cmds, cmd)
		m.passwordInput, cmd = m.passwordInput.Update(msg)
		cmds = append(cmds, cmd)
		m.nameInput, cmd = m.nameInput.Update(msg)
		cmds = append(cmds, cmd)
	case viewForm:
		m.form.title, cmd = m.form.title.Update(msg)
		cmds = append(cmds, cmd)
		m.form.date, cmd = m.form.date.Update(msg)
		cmds = append(cmds, cmd)
		m.form.desc, cmd = m.form.desc.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.modal == modalCategories && m.catMgr.mode != catModeBrowse {
		m.catMgr.input, cmd = m.catMgr.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}
