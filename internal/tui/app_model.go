package tui

import (
	"time"

	"tinqs/internal/agenda"
	"tinqs/internal/api"
	"tinqs/internal/data"
	"tinqs/internal/model"
	"tinqs/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
)

type view int

const (
	viewLogin view = iota
	viewSignup
	viewDashboard
	viewTasks
	viewForm
	viewDetail
)

func (v view) String() string {
	switch v {
	case viewLogin:
		return "login"
	case viewSignup:
		return "signup"
	case viewDashboard:
		return "dashboard"
	case viewTasks:
		return "tasks"
	case viewForm:
		return "form"
	case viewDetail:
		return "detail"
	}
	return "?"
}

type modalKind int

const (
	modalNone modalKind = iota
	modalCategories
	modalConfirm
)

// confirmAction identifies what an open confirm modal will do.
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDeleteTask
	confirmDeleteCategory
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type appModel struct {
	session *store.Session
	client  *api.Client
	store   *data.Store
	kv      *store.KV

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	view       view
	returnView view

	// Auth views.
	emailInput    textinput.Model
	passwordInput textinput.Model
	nameInput     textinput.Model
	authFocus     int
	authBusy      bool
	authErr       string
	user          model.User

	// Fetched collections. fetchSeq guards against a late response
	// updating state after the issuing view moved on.
	tasks       []model.Task
	cats        []model.Category
	tasksLoaded bool
	catsLoaded  bool
	loading     bool
	fetchSeq    int
	dashErr     string

	// Dashboard. Derived slices are rebuilt by refreshDerived whenever the
	// task set or filters change.
	dashFocus dashPane
	todaySel  int
	weekSel   weekSelection
	today     []model.Task
	board     agenda.WeekBoard
	upcoming  []model.Task
	counts    agenda.StatusCounts

	// All-tasks view.
	tasksList list.Model
	filter    agenda.Filter

	// Create/edit form.
	form    formState
	formErr string

	// Detail view.
	openTask  model.Task
	detailErr string

	// Category manager modal (shared by form and dashboard).
	catMgr catManagerState

	flashSeq int

	modal          modalKind
	confirmFor     confirmAction
	confirmID      string
	confirmBody    string
	confirmFocus   confirmModalFocus
	minibufferText string
}

func newAppModel(opts Options) appModel {
	m := appModel{
		session: opts.Session,
		client:  opts.Client,
		store:   opts.Store,
		kv:      opts.KV,
	}

	m.emailInput = textinput.New()
	m.emailInput.Placeholder = "email"
	m.emailInput.CharLimit = 254
	m.passwordInput = textinput.New()
	m.passwordInput.Placeholder = "password"
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "name"

	m.tasksList = newTaskList("Tasks")
	m.form = newFormState()
	m.catMgr = newCatManagerState()

	if opts.Session.LoggedIn() {
		m.view = viewDashboard
		m.loading = true
		m.restoreState(opts.State)
	} else {
		m.view = viewLogin
		m.emailInput.Focus()
	}
	return m
}

// restoreState applies persisted last-screen state (best effort).
func (m *appModel) restoreState(st *store.TUIState) {
	if st == nil {
		return
	}
	m.filter = agenda.Filter{
		CategoryID: st.FilterCategoryID,
		Status:     model.Status(st.FilterStatus),
	}
	if !m.filter.Status.Valid() {
		m.filter.Status = ""
	}
	switch st.View {
	case "tasks":
		m.view = viewTasks
	case "detail":
		if st.OpenTaskID != "" {
			m.view = viewTasks // detail re-opens from the refreshed list
		}
	}
}

// persistState saves the current screen for the next launch. Errors are
// ignored: restore is strictly best effort.
func (m *appModel) persistState() {
	if m.kv == nil {
		return
	}
	st := &store.TUIState{
		View:             m.view.String(),
		FilterCategoryID: m.filter.CategoryID,
		FilterStatus:     string(m.filter.Status),
	}
	if m.view == viewDetail {
		st.OpenTaskID = m.openTask.ID
	}
	_ = m.kv.SaveTUIState(bgContext(), st)
}

func (m *appModel) resizeLists() {
	w, h := m.width, m.height
	if w <= 0 || h <= 0 {
		return
	}
	contentH := h - chromeLines
	if contentH < 3 {
		contentH = 3
	}
	m.tasksList.SetSize(w-2, contentH)
	m.catMgr.list.SetSize(modalBodyWidth(w), modalListHeight(contentH))
}

type dashPane int

const (
	paneToday dashPane = iota
	paneWeek
)

// refreshDerived rebuilds everything computed from the task set: the
// dashboard slices, the week board, and the filtered all-tasks list.
func (m *appModel) refreshDerived() {
	now := time.Now()
	m.today = agenda.Today(m.tasks, now)
	m.board = agenda.BuildWeek(m.tasks, now)
	m.upcoming = agenda.Upcoming(m.tasks, now)
	m.counts = agenda.MonthCounts(m.tasks, now)

	if m.todaySel >= len(m.today) {
		m.todaySel = len(m.today) - 1
	}
	if m.todaySel < 0 {
		m.todaySel = 0
	}
	m.weekSel = m.weekSel.clamp(m.board)

	filtered := agenda.SortByDateDesc(agenda.Apply(m.tasks, m.filter), now.Location())
	items := make([]list.Item, 0, len(filtered))
	for _, t := range filtered {
		items = append(items, taskRowItem{task: t, catName: m.categoryName(t.Category.ID)})
	}
	m.tasksList.SetItems(items)
	m.catMgr.setCategories(m.cats)
}

// categoryName resolves a category id against the fetched list.
func (m appModel) categoryName(id string) string {
	if id == "" {
		return ""
	}
	for _, c := range m.cats {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}
