package tui

import (
	"time"

	"tinqs/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// Async results carry the fetchSeq that issued them. Update drops any
// message whose seq is stale, so a slow response can never clobber state
// belonging to a newer screen.
type tasksLoadedMsg struct {
	seq   int
	tasks []model.Task
	err   error
}

type catsLoadedMsg struct {
	seq  int
	cats []model.Category
	err  error
}

type loginDoneMsg struct {
	seq  int
	user model.User
	err  error
}

type signupDoneMsg struct {
	seq int
	err error
}

type taskSavedMsg struct {
	seq  int
	task model.Task
	err  error
}

type taskDeletedMsg struct {
	seq int
	id  string
	err error
}

type taskOpenedMsg struct {
	seq  int
	task model.Task
	err  error
}

type categorySavedMsg struct {
	seq int
	cat model.Category
	err error
}

type categoryDeletedMsg struct {
	seq int
	id  string
	err error
}

type flashDoneMsg struct{ seq int }

func (m appModel) loadTasksCmd() tea.Cmd {
	seq := m.fetchSeq
	store := m.store
	return func() tea.Msg {
		tasks, err := store.Tasks(bgContext())
		return tasksLoadedMsg{seq: seq, tasks: tasks, err: err}
	}
}

func (m appModel) loadCatsCmd() tea.Cmd {
	seq := m.fetchSeq
	store := m.store
	return func() tea.Msg {
		cats, err := store.Categories(bgContext())
		return catsLoadedMsg{seq: seq, cats: cats, err: err}
	}
}

func (m appModel) openTaskCmd(id string) tea.Cmd {
	seq := m.fetchSeq
	store := m.store
	return func() tea.Msg {
		t, err := store.Task(bgContext(), id)
		return taskOpenedMsg{seq: seq, task: t, err: err}
	}
}

func (m appModel) loginCmd(email, password string) tea.Cmd {
	seq := m.fetchSeq
	client := m.client
	session := m.session
	return func() tea.Msg {
		ctx := bgContext()
		token, err := client.Login(ctx, email, password)
		if err != nil {
			return loginDoneMsg{seq: seq, err: err}
		}
		if err := session.Store(ctx, token); err != nil {
			return loginDoneMsg{seq: seq, err: err}
		}
		user, err := client.Verify(ctx)
		if err != nil {
			// Token stored; the dashboard works without profile details.
			return loginDoneMsg{seq: seq}
		}
		return loginDoneMsg{seq: seq, user: user}
	}
}

func (m appModel) signupCmd(email, password, name string) tea.Cmd {
	seq := m.fetchSeq
	client := m.client
	return func() tea.Msg {
		_, err := client.Signup(bgContext(), email, password, name)
		return signupDoneMsg{seq: seq, err: err}
	}
}

func (m appModel) saveTaskCmd(id string, d model.Draft) tea.Cmd {
	seq := m.fetchSeq
	store := m.store
	return func() tea.Msg {
		var (
			t   model.Task
			err error
		)
		if id == "" {
			t, err = store.CreateTask(bgContext(), d.Payload())
		} else {
			t, err = store.UpdateTask(bgContext(), id, d.Payload())
		}
		return taskSavedMsg{seq: seq, task: t, err: err}
	}
}

func (m appModel) deleteTaskCmd(id string) tea.Cmd {
	seq := m.fetchSeq
	store := m.store
	return func() tea.Msg {
		err := store.DeleteTask(bgContext(), id)
		return taskDeletedMsg{seq: seq, id: id, err: err}
	}
}

func (m appModel) createCategoryCmd(name string) tea.Cmd {
	seq := m.fetchSeq
	store := m.store
	return func() tea.Msg {
		c, err := store.CreateCategory(bgContext(), name)
		return categorySavedMsg{seq: seq, cat: c, err: err}
	}
}

func (m appModel) renameCategoryCmd(id, name string) tea.Cmd {
	seq := m.fetchSeq
	store := m.store
	return func() tea.Msg {
		c, err := store.RenameCategory(bgContext(), id, name)
		return categorySavedMsg{seq: seq, cat: c, err: err}
	}
}

func (m appModel) deleteCategoryCmd(id string) tea.Cmd {
	seq := m.fetchSeq
	store := m.store
	return func() tea.Msg {
		err := store.DeleteCategory(bgContext(), id)
		return categoryDeletedMsg{seq: seq, id: id, err: err}
	}
}

func (m *appModel) flash(text string) tea.Cmd {
	m.minibufferText = text
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}
