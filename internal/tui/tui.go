// Package tui implements the interactive terminal client: a dashboard of
// today/this-week/progress, an all-tasks browser, a create/edit form, a
// category manager, and login/signup screens.
package tui

import (
	"context"
	"fmt"

	"tinqs/internal/api"
	"tinqs/internal/data"
	"tinqs/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Options carries everything the TUI needs from the CLI layer.
type Options struct {
	KV      *store.KV
	Session *store.Session
	Client  *api.Client
	Store   *data.Store
	Config  *store.Config

	// State is the persisted last-screen state. Run loads it from KV when
	// nil.
	State *store.TUIState
}

func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	if opts.Config != nil && opts.Config.TUI != nil {
		applyProfile(opts.Config.TUI.Profile)
	}

	if opts.State == nil && opts.KV != nil {
		st, err := opts.KV.LoadTUIState(ctx)
		if err == nil {
			opts.State = st
		}
	}

	m := newAppModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(appModel); ok {
		fm.persistState()
	}
	return nil
}

func bgContext() context.Context { return context.Background() }
