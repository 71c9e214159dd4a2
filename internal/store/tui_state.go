package store

import (
	"context"
	"encoding/json"
)

const tuiStateKey = "tuiState"

// TUIState stores small, user-facing UI state for restoring the last screen
// on relaunch. It is intentionally "best effort": callers tolerate missing
// or invalid data.
type TUIState struct {
	Version int `json:"version"`

	// View is one of: dashboard|tasks|detail
	View string `json:"view,omitempty"`

	// OpenTaskID is used when View == "detail".
	OpenTaskID string `json:"openTaskId,omitempty"`

	// Last-used all-tasks filters.
	FilterCategoryID string `json:"filterCategoryId,omitempty"`
	FilterStatus     string `json:"filterStatus,omitempty"`
}

func (kv *KV) LoadTUIState(ctx context.Context) (*TUIState, error) {
	raw, ok, err := kv.Get(ctx, tuiStateKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &TUIState{Version: 1}, nil
	}
	var st TUIState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (kv *KV) SaveTUIState(ctx context.Context, st *TUIState) error {
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return kv.Set(ctx, tuiStateKey, string(b))
}
