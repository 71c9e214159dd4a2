package tui

import (
	"testing"

	"tinqs/internal/model"
)

func TestFormValidate(t *testing.T) {
	tests := []struct {
		name  string
		title string
		date  string
		want  string
	}{
		{name: "missing title", title: "", date: "", want: "Title is required."},
		{name: "bad date", title: "Water plants", date: "tomorrow", want: "Date must be YYYY-MM-DD."},
		{name: "valid undated", title: "Water plants", date: "", want: ""},
		{name: "valid dated", title: "Water plants", date: "2025-03-01", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFormState()
			f.title.SetValue(tt.title)
			f.date.SetValue(tt.date)
			if got := f.validate(); got != tt.want {
				t.Fatalf("validate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormCycleLocationIncludesNone(t *testing.T) {
	f := newFormState()
	f.setFocus(fieldLocation)

	seen := map[model.Location]bool{}
	for i := 0; i < 3; i++ {
		f.cycle(1, nil)
		seen[f.draft.Location] = true
	}
	if !seen[""] || !seen[model.LocationIndoor] || !seen[model.LocationOutdoor] {
		t.Fatalf("expected cycle to visit none, indoor and outdoor, got %v", seen)
	}
}

func TestCycleCategoryWrapsThroughNone(t *testing.T) {
	cats := []model.Category{{ID: "c1", Name: "Work"}, {ID: "c2", Name: "Home"}}

	got := cycleCategory("", 1, cats)
	if got != "c1" {
		t.Fatalf("expected c1 after none, got %q", got)
	}
	got = cycleCategory("c2", 1, cats)
	if got != "" {
		t.Fatalf("expected wrap back to none, got %q", got)
	}
	got = cycleCategory("c1", -1, cats)
	if got != "" {
		t.Fatalf("expected none before c1, got %q", got)
	}
}

func TestFormLoadSeedsInputsFromDraft(t *testing.T) {
	task := model.Task{
		ID:          "t1",
		Title:       "Repot the monstera",
		Description: "Use the *big* pot.",
		Date:        "2025-04-05T00:00:00.000Z",
		Status:      model.StatusInProgress,
		Category:    model.CategoryRef{ID: "c1"},
	}

	f := newFormState()
	f.load(task.ID, model.DraftFrom(task))

	if got := f.title.Value(); got != "Repot the monstera" {
		t.Fatalf("title = %q", got)
	}
	if got := f.date.Value(); got != "2025-04-05" {
		t.Fatalf("expected time suffix stripped, got %q", got)
	}
	if f.draft.Priority != model.PriorityMedium {
		t.Fatalf("expected default priority backfilled, got %q", f.draft.Priority)
	}
	if f.focus != fieldTitle {
		t.Fatalf("expected title focused after load")
	}
}
