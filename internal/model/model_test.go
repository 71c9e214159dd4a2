package model

import (
	"encoding/json"
	"testing"
)

func TestCategoryRef_UnmarshalBothWireShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want CategoryRef
	}{
		{name: "bare id", in: `{"_id":"t1","title":"A","category":"cat-1"}`, want: CategoryRef{ID: "cat-1"}},
		{name: "embedded object", in: `{"_id":"t1","title":"A","category":{"_id":"cat-1","name":"Work"}}`, want: CategoryRef{ID: "cat-1", Name: "Work"}},
		{name: "null", in: `{"_id":"t1","title":"A","category":null}`, want: CategoryRef{}},
		{name: "absent", in: `{"_id":"t1","title":"A"}`, want: CategoryRef{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var task Task
			if err := json.Unmarshal([]byte(tt.in), &task); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if task.Category != tt.want {
				t.Fatalf("category = %+v, want %+v", task.Category, tt.want)
			}
		})
	}
}

func TestTaskPayload_OmitsEmptyDate(t *testing.T) {
	t.Parallel()

	d := NewDraft()
	d.Title = "No date"
	b, err := json.Marshal(d.Payload())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["date"]; ok {
		t.Fatalf("expected empty date to be omitted, got %v", m["date"])
	}
	if _, ok := m["category"]; ok {
		t.Fatalf("expected empty category to be omitted, got %v", m["category"])
	}
	if m["priority"] != "medium" || m["status"] != "pending" {
		t.Fatalf("expected defaults in payload, got %v", m)
	}
}

func TestDraftFrom_StripsTimeSuffixAndKeepsCategoryID(t *testing.T) {
	t.Parallel()

	task := Task{
		ID:       "t1",
		Title:    "A",
		Date:     "2025-01-06T00:00:00.000Z",
		Category: CategoryRef{ID: "cat-1", Name: "Work"},
	}
	d := DraftFrom(task)
	if d.Date != "2025-01-06" {
		t.Fatalf("date = %q, want 2025-01-06", d.Date)
	}
	if d.CategoryID != "cat-1" {
		t.Fatalf("categoryID = %q, want cat-1", d.CategoryID)
	}
}

func TestDraft_ClearCategory(t *testing.T) {
	t.Parallel()

	d := Draft{Title: "A", Description: "keep", CategoryID: "cat-1"}
	d.ClearCategory("cat-2")
	if d.CategoryID != "cat-1" {
		t.Fatalf("unrelated delete cleared category")
	}
	d.ClearCategory("cat-1")
	if d.CategoryID != "" {
		t.Fatalf("expected category cleared")
	}
	if d.Title != "A" || d.Description != "keep" {
		t.Fatalf("other fields changed: %+v", d)
	}
}
