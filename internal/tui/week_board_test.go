package tui

import (
	"strings"
	"testing"
	"time"

	"tinqs/internal/agenda"
	"tinqs/internal/model"
)

func TestRenderWeekBoard_BucketsUnderWeekdayHeaders(t *testing.T) {
	// Wednesday 2025-01-08; week is Mon 06 .. Sun 12.
	now := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "a", Title: "Standup", Date: "2025-01-06"},
		{ID: "b", Title: "Review", Date: "2025-01-08"},
		{ID: "c", Title: "Next week", Date: "2025-01-13"},
	}
	board := agenda.BuildWeek(tasks, now)

	out := renderWeekBoard(board, weekSelection{}, false, 120, 8)
	for _, header := range []string{"Mon 06", "Wed 08", "Sun 12"} {
		if !strings.Contains(out, header) {
			t.Fatalf("expected header %q in board output, got=%q", header, out)
		}
	}
	if !strings.Contains(out, "Standup") || !strings.Contains(out, "Review") {
		t.Fatalf("expected in-week tasks to be rendered, got=%q", out)
	}
	if strings.Contains(out, "Next week") {
		t.Fatalf("expected out-of-week task to be excluded, got=%q", out)
	}
}

func TestRenderWeekBoard_TruncatesLongTitles(t *testing.T) {
	now := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	long := strings.Repeat("verylongtitle", 10)
	board := agenda.BuildWeek([]model.Task{{ID: "a", Title: long, Date: "2025-01-08"}}, now)

	out := renderWeekBoard(board, weekSelection{}, false, 70, 6)
	for _, ln := range strings.Split(out, "\n") {
		if len([]rune(ln)) > 200 {
			t.Fatalf("expected board lines to stay bounded, got %d runes", len([]rune(ln)))
		}
	}
	if !strings.Contains(out, "…") {
		t.Fatalf("expected the long title to be truncated with an ellipsis")
	}
}

func TestWeekSelection_ClampTracksTaskID(t *testing.T) {
	now := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "a", Title: "A", Date: "2025-01-06"},
		{ID: "b", Title: "B", Date: "2025-01-08"},
	}
	board := agenda.BuildWeek(tasks, now)

	// The stable id wins over stale indexes.
	sel := weekSelection{Day: 0, Item: 0, TaskID: "b"}
	sel = sel.clamp(board)
	if sel.Day != 2 || sel.Item != 0 {
		t.Fatalf("expected selection to follow task b to Wednesday, got day=%d item=%d", sel.Day, sel.Item)
	}

	// An unknown id falls back to the clamped indexes.
	sel = weekSelection{Day: 9, Item: 5, TaskID: "gone"}
	sel = sel.clamp(board)
	if sel.Day != 6 {
		t.Fatalf("expected day clamped to 6, got %d", sel.Day)
	}
	if sel.TaskID != "" && sel.Item >= 0 {
		// Sunday is empty, so no task should be selected.
		t.Fatalf("expected empty-day selection, got item=%d id=%q", sel.Item, sel.TaskID)
	}
}

func TestSelectedBoardTask(t *testing.T) {
	now := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	board := agenda.BuildWeek([]model.Task{{ID: "b", Title: "B", Date: "2025-01-08"}}, now)

	got, ok := selectedBoardTask(board, weekSelection{TaskID: "b"})
	if !ok || got.ID != "b" {
		t.Fatalf("expected task b selected, got ok=%v id=%q", ok, got.ID)
	}

	_, ok = selectedBoardTask(agenda.WeekBoard{}, weekSelection{})
	if ok {
		t.Fatalf("expected no selection on an empty board")
	}
}
