package agenda

import (
	"testing"
	"time"

	"tinqs/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekRange_MondayThroughSunday(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{name: "monday maps to itself", now: date(2025, 1, 6), want: date(2025, 1, 6)},
		{name: "midweek", now: date(2025, 1, 8), want: date(2025, 1, 6)},
		{name: "sunday belongs to preceding monday", now: date(2025, 1, 12), want: date(2025, 1, 6)},
		{name: "mid-day instant", now: time.Date(2025, 1, 9, 17, 30, 0, 0, time.UTC), want: date(2025, 1, 6)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			start, end := WeekRange(tt.now)
			if !start.Equal(tt.want) {
				t.Fatalf("start = %v, want %v", start, tt.want)
			}
			if !end.Equal(tt.want.AddDate(0, 0, 7)) {
				t.Fatalf("end = %v, want %v", end, tt.want.AddDate(0, 0, 7))
			}
		})
	}
}

func TestBuildWeek_BucketsByWeekday(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		{ID: "a", Title: "A", Date: "2025-01-06"},
		{ID: "b", Title: "B", Date: "2025-01-08"},
		{ID: "c", Title: "C"}, // undated: no bucket
		{ID: "d", Title: "D", Date: "2025-01-13"}, // next week
		{ID: "e", Title: "E", Date: "garbage"},
	}
	now := date(2025, 1, 6)

	board := BuildWeek(tasks, now)
	if board.Days[0].Name != "Monday" || board.Days[6].Name != "Sunday" {
		t.Fatalf("day names = %q..%q", board.Days[0].Name, board.Days[6].Name)
	}
	if len(board.Days[0].Tasks) != 1 || board.Days[0].Tasks[0].Title != "A" {
		t.Fatalf("monday = %v", board.Days[0].Tasks)
	}
	if len(board.Days[2].Tasks) != 1 || board.Days[2].Tasks[0].Title != "B" {
		t.Fatalf("wednesday = %v", board.Days[2].Tasks)
	}
	for _, i := range []int{1, 3, 4, 5, 6} {
		if len(board.Days[i].Tasks) != 0 {
			t.Fatalf("expected empty %s, got %v", board.Days[i].Name, board.Days[i].Tasks)
		}
	}
}

func TestBuildWeek_EachDatedTaskInAtMostOneBucket(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		{ID: "a", Date: "2025-01-05"}, // previous sunday
		{ID: "b", Date: "2025-01-06"},
		{ID: "c", Date: "2025-01-12"},
		{ID: "d", Date: "2025-01-13"},
		{ID: "e", Date: ""},
	}
	board := BuildWeek(tasks, date(2025, 1, 9))

	seen := map[string]int{}
	for _, day := range board.Days {
		for _, task := range day.Tasks {
			seen[task.ID]++
		}
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("task %s in %d buckets", id, n)
		}
	}
	if seen["a"] != 0 || seen["d"] != 0 || seen["e"] != 0 {
		t.Fatalf("out-of-week task bucketed: %v", seen)
	}
	if seen["b"] != 1 || seen["c"] != 1 {
		t.Fatalf("in-week task missing: %v", seen)
	}
}

func TestToday_MatchesCalendarDaySortedAscending(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		{ID: "b", Title: "Beta", Date: "2025-01-08"},
		{ID: "a", Title: "Alpha", Date: "2025-01-08"},
		{ID: "x", Title: "Other day", Date: "2025-01-09"},
		{ID: "n", Title: "No date"},
	}
	got := Today(tasks, time.Date(2025, 1, 8, 14, 0, 0, 0, time.UTC))
	if len(got) != 2 {
		t.Fatalf("today = %v", got)
	}
	if got[0].Title != "Alpha" || got[1].Title != "Beta" {
		t.Fatalf("order = %q, %q", got[0].Title, got[1].Title)
	}
}

func TestFilter_IsConjunction(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		{ID: "1", Category: model.CategoryRef{ID: "work"}, Status: model.StatusPending},
		{ID: "2", Category: model.CategoryRef{ID: "work"}, Status: model.StatusDone},
		{ID: "3", Category: model.CategoryRef{ID: "home"}, Status: model.StatusPending},
		{ID: "4", Status: model.StatusPending},
	}

	byCat := Apply(tasks, Filter{CategoryID: "work"})
	byStatus := Apply(tasks, Filter{Status: model.StatusPending})
	both := Apply(tasks, Filter{CategoryID: "work", Status: model.StatusPending})

	inBoth := map[string]bool{}
	for _, t1 := range byCat {
		for _, t2 := range byStatus {
			if t1.ID == t2.ID {
				inBoth[t1.ID] = true
			}
		}
	}
	if len(both) != len(inBoth) {
		t.Fatalf("conjunction = %d tasks, intersection = %d", len(both), len(inBoth))
	}
	for _, task := range both {
		if !inBoth[task.ID] {
			t.Fatalf("task %s not in intersection", task.ID)
		}
	}

	// Default filter selects everything.
	if got := Apply(tasks, Filter{}); len(got) != len(tasks) {
		t.Fatalf("zero filter = %d tasks, want %d", len(got), len(tasks))
	}
}

func TestSortByDateDesc_UndatedLast(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		{ID: "n", Title: "No date"},
		{ID: "old", Date: "2024-12-01"},
		{ID: "bad", Date: "not-a-date"},
		{ID: "new", Date: "2025-01-08"},
	}
	got := SortByDateDesc(tasks, time.UTC)
	if got[0].ID != "new" || got[1].ID != "old" {
		t.Fatalf("order = %v", got)
	}
	// Undated and malformed both sort to the back but stay visible.
	if len(got) != 4 {
		t.Fatalf("dropped tasks: %v", got)
	}
	if got[2].Date != "" && got[2].Date != "not-a-date" {
		t.Fatalf("dated task sorted after undated: %v", got)
	}
}

func TestMonthCounts(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		{Date: "2025-01-02", Status: model.StatusDone},
		{Date: "2025-01-15", Status: model.StatusDone},
		{Date: "2025-01-20", Status: model.StatusInProgress},
		{Date: "2025-01-25"}, // empty status counts as pending
		{Date: "2025-02-01", Status: model.StatusDone},
		{Date: "", Status: model.StatusDone},
	}
	c := MonthCounts(tasks, date(2025, 1, 8))
	if c.Total != 4 || c.Done != 2 || c.InProgress != 1 || c.Pending != 1 {
		t.Fatalf("counts = %+v", c)
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in string
		ok bool
	}{
		{"2025-01-06", true},
		{"2025-01-06T00:00:00.000Z", true},
		{"", false},
		{"tomorrow", false},
		{"2025-1-6", false},
	}
	for _, tt := range tests {
		if _, ok := ParseDate(tt.in, time.UTC); ok != tt.ok {
			t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}
