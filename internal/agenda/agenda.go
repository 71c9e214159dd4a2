// Package agenda derives the dashboard projections from a flat task list:
// today's tasks, the Monday-to-Sunday week board, conjunctive
// category/status filtering, and monthly status counts.
//
// Everything here is a pure function of the task list and the reference
// instant. Results are recomputed on every render; the list sizes involved
// do not warrant caching.
package agenda

import (
	"regexp"
	"sort"
	"time"

	"tinqs/internal/model"
)

var reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// ParseDate parses a task date as returned by the API: YYYY-MM-DD,
// optionally followed by a time suffix. The result is midnight of that
// calendar day in loc. Malformed dates return ok=false; callers exclude
// those tasks from date-based views.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	m := reDateOnly.FindString(s)
	if m == "" {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation("2006-01-02", m, loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// WeekRange returns the Monday 00:00 (inclusive) and next Monday 00:00
// (exclusive) of the calendar week containing now, in now's location.
func WeekRange(now time.Time) (start, end time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// time.Weekday starts the week on Sunday; shift so Monday is day 0.
	offset := (int(day.Weekday()) + 6) % 7
	start = day.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 7)
	return start, end
}

// WeekBoard holds one bucket per weekday, Monday first.
type WeekBoard struct {
	Start time.Time
	Days  [7]DayBucket
}

type DayBucket struct {
	Name  string
	Date  time.Time
	Tasks []model.Task
}

// BuildWeek places each dated task into at most one weekday bucket: the
// bucket of its calendar day, when that day falls inside the current week.
// Undated and malformed-date tasks are excluded.
func BuildWeek(tasks []model.Task, now time.Time) WeekBoard {
	start, end := WeekRange(now)

	var board WeekBoard
	board.Start = start
	for i := range board.Days {
		d := start.AddDate(0, 0, i)
		board.Days[i] = DayBucket{Name: d.Weekday().String(), Date: d}
	}

	for _, t := range tasks {
		ts, ok := ParseDate(t.Date, now.Location())
		if !ok {
			continue
		}
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		// Match on calendar day rather than hour arithmetic: DST weeks are
		// not exactly 7*24h long.
		for i := range board.Days {
			dy, dm, dd := board.Days[i].Date.Date()
			ty, tm, td := ts.Date()
			if dy == ty && dm == tm && dd == td {
				board.Days[i].Tasks = append(board.Days[i].Tasks, t)
				break
			}
		}
	}
	for i := range board.Days {
		sortByDateAsc(board.Days[i].Tasks, now.Location())
	}
	return board
}

// Today returns the tasks due on now's calendar day, ordered ascending by
// date (ties broken by title for stable rendering).
func Today(tasks []model.Task, now time.Time) []model.Task {
	y, m, d := now.Date()
	var out []model.Task
	for _, t := range tasks {
		ts, ok := ParseDate(t.Date, now.Location())
		if !ok {
			continue
		}
		ty, tm, td := ts.Date()
		if ty == y && tm == m && td == d {
			out = append(out, t)
		}
	}
	sortByDateAsc(out, now.Location())
	return out
}

// Upcoming returns this week's tasks strictly after now's calendar day.
func Upcoming(tasks []model.Task, now time.Time) []model.Task {
	_, end := WeekRange(now)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var out []model.Task
	for _, t := range tasks {
		ts, ok := ParseDate(t.Date, now.Location())
		if !ok {
			continue
		}
		if ts.After(today) && ts.Before(end) {
			out = append(out, t)
		}
	}
	sortByDateAsc(out, now.Location())
	return out
}

// Filter selects tasks by category and/or status. Zero values select all.
type Filter struct {
	CategoryID string
	Status     model.Status
}

func (f Filter) IsZero() bool { return f.CategoryID == "" && f.Status == "" }

// Match is a conjunction: a task is included iff each selected dimension
// matches.
func (f Filter) Match(t model.Task) bool {
	if f.CategoryID != "" && t.Category.ID != f.CategoryID {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	return true
}

func Apply(tasks []model.Task, f Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortByDateDesc orders the all-tasks view: newest date first, undated (or
// malformed-date) tasks last. The input is not modified.
func SortByDateDesc(tasks []model.Task, loc *time.Location) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := ParseDate(out[i].Date, loc)
		tj, jok := ParseDate(out[j].Date, loc)
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return ti.After(tj)
	})
	return out
}

// StatusCounts tallies this month's tasks by status for the progress card.
type StatusCounts struct {
	Pending    int
	InProgress int
	Done       int
	Total      int
}

// MonthCounts counts tasks whose date falls in now's calendar month.
func MonthCounts(tasks []model.Task, now time.Time) StatusCounts {
	var c StatusCounts
	for _, t := range tasks {
		ts, ok := ParseDate(t.Date, now.Location())
		if !ok {
			continue
		}
		if ts.Year() != now.Year() || ts.Month() != now.Month() {
			continue
		}
		c.Total++
		switch t.Status {
		case model.StatusDone:
			c.Done++
		case model.StatusInProgress:
			c.InProgress++
		default:
			c.Pending++
		}
	}
	return c
}

func sortByDateAsc(tasks []model.Task, loc *time.Location) {
	sort.SliceStable(tasks, func(i, j int) bool {
		ti, _ := ParseDate(tasks[i].Date, loc)
		tj, _ := ParseDate(tasks[j].Date, loc)
		if ti.Equal(tj) {
			return tasks[i].Title < tasks[j].Title
		}
		return ti.Before(tj)
	})
}
