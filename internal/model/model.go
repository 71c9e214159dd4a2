package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Location string

const (
	LocationIndoor  Location = "indoor"
	LocationOutdoor Location = "outdoor"
)

func (l Location) Valid() bool {
	return l == LocationIndoor || l == LocationOutdoor
}

// Task mirrors the server's task resource. All identifiers originate from
// API responses; the client never invents them.
type Task struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Date is YYYY-MM-DD, though the server may return a full RFC3339
	// timestamp for tasks created by older clients.
	Date     string      `json:"date,omitempty"`
	Location Location    `json:"location,omitempty"`
	Priority Priority    `json:"priority,omitempty"`
	Status   Status      `json:"status,omitempty"`
	Category CategoryRef `json:"category,omitempty"`
}

// DateOnly strips a time suffix from the server's date field.
func (t Task) DateOnly() string {
	if i := strings.IndexByte(t.Date, 'T'); i >= 0 {
		return t.Date[:i]
	}
	return t.Date
}

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// CategoryRef normalizes the two category wire shapes the server has used
// over time: a bare id string and an embedded {_id,name} object.
type CategoryRef struct {
	ID   string
	Name string
}

func (r CategoryRef) IsZero() bool { return r.ID == "" }

func (r *CategoryRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = CategoryRef{}
		return nil
	}
	if b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = CategoryRef{ID: id}
		return nil
	}
	var c Category
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}
	*r = CategoryRef{ID: c.ID, Name: c.Name}
	return nil
}

// MarshalJSON emits the bare id; the server resolves it. A zero ref
// serializes as null so a fetched task round-trips cleanly.
func (r CategoryRef) MarshalJSON() ([]byte, error) {
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// TaskPayload is the client-to-server task shape. Empty optional fields are
// omitted rather than sent as invalid values (an empty date in particular).
type TaskPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date,omitempty"`
	Location    Location `json:"location,omitempty"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category,omitempty"`
	Status      Status   `json:"status"`
}

// Draft holds the local copy a create/edit view works on before submitting.
type Draft struct {
	Title       string
	Description string
	Date        string
	Location    Location
	Priority    Priority
	CategoryID  string
	Status      Status
}

func NewDraft() Draft {
	return Draft{Priority: PriorityMedium, Status: StatusPending}
}

// DraftFrom seeds an edit draft from a fetched task.
func DraftFrom(t Task) Draft {
	d := Draft{
		Title:       t.Title,
		Description: t.Description,
		Date:        t.DateOnly(),
		Location:    t.Location,
		Priority:    t.Priority,
		CategoryID:  t.Category.ID,
		Status:      t.Status,
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if d.Status == "" {
		d.Status = StatusPending
	}
	return d
}

func (d Draft) Payload() TaskPayload {
	return TaskPayload{
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Location:    d.Location,
		Priority:    d.Priority,
		Category:    d.CategoryID,
		Status:      d.Status,
	}
}

// ClearCategory drops the draft's category reference when it points at a
// deleted category. Other fields are untouched.
func (d *Draft) ClearCategory(categoryID string) {
	if categoryID != "" && d.CategoryID == categoryID {
		d.CategoryID = ""
	}
}

// User mirrors the server's auth payloads.
type User struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt,omitempty"`
}
