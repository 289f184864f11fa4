// Package query implements the filter/sort/search engine applied to
// in-memory task and list collections. All functions are pure: the same
// inputs always produce the same output sequence, and nothing here
// performs I/O or returns an error.
package query

import (
	"time"

	"github.com/example/taskboard/domain/task"
)

// Status selects tasks by completion state.
type Status string

const (
	StatusAll       Status = "all"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// SortKey identifies the field a collection is ordered by.
type SortKey string

const (
	SortByTitle     SortKey = "title"
	SortByCreatedAt SortKey = "created_at"
	SortByUpdatedAt SortKey = "updated_at"
	SortByPriority  SortKey = "priority"
	SortByDeadline  SortKey = "deadline"
	SortByCompleted SortKey = "completed"

	// List-only sort keys.
	SortByName                 SortKey = "name"
	SortByTaskCount            SortKey = "task_count"
	SortByCompletionPercentage SortKey = "completion_percentage"
)

// SortDirection is the requested ordering direction.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// QuickFilters are independent boolean toggles combined with AND
// semantics, both with each other and with the rest of the filter spec.
type QuickFilters struct {
	DueToday     bool `json:"due_today,omitempty"`
	DueThisWeek  bool `json:"due_this_week,omitempty"`
	Overdue      bool `json:"overdue,omitempty"`
	HighPriority bool `json:"high_priority,omitempty"`
}

// Any reports whether at least one quick filter is active.
func (q QuickFilters) Any() bool {
	return q.DueToday || q.DueThisWeek || q.Overdue || q.HighPriority
}

// FilterSpec is the declarative description of which elements of a
// collection should be visible. The zero value matches everything.
type FilterSpec struct {
	// Query is matched case-insensitively as a substring of the
	// title/description (tasks) or name/description (lists). Empty
	// means no text filtering.
	Query string `json:"query,omitempty"`

	// Priorities restricts tasks to the given subset when non-empty.
	Priorities []task.Priority `json:"priorities,omitempty"`

	// Status restricts tasks by completion state. Empty behaves as
	// StatusAll.
	Status Status `json:"status,omitempty"`

	// ListIDs restricts tasks to the given lists when non-empty.
	ListIDs []string `json:"list_ids,omitempty"`

	// CreatedFrom/CreatedTo bound the creation timestamp, inclusive on
	// both ends. A nil bound leaves that side open.
	CreatedFrom *time.Time `json:"created_from,omitempty"`
	CreatedTo   *time.Time `json:"created_to,omitempty"`

	Quick QuickFilters `json:"quick,omitempty"`
}

// DefaultFilterSpec returns a spec that passes every element through.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{Status: StatusAll}
}

// IsNoop reports whether the spec has no active predicate.
func (s FilterSpec) IsNoop() bool {
	return s.Query == "" &&
		len(s.Priorities) == 0 &&
		(s.Status == "" || s.Status == StatusAll) &&
		len(s.ListIDs) == 0 &&
		s.CreatedFrom == nil && s.CreatedTo == nil &&
		!s.Quick.Any()
}

// SortSpec is a sort key plus direction. The zero value means "leave
// the collection in its current order".
type SortSpec struct {
	Key       SortKey       `json:"key,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}

// ParseDate parses an RFC 3339 timestamp or a plain YYYY-MM-DD date.
// Unparsable input is treated the same as an absent field and yields
// nil rather than an error, so malformed dates coming off the wire
// never propagate failures into the engine.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}
