package query

import (
	"strings"
	"time"

	"github.com/example/taskboard/domain/list"
	"github.com/example/taskboard/domain/task"
)

// FilterTasks returns the tasks matching every active predicate in
// spec, preserving input order. now anchors the time-relative
// predicates (overdue, due-today, due-this-week). A no-op spec returns
// the input unchanged.
func FilterTasks(tasks []task.Task, spec FilterSpec, now time.Time) []task.Task {
	if spec.IsNoop() {
		return tasks
	}

	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesTask(&t, spec, now) {
			out = append(out, t)
		}
	}
	return out
}

func matchesTask(t *task.Task, spec FilterSpec, now time.Time) bool {
	if spec.Query != "" && !matchesText(spec.Query, t.Title, t.Description) {
		return false
	}

	switch spec.Status {
	case StatusPending:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	case StatusOverdue:
		if !t.IsOverdue(now) {
			return false
		}
	}

	if len(spec.Priorities) > 0 && !containsPriority(spec.Priorities, t.Priority) {
		return false
	}

	if len(spec.ListIDs) > 0 && !containsString(spec.ListIDs, t.ListID) {
		return false
	}

	if !inCreatedRange(t.CreatedAt, spec.CreatedFrom, spec.CreatedTo) {
		return false
	}

	return matchesQuick(t, spec.Quick, now)
}

// matchesQuick applies the quick-filter toggles with AND semantics.
func matchesQuick(t *task.Task, q QuickFilters, now time.Time) bool {
	if q.DueToday {
		if t.Deadline == nil {
			return false
		}
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		tomorrow := midnight.AddDate(0, 0, 1)
		if t.Deadline.Before(midnight) || !t.Deadline.Before(tomorrow) {
			return false
		}
	}
	if q.DueThisWeek {
		if t.Deadline == nil {
			return false
		}
		weekEnd := now.AddDate(0, 0, 7)
		if t.Deadline.Before(now) || t.Deadline.After(weekEnd) {
			return false
		}
	}
	if q.Overdue && !t.IsOverdue(now) {
		return false
	}
	if q.HighPriority && t.Priority != task.PriorityHigh {
		return false
	}
	return true
}

// FilterLists returns the lists matching the spec's text query and
// creation-date range, preserving input order.
func FilterLists(lists []list.List, spec FilterSpec) []list.List {
	if spec.Query == "" && spec.CreatedFrom == nil && spec.CreatedTo == nil {
		return lists
	}

	out := make([]list.List, 0, len(lists))
	for _, l := range lists {
		if spec.Query != "" && !matchesText(spec.Query, l.Name, l.Description) {
			continue
		}
		if !inCreatedRange(l.CreatedAt, spec.CreatedFrom, spec.CreatedTo) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// matchesText reports whether the query is a case-insensitive substring
// of any of the given fields. Empty fields never match.
func matchesText(query string, fields ...string) bool {
	q := strings.ToLower(query)
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// inCreatedRange checks the inclusive creation-date range. A nil bound
// leaves that side open.
func inCreatedRange(created time.Time, from, to *time.Time) bool {
	if from != nil && created.Before(*from) {
		return false
	}
	if to != nil && created.After(*to) {
		return false
	}
	return true
}

func containsPriority(set []task.Priority, p task.Priority) bool {
	for _, v := range set {
		if v == p {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
