package query

import (
	"time"

	"github.com/example/taskboard/domain/list"
	"github.com/example/taskboard/domain/task"
)

// ProcessTasks composes filtering and sorting: the filter runs first so
// the comparator never sees dropped elements.
func ProcessTasks(tasks []task.Task, filter FilterSpec, sort SortSpec, now time.Time) []task.Task {
	return SortTasks(FilterTasks(tasks, filter, now), sort)
}

// ProcessLists composes list filtering and sorting, filter first.
func ProcessLists(lists []list.List, filter FilterSpec, sort SortSpec) []list.List {
	return SortLists(FilterLists(lists, filter), sort)
}
