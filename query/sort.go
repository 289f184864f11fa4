package query

import (
	"sort"
	"strings"

	"github.com/example/taskboard/domain/list"
	"github.com/example/taskboard/domain/task"
)

// SortTasks returns a stably sorted copy of tasks. Equal keys keep
// their relative input order. A zero SortSpec returns the input
// unchanged.
//
// Tasks without a deadline sort after every task with one when sorting
// by deadline, regardless of direction: "missing" always means
// "latest", and reversing the direction reverses only the present
// deadlines.
func SortTasks(tasks []task.Task, spec SortSpec) []task.Task {
	if spec.Key == "" {
		return tasks
	}

	out := make([]task.Task, len(tasks))
	copy(out, tasks)
	desc := spec.Direction == SortDesc

	sort.SliceStable(out, func(i, j int) bool {
		return compareTasks(&out[i], &out[j], spec.Key, desc) < 0
	})
	return out
}

// compareTasks orders a before b when the result is negative. desc is
// applied to the key comparison only; nil-deadline placement is outside
// the reversal so missing deadlines stay last under either direction.
func compareTasks(a, b *task.Task, key SortKey, desc bool) int {
	var c int
	switch key {
	case SortByTitle:
		c = strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortByCreatedAt:
		c = a.CreatedAt.Compare(b.CreatedAt)
	case SortByUpdatedAt:
		c = a.UpdatedAt.Compare(b.UpdatedAt)
	case SortByPriority:
		c = a.Priority.Rank() - b.Priority.Rank()
	case SortByCompleted:
		c = boolRank(a.Completed) - boolRank(b.Completed)
	case SortByDeadline:
		switch {
		case a.Deadline == nil && b.Deadline == nil:
			return 0
		case a.Deadline == nil:
			return 1
		case b.Deadline == nil:
			return -1
		}
		c = a.Deadline.Compare(*b.Deadline)
	default:
		return 0
	}

	if desc {
		c = -c
	}
	return c
}

// SortLists returns a stably sorted copy of lists. A zero SortSpec
// returns the input unchanged.
func SortLists(lists []list.List, spec SortSpec) []list.List {
	if spec.Key == "" {
		return lists
	}

	out := make([]list.List, len(lists))
	copy(out, lists)
	desc := spec.Direction == SortDesc

	sort.SliceStable(out, func(i, j int) bool {
		c := compareLists(&out[i], &out[j], spec.Key)
		if desc {
			c = -c
		}
		return c < 0
	})
	return out
}

func compareLists(a, b *list.List, key SortKey) int {
	switch key {
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case SortByTaskCount:
		return a.TaskCount - b.TaskCount
	case SortByCompletionPercentage:
		switch pa, pb := a.CompletionPercentage(), b.CompletionPercentage(); {
		case pa < pb:
			return -1
		case pa > pb:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
