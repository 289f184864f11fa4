package query

import (
	"testing"
	"time"

	"github.com/example/taskboard/domain/task"
)

func TestProcessTasks_FilterRunsBeforeSort(t *testing.T) {
	tasks := []task.Task{
		tsk("z", "Zebra report", withPriority(task.PriorityHigh)),
		tsk("a", "Aardvark notes", withPriority(task.PriorityLow)),
		tsk("m", "Mango report", withPriority(task.PriorityHigh)),
	}

	got := ProcessTasks(tasks,
		FilterSpec{Query: "report"},
		SortSpec{Key: SortByTitle, Direction: SortAsc},
		testNow,
	)

	assertIDs(t, got, "m", "z")
}

func TestProcessTasks_IdempotentUnderNoopSpec(t *testing.T) {
	tasks := []task.Task{
		tsk("c", "Third"),
		tsk("a", "First"),
		tsk("b", "Second"),
	}

	once := ProcessTasks(tasks, DefaultFilterSpec(), SortSpec{}, testNow)
	twice := ProcessTasks(once, DefaultFilterSpec(), SortSpec{}, testNow)

	// Output equals input in both order and membership.
	assertIDs(t, once, "c", "a", "b")
	assertIDs(t, twice, "c", "a", "b")
}

func TestProcessTasks_PriorityFilterWithTitleTieBreak(t *testing.T) {
	// Two high-priority tasks with identical titles: the filter keeps
	// exactly those two, and the stable ascending title sort preserves
	// their original relative order.
	tasks := []task.Task{
		tsk("h1", "Same title", withPriority(task.PriorityHigh)),
		tsk("m", "Other", withPriority(task.PriorityMedium)),
		tsk("l", "Other", withPriority(task.PriorityLow)),
		tsk("h2", "Same title", withPriority(task.PriorityHigh)),
	}

	got := ProcessTasks(tasks,
		FilterSpec{Priorities: []task.Priority{task.PriorityHigh}},
		SortSpec{Key: SortByTitle, Direction: SortAsc},
		testNow,
	)

	assertIDs(t, got, "h1", "h2")
}

func TestProcessTasks_Deterministic(t *testing.T) {
	deadline := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		tsk("a", "One", withDeadline(deadline)),
		tsk("b", "Two"),
		tsk("c", "Three", withDeadline(deadline.Add(time.Hour))),
	}
	filter := FilterSpec{Status: StatusPending}
	sort := SortSpec{Key: SortByDeadline, Direction: SortAsc}

	first := ProcessTasks(tasks, filter, sort, testNow)
	second := ProcessTasks(tasks, filter, sort, testNow)

	if len(first) != len(second) {
		t.Fatalf("runs disagree on length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("position %d differs between runs: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}
