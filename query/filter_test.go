package query

import (
	"testing"
	"time"

	"github.com/example/taskboard/domain/list"
	"github.com/example/taskboard/domain/task"
)

var testNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func tsk(id, title string, opts ...func(*task.Task)) task.Task {
	t := task.Task{
		ID:        id,
		Title:     title,
		Priority:  task.PriorityMedium,
		ListID:    "list-1",
		UserID:    "user-1",
		CreatedAt: testNow.Add(-24 * time.Hour),
		UpdatedAt: testNow.Add(-24 * time.Hour),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func withDeadline(d time.Time) func(*task.Task) {
	return func(t *task.Task) { t.Deadline = &d }
}

func withPriority(p task.Priority) func(*task.Task) {
	return func(t *task.Task) { t.Priority = p }
}

func withCompleted() func(*task.Task) {
	return func(t *task.Task) { t.Completed = true }
}

func withCreatedAt(at time.Time) func(*task.Task) {
	return func(t *task.Task) { t.CreatedAt = at }
}

func withDescription(d string) func(*task.Task) {
	return func(t *task.Task) { t.Description = d }
}

func withList(id string) func(*task.Task) {
	return func(t *task.Task) { t.ListID = id }
}

func ids(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []task.Task, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %d tasks %v, got %d: %v", len(want), want, len(gotIDs), gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q (full: %v)", i, want[i], gotIDs[i], gotIDs)
		}
	}
}

func TestFilterTasks_EmptyQueryIsNoop(t *testing.T) {
	tasks := []task.Task{tsk("a", "Alpha"), tsk("b", "Beta"), tsk("c", "Gamma")}

	got := FilterTasks(tasks, DefaultFilterSpec(), testNow)

	assertIDs(t, got, "a", "b", "c")
}

func TestFilterTasks_TextSearch(t *testing.T) {
	tasks := []task.Task{
		tsk("a", "Buy groceries"),
		tsk("b", "Call dentist", withDescription("about the GROCERY bill")),
		tsk("c", "Walk the dog"),
		tsk("d", "groceries list review"),
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"case-insensitive title match", "GROCERIES", []string{"a", "d"}},
		{"substring in description", "grocery", []string{"b"}},
		{"no matches", "xyzzy", []string{}},
		{"matches both fields", "groc", []string{"a", "b", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTasks(tasks, FilterSpec{Query: tt.query}, testNow)
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestFilterTasks_Status(t *testing.T) {
	tasks := []task.Task{
		tsk("overdue", "Overdue", withDeadline(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC))),
		tsk("upcoming", "Upcoming", withDeadline(time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC))),
		tsk("later", "Later", withDeadline(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))),
		tsk("done", "Done", withCompleted()),
		tsk("nodeadline", "No deadline"),
	}

	tests := []struct {
		name   string
		status Status
		want   []string
	}{
		{"all", StatusAll, []string{"overdue", "upcoming", "later", "done", "nodeadline"}},
		{"pending excludes completed", StatusPending, []string{"overdue", "upcoming", "later", "nodeadline"}},
		{"completed only", StatusCompleted, []string{"done"}},
		{"overdue only", StatusOverdue, []string{"overdue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTasks(tasks, FilterSpec{Status: tt.status}, testNow)
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestFilterTasks_OverdueDeadlines(t *testing.T) {
	// Deadlines 2024-01-11 (incomplete), 2024-01-15, 2024-01-20; only
	// the first is overdue relative to testNow.
	tasks := []task.Task{
		tsk("a", "First", withDeadline(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC))),
		tsk("b", "Second", withDeadline(time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC))),
		tsk("c", "Third", withDeadline(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))),
	}

	got := FilterTasks(tasks, FilterSpec{Status: StatusOverdue}, testNow)

	assertIDs(t, got, "a")
}

func TestFilterTasks_PrioritySubset(t *testing.T) {
	tasks := []task.Task{
		tsk("a", "One", withPriority(task.PriorityHigh)),
		tsk("b", "Two", withPriority(task.PriorityMedium)),
		tsk("c", "Three", withPriority(task.PriorityLow)),
		tsk("d", "Four", withPriority(task.PriorityHigh)),
	}

	got := FilterTasks(tasks, FilterSpec{Priorities: []task.Priority{task.PriorityHigh}}, testNow)

	// Exactly the two high-priority tasks, original relative order.
	assertIDs(t, got, "a", "d")
}

func TestFilterTasks_ListMembership(t *testing.T) {
	tasks := []task.Task{
		tsk("a", "One", withList("work")),
		tsk("b", "Two", withList("home")),
		tsk("c", "Three", withList("work")),
	}

	got := FilterTasks(tasks, FilterSpec{ListIDs: []string{"home"}}, testNow)

	assertIDs(t, got, "b")
}

func TestFilterTasks_CreatedRange(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	tasks := []task.Task{
		tsk("a", "One", withCreatedAt(day(5))),
		tsk("b", "Two", withCreatedAt(day(10))),
		tsk("c", "Three", withCreatedAt(day(14))),
	}

	from, to := day(10), day(14)

	tests := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{"both bounds inclusive", FilterSpec{CreatedFrom: &from, CreatedTo: &to}, []string{"b", "c"}},
		{"open-ended upper", FilterSpec{CreatedFrom: &from}, []string{"b", "c"}},
		{"open-ended lower", FilterSpec{CreatedTo: &from}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTasks(tasks, tt.spec, testNow)
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestFilterTasks_QuickFilters(t *testing.T) {
	tasks := []task.Task{
		tsk("today", "Due today", withDeadline(time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC))),
		tsk("week", "Due in 3 days", withDeadline(time.Date(2024, 1, 18, 9, 0, 0, 0, time.UTC))),
		tsk("far", "Due next month", withDeadline(time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC))),
		tsk("past", "Overdue", withDeadline(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))),
		tsk("high", "Important", withPriority(task.PriorityHigh)),
		tsk("plain", "No deadline"),
	}

	tests := []struct {
		name  string
		quick QuickFilters
		want  []string
	}{
		{"due today window", QuickFilters{DueToday: true}, []string{"today"}},
		{"due this week from now", QuickFilters{DueThisWeek: true}, []string{"today", "week"}},
		{"overdue toggle", QuickFilters{Overdue: true}, []string{"past"}},
		{"high priority toggle", QuickFilters{HighPriority: true}, []string{"high"}},
		{"toggles combine with AND", QuickFilters{DueThisWeek: true, HighPriority: true}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTasks(tasks, FilterSpec{Quick: tt.quick}, testNow)
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestFilterTasks_QuickCombinesWithStandardFilters(t *testing.T) {
	tasks := []task.Task{
		tsk("a", "Report draft", withPriority(task.PriorityHigh),
			withDeadline(time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC))),
		tsk("b", "Report review", withPriority(task.PriorityLow),
			withDeadline(time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC))),
		tsk("c", "Unrelated", withPriority(task.PriorityHigh),
			withDeadline(time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC))),
	}

	spec := FilterSpec{
		Query: "report",
		Quick: QuickFilters{DueThisWeek: true, HighPriority: true},
	}
	got := FilterTasks(tasks, spec, testNow)

	assertIDs(t, got, "a")
}

func TestFilterTasks_AbsentFieldsNeverPanic(t *testing.T) {
	tasks := []task.Task{
		tsk("bare", "Bare task"), // no description, no deadline
	}

	specs := []FilterSpec{
		{Query: "missing"},
		{Status: StatusOverdue},
		{Quick: QuickFilters{DueToday: true}},
		{Quick: QuickFilters{DueThisWeek: true}},
	}

	for _, spec := range specs {
		if got := FilterTasks(tasks, spec, testNow); len(got) != 0 {
			t.Errorf("spec %+v: bare task should not match, got %v", spec, ids(got))
		}
	}
}

// Filter completeness and soundness: every result element satisfies all
// predicates, and every input element satisfying them appears in the
// result, in input order.
func TestFilterTasks_CompletenessAndSoundness(t *testing.T) {
	tasks := []task.Task{
		tsk("a", "Ship release", withPriority(task.PriorityHigh)),
		tsk("b", "ship docs", withPriority(task.PriorityLow)),
		tsk("c", "Ship fix", withPriority(task.PriorityHigh), withCompleted()),
		tsk("d", "Plan sprint", withPriority(task.PriorityHigh)),
		tsk("e", "SHIP it", withPriority(task.PriorityHigh)),
	}

	spec := FilterSpec{
		Query:      "ship",
		Status:     StatusPending,
		Priorities: []task.Priority{task.PriorityHigh},
	}

	got := FilterTasks(tasks, spec, testNow)
	assertIDs(t, got, "a", "e")

	for _, r := range got {
		if r.Completed || r.Priority != task.PriorityHigh {
			t.Errorf("result %q violates an active predicate", r.ID)
		}
	}
}

func TestFilterLists(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	lists := []list.List{
		{ID: "a", Name: "Work projects", CreatedAt: day(5)},
		{ID: "b", Name: "Home", Description: "house projects", CreatedAt: day(10)},
		{ID: "c", Name: "Reading", CreatedAt: day(14)},
	}

	t.Run("name and description match", func(t *testing.T) {
		got := FilterLists(lists, FilterSpec{Query: "PROJECT"})
		if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
			t.Errorf("expected [a b], got %v", listIDs(got))
		}
	})

	t.Run("created range", func(t *testing.T) {
		from := day(10)
		got := FilterLists(lists, FilterSpec{CreatedFrom: &from})
		if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
			t.Errorf("expected [b c], got %v", listIDs(got))
		}
	})

	t.Run("empty spec is a no-op", func(t *testing.T) {
		got := FilterLists(lists, FilterSpec{})
		if len(got) != 3 {
			t.Errorf("expected all 3 lists, got %d", len(got))
		}
	})
}

func listIDs(lists []list.List) []string {
	out := make([]string, 0, len(lists))
	for _, l := range lists {
		out = append(out, l.ID)
	}
	return out
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"rfc3339", "2024-01-15T12:00:00Z", true},
		{"plain date", "2024-01-15", true},
		{"empty", "", false},
		{"garbage", "not-a-date", false},
		{"partial", "2024-13-45", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input)
			if tt.valid && got == nil {
				t.Errorf("ParseDate(%q) = nil, expected a time", tt.input)
			}
			if !tt.valid && got != nil {
				t.Errorf("ParseDate(%q) = %v, expected nil", tt.input, got)
			}
		})
	}
}
