package reorder

import (
	"reflect"
	"testing"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		from, to int
		want     []string
	}{
		{"forward", []string{"a", "b", "c", "d"}, 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", []string{"a", "b", "c", "d"}, 3, 1, []string{"a", "d", "b", "c"}},
		{"same index", []string{"a", "b", "c"}, 1, 1, []string{"a", "b", "c"}},
		{"clamped from", []string{"a", "b"}, 5, 0, []string{"b", "a"}},
		{"clamped to", []string{"a", "b"}, 0, 9, []string{"b", "a"}},
		{"empty", []string{}, 0, 1, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Move(tt.ids, tt.from, tt.to)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Move(%v, %d, %d) = %v, want %v", tt.ids, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestMove_DoesNotMutateInput(t *testing.T) {
	ids := []string{"a", "b", "c"}
	Move(ids, 0, 2)
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Errorf("input mutated: %v", ids)
	}
}

func TestInsertionIndex(t *testing.T) {
	order := []string{"a", "b", "c"}

	tests := []struct {
		name   string
		target Target
		want   int
	}{
		{"container drop inserts at 0", Target{ListID: "l"}, 0},
		{"before first", Target{ListID: "l", TaskID: "a", Position: Before}, 0},
		{"after first", Target{ListID: "l", TaskID: "a", Position: After}, 1},
		{"before last", Target{ListID: "l", TaskID: "c", Position: Before}, 2},
		{"after last", Target{ListID: "l", TaskID: "c", Position: After}, 3},
		{"unknown task appends", Target{ListID: "l", TaskID: "zzz", Position: Before}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InsertionIndex(order, tt.target); got != tt.want {
				t.Errorf("InsertionIndex(%v) = %d, want %d", tt.target, got, tt.want)
			}
		})
	}
}

func TestInsertAt(t *testing.T) {
	got := InsertAt([]string{"a", "b"}, "x", 1)
	if !reflect.DeepEqual(got, []string{"a", "x", "b"}) {
		t.Errorf("InsertAt = %v", got)
	}

	got = InsertAt([]string{"a", "b"}, "x", 99)
	if !reflect.DeepEqual(got, []string{"a", "b", "x"}) {
		t.Errorf("InsertAt clamped = %v", got)
	}
}

func newBoard() map[string][]string {
	return map[string][]string{
		"todo":  {"t1", "t2", "t3"},
		"doing": {"d1"},
	}
}

func TestTracker_SameListReorder(t *testing.T) {
	tr := NewTracker(newBoard())

	tr.OnDragStart("t1", "todo")
	tr.OnDragOver(Target{ListID: "todo", TaskID: "t3", Position: After})
	reorder, move := tr.OnDragEnd()

	if move != nil {
		t.Fatalf("expected no move intent, got %+v", move)
	}
	if reorder == nil {
		t.Fatal("expected a reorder intent")
	}
	if reorder.ListID != "todo" {
		t.Errorf("expected list todo, got %q", reorder.ListID)
	}
	want := []string{"t2", "t3", "t1"}
	if !reflect.DeepEqual(reorder.OrderedIDs, want) {
		t.Errorf("expected order %v, got %v", want, reorder.OrderedIDs)
	}
}

func TestTracker_DropOnImmediateNeighbor(t *testing.T) {
	tr := NewTracker(newBoard())

	// Dropping t1 before t2 leaves the order unchanged; no intent.
	tr.OnDragStart("t1", "todo")
	tr.OnDragOver(Target{ListID: "todo", TaskID: "t2", Position: Before})
	reorder, move := tr.OnDragEnd()

	if reorder != nil || move != nil {
		t.Errorf("expected no intent for a no-op drop, got %+v / %+v", reorder, move)
	}
}

func TestTracker_CrossListMove(t *testing.T) {
	tr := NewTracker(newBoard())

	tr.OnDragStart("t2", "todo")
	tr.OnDragOver(Target{ListID: "doing", TaskID: "d1", Position: After})
	reorder, move := tr.OnDragEnd()

	if reorder != nil {
		t.Fatalf("expected no reorder intent, got %+v", reorder)
	}
	if move == nil {
		t.Fatal("expected a move intent")
	}
	want := MoveIntent{TaskID: "t2", FromListID: "todo", ToListID: "doing", Index: 1}
	if *move != want {
		t.Errorf("expected %+v, got %+v", want, *move)
	}
}

func TestTracker_CrossListContainerDrop(t *testing.T) {
	tr := NewTracker(newBoard())

	tr.OnDragStart("t1", "todo")
	tr.OnDragOver(Target{ListID: "doing"})
	_, move := tr.OnDragEnd()

	if move == nil || move.Index != 0 {
		t.Fatalf("container drop should insert at index 0, got %+v", move)
	}
}

func TestTracker_EndWithoutStart(t *testing.T) {
	tr := NewTracker(newBoard())

	reorder, move := tr.OnDragEnd()
	if reorder != nil || move != nil {
		t.Errorf("expected no intent without an active drag")
	}
}

func TestTracker_ResetsAfterEnd(t *testing.T) {
	tr := NewTracker(newBoard())

	tr.OnDragStart("t1", "todo")
	tr.OnDragOver(Target{ListID: "doing"})
	tr.OnDragEnd()

	// A second end without a new start yields nothing.
	reorder, move := tr.OnDragEnd()
	if reorder != nil || move != nil {
		t.Errorf("tracker did not reset: %+v / %+v", reorder, move)
	}
}
