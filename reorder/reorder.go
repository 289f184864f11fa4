// Package reorder translates drag gestures over task cards into domain
// intents: reorder within a list or move to another list. The math is
// pure and toolkit-independent; any UI layer drives it through the
// Handler capability interface.
package reorder

// Position says where relative to a hovered task the dragged card
// should land, as resolved by the caller's collision detection.
type Position int

const (
	Before Position = iota
	After
)

// Target identifies where a dragged card is currently hovering.
// An empty TaskID means the pointer is over the list container itself.
type Target struct {
	ListID   string
	TaskID   string
	Position Position
}

// ReorderIntent is the outcome of a drag that stayed within one list:
// the new full ordered id sequence for that list.
type ReorderIntent struct {
	ListID     string
	OrderedIDs []string
}

// MoveIntent is the outcome of a drag that crossed lists.
type MoveIntent struct {
	TaskID     string
	FromListID string
	ToListID   string
	Index      int
}

// Handler is the capability interface a UI toolkit invokes while a
// drag is in progress.
type Handler interface {
	OnDragStart(taskID, listID string)
	OnDragOver(target Target)
	OnDragEnd() (*ReorderIntent, *MoveIntent)
}

// InsertionIndex resolves where in order a card dropped on target
// should be inserted. Dropping onto the container with no task target
// inserts at index 0; dropping onto a task inserts before or after it.
// A hovered task that is no longer in the order appends at the end.
func InsertionIndex(order []string, target Target) int {
	if target.TaskID == "" {
		return 0
	}
	for i, id := range order {
		if id == target.TaskID {
			if target.Position == After {
				return i + 1
			}
			return i
		}
	}
	return len(order)
}

// Move returns a copy of ids with the element at from relocated to to.
// Out-of-range indexes are clamped.
func Move(ids []string, from, to int) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	if len(out) == 0 {
		return out
	}
	from = clamp(from, 0, len(out)-1)
	to = clamp(to, 0, len(out)-1)
	if from == to {
		return out
	}

	id := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{id}, out[to:]...)...)
	return out
}

// Remove returns a copy of ids without id. Unknown ids are a no-op.
func Remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// InsertAt returns a copy of ids with id inserted at index, clamped to
// the valid range.
func InsertAt(ids []string, id string, index int) []string {
	index = clamp(index, 0, len(ids))
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:index]...)
	out = append(out, id)
	out = append(out, ids[index:]...)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
