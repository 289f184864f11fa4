package reorder

// Tracker implements Handler over a snapshot of the board's current
// per-list task id orderings. It accumulates gesture state and resolves
// the final intent when the drag ends.
type Tracker struct {
	board    map[string][]string
	dragID   string
	fromList string
	target   Target
	active   bool
}

var _ Handler = (*Tracker)(nil)

// NewTracker creates a tracker over the given board snapshot, a map of
// list id to ordered task ids. The snapshot is not mutated.
func NewTracker(board map[string][]string) *Tracker {
	return &Tracker{board: board}
}

// OnDragStart records the card being dragged and its source list.
func (t *Tracker) OnDragStart(taskID, listID string) {
	t.dragID = taskID
	t.fromList = listID
	t.target = Target{ListID: listID, TaskID: taskID}
	t.active = true
}

// OnDragOver records the latest hover target; only the last one before
// OnDragEnd matters.
func (t *Tracker) OnDragOver(target Target) {
	if !t.active {
		return
	}
	t.target = target
}

// OnDragEnd resolves the gesture into exactly one intent, or neither
// when the card was dropped where it started. It resets the tracker
// either way.
func (t *Tracker) OnDragEnd() (*ReorderIntent, *MoveIntent) {
	if !t.active {
		return nil, nil
	}
	defer t.reset()

	if t.target.ListID == t.fromList {
		order := t.board[t.fromList]
		// Resolve the insertion point against the order without the
		// dragged card so hovering a neighbor lands where it looks.
		remaining := Remove(order, t.dragID)
		idx := InsertionIndex(remaining, t.target)
		newOrder := InsertAt(remaining, t.dragID, idx)

		if equal(order, newOrder) {
			return nil, nil
		}
		return &ReorderIntent{ListID: t.fromList, OrderedIDs: newOrder}, nil
	}

	idx := InsertionIndex(t.board[t.target.ListID], t.target)
	return nil, &MoveIntent{
		TaskID:     t.dragID,
		FromListID: t.fromList,
		ToListID:   t.target.ListID,
		Index:      idx,
	}
}

func (t *Tracker) reset() {
	t.dragID = ""
	t.fromList = ""
	t.target = Target{}
	t.active = false
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
