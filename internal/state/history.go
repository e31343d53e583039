package state

// DefaultUndoLimit bounds the undo stack.
const DefaultUndoLimit = 50

// Snapshot is an immutable view of the working document, handed to observers.
type Snapshot struct {
	Revision uint64   `json:"revision"`
	Strokes  []Stroke `json:"paths"`
	CanUndo  bool     `json:"canUndo"`
	CanRedo  bool     `json:"canRedo"`
}

type observer struct {
	id int
	fn func(Snapshot)
}

// History owns the working document and its linear undo/redo history.
// Every entry is a full copy of the stroke list. It is not safe for
// concurrent use; callers drive it from the UI thread.
type History struct {
	strokes []Stroke
	undo    [][]Stroke
	redo    [][]Stroke
	limit   int
	clock   Clock

	observers []observer
	nextID    int
}

// NewHistory creates an empty document. limit may lower the undo depth;
// non-positive or larger values select DefaultUndoLimit.
func NewHistory(limit int) *History {
	if limit <= 0 || limit > DefaultUndoLimit {
		limit = DefaultUndoLimit
	}
	return &History{
		strokes: []Stroke{},
		limit:   limit,
	}
}

// AddStroke appends a committed stroke.
func (h *History) AddStroke(s Stroke) {
	h.checkpoint()
	h.strokes = append(CloneStrokes(h.strokes), s)
	h.changed()
}

// Clear empties the document.
func (h *History) Clear() {
	h.checkpoint()
	h.strokes = []Stroke{}
	h.changed()
}

// LoadDocument replaces the document wholesale.
func (h *History) LoadDocument(strokes []Stroke) {
	h.checkpoint()
	h.strokes = CloneStrokes(strokes)
	h.changed()
}

// Undo restores the previous state. It reports false, and does nothing,
// when there is nothing to undo.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	h.redo = append(h.redo, h.strokes)
	last := len(h.undo) - 1
	h.strokes = h.undo[last]
	h.undo[last] = nil
	h.undo = h.undo[:last]
	h.changed()
	return true
}

// Redo re-applies the most recently undone state. The undo stack is not
// capped on this path.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	h.undo = append(h.undo, h.strokes)
	last := len(h.redo) - 1
	h.strokes = h.redo[last]
	h.redo[last] = nil
	h.redo = h.redo[:last]
	h.changed()
	return true
}

func (h *History) CanUndo() bool  { return len(h.undo) > 0 }
func (h *History) CanRedo() bool  { return len(h.redo) > 0 }
func (h *History) UndoDepth() int { return len(h.undo) }
func (h *History) RedoDepth() int { return len(h.redo) }
func (h *History) Len() int       { return len(h.strokes) }

// Strokes returns a copy of the document in render order.
func (h *History) Strokes() []Stroke {
	return CloneStrokes(h.strokes)
}

// Revision identifies the current document state.
func (h *History) Revision() uint64 {
	return h.clock.Now()
}

// Snapshot captures the current state.
func (h *History) Snapshot() Snapshot {
	return Snapshot{
		Revision: h.clock.Now(),
		Strokes:  h.Strokes(),
		CanUndo:  h.CanUndo(),
		CanRedo:  h.CanRedo(),
	}
}

// Subscribe registers fn to run after every mutation. The returned func
// removes the registration.
func (h *History) Subscribe(fn func(Snapshot)) (cancel func()) {
	h.nextID++
	id := h.nextID
	h.observers = append(h.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range h.observers {
			if o.id == id {
				h.observers = append(h.observers[:i], h.observers[i+1:]...)
				return
			}
		}
	}
}

// checkpoint records the current state before a forward mutation and
// drops the redo history.
func (h *History) checkpoint() {
	h.undo = append(h.undo, h.strokes)
	for len(h.undo) > h.limit {
		h.undo[0] = nil
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

func (h *History) changed() {
	h.clock.Tick()
	if len(h.observers) == 0 {
		return
	}
	snap := h.Snapshot()
	for _, o := range append([]observer(nil), h.observers...) {
		o.fn(snap)
	}
}
