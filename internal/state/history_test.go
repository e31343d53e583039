package state

import (
	"testing"
)

func dot(x, y float64) Stroke {
	return NewStroke([]Point{{X: x, Y: y}}, Black, DefaultLineWidth, false)
}

func sameIDs(t *testing.T, got, want []Stroke) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d strokes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Fatalf("stroke %d: expected %s, got %s", i, want[i].ID, got[i].ID)
		}
	}
}

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	h := NewHistory(0)
	var added []Stroke
	for i := 0; i < 10; i++ {
		s := dot(float64(i), float64(i))
		added = append(added, s)
		h.AddStroke(s)
	}
	sameIDs(t, h.Strokes(), added)

	for i := 0; i < 10; i++ {
		if !h.Undo() {
			t.Fatalf("undo %d reported no-op", i)
		}
	}
	if h.Len() != 0 {
		t.Fatalf("expected empty document after undoing everything, got %d strokes", h.Len())
	}
	if h.CanUndo() {
		t.Error("CanUndo should be false at the start state")
	}
	if h.Undo() {
		t.Error("undo on empty stack should be a no-op")
	}

	for i := 0; i < 10; i++ {
		if !h.Redo() {
			t.Fatalf("redo %d reported no-op", i)
		}
	}
	sameIDs(t, h.Strokes(), added)
	if h.CanRedo() {
		t.Error("CanRedo should be false after replaying everything")
	}
}

func TestHistory_ForwardMutationClearsRedo(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(h *History)
	}{
		{"AddStroke", func(h *History) { h.AddStroke(dot(9, 9)) }},
		{"Clear", func(h *History) { h.Clear() }},
		{"LoadDocument", func(h *History) { h.LoadDocument([]Stroke{dot(5, 5)}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(0)
			h.AddStroke(dot(1, 1))
			h.AddStroke(dot(2, 2))
			h.Undo()
			if !h.CanRedo() {
				t.Fatal("expected redo to be available after undo")
			}
			tt.mutate(h)
			if h.CanRedo() {
				t.Fatal("forward mutation must clear the redo stack")
			}
			before := h.Strokes()
			if h.Redo() {
				t.Fatal("redo after forward mutation should be a no-op")
			}
			sameIDs(t, h.Strokes(), before)
		})
	}
}

func TestHistory_UndoLimit(t *testing.T) {
	h := NewHistory(0)
	var added []Stroke
	for i := 0; i < 60; i++ {
		s := dot(float64(i), 0)
		added = append(added, s)
		h.AddStroke(s)
	}
	if h.UndoDepth() != DefaultUndoLimit {
		t.Fatalf("expected %d undo levels, got %d", DefaultUndoLimit, h.UndoDepth())
	}

	// Each undo must land on the pre-mutation state of the matching add.
	for i := 59; i >= 10; i-- {
		h.Undo()
		sameIDs(t, h.Strokes(), added[:i])
	}
	if h.Undo() {
		t.Fatal("expected undo history to end after 50 levels")
	}
	if h.Len() != 10 {
		t.Errorf("expected the oldest reachable state to hold 10 strokes, got %d", h.Len())
	}
}

func TestNewHistory_LimitNeverExceedsDefault(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultUndoLimit},
		{-3, DefaultUndoLimit},
		{500, DefaultUndoLimit},
		{5, 5},
	}
	for _, tt := range tests {
		h := NewHistory(tt.limit)
		for i := 0; i < 60; i++ {
			h.AddStroke(dot(float64(i), 0))
		}
		if h.UndoDepth() != tt.want {
			t.Errorf("NewHistory(%d): expected %d undo levels, got %d", tt.limit, tt.want, h.UndoDepth())
		}
	}
}

func TestHistory_ClearAndLoadAreUndoable(t *testing.T) {
	h := NewHistory(0)
	first := dot(1, 1)
	h.AddStroke(first)

	h.Clear()
	if h.Len() != 0 {
		t.Fatalf("expected empty document after Clear, got %d", h.Len())
	}
	h.Undo()
	sameIDs(t, h.Strokes(), []Stroke{first})

	loaded := []Stroke{dot(2, 2), dot(3, 3)}
	h.LoadDocument(loaded)
	sameIDs(t, h.Strokes(), loaded)
	h.Undo()
	sameIDs(t, h.Strokes(), []Stroke{first})
}

func TestHistory_LoadDocumentCopiesInput(t *testing.T) {
	h := NewHistory(0)
	in := []Stroke{dot(1, 1)}
	h.LoadDocument(in)
	in[0] = dot(7, 7)
	if h.Strokes()[0].ID == in[0].ID {
		t.Fatal("document must not alias the caller's slice")
	}
}

func TestHistory_Subscribe(t *testing.T) {
	h := NewHistory(0)
	var got []Snapshot
	cancel := h.Subscribe(func(s Snapshot) { got = append(got, s) })

	h.AddStroke(dot(1, 1))
	h.Undo()
	h.Undo() // no-op, no notification
	h.Redo()

	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if !got[0].CanUndo || got[0].CanRedo {
		t.Errorf("after add: CanUndo=%v CanRedo=%v", got[0].CanUndo, got[0].CanRedo)
	}
	if got[1].CanUndo || !got[1].CanRedo {
		t.Errorf("after undo: CanUndo=%v CanRedo=%v", got[1].CanUndo, got[1].CanRedo)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Revision <= got[i-1].Revision {
			t.Errorf("revisions must increase: %d then %d", got[i-1].Revision, got[i].Revision)
		}
	}

	cancel()
	h.Clear()
	if len(got) != 3 {
		t.Errorf("cancelled observer was notified")
	}
}

func TestHistory_EraserParticipatesInUndo(t *testing.T) {
	h := NewHistory(0)
	eraser := NewStroke([]Point{{X: 1, Y: 1}, {X: 5, Y: 5}}, Black, 10, true)
	h.AddStroke(eraser)
	if h.Len() != 1 {
		t.Fatalf("eraser stroke should occupy a slot, got %d strokes", h.Len())
	}
	h.Undo()
	if h.Len() != 0 {
		t.Fatalf("expected eraser to be undone")
	}
	h.Redo()
	sameIDs(t, h.Strokes(), []Stroke{eraser})
}
