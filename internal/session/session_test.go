package session

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"MyDrawingPad/internal/state"
	"MyDrawingPad/internal/store"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	records, err := store.OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir failed: %v", err)
	}
	s := store.New(records, log.New(&bytes.Buffer{}, "", 0))
	return New(state.NewHistory(0), s)
}

func draw(s *Session) {
	s.History().AddStroke(state.NewStroke([]state.Point{{X: 1, Y: 1}}, state.Black, 5, false))
}

func TestSession_Titles(t *testing.T) {
	s := newSession(t)
	if s.Title() != UntitledTitle {
		t.Errorf("expected %q, got %q", UntitledTitle, s.Title())
	}
	draw(s)
	if s.Title() != UntitledUnsavedTitle {
		t.Errorf("expected %q, got %q", UntitledUnsavedTitle, s.Title())
	}
	if s.HasUnsavedChanges() {
		t.Error("unsaved marker only applies to an open drawing")
	}
	if _, err := s.Save("House"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if s.Title() != "House" {
		t.Errorf("expected drawing name as title, got %q", s.Title())
	}
}

func TestSession_SaveThenOverwrite(t *testing.T) {
	s := newSession(t)
	draw(s)

	first, err := s.Save("Tree")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !s.Overwrites() || s.SuggestedName() != "Tree" {
		t.Fatal("expected the saved drawing to be open")
	}

	draw(s)
	if !s.HasUnsavedChanges() {
		t.Fatal("expected unsaved changes after drawing")
	}
	second, err := s.Save("ignored")
	if err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if second.ID != first.ID || second.Name != "Tree" {
		t.Errorf("overwrite must keep id and name, got %+v", second)
	}
	if len(second.Paths) != 2 {
		t.Errorf("expected 2 strokes saved, got %d", len(second.Paths))
	}
	if s.HasUnsavedChanges() {
		t.Error("save should clear the unsaved marker")
	}
	if n := len(s.Store().List()); n != 1 {
		t.Errorf("overwrite must not add drawings, got %d", n)
	}
}

func TestSession_SaveRequiresName(t *testing.T) {
	s := newSession(t)
	if _, err := s.Save(""); !errors.Is(err, store.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if s.Overwrites() {
		t.Error("failed save must not open a drawing")
	}
}

func TestSession_OpenAndUndo(t *testing.T) {
	s := newSession(t)
	draw(s)
	d, _ := s.Save("A")
	s.New()
	if s.History().Len() != 0 || s.Overwrites() {
		t.Fatal("New should start an empty unsaved drawing")
	}

	s.Open(d)
	if s.History().Len() != 1 {
		t.Fatalf("expected 1 stroke after open, got %d", s.History().Len())
	}
	if s.HasUnsavedChanges() {
		t.Error("freshly opened drawing has no unsaved changes")
	}
	s.History().Undo()
	if s.History().Len() != 0 {
		t.Error("open should be undoable")
	}
	if !s.HasUnsavedChanges() {
		t.Error("undo after open is an unsaved change")
	}
}

func TestSession_DeleteOpenDrawing(t *testing.T) {
	s := newSession(t)
	draw(s)
	open, _ := s.Save("open")
	s.New()
	draw(s)
	other, _ := s.Save("other")
	s.Open(open)

	if err := s.Delete(other); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if sel, ok := s.Selected(); !ok || sel.ID != open.ID {
		t.Fatal("deleting another drawing must keep the selection")
	}

	if err := s.Delete(open); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if s.Overwrites() || s.History().Len() != 0 {
		t.Error("deleting the open drawing should clear the canvas")
	}
	if len(s.Store().List()) != 0 {
		t.Error("expected no drawings left")
	}
}
