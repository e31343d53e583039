// Package session ties the working document to the saved drawings: which
// drawing is open, whether it has unsaved edits, and whether "save"
// creates a new drawing or overwrites the open one.
package session

import (
	"errors"

	"MyDrawingPad/internal/state"
	"MyDrawingPad/internal/store"
)

const (
	UntitledTitle        = "Untitled"
	UntitledUnsavedTitle = "Untitled (unsaved)"
)

// Session is driven from the UI thread.
type Session struct {
	history *state.History
	store   *store.Store

	selected      *state.SavedDrawing
	savedRevision uint64
}

func New(history *state.History, s *store.Store) *Session {
	return &Session{history: history, store: s, savedRevision: history.Revision()}
}

func (s *Session) History() *state.History { return s.history }
func (s *Session) Store() *store.Store     { return s.store }

// Selected returns the open drawing, if any.
func (s *Session) Selected() (state.SavedDrawing, bool) {
	if s.selected == nil {
		return state.SavedDrawing{}, false
	}
	return *s.selected, true
}

// Title is the name shown above the canvas.
func (s *Session) Title() string {
	switch {
	case s.selected != nil:
		return s.selected.Name
	case s.history.Len() > 0:
		return UntitledUnsavedTitle
	}
	return UntitledTitle
}

// HasUnsavedChanges reports edits made to the open drawing since it was
// opened or last saved.
func (s *Session) HasUnsavedChanges() bool {
	return s.selected != nil && s.history.Revision() != s.savedRevision
}

// Overwrites reports whether Save will overwrite the open drawing.
func (s *Session) Overwrites() bool {
	return s.selected != nil
}

// SuggestedName pre-fills the save prompt.
func (s *Session) SuggestedName() string {
	if s.selected != nil {
		return s.selected.Name
	}
	return ""
}

// Save overwrites the open drawing, or stores the document as a new
// drawing called name and opens it. The returned drawing is valid even
// when err reports a failed write.
func (s *Session) Save(name string) (state.SavedDrawing, error) {
	strokes := s.history.Strokes()
	if s.selected != nil {
		updated, ok, err := s.store.Update(*s.selected, strokes)
		if ok {
			s.markSaved(updated)
			return updated, err
		}
		// The open drawing was deleted behind our back; save a fresh copy.
		if name == "" {
			name = s.selected.Name
		}
	}
	d, err := s.store.Save(name, strokes)
	if errors.Is(err, store.ErrEmptyName) {
		return state.SavedDrawing{}, err
	}
	s.markSaved(d)
	return d, err
}

// Open loads a saved drawing into the working document.
func (s *Session) Open(d state.SavedDrawing) {
	s.history.LoadDocument(s.store.Load(d))
	s.markSaved(d)
}

// New starts an empty, unsaved drawing. The previous content stays reachable through undo.
func (s *Session) New() {
	s.selected = nil
	s.history.Clear()
	s.savedRevision = s.history.Revision()
}

// Delete removes a saved drawing. Deleting the open drawing also starts a new one.
func (s *Session) Delete(d state.SavedDrawing) error {
	err := s.store.Delete(d)
	if s.selected != nil && s.selected.ID == d.ID {
		s.New()
	}
	return err
}

func (s *Session) markSaved(d state.SavedDrawing) {
	s.selected = &d
	s.savedRevision = s.history.Revision()
}
