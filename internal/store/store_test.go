package store

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"MyDrawingPad/internal/state"
)

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

func sampleStrokes() []state.Stroke {
	return []state.Stroke{
		state.NewStroke([]state.Point{{X: 1.5, Y: 2.25}, {X: 3, Y: 4}, {X: 0, Y: 9.75}},
			state.Color{Red: 0.1, Green: 0.2, Blue: 0.3, Alpha: 0.4}, 8, false),
		state.NewStroke([]state.Point{{X: 10, Y: 10}}, state.Black, 3, false),
		state.NewStroke([]state.Point{{X: 2, Y: 2}, {X: 5, Y: 5}}, state.Black, 12, true),
	}
}

func openDir(t *testing.T, dir string) *Store {
	t.Helper()
	records, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir failed: %v", err)
	}
	return New(records, quietLogger())
}

// fakeClock returns strictly increasing times.
func fakeClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func TestStore_SaveAndReload(t *testing.T) {
	dir := t.TempDir()
	s := openDir(t, dir)

	strokes := sampleStrokes()
	saved, err := s.Save("sketch", strokes)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.Name != "sketch" {
		t.Errorf("expected name 'sketch', got %q", saved.Name)
	}
	if _, err := os.Stat(filepath.Join(dir, saved.ID.String()+".json")); err != nil {
		t.Fatalf("expected a record named after the drawing ID: %v", err)
	}

	reloaded := openDir(t, dir).List()
	if len(reloaded) != 1 {
		t.Fatalf("expected 1 drawing after reload, got %d", len(reloaded))
	}
	got := reloaded[0]
	if got.ID != saved.ID || got.Name != saved.Name || !got.Date.Equal(saved.Date) {
		t.Errorf("identity changed: %+v vs %+v", got, saved)
	}
	if !reflect.DeepEqual(got.Paths, strokes) {
		t.Errorf("strokes did not round-trip:\n got %+v\nwant %+v", got.Paths, strokes)
	}
}

func TestStore_SaveEmptyName(t *testing.T) {
	s := openDir(t, t.TempDir())
	if _, err := s.Save("", nil); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if len(s.List()) != 0 {
		t.Error("nothing should be indexed")
	}
}

func TestStore_Update(t *testing.T) {
	dir := t.TempDir()
	s := openDir(t, dir)
	s.now = fakeClock(time.Date(2025, 11, 26, 9, 0, 0, 0, time.UTC))

	saved, _ := s.Save("plan", sampleStrokes()[:1])
	replacement := sampleStrokes()[1:]

	updated, ok, err := s.Update(saved, replacement)
	if err != nil || !ok {
		t.Fatalf("Update failed: ok=%v err=%v", ok, err)
	}
	if updated.ID != saved.ID || updated.Name != saved.Name {
		t.Errorf("update must keep id and name")
	}
	if !updated.Date.After(saved.Date) {
		t.Errorf("expected a newer timestamp, got %v (was %v)", updated.Date, saved.Date)
	}

	list := openDir(t, dir).List()
	if len(list) != 1 {
		t.Fatalf("expected 1 drawing, got %d", len(list))
	}
	if !reflect.DeepEqual(list[0].Paths, replacement) {
		t.Errorf("durable record was not rewritten")
	}
}

func TestStore_UpdateUnknownIsNoop(t *testing.T) {
	s := openDir(t, t.TempDir())
	kept, _ := s.Save("kept", sampleStrokes())

	ghost := kept
	ghost.ID = [16]byte{1}
	_, ok, err := s.Update(ghost, nil)
	if ok || err != nil {
		t.Fatalf("expected silent no-op, got ok=%v err=%v", ok, err)
	}
	list := s.List()
	if len(list) != 1 || !reflect.DeepEqual(list[0], kept) {
		t.Errorf("index changed: %+v", list)
	}
}

func TestStore_Delete(t *testing.T) {
	dir := t.TempDir()
	s := openDir(t, dir)
	a, _ := s.Save("a", sampleStrokes())
	b, _ := s.Save("b", sampleStrokes())

	if err := s.Delete(a); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(a); err != nil {
		t.Errorf("deleting a missing record should not fail: %v", err)
	}

	list := openDir(t, dir).List()
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("expected only %q to remain, got %+v", b.Name, list)
	}
}

func TestStore_LoadSortsAndSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	s := openDir(t, dir)
	s.now = fakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	oldest, _ := s.Save("oldest", nil)
	middle, _ := s.Save("middle", nil)
	newest, _ := s.Save("newest", nil)

	os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644)
	os.WriteFile(filepath.Join(dir, "empty.json"), []byte("{}"), 0o644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644)

	list := openDir(t, dir).List()
	if len(list) != 3 {
		t.Fatalf("expected 3 drawings, got %d", len(list))
	}
	want := []string{newest.Name, middle.Name, oldest.Name}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, list[i].Name)
		}
	}
}

func TestStore_LoadIsPureAccessor(t *testing.T) {
	s := openDir(t, t.TempDir())
	strokes := sampleStrokes()
	saved, _ := s.Save("x", strokes)

	got := s.Load(saved)
	if !reflect.DeepEqual(got, strokes) {
		t.Fatal("Load should return the drawing's strokes")
	}
	got[0] = state.Stroke{}
	if reflect.DeepEqual(s.Load(saved), got) {
		t.Error("Load must return a copy")
	}
}

type failingRecords struct {
	writes int
}

func (f *failingRecords) ReadAll() ([]Record, error) { return nil, nil }
func (f *failingRecords) Write(string, []byte) error { f.writes++; return errors.New("disk full") }
func (f *failingRecords) Remove(string) error        { return nil }
func (f *failingRecords) Close() error               { return nil }

func TestStore_WriteFailureKeepsIndex(t *testing.T) {
	records := &failingRecords{}
	var logs bytes.Buffer
	s := New(records, log.New(&logs, "", 0))

	d, err := s.Save("unlucky", sampleStrokes())
	if err == nil {
		t.Fatal("expected the write error to be reported")
	}
	if len(s.List()) != 1 || s.List()[0].ID != d.ID {
		t.Fatal("save must not be rolled back on write failure")
	}

	_, ok, err := s.Update(d, nil)
	if !ok || err == nil {
		t.Fatalf("expected update to apply in memory and report the error, ok=%v err=%v", ok, err)
	}
	if len(s.List()[0].Paths) != 0 {
		t.Error("update must not be rolled back on write failure")
	}
	if records.writes != 2 {
		t.Errorf("expected 2 write attempts, got %d", records.writes)
	}
	if logs.Len() == 0 {
		t.Error("write failures should be logged")
	}
}
