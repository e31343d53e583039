package store

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestBoltRecords_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawings.db")
	records, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt failed: %v", err)
	}
	s := New(records, quietLogger())
	strokes := sampleStrokes()
	keep, _ := s.Save("keep", strokes)
	gone, _ := s.Save("gone", strokes)
	if err := s.Delete(gone); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	records, err = OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer records.Close()
	list := New(records, quietLogger()).List()
	if len(list) != 1 {
		t.Fatalf("expected 1 drawing, got %d", len(list))
	}
	if list[0].ID != keep.ID || !reflect.DeepEqual(list[0].Paths, strokes) {
		t.Errorf("unexpected drawing after reopen: %+v", list[0])
	}
}

func TestBoltRecords_RemoveMissing(t *testing.T) {
	records, err := OpenBolt(filepath.Join(t.TempDir(), "d.db"))
	if err != nil {
		t.Fatalf("OpenBolt failed: %v", err)
	}
	defer records.Close()
	if err := records.Remove("nope"); err != nil {
		t.Errorf("removing a missing key should succeed, got %v", err)
	}
}
