package store

import (
	"fmt"
	"log"
	"sort"
	"time"

	"MyDrawingPad/internal/state"

	"github.com/google/uuid"
)

// Store owns the saved drawings: an in-memory index loaded once at startup
// and the durable records behind it. Write failures are logged and
// returned but never roll back the index, so the index can run ahead of
// the medium until the next successful write.
type Store struct {
	records  Records
	log      *log.Logger
	drawings []state.SavedDrawing

	now   func() time.Time
	newID func() uuid.UUID
}

// New loads the index from records. Records that fail to decode are skipped.
func New(records Records, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		records: records,
		log:     logger,
		now:     time.Now,
		newID:   uuid.New,
	}
	s.load()
	return s
}

func (s *Store) load() {
	all, err := s.records.ReadAll()
	if err != nil {
		s.log.Printf("[STORE] Could not enumerate drawings: %v", err)
		return
	}
	drawings := make([]state.SavedDrawing, 0, len(all))
	for _, r := range all {
		d, err := Decode(r.Data)
		if err != nil {
			continue
		}
		drawings = append(drawings, d)
	}
	sort.SliceStable(drawings, func(i, j int) bool {
		return drawings[i].Date.After(drawings[j].Date)
	})
	s.drawings = drawings
	s.log.Printf("[STORE] Loaded %d drawings (%d records)", len(drawings), len(all))
}

// List returns the index: loaded drawings newest first, followed by those
// saved during this session in save order.
func (s *Store) List() []state.SavedDrawing {
	out := make([]state.SavedDrawing, len(s.drawings))
	copy(out, s.drawings)
	return out
}

// Get looks a drawing up by ID.
func (s *Store) Get(id uuid.UUID) (state.SavedDrawing, error) {
	if i := s.indexOf(id); i >= 0 {
		return s.drawings[i], nil
	}
	return state.SavedDrawing{}, ErrNotFound
}

// Save stores strokes as a new drawing. The drawing is added to the index
// even when the write fails; the write error is returned alongside it.
func (s *Store) Save(name string, strokes []state.Stroke) (state.SavedDrawing, error) {
	if name == "" {
		return state.SavedDrawing{}, ErrEmptyName
	}
	d := state.SavedDrawing{
		ID:    s.newID(),
		Name:  name,
		Date:  s.timestamp(),
		Paths: state.CloneStrokes(strokes),
	}
	s.drawings = append(s.drawings, d)

	if err := s.write(d); err != nil {
		s.log.Printf("[STORE] Failed to save drawing %q: %v", name, err)
		return d, err
	}
	s.log.Printf("[STORE] Saved drawing %q (%s, %d strokes)", name, d.ID, len(d.Paths))
	return d, nil
}

// Update overwrites the strokes of an existing drawing, keeping its ID and
// name. Unknown drawings are left alone and reported with ok == false.
func (s *Store) Update(existing state.SavedDrawing, strokes []state.Stroke) (updated state.SavedDrawing, ok bool, err error) {
	i := s.indexOf(existing.ID)
	if i < 0 {
		return state.SavedDrawing{}, false, nil
	}
	date := s.timestamp()
	if prev := s.drawings[i].Date; !date.After(prev) {
		date = prev.Add(time.Second)
	}
	d := state.SavedDrawing{
		ID:    s.drawings[i].ID,
		Name:  s.drawings[i].Name,
		Date:  date,
		Paths: state.CloneStrokes(strokes),
	}
	s.drawings[i] = d

	if err := s.write(d); err != nil {
		s.log.Printf("[STORE] Failed to update drawing %q: %v", d.Name, err)
		return d, true, err
	}
	s.log.Printf("[STORE] Updated drawing %q (%d strokes)", d.Name, len(d.Paths))
	return d, true, nil
}

// Delete removes a drawing from the index and the medium.
func (s *Store) Delete(d state.SavedDrawing) error {
	if i := s.indexOf(d.ID); i >= 0 {
		s.drawings = append(s.drawings[:i], s.drawings[i+1:]...)
	}
	if err := s.records.Remove(d.ID.String()); err != nil {
		s.log.Printf("[STORE] Failed to remove drawing %s: %v", d.ID, err)
		return err
	}
	s.log.Printf("[STORE] Deleted drawing %s", d.ID)
	return nil
}

// Load returns the strokes held by a listed drawing. No I/O is involved.
func (s *Store) Load(d state.SavedDrawing) []state.Stroke {
	return state.CloneStrokes(d.Paths)
}

// Close releases the medium.
func (s *Store) Close() error {
	return s.records.Close()
}

// timestamp is the current time in UTC, to the whole second, so records
// stay readable by plain ISO-8601 parsers that reject fractional seconds.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

func (s *Store) write(d state.SavedDrawing) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	if err := s.records.Write(d.ID.String(), data); err != nil {
		return fmt.Errorf("failed to persist drawing %s: %w", d.ID, err)
	}
	return nil
}

func (s *Store) indexOf(id uuid.UUID) int {
	for i, d := range s.drawings {
		if d.ID == id {
			return i
		}
	}
	return -1
}
