package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Record is one serialized drawing and the key it is stored under.
type Record struct {
	Key  string
	Data []byte
}

// Records is the durable medium behind a Store: a flat key-value space
// holding one record per drawing.
type Records interface {
	// ReadAll returns every record. Records that cannot be read are skipped.
	ReadAll() ([]Record, error)

	// Write creates or replaces the record under key.
	Write(key string, data []byte) error

	// Remove deletes the record under key. A missing record is not an error.
	Remove(key string) error

	Close() error
}

const recordExt = ".json"

// DirRecords keeps each record in its own <key>.json file inside a directory.
type DirRecords struct {
	dir string
}

var _ Records = (*DirRecords)(nil)

// OpenDir creates the directory if needed.
func OpenDir(dir string) (*DirRecords, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create drawings directory: %w", err)
	}
	return &DirRecords{dir: dir}, nil
}

// Dir returns the backing directory.
func (d *DirRecords) Dir() string {
	return d.dir
}

func (d *DirRecords) path(key string) string {
	return filepath.Join(d.dir, key+recordExt)
}

func (d *DirRecords) ReadAll() ([]Record, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", d.dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != recordExt {
			continue
		}
		data, err := os.ReadFile(filepath.Join(d.dir, name))
		if err != nil {
			continue
		}
		records = append(records, Record{Key: strings.TrimSuffix(name, recordExt), Data: data})
	}
	return records, nil
}

// Write replaces the file through a temporary file and a rename so a
// failed write never leaves a truncated record behind.
func (d *DirRecords) Write(key string, data []byte) error {
	tmp, err := os.CreateTemp(d.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, d.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (d *DirRecords) Remove(key string) error {
	err := os.Remove(d.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (d *DirRecords) Close() error { return nil }
