package store

import (
	"encoding/json"
	"fmt"

	"MyDrawingPad/internal/state"

	"github.com/google/uuid"
)

// Encode serializes a drawing into its durable record form.
func Encode(d state.SavedDrawing) ([]byte, error) {
	if d.Paths == nil {
		d.Paths = []state.Stroke{}
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode drawing %s: %w", d.ID, err)
	}
	return data, nil
}

// Decode parses a durable record.
func Decode(data []byte) (state.SavedDrawing, error) {
	var d state.SavedDrawing
	if err := json.Unmarshal(data, &d); err != nil {
		return state.SavedDrawing{}, fmt.Errorf("failed to decode drawing: %w", err)
	}
	if d.ID == uuid.Nil {
		return state.SavedDrawing{}, fmt.Errorf("failed to decode drawing: missing id")
	}
	if d.Paths == nil {
		d.Paths = []state.Stroke{}
	}
	for i, p := range d.Paths {
		if len(p.Points) == 0 || p.LineWidth <= 0 {
			return state.SavedDrawing{}, fmt.Errorf("failed to decode drawing %s: stroke %d has no points or no width", d.ID, i)
		}
	}
	return d, nil
}
