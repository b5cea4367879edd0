// Package speakermap maps raw diarization labels (e.g. "SPEAKER_00") to
// human display names. The map is the only stateful entity in the pipeline:
// it is persisted as JSON in the run directory, edited by the user, and
// re-applied without re-running diarization.
package speakermap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"meeting-minutes-pipeline/internal/models"
)

// Map associates a raw speaker label with a display name. An empty display
// name means "not yet renamed": Apply passes the raw label through.
type Map map[string]string

// Load reads a persisted map from path. A missing file is reported as
// models.ErrNotFound; invalid JSON as models.ErrMalformedInput.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: speaker map %s", models.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read speaker map: %w", err)
	}
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: speaker map %s: %v", models.ErrMalformedInput, path, err)
	}
	return m, nil
}

// LoadOrCreate returns the persisted map verbatim if path exists. Otherwise
// it builds a template with one empty entry per distinct speaker label found
// in segments (sorted by label), writes it to path for the user to edit, and
// returns it.
func LoadOrCreate(path string, segments []models.LabeledSegment) (Map, error) {
	m, err := Load(path)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	m = Template(segments)
	if err := Save(path, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Save persists the map as indented JSON for the user to edit.
func Save(path string, m Map) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode speaker map: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write speaker map: %w", err)
	}
	return nil
}

// Template builds an unnamed map with one entry per distinct label.
func Template(segments []models.LabeledSegment) Map {
	m := Map{}
	for _, s := range segments {
		m[s.Speaker] = ""
	}
	return m
}

// Labels returns the map's raw labels in sorted order.
func (m Map) Labels() []string {
	labels := make([]string, 0, len(m))
	for l := range m {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Apply returns a copy of segments with each speaker replaced by its display
// name when the map has a non-empty entry for it. Labels absent from the map
// and labels mapped to the empty string pass through unchanged, which is
// what makes a partial map usable and re-application idempotent: a second
// pass looks up already-replaced display names, finds nothing, and leaves
// them alone. Neither segments nor the map are mutated.
func Apply(segments []models.LabeledSegment, m Map) []models.LabeledSegment {
	out := make([]models.LabeledSegment, len(segments))
	copy(out, segments)
	for i := range out {
		if name, ok := m[out[i].Speaker]; ok && name != "" {
			out[i].Speaker = name
		}
	}
	return out
}
