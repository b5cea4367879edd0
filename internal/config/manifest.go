package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunManifest carries per-meeting metadata supplied by the user alongside
// the recording: the minutes title, who attended, and any speaker names
// already known up front (these seed the persisted speaker map so the user
// does not have to fill every entry by hand).
type RunManifest struct {
	Title     string            `yaml:"title"`
	Attendees []string          `yaml:"attendees"`
	Speakers  map[string]string `yaml:"speakers"`
	Language  string            `yaml:"language"`
}

// LoadManifest reads a YAML run manifest.
func LoadManifest(path string) (*RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m RunManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}
