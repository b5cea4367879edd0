package transcript

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"meeting-minutes-pipeline/internal/models"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWhisperJSON_Valid(t *testing.T) {
	path := writeFile(t, `{
		"text": "hi there bye",
		"language": "en",
		"segments": [
			{"id": 0, "start": 0.0, "end": 2.0, "text": " hi there "},
			{"id": 1, "start": 2.0, "end": 4.5, "text": "bye"}
		]
	}`)

	segments, err := LoadWhisperJSON(path)
	if err != nil {
		t.Fatalf("LoadWhisperJSON returned error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "hi there" {
		t.Errorf("expected trimmed text 'hi there', got %q", segments[0].Text)
	}
	if segments[1].Start != 2.0 || segments[1].End != 4.5 {
		t.Errorf("unexpected interval: [%v,%v)", segments[1].Start, segments[1].End)
	}
}

func TestLoadWhisperJSON_MissingFile(t *testing.T) {
	_, err := LoadWhisperJSON(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadWhisperJSON_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `{"segments": [`},
		{"segment missing text", `{"segments":[{"start":0,"end":1}]}`},
		{"segment missing start", `{"segments":[{"end":1,"text":"x"}]}`},
		{"segment missing end", `{"segments":[{"start":0,"text":"x"}]}`},
		{"end before start", `{"segments":[{"start":5,"end":2,"text":"x"}]}`},
		{"negative start", `{"segments":[{"start":-1,"end":2,"text":"x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWhisperJSON(writeFile(t, tt.content))
			if !errors.Is(err, models.ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestLoadWhisperJSON_EmptySegments(t *testing.T) {
	segments, err := LoadWhisperJSON(writeFile(t, `{"segments": []}`))
	if err != nil {
		t.Fatalf("zero segments is a valid degenerate case, got error: %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("expected empty slice, got %d segments", len(segments))
	}
}

func TestFileSource(t *testing.T) {
	path := writeFile(t, `{"segments":[{"start":0,"end":1,"text":"a"}]}`)
	src := FileSource{Path: path}
	segments, err := src.Segments(context.Background())
	if err != nil {
		t.Fatalf("Segments returned error: %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "a" {
		t.Errorf("unexpected segments: %v", segments)
	}
}
