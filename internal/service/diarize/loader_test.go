package diarize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"meeting-minutes-pipeline/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTurnsJSON_Valid(t *testing.T) {
	path := writeFile(t, "turns.json", `[
		{"start": 0.0, "end": 4.2, "speaker": "SPEAKER_00"},
		{"start": 4.0, "end": 7.5, "speaker": "SPEAKER_01"}
	]`)

	turns, err := LoadTurnsJSON(path)
	if err != nil {
		t.Fatalf("LoadTurnsJSON returned error: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[1].Speaker != "SPEAKER_01" || turns[1].End != 7.5 {
		t.Errorf("unexpected turn: %+v", turns[1])
	}
}

func TestLoadTurnsJSON_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTurnsJSON(filepath.Join(t.TempDir(), "nope.json"))
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `[{`},
		{"missing speaker", `[{"start":0,"end":1,"speaker":""}]`},
		{"end before start", `[{"start":5,"end":1,"speaker":"A"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTurnsJSON(writeFile(t, "turns.json", tt.content))
			if !errors.Is(err, models.ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestLoadRTTM(t *testing.T) {
	path := writeFile(t, "meeting.rttm", `; comment line
SPEAKER meeting 1 0.50 3.20 <NA> <NA> SPEAKER_00 <NA> <NA>
SPEAKER meeting 1 4.00 2.00 <NA> <NA> SPEAKER_01 <NA> <NA>
SPKR-INFO meeting 1 <NA> <NA> <NA> unknown SPEAKER_00 <NA>

SPEAKER meeting 1 6.10 1.00 <NA> <NA> SPEAKER_00 <NA> <NA>
`)

	turns, err := LoadRTTM(path)
	if err != nil {
		t.Fatalf("LoadRTTM returned error: %v", err)
	}
	want := []models.DiarizationTurn{
		{Start: 0.5, End: 3.7, Speaker: "SPEAKER_00"},
		{Start: 4.0, End: 6.0, Speaker: "SPEAKER_01"},
		{Start: 6.1, End: 7.1, Speaker: "SPEAKER_00"},
	}
	if len(turns) != len(want) {
		t.Fatalf("expected %d turns, got %d", len(want), len(turns))
	}
	for i, w := range want {
		got := turns[i]
		if got.Speaker != w.Speaker || !approxEqual(got.Start, w.Start) || !approxEqual(got.End, w.End) {
			t.Errorf("turn %d: expected %+v, got %+v", i, w, got)
		}
	}
}

func approxEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestLoadRTTM_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"too few fields", "SPEAKER meeting 1 0.5\n"},
		{"bad onset", "SPEAKER meeting 1 abc 3.2 <NA> <NA> SPEAKER_00 <NA> <NA>\n"},
		{"bad duration", "SPEAKER meeting 1 0.5 xyz <NA> <NA> SPEAKER_00 <NA> <NA>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRTTM(writeFile(t, "bad.rttm", tt.content))
			if !errors.Is(err, models.ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestFileSource_DispatchesOnExtension(t *testing.T) {
	jsonPath := writeFile(t, "turns.json", `[{"start":0,"end":1,"speaker":"A"}]`)
	rttmPath := writeFile(t, "turns.rttm", "SPEAKER f 1 0.0 1.0 <NA> <NA> B <NA> <NA>\n")

	jt, err := FileSource{Path: jsonPath}.Turns(context.Background())
	if err != nil || len(jt) != 1 || jt[0].Speaker != "A" {
		t.Errorf("json dispatch failed: %v %v", jt, err)
	}
	rt, err := FileSource{Path: rttmPath}.Turns(context.Background())
	if err != nil || len(rt) != 1 || rt[0].Speaker != "B" {
		t.Errorf("rttm dispatch failed: %v %v", rt, err)
	}
}

func TestLoadTurnsJSON_Empty(t *testing.T) {
	turns, err := LoadTurnsJSON(writeFile(t, "turns.json", `[]`))
	if err != nil {
		t.Fatalf("zero turns is a valid degenerate case, got error: %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("expected empty slice, got %d", len(turns))
	}
}
