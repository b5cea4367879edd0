package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_CreatesRunDirectory(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	fi, err := os.Stat(s.Dir)
	if err != nil || !fi.IsDir() {
		t.Fatalf("run directory was not created: %v", err)
	}
	if filepath.Dir(s.Dir) != root {
		t.Errorf("run directory %s not under root %s", s.Dir, root)
	}
	if s.ID == "" {
		t.Error("expected non-empty run ID")
	}
	if !strings.HasSuffix(s.Dir, s.ID) {
		t.Errorf("run directory %s should end with run ID %s", s.Dir, s.ID)
	}
	if s.Stages.Stage() != StageCreated {
		t.Errorf("expected CREATED stage, got %s", s.Stages.Stage())
	}
}

func TestNew_DistinctDirsPerRun(t *testing.T) {
	root := t.TempDir()
	a, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	if a.Dir == b.Dir {
		t.Errorf("two runs share a directory: %s", a.Dir)
	}
}

func TestArtifactPaths_UnderRunDir(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	paths := map[string]string{
		"speaker map":  s.SpeakerMapPath(),
		"conversation": s.ConversationPath(),
		"transcript":   s.TranscriptTextPath(),
		"minutes":      s.MinutesPath(),
		"actions":      s.ActionsCSVPath(),
	}
	for name, p := range paths {
		if filepath.Dir(p) != s.Dir {
			t.Errorf("%s path %s not under run dir %s", name, p, s.Dir)
		}
	}
	if filepath.Base(s.SpeakerMapPath()) != "speaker_map.json" {
		t.Errorf("unexpected speaker map filename: %s", s.SpeakerMapPath())
	}
}

func TestOpen(t *testing.T) {
	root := t.TempDir()
	created, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	opened, err := Open(created.Dir)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if opened.Dir != created.Dir {
		t.Errorf("expected dir %s, got %s", created.Dir, opened.Dir)
	}

	if _, err := Open(filepath.Join(root, "missing")); err == nil {
		t.Error("expected error opening missing directory")
	}
}
