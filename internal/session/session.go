package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Session owns the artifacts of one meeting-processing run. Concurrent runs
// must use distinct run directories; the session provides that by stamping
// each run directory with time and a fresh ID.
type Session struct {
	ID        string
	Dir       string
	CreatedAt time.Time
	Stages    *Tracker
}

// New creates the run directory under outRoot and returns the session.
func New(outRoot string) (*Session, error) {
	now := time.Now()
	id := uuid.NewString()[:8]
	dir := filepath.Join(outRoot, fmt.Sprintf("%s_%s", now.Format("20060102_1504"), id))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	return &Session{
		ID:        id,
		Dir:       dir,
		CreatedAt: now,
		Stages:    NewTracker(),
	}, nil
}

// Open wraps an existing run directory, for re-applying an edited speaker
// map or regenerating minutes without redoing upstream stages.
func Open(dir string) (*Session, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open run directory: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("open run directory: %s is not a directory", dir)
	}
	return &Session{
		ID:        filepath.Base(dir),
		Dir:       dir,
		CreatedAt: fi.ModTime(),
		Stages:    NewTracker(),
	}, nil
}

// SpeakerMapPath is where the label to display-name map is persisted.
func (s *Session) SpeakerMapPath() string { return filepath.Join(s.Dir, "speaker_map.json") }

// ConversationPath is where the rendered conversation document is written.
func (s *Session) ConversationPath() string { return filepath.Join(s.Dir, "conversation.md") }

// TranscriptTextPath is where the plain transcript text is written.
func (s *Session) TranscriptTextPath() string { return filepath.Join(s.Dir, "transcript.txt") }

// MinutesPath is where the minutes markdown is written.
func (s *Session) MinutesPath() string { return filepath.Join(s.Dir, "minutes.md") }

// ActionsCSVPath is where the action-item CSV is written.
func (s *Session) ActionsCSVPath() string { return filepath.Join(s.Dir, "actions.csv") }
