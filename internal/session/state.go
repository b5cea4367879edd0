// Package session holds the per-run state of one meeting-processing run: the
// run directory, artifact paths, and an explicit stage state machine. One
// session per run, passed to each stage; no module-level globals.
package session

import (
	"errors"
	"fmt"
	"sync"
)

// Stage represents how far a run has progressed.
type Stage int

const (
	// StageCreated - run directory exists, nothing processed yet.
	StageCreated Stage = iota
	// StageTranscribed - transcript segments are loaded.
	StageTranscribed
	// StageConversation - conversation document written.
	StageConversation
	// StageMinutes - minutes artifacts written. Terminal.
	StageMinutes
	// StageFailed - run aborted on error. Terminal.
	StageFailed
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageCreated:
		return "CREATED"
	case StageTranscribed:
		return "TRANSCRIBED"
	case StageConversation:
		return "CONVERSATION"
	case StageMinutes:
		return "MINUTES"
	case StageFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s)
	}
}

// IsTerminal returns true if the stage is terminal (MINUTES or FAILED).
func (s Stage) IsTerminal() bool {
	return s == StageMinutes || s == StageFailed
}

// Errors for invalid stage transitions.
var (
	ErrRunTerminal    = errors.New("run is in a terminal stage")
	ErrStageOutOfTurn = errors.New("stage advanced out of order")
)

// Tracker manages the stage state machine for a single run.
// Thread-safe for concurrent access.
//
// Stage transitions:
//
//	CREATED → TRANSCRIBED → CONVERSATION → MINUTES
//	   │           │              │
//	   └───────────┴──────────────┴── Fail() ──→ FAILED
type Tracker struct {
	mu    sync.RWMutex
	stage Stage
}

// NewTracker creates a stage tracker in CREATED state.
func NewTracker() *Tracker {
	return &Tracker{stage: StageCreated}
}

// Stage returns the current stage.
func (t *Tracker) Stage() Stage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stage
}

// Advance moves the run to the next stage. It enforces strict ordering: each
// stage may only follow its predecessor, and terminal stages reject further
// transitions.
func (t *Tracker) Advance(next Stage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stage.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrRunTerminal, t.stage)
	}
	if next != t.stage+1 || next == StageFailed {
		return fmt.Errorf("%w: %s -> %s", ErrStageOutOfTurn, t.stage, next)
	}
	t.stage = next
	return nil
}

// Fail moves the run to FAILED from any non-terminal stage.
// Returns false if the run was already terminal.
func (t *Tracker) Fail() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stage.IsTerminal() {
		return false
	}
	t.stage = StageFailed
	return true
}
