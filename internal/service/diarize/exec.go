package diarize

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"meeting-minutes-pipeline/internal/models"
)

// ExecSource runs an external diarization helper (a pyannote wrapper script)
// and parses the turns JSON it prints on stdout. The helper contract:
//
//	<python> <script> --audio <path> [--num-speakers N]
//
// with HF_TOKEN taken from the process environment, printing a JSON array of
// {start, end, speaker} objects.
type ExecSource struct {
	Python      string // interpreter, default "python3"
	Script      string // helper script path
	AudioPath   string
	NumSpeakers int // 0 means let the model decide
}

// Turns implements Source.
func (e ExecSource) Turns(ctx context.Context) ([]models.DiarizationTurn, error) {
	if _, err := os.Stat(e.AudioPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: audio %s", models.ErrNotFound, e.AudioPath)
		}
		return nil, fmt.Errorf("stat audio: %w", err)
	}

	python := e.Python
	if python == "" {
		python = "python3"
	}
	args := []string{e.Script, "--audio", e.AudioPath}
	if e.NumSpeakers > 0 {
		args = append(args, "--num-speakers", strconv.Itoa(e.NumSpeakers))
	}

	cmd := exec.CommandContext(ctx, python, args...)
	cmd.Env = os.Environ()
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("diarization helper failed: %s", strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("run diarization helper: %w", err)
	}

	var turns []models.DiarizationTurn
	if err := json.Unmarshal(out, &turns); err != nil {
		return nil, fmt.Errorf("%w: diarization helper output: %v", models.ErrMalformedInput, err)
	}
	for i, t := range turns {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("turn %d: %w", i, err)
		}
	}
	return turns, nil
}
