// Package diarize supplies the speaker-turn input of the pipeline. The
// diarization engine itself is a black box; this package loads its persisted
// output (turns JSON or RTTM) or shells out to a helper process that runs
// the model and prints turns JSON.
package diarize

import (
	"context"

	"meeting-minutes-pipeline/internal/models"
)

// Source produces the full speaker-turn list for a recording. No ordering is
// guaranteed; the assignment engine sorts.
type Source interface {
	Turns(ctx context.Context) ([]models.DiarizationTurn, error)
}

// FileSource reads persisted diarization output, dispatching on the file
// extension: ".rttm" is parsed as RTTM, everything else as a JSON array of
// {start, end, speaker} objects.
type FileSource struct {
	Path string
}

// Turns implements Source.
func (f FileSource) Turns(_ context.Context) ([]models.DiarizationTurn, error) {
	if isRTTM(f.Path) {
		return LoadRTTM(f.Path)
	}
	return LoadTurnsJSON(f.Path)
}
