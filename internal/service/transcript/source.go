// Package transcript supplies the transcribed-segment input of the pipeline.
// The speech-recognition engine itself is a black box; this package loads
// its persisted output (a whisper-style JSON document) or delegates to a
// provider adapter.
package transcript

import (
	"context"

	"meeting-minutes-pipeline/internal/models"
)

// Source produces the full ordered segment list for a recording. Sources are
// batch interfaces: the transcript is only available once the upstream model
// invocation has completed in full.
type Source interface {
	// Segments returns the transcribed segments, ordered by start time.
	Segments(ctx context.Context) ([]models.TranscribedSegment, error)
}

// FileSource reads a previously persisted whisper-style transcript JSON.
type FileSource struct {
	Path string
}

// Segments implements Source.
func (f FileSource) Segments(_ context.Context) ([]models.TranscribedSegment, error) {
	return LoadWhisperJSON(f.Path)
}
