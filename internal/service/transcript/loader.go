package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"meeting-minutes-pipeline/internal/models"
)

// whisperDocument is the subset of the whisper output JSON the pipeline
// consumes: a top-level "segments" array with start/end/text per element.
type whisperDocument struct {
	Segments []whisperSegment `json:"segments"`
}

type whisperSegment struct {
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	Text  *string  `json:"text"`
}

// LoadWhisperJSON reads and validates a persisted transcript document. A
// missing file is models.ErrNotFound; a segment missing start, end, or text,
// or with end < start, is models.ErrMalformedInput. Text is whitespace-
// trimmed. Zero segments is a valid degenerate case.
func LoadWhisperJSON(path string) ([]models.TranscribedSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: transcript JSON %s", models.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read transcript JSON: %w", err)
	}

	var doc whisperDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: transcript JSON %s: %v", models.ErrMalformedInput, path, err)
	}

	segments := make([]models.TranscribedSegment, 0, len(doc.Segments))
	for i, ws := range doc.Segments {
		if ws.Start == nil || ws.End == nil || ws.Text == nil {
			return nil, fmt.Errorf("%w: transcript segment %d missing start, end, or text", models.ErrMalformedInput, i)
		}
		seg := models.TranscribedSegment{
			Start: *ws.Start,
			End:   *ws.End,
			Text:  strings.TrimSpace(*ws.Text),
		}
		if err := seg.Validate(); err != nil {
			return nil, fmt.Errorf("transcript segment %d: %w", i, err)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}
