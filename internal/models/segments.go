// Package models defines the data structures shared by the pipeline stages.
package models

import "fmt"

// UnknownSpeaker is assigned to segments that no diarization turn overlaps.
const UnknownSpeaker = "UNKNOWN"

// TranscribedSegment is a time-bounded span of transcribed speech as produced
// by the transcription collaborator. Intervals are half-open [Start, End) in
// seconds from the beginning of the recording.
type TranscribedSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Validate checks the interval invariants.
func (s TranscribedSegment) Validate() error {
	if s.Start < 0 {
		return fmt.Errorf("%w: segment start %v is negative", ErrMalformedInput, s.Start)
	}
	if s.End < s.Start {
		return fmt.Errorf("%w: segment end %v before start %v", ErrMalformedInput, s.End, s.Start)
	}
	return nil
}

// DiarizationTurn is a time interval attributed by the diarization
// collaborator to one anonymous speaker. Labels are opaque and stable within
// a single diarization run only. Turns of different speakers may overlap
// (simultaneous speech); turns of one speaker do not.
type DiarizationTurn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Validate checks the interval invariants and label presence.
func (t DiarizationTurn) Validate() error {
	if t.Speaker == "" {
		return fmt.Errorf("%w: turn [%v,%v) has no speaker label", ErrMalformedInput, t.Start, t.End)
	}
	if t.Start < 0 {
		return fmt.Errorf("%w: turn start %v is negative", ErrMalformedInput, t.Start)
	}
	if t.End < t.Start {
		return fmt.Errorf("%w: turn end %v before start %v", ErrMalformedInput, t.End, t.Start)
	}
	return nil
}

// LabeledSegment is a transcribed segment with a speaker attribution. The
// assignment stage produces one per input segment (Speaker is UnknownSpeaker
// when nothing overlapped); the merge stage coalesces runs of them into
// conversational turns of the same shape.
type LabeledSegment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
}
