// Package conversation fuses transcription output and diarization output
// into a single ordered, speaker-labeled conversation. Assignment picks the
// diarization turn with maximal temporal overlap for each transcribed
// segment; merging coalesces adjacent same-speaker segments into
// conversational turns. Both operations are pure functions over their inputs.
package conversation

import (
	"fmt"
	"sort"

	"meeting-minutes-pipeline/internal/models"
)

// Assign attributes a speaker label to every transcribed segment by maximal
// temporal overlap with the diarization turns. It is length- and
// order-preserving: exactly one LabeledSegment is returned per input segment,
// in input order. Segments that no turn overlaps get models.UnknownSpeaker.
//
// Turns need not arrive sorted; they are stably sorted by start before the
// scan. Segments must already be ordered by start (the transcription
// collaborator guarantees this), which lets a single monotonic cursor skip
// turns that ended before the current segment, making the whole pass
// O(len(segments) + len(turns)).
//
// Tie-break: among turns with equal maximal nonzero overlap, the first one
// encountered in the forward scan (the earliest-starting) wins. The
// comparison is strictly greater-than, so zero-overlap turns never displace
// the UnknownSpeaker default.
func Assign(segments []models.TranscribedSegment, turns []models.DiarizationTurn) ([]models.LabeledSegment, error) {
	for i, s := range segments {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	for i, t := range turns {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("turn %d: %w", i, err)
		}
	}

	sorted := make([]models.DiarizationTurn, len(turns))
	copy(sorted, turns)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	assigned := make([]models.LabeledSegment, 0, len(segments))
	j := 0
	for _, seg := range segments {
		// Turns ending before this segment starts cannot overlap it or any
		// later segment; the cursor never moves backwards.
		for j < len(sorted) && sorted[j].End < seg.Start {
			j++
		}

		best := models.UnknownSpeaker
		bestOverlap := 0.0
		for k := j; k < len(sorted) && sorted[k].Start < seg.End; k++ {
			if ov := overlap(seg.Start, seg.End, sorted[k].Start, sorted[k].End); ov > bestOverlap {
				bestOverlap = ov
				best = sorted[k].Speaker
			}
		}

		assigned = append(assigned, models.LabeledSegment{
			Start:   seg.Start,
			End:     seg.End,
			Speaker: best,
			Text:    seg.Text,
		})
	}
	return assigned, nil
}

// overlap returns the duration during which [a0,a1) and [b0,b1) both hold.
func overlap(a0, a1, b0, b1 float64) float64 {
	lo := a0
	if b0 > lo {
		lo = b0
	}
	hi := a1
	if b1 < hi {
		hi = b1
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}
