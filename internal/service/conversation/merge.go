package conversation

import (
	"strings"

	"meeting-minutes-pipeline/internal/models"
)

// DefaultMaxGap is the merge gap tolerance in seconds: consecutive segments
// of the same speaker at most this far apart become one conversational turn.
const DefaultMaxGap = 0.5

// Merge coalesces runs of consecutive same-speaker segments whose
// inter-segment gap is at most maxGap seconds. Text is joined with single
// spaces in original order, the run's start is the first constituent's start
// and its end the last constituent's end. Overlapping segments (negative
// gap) satisfy the gap test and merge; the overlap is not clamped.
//
// The input is not mutated. Output length is at most the input length, and
// the space-joined concatenation of all output text equals that of the
// input.
func Merge(assigned []models.LabeledSegment, maxGap float64) []models.LabeledSegment {
	merged := make([]models.LabeledSegment, 0, len(assigned))
	for _, seg := range assigned {
		if n := len(merged); n > 0 {
			acc := &merged[n-1]
			if seg.Speaker == acc.Speaker && seg.Start-acc.End <= maxGap {
				acc.End = seg.End
				acc.Text = strings.TrimSpace(acc.Text + " " + seg.Text)
				continue
			}
		}
		seg.Text = strings.TrimSpace(seg.Text)
		merged = append(merged, seg)
	}
	return merged
}
