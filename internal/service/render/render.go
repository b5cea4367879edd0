// Package render formats a merged conversation into the text document
// consumed by the minutes stage. The line format is a compatibility
// boundary: the minutes prompt tells the LLM to look for [H:MM:SS]
// timestamps on the lines.
package render

import (
	"fmt"
	"math"
	"strings"

	"meeting-minutes-pipeline/internal/models"
)

// Conversation renders one line per segment, "[H:MM:SS] speaker: text" when
// timestamps are requested, "speaker: text" otherwise. Lines are joined with
// newlines and the document ends with a trailing newline.
func Conversation(segments []models.LabeledSegment, timestamps bool) string {
	var b strings.Builder
	for _, s := range segments {
		if timestamps {
			fmt.Fprintf(&b, "[%s] %s: %s\n", Clock(s.Start), s.Speaker, s.Text)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", s.Speaker, s.Text)
		}
	}
	return b.String()
}

// Clock formats seconds as H:MM:SS, hours unpadded, rounded to the nearest
// whole second.
func Clock(seconds float64) string {
	total := int(math.Round(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
