package minutes

import (
	"encoding/json"
	"regexp"
	"strings"

	"meeting-minutes-pipeline/internal/models"
)

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// ParseDocument extracts a MinutesDocument from raw model output. Models do
// not reliably honor "no markdown fences", so fenced blocks are unwrapped
// and, failing that, the outermost {...} span is tried. If nothing parses,
// a degraded document carrying the raw text (truncated) as the summary is
// returned so the pipeline still produces an artifact.
func ParseDocument(raw string) models.MinutesDocument {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.Trim(s, "`")
		// Drop the fence language line, if any.
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSpace(s)
	}

	var doc models.MinutesDocument
	if err := json.Unmarshal([]byte(s), &doc); err == nil {
		return doc
	}
	if m := jsonObject.FindString(s); m != "" {
		if err := json.Unmarshal([]byte(m), &doc); err == nil {
			return doc
		}
	}

	summary := s
	if len(summary) > 800 {
		summary = summary[:800]
	}
	return models.MinutesDocument{Summary: summary}
}
