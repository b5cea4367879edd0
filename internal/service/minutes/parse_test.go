package minutes

import (
	"reflect"
	"strings"
	"testing"

	"meeting-minutes-pipeline/internal/models"
)

const validJSON = `{
	"summary": "We met.",
	"key_points": ["point one", "point two"],
	"decisions": ["ship it"],
	"actions": [{"task": "send notes", "owner": "Akshay", "due": "Friday", "timestamp": "0:05:12"}]
}`

var validDoc = models.MinutesDocument{
	Summary:   "We met.",
	KeyPoints: []string{"point one", "point two"},
	Decisions: []string{"ship it"},
	Actions: []models.ActionItem{
		{Task: "send notes", Owner: "Akshay", Due: "Friday", Timestamp: "0:05:12"},
	},
}

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.MinutesDocument
	}{
		{"clean json", validJSON, validDoc},
		{"leading whitespace", "\n\n  " + validJSON + "\n", validDoc},
		{"fenced json", "```json\n" + validJSON + "\n```", validDoc},
		{"fenced no language", "```\n" + validJSON + "\n```", validDoc},
		{"json embedded in commentary", "Here are the minutes:\n" + validJSON + "\nHope that helps!", validDoc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDocument(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDocument() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDocument_GarbageFallsBackToSummary(t *testing.T) {
	raw := "The meeting was about nothing in particular."
	got := ParseDocument(raw)
	if got.Summary != raw {
		t.Errorf("expected raw text as summary, got %q", got.Summary)
	}
	if len(got.KeyPoints) != 0 || len(got.Decisions) != 0 || len(got.Actions) != 0 {
		t.Errorf("expected empty sections in degraded document, got %+v", got)
	}
}

func TestParseDocument_LongGarbageTruncated(t *testing.T) {
	raw := strings.Repeat("x", 2000)
	got := ParseDocument(raw)
	if len(got.Summary) != 800 {
		t.Errorf("expected summary truncated to 800, got %d", len(got.Summary))
	}
}
