package conversation

import (
	"reflect"
	"strings"
	"testing"

	"meeting-minutes-pipeline/internal/models"
)

func labeled(start, end float64, speaker, text string) models.LabeledSegment {
	return models.LabeledSegment{Start: start, End: end, Speaker: speaker, Text: text}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		in     []models.LabeledSegment
		maxGap float64
		want   []models.LabeledSegment
	}{
		{
			name:   "adjacent same speaker merges",
			in:     []models.LabeledSegment{labeled(0, 2, "A", "hi"), labeled(2, 4, "A", "there")},
			maxGap: DefaultMaxGap,
			want:   []models.LabeledSegment{labeled(0, 4, "A", "hi there")},
		},
		{
			name:   "different speakers never merge",
			in:     []models.LabeledSegment{labeled(0, 2, "A", "hi"), labeled(2, 4, "B", "bye")},
			maxGap: DefaultMaxGap,
			want:   []models.LabeledSegment{labeled(0, 2, "A", "hi"), labeled(2, 4, "B", "bye")},
		},
		{
			name:   "gap within tolerance merges",
			in:     []models.LabeledSegment{labeled(0, 1, "A", "a"), labeled(1.3, 2, "A", "b")},
			maxGap: 0.5,
			want:   []models.LabeledSegment{labeled(0, 2, "A", "a b")},
		},
		{
			name:   "gap beyond tolerance stays split",
			in:     []models.LabeledSegment{labeled(0, 1, "A", "a"), labeled(1.3, 2, "A", "b")},
			maxGap: 0.2,
			want:   []models.LabeledSegment{labeled(0, 1, "A", "a"), labeled(1.3, 2, "A", "b")},
		},
		{
			name:   "overlapping segments merge without clamping",
			in:     []models.LabeledSegment{labeled(0, 3, "A", "a"), labeled(2.5, 5, "A", "b")},
			maxGap: 0.5,
			want:   []models.LabeledSegment{labeled(0, 5, "A", "a b")},
		},
		{
			name: "run of three collapses into one",
			in: []models.LabeledSegment{
				labeled(0, 1, "A", "one"),
				labeled(1.1, 2, "A", "two"),
				labeled(2.2, 3, "A", "three"),
			},
			maxGap: 0.5,
			want:   []models.LabeledSegment{labeled(0, 3, "A", "one two three")},
		},
		{
			name: "speaker change closes the accumulator",
			in: []models.LabeledSegment{
				labeled(0, 1, "A", "one"),
				labeled(1, 2, "B", "two"),
				labeled(2, 3, "A", "three"),
			},
			maxGap: 0.5,
			want: []models.LabeledSegment{
				labeled(0, 1, "A", "one"),
				labeled(1, 2, "B", "two"),
				labeled(2, 3, "A", "three"),
			},
		},
		{
			name:   "unknown speakers merge with each other",
			in:     []models.LabeledSegment{labeled(0, 1, models.UnknownSpeaker, "a"), labeled(1.2, 2, models.UnknownSpeaker, "b")},
			maxGap: 0.5,
			want:   []models.LabeledSegment{labeled(0, 2, models.UnknownSpeaker, "a b")},
		},
		{
			name:   "single segment passes through",
			in:     []models.LabeledSegment{labeled(3, 4, "A", "solo")},
			maxGap: 0.5,
			want:   []models.LabeledSegment{labeled(3, 4, "A", "solo")},
		},
		{
			name:   "empty input yields empty output",
			in:     nil,
			maxGap: 0.5,
			want:   []models.LabeledSegment{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.in, tt.maxGap)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMerge_PreservesTotalText(t *testing.T) {
	in := []models.LabeledSegment{
		labeled(0, 1, "A", "the quick"),
		labeled(1, 2, "A", "brown fox"),
		labeled(2.1, 3, "B", "jumps"),
		labeled(3.2, 4, "B", "over"),
		labeled(10, 11, "B", "the lazy dog"),
	}
	got := Merge(in, 0.5)

	join := func(segs []models.LabeledSegment) string {
		parts := make([]string, 0, len(segs))
		for _, s := range segs {
			parts = append(parts, s.Text)
		}
		return strings.Join(parts, " ")
	}
	if join(got) != join(in) {
		t.Errorf("text not preserved: %q vs %q", join(got), join(in))
	}
	if len(got) > len(in) {
		t.Errorf("output longer than input: %d > %d", len(got), len(in))
	}
}

func TestMerge_IdempotentOnOwnOutput(t *testing.T) {
	in := []models.LabeledSegment{
		labeled(0, 1, "A", "a"),
		labeled(1.1, 2, "A", "b"),
		labeled(5, 6, "B", "c"),
		labeled(6, 7, "A", "d"),
	}
	once := Merge(in, 0.5)
	twice := Merge(once, 0.5)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("re-merging changed output: %v vs %v", twice, once)
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	in := []models.LabeledSegment{labeled(0, 2, "A", "hi"), labeled(2, 4, "A", "there")}
	Merge(in, 0.5)
	if in[0].End != 2 || in[0].Text != "hi" {
		t.Errorf("input segment was mutated: %+v", in[0])
	}
}
