// Package google provides a Google Cloud Speech-to-Text segment source for
// recordings that have no persisted whisper transcript.
package google

import (
	"context"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"meeting-minutes-pipeline/internal/models"
)

// Config controls the batch recognition request.
type Config struct {
	LanguageCode string
	SampleRateHz int32
}

// Source runs a long-running batch recognition over a local audio file and
// converts the word-level time offsets into transcribed segments, one per
// recognition result.
//
// Requires GOOGLE_APPLICATION_CREDENTIALS to be set.
type Source struct {
	client    *speech.Client
	audioPath string
	cfg       Config
}

// New creates a batch recognition source for audioPath.
func New(ctx context.Context, audioPath string, cfg Config) (*Source, error) {
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "en-US"
	}
	if cfg.SampleRateHz == 0 {
		cfg.SampleRateHz = 16000
	}
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	return &Source{client: c, audioPath: audioPath, cfg: cfg}, nil
}

// Segments implements transcript.Source. The call blocks until the batch
// operation completes; callers bound it with a context deadline.
func (s *Source) Segments(ctx context.Context) ([]models.TranscribedSegment, error) {
	audio, err := os.ReadFile(s.audioPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: audio %s", models.ErrNotFound, s.audioPath)
		}
		return nil, fmt.Errorf("read audio: %w", err)
	}

	op, err := s.client.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:              speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:       s.cfg.SampleRateHz,
			LanguageCode:          s.cfg.LanguageCode,
			EnableWordTimeOffsets: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return nil, mapStatus(err)
	}

	resp, err := op.Wait(ctx)
	if err != nil {
		return nil, mapStatus(err)
	}
	return toSegments(resp), nil
}

// Close releases the underlying client connection.
func (s *Source) Close() error {
	return s.client.Close()
}

// toSegments builds one segment per recognition result from the top
// alternative's word time offsets.
func toSegments(resp *speechpb.LongRunningRecognizeResponse) []models.TranscribedSegment {
	segments := make([]models.TranscribedSegment, 0, len(resp.GetResults()))
	for _, r := range resp.GetResults() {
		alts := r.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		alt := alts[0]
		text := strings.TrimSpace(alt.GetTranscript())
		if text == "" {
			continue
		}

		var start, end float64
		if words := alt.GetWords(); len(words) > 0 {
			start = words[0].GetStartTime().AsDuration().Seconds()
			end = words[len(words)-1].GetEndTime().AsDuration().Seconds()
		} else {
			end = r.GetResultEndTime().AsDuration().Seconds()
		}
		segments = append(segments, models.TranscribedSegment{Start: start, End: end, Text: text})
	}
	return segments
}

// mapStatus translates gRPC status codes into the pipeline error taxonomy.
func mapStatus(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %v", models.ErrNotFound, err)
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %v", models.ErrMalformedInput, err)
	default:
		return fmt.Errorf("speech recognition: %w", err)
	}
}
