package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"meeting-minutes-pipeline/internal/config"
	"meeting-minutes-pipeline/internal/models"
	"meeting-minutes-pipeline/internal/observability/logging"
	"meeting-minutes-pipeline/internal/service/conversation"
	"meeting-minutes-pipeline/internal/service/diarize"
	"meeting-minutes-pipeline/internal/service/minutes"
	"meeting-minutes-pipeline/internal/service/render"
	"meeting-minutes-pipeline/internal/service/speakermap"
	"meeting-minutes-pipeline/internal/service/transcript"
	googlestt "meeting-minutes-pipeline/internal/service/transcript/google"
	"meeting-minutes-pipeline/internal/session"
)

// RunOptions selects the inputs and stages of one run.
type RunOptions struct {
	AudioPath      string // recording, for provider transcription / exec diarization
	TranscriptJSON string // persisted whisper transcript (preferred when set)
	TurnsPath      string // persisted diarization output (.json or .rttm)
	OutRoot        string // output root; the run directory is created under it
	Manifest       *config.RunManifest

	TranscribeOnly   bool
	ConversationOnly bool

	MinutesOnly bool   // generate minutes from an existing transcript text
	MinutesText string // path to that text, required with MinutesOnly
}

// RunResult reports the artifacts a run produced.
type RunResult struct {
	Session          *session.Session
	TranscriptPath   string
	ConversationPath string
	MinutesPath      string
	ActionsCSVPath   string
}

// Run executes the pipeline for one meeting. Stages: transcript, then
// diarization and conversation, then minutes, with the later stages skipped per
// options or when their inputs are unavailable. Collaborator calls inherit
// ctx; callers bound long model invocations with a deadline.
func (a *Application) Run(ctx context.Context, opts RunOptions) (res *RunResult, err error) {
	a.Metrics.RecordRunStart()

	sess, err := session.New(opts.OutRoot)
	if err != nil {
		a.Metrics.RecordRunEnd(false)
		return nil, err
	}
	res = &RunResult{Session: sess}

	defer func() {
		if err != nil {
			sess.Stages.Fail()
		}
		a.Metrics.RecordRunEnd(err == nil)
	}()

	logger := logging.WithRun(sess.ID)
	logger.Info().Str("dir", sess.Dir).Msg("Run started")

	if opts.MinutesOnly {
		if opts.MinutesText == "" {
			return res, fmt.Errorf("minutes-only run requires a transcript text path")
		}
		if err = a.generateMinutes(ctx, sess, res, opts, opts.MinutesText); err != nil {
			return res, err
		}
		return res, nil
	}

	// Transcript stage
	stageStart := time.Now()
	segments, err := a.transcribe(ctx, opts)
	if err != nil {
		return res, err
	}
	if err = a.writeTranscriptText(sess, segments); err != nil {
		return res, err
	}
	res.TranscriptPath = sess.TranscriptTextPath()
	if err = sess.Stages.Advance(session.StageTranscribed); err != nil {
		return res, err
	}
	a.Metrics.RecordStage("transcribe", time.Since(stageStart).Seconds())
	logger.Info().Int("segments", len(segments)).Msg("Transcript ready")

	if opts.TranscribeOnly {
		return res, nil
	}

	// Conversation stage. Without a diarization input the run degrades to
	// minutes over the plain transcript, matching the no-diarization flow.
	minutesSource := sess.TranscriptTextPath()
	turnsSource := a.diarizationSource(opts)
	if turnsSource != nil {
		stageStart = time.Now()
		if err = a.buildConversation(ctx, sess, res, opts, segments, turnsSource); err != nil {
			return res, err
		}
		a.Metrics.RecordStage("conversation", time.Since(stageStart).Seconds())
		minutesSource = sess.ConversationPath()
	} else {
		logger.Info().Msg("No diarization input; skipping conversation stage")
		if err = sess.Stages.Advance(session.StageConversation); err != nil {
			return res, err
		}
	}

	if opts.ConversationOnly {
		return res, nil
	}

	// Minutes stage
	if err = a.generateMinutes(ctx, sess, res, opts, minutesSource); err != nil {
		return res, err
	}
	return res, nil
}

// transcribe resolves the segment source from the options and runs it.
func (a *Application) transcribe(ctx context.Context, opts RunOptions) ([]models.TranscribedSegment, error) {
	if opts.TranscriptJSON != "" {
		return transcript.FileSource{Path: opts.TranscriptJSON}.Segments(ctx)
	}

	if a.Cfg.Transcriber.Provider == "google" && opts.AudioPath != "" {
		src, err := googlestt.New(ctx, opts.AudioPath, googlestt.Config{
			LanguageCode: a.Cfg.Transcriber.LanguageCode,
			SampleRateHz: int32(a.Cfg.Transcriber.SampleRateHz),
		})
		if err != nil {
			return nil, err
		}
		defer src.Close()
		return src.Segments(ctx)
	}

	return nil, fmt.Errorf("%w: no transcript JSON and no usable transcriber provider", models.ErrNotFound)
}

// diarizationSource picks the turns source, or nil when none is configured.
func (a *Application) diarizationSource(opts RunOptions) diarize.Source {
	if opts.TurnsPath != "" {
		return diarize.FileSource{Path: opts.TurnsPath}
	}
	if a.Cfg.Diarizer.Script != "" && opts.AudioPath != "" {
		return diarize.ExecSource{
			Python:      a.Cfg.Diarizer.Python,
			Script:      a.Cfg.Diarizer.Script,
			AudioPath:   opts.AudioPath,
			NumSpeakers: a.Cfg.Diarizer.NumSpeakers,
		}
	}
	return nil
}

// buildConversation runs assignment, merge, remapping, and rendering, and
// publishes the conversation-ready event.
func (a *Application) buildConversation(
	ctx context.Context,
	sess *session.Session,
	res *RunResult,
	opts RunOptions,
	segments []models.TranscribedSegment,
	turnsSource diarize.Source,
) error {
	logger := logging.WithStage(sess.ID, "conversation")

	turns, err := turnsSource.Turns(ctx)
	if err != nil {
		return err
	}

	assigned, err := conversation.Assign(segments, turns)
	if err != nil {
		return err
	}
	merged := conversation.Merge(assigned, a.Cfg.Conversation.MergeGapSec)

	m, err := speakermap.LoadOrCreate(sess.SpeakerMapPath(), merged)
	if err != nil {
		return err
	}
	if seeded := seedFromManifest(m, opts.Manifest); seeded {
		if err := speakermap.Save(sess.SpeakerMapPath(), m); err != nil {
			return err
		}
	}
	named := speakermap.Apply(merged, m)

	doc := render.Conversation(named, a.Cfg.Conversation.Timestamps)
	if err := os.WriteFile(sess.ConversationPath(), []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write conversation: %w", err)
	}
	res.ConversationPath = sess.ConversationPath()

	unknown := 0
	for _, s := range assigned {
		if s.Speaker == models.UnknownSpeaker {
			unknown++
		}
	}
	a.Metrics.RecordConversation(len(segments), len(turns), unknown, len(merged), len(m))
	logger.Info().
		Int("turns", len(turns)).
		Int("merged", len(merged)).
		Int("unknown", unknown).
		Msg("Conversation written")

	if err := sess.Stages.Advance(session.StageConversation); err != nil {
		return err
	}

	event := models.ConversationReady{
		EventType:    a.Cfg.Kafka.TopicConversation,
		RunID:        sess.ID,
		Timestamp:    time.Now().UnixMilli(),
		Path:         sess.ConversationPath(),
		SegmentCount: len(merged),
		SpeakerCount: len(m),
	}
	if err := a.Publisher.PublishConversationReady(ctx, sess.ID, event); err != nil {
		// Event delivery is best-effort; the artifact on disk is the
		// source of truth.
		logger.Warn().Err(err).Msg("Conversation event not published")
	}
	return nil
}

// generateMinutes prompts the LLM with the document at sourcePath and writes
// the minutes markdown and action CSV.
func (a *Application) generateMinutes(
	ctx context.Context,
	sess *session.Session,
	res *RunResult,
	opts RunOptions,
	sourcePath string,
) error {
	logger := logging.WithStage(sess.ID, "minutes")

	text, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: minutes source %s", models.ErrNotFound, sourcePath)
		}
		return fmt.Errorf("read minutes source: %w", err)
	}

	if opts.MinutesOnly {
		// Catch up the stage machine; upstream stages happened in an
		// earlier run.
		if err := sess.Stages.Advance(session.StageTranscribed); err != nil {
			return err
		}
		if err := sess.Stages.Advance(session.StageConversation); err != nil {
			return err
		}
	}

	client := minutes.NewClient(minutes.ClientConfig{
		BaseURL: a.Cfg.Minutes.BaseURL,
		Model:   a.Cfg.Minutes.Model,
		Timeout: a.Cfg.Minutes.Timeout,
	})

	llmStart := time.Now()
	doc, err := minutes.Generate(ctx, client, string(text))
	a.Metrics.RecordLLM(err, time.Since(llmStart).Seconds())
	if err != nil {
		return err
	}

	title := a.Cfg.Minutes.Title
	if opts.Manifest != nil && opts.Manifest.Title != "" {
		title = opts.Manifest.Title
	}

	md := minutes.RenderMarkdown(doc, title)
	if err := os.WriteFile(sess.MinutesPath(), []byte(md), 0o644); err != nil {
		return fmt.Errorf("write minutes: %w", err)
	}
	res.MinutesPath = sess.MinutesPath()

	f, err := os.Create(sess.ActionsCSVPath())
	if err != nil {
		return fmt.Errorf("create actions CSV: %w", err)
	}
	if err := minutes.WriteActionsCSV(f, doc.Actions); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close actions CSV: %w", err)
	}
	res.ActionsCSVPath = sess.ActionsCSVPath()

	if err := sess.Stages.Advance(session.StageMinutes); err != nil {
		return err
	}
	logger.Info().
		Int("actions", len(doc.Actions)).
		Msg("Minutes written")

	event := models.MinutesReady{
		EventType:   a.Cfg.Kafka.TopicMinutes,
		RunID:       sess.ID,
		Timestamp:   time.Now().UnixMilli(),
		Path:        sess.MinutesPath(),
		ActionCount: len(doc.Actions),
	}
	if err := a.Publisher.PublishMinutesReady(ctx, sess.ID, event); err != nil {
		logger.Warn().Err(err).Msg("Minutes event not published")
	}
	return nil
}

// writeTranscriptText persists the plain transcript alongside the run.
func (a *Application) writeTranscriptText(sess *session.Session, segments []models.TranscribedSegment) error {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	text := strings.Join(parts, " ")
	if text != "" {
		text += "\n"
	}
	if err := os.WriteFile(sess.TranscriptTextPath(), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write transcript text: %w", err)
	}
	return nil
}

// seedFromManifest copies manifest speaker names into unnamed map entries.
// Reports whether anything changed.
func seedFromManifest(m speakermap.Map, manifest *config.RunManifest) bool {
	if manifest == nil {
		return false
	}
	changed := false
	for label, name := range manifest.Speakers {
		if name != "" && m[label] == "" {
			m[label] = name
			changed = true
		}
	}
	return changed
}
