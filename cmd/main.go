package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meeting-minutes-pipeline/internal/app"
	"meeting-minutes-pipeline/internal/config"
	apihttp "meeting-minutes-pipeline/internal/http"
	"meeting-minutes-pipeline/internal/observability"
)

func main() {
	var (
		serve    = flag.Bool("serve", false, "run as an HTTP service instead of a one-shot pipeline")
		audio    = flag.String("audio", "", "path to the meeting audio file")
		trans    = flag.String("transcript", "", "path to a whisper-style transcript JSON (skips transcription)")
		turns    = flag.String("turns", "", "path to diarization turns (JSON or RTTM)")
		out      = flag.String("out", "", "output root directory (default from OUTPUT_ROOT)")
		manifest = flag.String("manifest", "", "path to a YAML run manifest (title, attendees, speaker names)")

		transcribeOnly   = flag.Bool("transcribe-only", false, "stop after writing the transcript")
		conversationOnly = flag.Bool("conversation-only", false, "stop after writing the speaker-attributed conversation")
		minutesOnly      = flag.Bool("minutes-only", false, "generate minutes from an existing conversation or transcript")
		minutesText      = flag.String("minutes-text", "", "text file to summarize when using -minutes-only")
	)
	flag.Parse()

	cfg := config.Load()
	application := app.New(cfg)
	defer application.Shutdown()

	if *serve {
		runServer(application, cfg)
		return
	}

	if *audio == "" && *trans == "" && !*minutesOnly {
		fmt.Fprintln(os.Stderr, "either -audio or -transcript is required (or -minutes-only with -minutes-text)")
		flag.Usage()
		os.Exit(2)
	}

	opts := app.RunOptions{
		AudioPath:        *audio,
		TranscriptJSON:   *trans,
		TurnsPath:        *turns,
		OutRoot:          cfg.Service.OutputRoot,
		TranscribeOnly:   *transcribeOnly,
		ConversationOnly: *conversationOnly,
		MinutesOnly:      *minutesOnly,
		MinutesText:      *minutesText,
	}
	if *out != "" {
		opts.OutRoot = *out
	}
	if *manifest != "" {
		m, err := config.LoadManifest(*manifest)
		if err != nil {
			application.Logger.Fatal().Err(err).Str("path", *manifest).Msg("Failed to load run manifest")
		}
		opts.Manifest = m
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := application.Run(ctx, opts)
	if err != nil {
		application.Logger.Fatal().Err(err).Msg("Pipeline run failed")
	}

	application.Logger.Info().
		Str("run_id", res.Session.ID).
		Str("dir", res.Session.Dir).
		Msg("Pipeline run complete")
	for name, path := range map[string]string{
		"transcript":   res.TranscriptPath,
		"conversation": res.ConversationPath,
		"minutes":      res.MinutesPath,
		"actions":      res.ActionsCSVPath,
	} {
		if path != "" {
			fmt.Printf("%-12s %s\n", name, path)
		}
	}
}

func runServer(application *app.Application, cfg *config.Configuration) {
	obs := observability.NewServer(cfg.Service.MetricsAddr)
	obs.Start()

	server := &http.Server{
		Addr:        ":" + cfg.Service.HTTPPort,
		Handler:     apihttp.NewRouter(application),
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		application.Logger.Info().Str("addr", server.Addr).Msg("Meeting minutes service started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			application.Logger.Fatal().Err(err).Msg("http serve failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	application.Logger.Info().Msg("Shutting down HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		application.Logger.Error().Err(err).Msg("HTTP shutdown error")
	}
	if err := obs.Shutdown(ctx); err != nil {
		application.Logger.Error().Err(err).Msg("Observability shutdown error")
	}
}
