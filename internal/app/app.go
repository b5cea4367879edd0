// Package app wires the pipeline stages together. One Application per
// process; one session per meeting-processing run.
package app

import (
	"time"

	"github.com/rs/zerolog"

	"meeting-minutes-pipeline/internal/config"
	"meeting-minutes-pipeline/internal/events"
	"meeting-minutes-pipeline/internal/observability/logging"
	"meeting-minutes-pipeline/internal/observability/metrics"
)

// Application holds process-wide state for the pipeline.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Configuration
	Publisher   *events.Publisher
	Metrics     *metrics.Metrics
}

// New constructs an Application from the provided configuration.
func New(cfg *config.Configuration) *Application {
	logging.Init(logging.Config{
		Level:      cfg.Observability.LogLevel,
		Format:     cfg.Observability.LogFormat,
		TimeFormat: time.RFC3339,
	})

	a := &Application{
		StartupTime: time.Now().UTC(),
		Logger:      logging.WithComponent("application"),
		Cfg:         cfg,
		Metrics:     metrics.DefaultMetrics,
		Publisher: events.New(&events.Config{
			Enabled:           cfg.Kafka.Enabled,
			Brokers:           cfg.Kafka.Brokers,
			TopicConversation: cfg.Kafka.TopicConversation,
			TopicMinutes:      cfg.Kafka.TopicMinutes,
			Principal:         cfg.Service.Principal,
		}),
	}

	a.Logger.Info().
		Str("principal", cfg.Service.Principal).
		Msg("Meeting minutes pipeline created")
	return a
}

// Shutdown performs a best-effort cleanup before process exit.
func (a *Application) Shutdown() {
	a.Logger.Info().Msg("Meeting minutes pipeline shutting down")
	if err := a.Publisher.Close(); err != nil {
		a.Logger.Error().Err(err).Msg("Error closing event publisher")
	}
}
