// Package config loads pipeline configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ServiceConfig identifies the service and its serve-mode HTTP port.
type ServiceConfig struct {
	Principal   string
	HTTPPort    string
	MetricsAddr string
	OutputRoot  string
}

// TranscriberConfig selects and tunes the segment source.
type TranscriberConfig struct {
	Provider     string // file | google
	LanguageCode string
	SampleRateHz int
}

// DiarizerConfig tunes the exec diarization helper.
type DiarizerConfig struct {
	Python      string
	Script      string
	NumSpeakers int
}

// ConversationConfig tunes the assignment/merge/render stages.
type ConversationConfig struct {
	MergeGapSec float64
	Timestamps  bool
}

// MinutesConfig tunes the LLM minutes stage.
type MinutesConfig struct {
	BaseURL string
	Model   string
	Title   string
	Timeout time.Duration
}

// KafkaConfig configures the event publisher.
type KafkaConfig struct {
	Enabled           bool
	Brokers           []string
	TopicConversation string
	TopicMinutes      string
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string
}

// Configuration is the full pipeline configuration.
type Configuration struct {
	Service       ServiceConfig
	Transcriber   TranscriberConfig
	Diarizer      DiarizerConfig
	Conversation  ConversationConfig
	Minutes       MinutesConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

// Load reads configuration from the environment, falling back to defaults.
func Load() *Configuration {
	return &Configuration{
		Service: ServiceConfig{
			Principal:   envOrDefault("SERVICE_PRINCIPAL", "svc-meeting-minutes"),
			HTTPPort:    envOrDefault("HTTP_PORT", "8080"),
			MetricsAddr: envOrDefault("METRICS_ADDR", ":9090"),
			OutputRoot:  envOrDefault("OUTPUT_ROOT", "output"),
		},
		Transcriber: TranscriberConfig{
			Provider:     envOrDefault("TRANSCRIBER_PROVIDER", "file"),
			LanguageCode: envOrDefault("TRANSCRIBER_LANGUAGE_CODE", "en-US"),
			SampleRateHz: envOrDefaultInt("TRANSCRIBER_SAMPLE_RATE_HZ", 16000),
		},
		Diarizer: DiarizerConfig{
			Python:      envOrDefault("DIARIZER_PYTHON", "python3"),
			Script:      envOrDefault("DIARIZER_SCRIPT", ""),
			NumSpeakers: envOrDefaultInt("DIARIZER_NUM_SPEAKERS", 0),
		},
		Conversation: ConversationConfig{
			MergeGapSec: envOrDefaultFloat("CONVERSATION_MERGE_GAP_SEC", 0.5),
			Timestamps:  envOrDefaultBool("CONVERSATION_TIMESTAMPS", true),
		},
		Minutes: MinutesConfig{
			BaseURL: envOrDefault("MINUTES_BASE_URL", "http://localhost:11434"),
			Model:   envOrDefault("MINUTES_MODEL", "llama3.1:8b"),
			Title:   envOrDefault("MINUTES_TITLE", "Meeting Minutes"),
			Timeout: envOrDefaultDuration("MINUTES_TIMEOUT", 30*time.Minute),
		},
		Kafka: KafkaConfig{
			Enabled:           envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:           envOrDefaultSlice("KAFKA_BROKERS", nil),
			TopicConversation: envOrDefault("KAFKA_TOPIC_CONVERSATION", "meeting.conversation.ready"),
			TopicMinutes:      envOrDefault("KAFKA_TOPIC_MINUTES", "meeting.minutes.ready"),
		},
		Observability: ObservabilityConfig{
			LogLevel:  envOrDefault("LOG_LEVEL", "info"),
			LogFormat: envOrDefault("LOG_FORMAT", "json"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envOrDefaultSlice(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
