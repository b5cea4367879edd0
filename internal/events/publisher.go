// Package events provides event publishing functionality.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"meeting-minutes-pipeline/internal/observability/metrics"
)

// Publisher publishes pipeline events to separate Kafka topics. When Kafka
// is disabled (or no brokers are configured) it degrades to log-only mode so
// the pipeline never depends on a broker being reachable.
type Publisher struct {
	writerConversation *kafka.Writer
	writerMinutes      *kafka.Writer
	principal          string
	topicConversation  string
	topicMinutes       string
	enabled            bool
	metrics            *metrics.Metrics
}

// Config holds Kafka publisher configuration.
type Config struct {
	Brokers           []string
	TopicConversation string
	TopicMinutes      string
	Principal         string
	Enabled           bool
}

// New creates a Kafka event publisher with separate topics for conversation
// and minutes events.
func New(cfg *Config) *Publisher {
	m := metrics.DefaultMetrics

	if cfg == nil {
		log.Info().Msg("Kafka disabled (nil config), using log-only mode")
		return &Publisher{
			enabled: false,
			metrics: m,
		}
	}

	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, using log-only mode")
		return &Publisher{
			principal:         cfg.Principal,
			topicConversation: cfg.TopicConversation,
			topicMinutes:      cfg.TopicMinutes,
			enabled:           false,
			metrics:           m,
		}
	}

	// Longer dial timeouts for DNS resolution in Kubernetes
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	transport := &kafka.Transport{
		Dial: dialer.DialFunc,
	}

	writerConversation := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicConversation,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	writerMinutes := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicMinutes,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topicConversation", cfg.TopicConversation).
		Str("topicMinutes", cfg.TopicMinutes).
		Str("principal", cfg.Principal).
		Msg("Kafka publisher initialized")

	return &Publisher{
		writerConversation: writerConversation,
		writerMinutes:      writerMinutes,
		principal:          cfg.Principal,
		topicConversation:  cfg.TopicConversation,
		topicMinutes:       cfg.TopicMinutes,
		enabled:            true,
		metrics:            m,
	}
}

// PublishConversationReady publishes a conversation-ready event.
func (p *Publisher) PublishConversationReady(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerConversation, p.topicConversation, "conversation", key, event)
}

// PublishMinutesReady publishes a minutes-ready event.
func (p *Publisher) PublishMinutesReady(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerMinutes, p.topicMinutes, "minutes", key, event)
}

// publish is the internal method that writes to a specific Kafka writer.
func (p *Publisher) publish(ctx context.Context, writer *kafka.Writer, topic, eventType, key string, event any) error {
	start := time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal event")
		return err
	}

	log.Debug().
		Str("principal", p.principal).
		Str("topic", topic).
		Str("key", key).
		RawJSON("payload", payload).
		Msg("Publishing event")

	// If Kafka is disabled, just log
	if !p.enabled || writer == nil {
		p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(eventType)},
			{Key: "principal", Value: []byte(p.principal)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to write to Kafka")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
	return nil
}

// Close closes both Kafka writers.
func (p *Publisher) Close() error {
	var err error
	if p.writerConversation != nil {
		if e := p.writerConversation.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing conversation writer")
			err = e
		}
	}
	if p.writerMinutes != nil {
		if e := p.writerMinutes.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing minutes writer")
			err = e
		}
	}
	return err
}
