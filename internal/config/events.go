package config

import (
	"log/slog"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/events"
)

// CreateEventPublisher creates an event publisher based on configuration.
// With events disabled the mock publisher is used, so callers never need to
// care whether a broker is around.
func (c *Config) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.EventsEnabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	logger.Info("Creating Kafka event publisher",
		"brokers", c.KafkaBrokers,
		"topic", c.AttemptEventsTopic)

	return events.NewKafkaEventPublisher(events.PublisherConfig{
		KafkaBrokers: c.GetKafkaBrokers(),
		TopicName:    c.AttemptEventsTopic,
		Logger:       logger,
	})
}
