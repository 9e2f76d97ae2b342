package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type KafkaPublisher struct {
	writer *kafka.Writer
	log    *logrus.Logger
}

// NewKafkaPublisher writes asynchronously, so Publish never waits on the
// brokers; delivery failures are only logged.
func NewKafkaPublisher(brokers []string, topic string, logger *logrus.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Async:    true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Errorf("KafkaPublisher: Failed to deliver %d activity events: %v", len(messages), err)
			}
		},
	}
	logger.Infof("KafkaPublisher: Publishing activity events to topic '%s' on %v", topic, brokers)

	return &KafkaPublisher{
		writer: writer,
		log:    logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.log.Errorf("KafkaPublisher: Failed to marshal %s event: %v", event.Type, err)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: eventBytes,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.WithField("event_id", event.EventID).Errorf("KafkaPublisher: Failed to publish %s event: %v", event.Type, err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.log.WithField("event_id", event.EventID).Debugf("KafkaPublisher: Queued %s event", event.Type)
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
