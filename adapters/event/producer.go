package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/minhvu/folio/internal/config"
	"github.com/minhvu/folio/pkg/logger"
)

const TopicContentEvents = "content.events"

const (
	EventPostCreated = "post.created"
	EventPostUpdated = "post.updated"
	EventPostDeleted = "post.deleted"
)

// ContentEvent is the message published whenever an admin mutates a
// blog post. The worker consumes these to back-fill derived fields.
type ContentEvent struct {
	Type       string    `json:"type"`
	PostID     uuid.UUID `json:"post_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type KafkaProducerClient struct {
	ContentEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	contentWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicContentEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{ContentEventsWriter: contentWriter}, nil
}

func (c *KafkaProducerClient) Close() {
	if c.ContentEventsWriter != nil {
		c.ContentEventsWriter.Close()
	}
}

// KafkaContentPublisher publishes content events and logs failures
// instead of propagating them: a broker outage must not fail the admin
// save that triggered the event.
type KafkaContentPublisher struct {
	writer *kafka.Writer
	logger logger.Logger
}

func NewKafkaContentPublisher(client *KafkaProducerClient, log logger.Logger) *KafkaContentPublisher {
	return &KafkaContentPublisher{writer: client.ContentEventsWriter, logger: log}
}

func (p *KafkaContentPublisher) PublishContentEvent(ctx context.Context, eventType string, postID uuid.UUID) {
	evt := ContentEvent{
		Type:       eventType,
		PostID:     postID,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("Failed to marshal content event", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(postID.String()),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish content event", err,
			zap.String("type", eventType),
			zap.String("post_id", postID.String()),
		)
	}
}
