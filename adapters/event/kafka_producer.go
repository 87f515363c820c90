package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/careerone/portfolio/internal/application/service"
	"github.com/careerone/portfolio/internal/config"
	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ActivityEventPayload is the message body on the activity topic.
type ActivityEventPayload struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewActivityEventPayload(a activity.Activity) ActivityEventPayload {
	return ActivityEventPayload{
		ID:          a.ID.String(),
		Kind:        a.Kind,
		Title:       a.Title,
		Description: a.Description,
		OccurredAt:  a.OccurredAt,
	}
}

type KafkaProducerClient struct {
	ActivityEventsWriter *kafka.Writer
	logger               logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'portfolio.activity', async: delivery errors only reach Completion
	activityWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    cfg.Kafka.ActivityTopic,
		Balancer: &kafka.Hash{},
		Async:    true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("Kafka activity write failed", err, zap.Int("messages", len(messages)))
			}
		},
	}

	log.Info("Initialize Kafka Producers successfully.", zap.String("topic", cfg.Kafka.ActivityTopic))

	return &KafkaProducerClient{
		ActivityEventsWriter: activityWriter,
		logger:               log,
	}, nil
}

// Publish implements service.ActivityPublisher. Messages are keyed by kind
// so events of one kind stay ordered within a partition.
func (c *KafkaProducerClient) Publish(ctx context.Context, a activity.Activity) error {
	value, err := json.Marshal(NewActivityEventPayload(a))
	if err != nil {
		return fmt.Errorf("marshal activity event: %w", err)
	}
	return c.ActivityEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(a.Kind),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ActivityEventsWriter != nil {
		if err := c.ActivityEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}

var _ service.ActivityPublisher = (*KafkaProducerClient)(nil)
