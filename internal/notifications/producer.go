package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"seatly/internal/shared/config"
	"seatly/pkg/logger"
)

// NotificationProducer interface defines the contract for publishing notifications
type NotificationProducer interface {
	PublishNotification(ctx context.Context, notification *Notification) error
	Close() error
}

// KafkaNotificationProducer handles publishing notifications to Kafka
type KafkaNotificationProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logger.Logger
}

// NewKafkaNotificationProducer creates a new Kafka notification producer
func NewKafkaNotificationProducer(cfg config.KafkaConfig, log *logger.Logger) (*KafkaNotificationProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps one recipient's notifications on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaNotificationProducer{
		producer: producer,
		topic:    cfg.NotificationTopic,
		logger:   log,
	}, nil
}

// PublishNotification publishes a single notification to Kafka
func (p *KafkaNotificationProducer) PublishNotification(ctx context.Context, notification *Notification) error {
	messageBytes, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(notification.GetPartitionKey()),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("notification_id"), Value: []byte(notification.ID.String())},
			{Key: []byte("notification_type"), Value: []byte(notification.Type)},
			{Key: []byte("recipient_id"), Value: []byte(notification.RecipientID.String())},
			{Key: []byte("created_at"), Value: []byte(notification.CreatedAt.Format(time.RFC3339))},
		},
		Timestamp: notification.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send notification to Kafka: %w", err)
	}

	p.logger.InfoWithContext(ctx, "Notification published to Kafka", map[string]interface{}{
		"topic":     p.topic,
		"partition": partition,
		"offset":    offset,
		"type":      notification.Type,
	})
	return nil
}

// Close closes the Kafka producer
func (p *KafkaNotificationProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}
