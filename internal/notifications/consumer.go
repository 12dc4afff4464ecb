package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"seatly/internal/shared/config"
	"seatly/pkg/logger"
)

// NotificationConsumer interface defines the contract for consuming notifications
type NotificationConsumer interface {
	Start(ctx context.Context) error
	Stop() error
}

// KafkaNotificationConsumer reads notifications from Kafka and hands them to
// the dispatcher.
type KafkaNotificationConsumer struct {
	consumerGroup sarama.ConsumerGroup
	topics        []string
	dispatcher    *Dispatcher
	logger        *logger.Logger
	cancel        context.CancelFunc
	done          chan struct{}
}

// NewKafkaNotificationConsumer creates a new Kafka notification consumer
func NewKafkaNotificationConsumer(cfg config.KafkaConfig, dispatcher *Dispatcher, log *logger.Logger) (*KafkaNotificationConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &KafkaNotificationConsumer{
		consumerGroup: consumerGroup,
		topics:        []string{cfg.NotificationTopic},
		dispatcher:    dispatcher,
		logger:        log,
		done:          make(chan struct{}),
	}, nil
}

// Start runs the consume loop until Stop is called
func (c *KafkaNotificationConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go c.handleErrors()

	go func() {
		defer close(c.done)
		handler := &consumerGroupHandler{dispatcher: c.dispatcher, logger: c.logger}
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := c.consumerGroup.Consume(ctx, c.topics, handler); err != nil {
					c.logger.Error("Consumer error", "error", err)
					time.Sleep(time.Second)
				}
			}
		}
	}()

	c.logger.Info("Notification consumer started", "topics", c.topics)
	return nil
}

func (c *KafkaNotificationConsumer) handleErrors() {
	for err := range c.consumerGroup.Errors() {
		c.logger.Error("Consumer group error", "error", err)
	}
}

// Stop cancels the consume loop and closes the group
func (c *KafkaNotificationConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type consumerGroupHandler struct {
	dispatcher *Dispatcher
	logger     *logger.Logger
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			notification, err := NotificationFromJSON(message.Value)
			if err != nil {
				h.logger.Error("Failed to unmarshal notification",
					"error", err,
					"partition", message.Partition,
					"offset", message.Offset,
				)
				session.MarkMessage(message, "")
				continue
			}

			// Delivery failures are logged by the dispatcher and the
			// message is still marked; booking flows never depend on
			// notification delivery.
			h.dispatcher.Dispatch(session.Context(), notification)
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
