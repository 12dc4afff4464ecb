package notifications

import (
	"context"

	"seatly/internal/shared/config"
	"seatly/pkg/logger"
)

// Publisher is the surface the booking and reminder services depend on
type Publisher interface {
	Publish(ctx context.Context, n *Notification)
}

// Service owns the notification pipeline. With Kafka enabled it publishes
// to the notification topic and runs a consumer group that dispatches
// deliveries; otherwise it dispatches directly on a background goroutine.
type Service struct {
	dispatcher *Dispatcher
	producer   NotificationProducer
	consumer   NotificationConsumer
	logger     *logger.Logger
}

// NewService wires the notification pipeline from configuration
func NewService(cfg *config.Config, log *logger.Logger) (*Service, error) {
	var email EmailService
	if cfg.Email.SMTPHost != "" {
		svc, err := NewSMTPEmailService(cfg.Email)
		if err != nil {
			return nil, err
		}
		email = svc
	} else {
		log.Warn("SMTP not configured, email notifications disabled")
	}

	var sms SMSService
	if cfg.SMS.AccountSID != "" {
		svc, err := NewTwilioSMSService(cfg.SMS)
		if err != nil {
			return nil, err
		}
		sms = svc
	} else {
		log.Warn("Twilio not configured, SMS notifications disabled")
	}

	dispatcher := NewDispatcher(email, sms, log)
	s := &Service{dispatcher: dispatcher, logger: log}

	if cfg.Kafka.Enabled {
		producer, err := NewKafkaNotificationProducer(cfg.Kafka, log)
		if err != nil {
			return nil, err
		}
		consumer, err := NewKafkaNotificationConsumer(cfg.Kafka, dispatcher, log)
		if err != nil {
			producer.Close()
			return nil, err
		}
		s.producer = producer
		s.consumer = consumer
	}

	return s, nil
}

// Start launches the Kafka consumer when the bus is enabled
func (s *Service) Start(ctx context.Context) error {
	if s.consumer != nil {
		return s.consumer.Start(ctx)
	}
	return nil
}

// Stop shuts the pipeline down
func (s *Service) Stop() {
	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			s.logger.Error("Failed to stop notification consumer", "error", err)
		}
	}
	if s.producer != nil {
		if err := s.producer.Close(); err != nil {
			s.logger.Error("Failed to close notification producer", "error", err)
		}
	}
}

// Publish hands a notification to the pipeline. It never returns an error;
// delivery problems are logged so callers stay unaffected.
func (s *Service) Publish(ctx context.Context, n *Notification) {
	if s.producer != nil {
		if err := s.producer.PublishNotification(ctx, n); err != nil {
			s.logger.ErrorWithContext(ctx, "Failed to publish notification, dispatching directly", err, map[string]interface{}{
				"notification_id": n.ID,
			})
			s.dispatchAsync(n)
		}
		return
	}
	s.dispatchAsync(n)
}

func (s *Service) dispatchAsync(n *Notification) {
	go func() {
		// Detached from the request context so an HTTP response does not
		// cancel an in-flight send.
		s.dispatcher.Dispatch(context.Background(), n)
	}()
}

// SendSync delivers immediately on the calling goroutine and reports
// failure. The reminder sweep uses this with its own per-send timeout.
func (s *Service) SendSync(ctx context.Context, n *Notification) error {
	return s.dispatcher.Send(ctx, n)
}
