package notifications

import (
	"context"
	"errors"

	"seatly/pkg/logger"
)

// Dispatcher fans a notification out to the configured channels. Email is
// attempted whenever the recipient has an address; SMS only when a phone
// number and an SMS body are both present.
type Dispatcher struct {
	email  EmailService
	sms    SMSService
	logger *logger.Logger
}

// NewDispatcher creates a dispatcher. Either channel may be nil when not
// configured.
func NewDispatcher(email EmailService, sms SMSService, log *logger.Logger) *Dispatcher {
	return &Dispatcher{email: email, sms: sms, logger: log}
}

// Send delivers over every applicable channel and reports delivery
// failures. The reminder sweep uses the error to decide whether a flag may
// be set.
func (d *Dispatcher) Send(ctx context.Context, n *Notification) error {
	var errs []error

	if d.email != nil && n.RecipientEmail != "" {
		if err := d.email.SendHTML(ctx, n.RecipientEmail, n.Subject, n.HTMLBody, n.Attachments); err != nil {
			errs = append(errs, err)
		}
	}

	if d.sms != nil && n.RecipientPhone != "" && n.SMSBody != "" {
		if err := d.sms.SendSMS(ctx, n.RecipientPhone, n.SMSBody); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Dispatch delivers like Send but swallows failures, logging them instead.
// Booking flows use this so a transition's result never depends on
// notification delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, n *Notification) {
	if err := d.Send(ctx, n); err != nil {
		d.logger.ErrorWithContext(ctx, "Notification delivery failed", err, map[string]interface{}{
			"notification_id": n.ID,
			"type":            n.Type,
		})
	}
}
