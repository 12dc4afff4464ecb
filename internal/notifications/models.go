package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationTypeBookingUpdated   NotificationType = "BOOKING_UPDATED"
	NotificationTypeBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationTypeSeatAssigned     NotificationType = "SEAT_ASSIGNED"
	NotificationTypeReminder24h      NotificationType = "REMINDER_24H"
	NotificationTypeReminder1h       NotificationType = "REMINDER_1H"
)

// Attachment is a file carried with an email, typically the booking's ICS
// calendar entry.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"content"`
}

// Notification is one outbound message. Email is always attempted when the
// recipient has an address; SMS only when both a phone number and an SMS
// body are present.
type Notification struct {
	ID   uuid.UUID        `json:"id"`
	Type NotificationType `json:"type"`

	RecipientID    uuid.UUID `json:"recipient_id"`
	RecipientName  string    `json:"recipient_name"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientPhone string    `json:"recipient_phone,omitempty"`

	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
	SMSBody  string `json:"sms_body,omitempty"`

	BookingID   *uuid.UUID   `json:"booking_id,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewNotification creates a notification with generated id and timestamp
func NewNotification(notType NotificationType) *Notification {
	return &Notification{
		ID:        uuid.New(),
		Type:      notType,
		CreatedAt: time.Now(),
	}
}

// GetPartitionKey keys Kafka partitioning by recipient so one user's
// notifications stay ordered.
func (n *Notification) GetPartitionKey() string {
	return n.RecipientID.String()
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func NotificationFromJSON(data []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
