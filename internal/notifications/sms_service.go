package notifications

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"seatly/internal/shared/config"
)

// SMSService interface for sending SMS messages
type SMSService interface {
	SendSMS(ctx context.Context, to, body string) error
}

// TwilioSMSService sends SMS through the Twilio Messages REST endpoint
type TwilioSMSService struct {
	cfg    config.SMSConfig
	client *http.Client
}

// NewTwilioSMSService creates a new Twilio SMS service
func NewTwilioSMSService(cfg config.SMSConfig) (*TwilioSMSService, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("twilio credentials are required")
	}
	if cfg.FromNumber == "" {
		return nil, fmt.Errorf("twilio from number is required")
	}
	return &TwilioSMSService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.HTTPTimeout},
	}, nil
}

// SendSMS sends a single text message
func (s *TwilioSMSService) SendSMS(ctx context.Context, to, body string) error {
	if to == "" {
		return fmt.Errorf("recipient phone number is empty")
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.cfg.AccountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.cfg.FromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build twilio request: %w", err)
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}
	return nil
}
