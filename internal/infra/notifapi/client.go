// Package notifapi is a thin client for the NotificationAPI sender
// endpoint, the email channel the organization already uses.
package notifapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"novenapp_alert_bot/internal/domain/delivery"
)

// ErrNotConfigured is returned by New when credentials are missing.
var ErrNotConfigured = fmt.Errorf("NotificationAPI credentials not configured")

// notificationID is the template the service renders for generic alerts.
const notificationID = "generic_alert"

const defaultTimeout = 30 * time.Second

// Client implements delivery.Sender against the NotificationAPI REST API.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
}

// New builds a Client. Returns ErrNotConfigured when either credential is
// empty, so callers can surface the misconfiguration instead of failing on
// the first send.
func New(clientID, clientSecret, baseURL string) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrNotConfigured
	}
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: defaultTimeout},
	}, nil
}

type sendRequest struct {
	NotificationID string    `json:"notificationId"`
	User           sendUser  `json:"user"`
	Email          sendEmail `json:"email"`
}

type sendUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type sendEmail struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send delivers one email notification. The recipient's email address
// doubles as the NotificationAPI user ID.
func (c *Client) Send(ctx context.Context, to delivery.Recipient, subject, htmlBody string) error {
	payload := sendRequest{
		NotificationID: notificationID,
		User:           sendUser{ID: to.Email, Email: to.Email},
		Email:          sendEmail{Subject: subject, HTML: htmlBody},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling notification payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/sender", c.baseURL, c.clientID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending notification to %s: %w", to.Email, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification API returned %d for %s: %s", resp.StatusCode, to.Email, detail)
	}
	return nil
}
