package delivery

import "context"

// Recipient is a user resolved as a notification target.
type Recipient struct {
	UserID int64
	Name   string
	Email  string
}

// Sender defines an interface for delivering a rendered alert to one
// recipient. This decouples the dispatcher from the concrete channel
// (NotificationAPI email, Telegram).
type Sender interface {
	Send(ctx context.Context, to Recipient, subject, htmlBody string) error
}
