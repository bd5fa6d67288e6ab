package ports

import "context"

// Notification is a plain-text message for one or more recipients.
type Notification struct {
	To      []string
	Subject string
	Message string
}

// Notifier delivers a notification or reports why it could not.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}
