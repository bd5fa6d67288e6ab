package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/userdir/user-service/internal/core/ports"
)

// LogNotifier writes notifications to the log instead of delivering them.
// Meant for local development.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, msg ports.Notification) error {
	n.log.Info().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Str("message", msg.Message).
		Msg("notification")
	return nil
}
