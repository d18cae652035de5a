// internal/email/sender.go
package email

import (
	"context"
	"log/slog"
)

// Sender delivers account emails. Actual delivery (e.g. SES) lives behind
// this interface and outside this codebase's concern.
type Sender interface {
	SendWelcome(ctx context.Context, recipient, name string) error
}

// LogSender is the wired default: it records the send instead of delivering.
type LogSender struct {
	Logger *slog.Logger
}

// SendWelcome implements Sender.
func (s LogSender) SendWelcome(ctx context.Context, recipient, name string) error {
	s.Logger.Info("welcome email queued", "recipient", recipient, "name", name)
	return nil
}
