// Package notify fans user-visible notifications out to delivery
// channels: the local in-app feed and the push transport.
package notify

import (
	"context"
	"log/slog"

	"github.com/literahq/litera-server/internal/domain"
)

// Channel delivers one notification to one user through one medium.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, n *domain.Notification) error
}

// Dispatcher fans a notification out to every configured channel. A
// failing channel is logged and never stops the others; delivery problems
// must not fail the scan that triggered them.
type Dispatcher struct {
	channels []Channel
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given channels.
func NewDispatcher(logger *slog.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels, logger: logger}
}

// Dispatch delivers n through every channel.
func (d *Dispatcher) Dispatch(ctx context.Context, n *domain.Notification) {
	for _, ch := range d.channels {
		if err := ch.Deliver(ctx, n); err != nil {
			if d.logger != nil {
				d.logger.Warn("notification delivery failed",
					"channel", ch.Name(),
					"user_id", n.UserID,
					"kind", n.Kind,
					"error", err,
				)
			}
		}
	}
}
