package notify

import (
	"context"
	"fmt"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/store"
)

// LocalChannel persists notifications to the user's in-app feed. This is
// the channel that owns the NotificationRecord write; the push channel
// only mirrors it to devices.
type LocalChannel struct {
	store *store.Store
}

// NewLocalChannel creates the in-app feed channel.
func NewLocalChannel(s *store.Store) *LocalChannel {
	return &LocalChannel{store: s}
}

// Name identifies the channel in logs.
func (c *LocalChannel) Name() string { return "local" }

// Deliver writes the notification record.
func (c *LocalChannel) Deliver(ctx context.Context, n *domain.Notification) error {
	if err := c.store.Notifications.Create(ctx, n.ID, n); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}
	return nil
}
