package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/push"
	"github.com/literahq/litera-server/internal/store"
)

// Sender is the push transport. Implemented by push.Client.
type Sender interface {
	Send(ctx context.Context, msg push.Message) (string, error)
}

// PushChannel mirrors notifications to every device token the user has
// registered. Tokens the transport reports as unregistered are removed
// from the user record - stale tokens otherwise accumulate forever.
type PushChannel struct {
	store  *store.Store
	sender Sender
	logger *slog.Logger
}

// NewPushChannel creates the push channel.
func NewPushChannel(s *store.Store, sender Sender, logger *slog.Logger) *PushChannel {
	return &PushChannel{store: s, sender: sender, logger: logger}
}

// Name identifies the channel in logs.
func (c *PushChannel) Name() string { return "push" }

// Deliver sends the notification to all of the user's devices. A send
// failure on one token does not stop the others.
func (c *PushChannel) Deliver(ctx context.Context, n *domain.Notification) error {
	user, err := c.store.Users.Get(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("load user %s: %w", n.UserID, err)
	}

	if len(user.DeviceTokens) == 0 {
		return nil
	}

	var stale []string
	var lastErr error

	for _, token := range user.DeviceTokens {
		_, err := c.sender.Send(ctx, push.Message{
			Token: token,
			Title: n.Title,
			Body:  n.Message,
			Data: map[string]string{
				"kind":            string(n.Kind),
				"related_item_id": n.RelatedItemID,
			},
		})
		if err == nil {
			continue
		}

		if errors.Is(err, push.ErrUnregistered) {
			stale = append(stale, token)
			continue
		}

		lastErr = err
		if c.logger != nil {
			c.logger.Warn("push send failed", "user_id", user.ID, "error", err)
		}
	}

	if len(stale) > 0 {
		c.cleanupTokens(ctx, user, stale)
	}

	return lastErr
}

// cleanupTokens removes unregistered tokens from the user record.
func (c *PushChannel) cleanupTokens(ctx context.Context, user *domain.User, stale []string) {
	for _, token := range stale {
		user.RemoveDeviceToken(token)
	}
	if err := c.store.Users.Update(ctx, user.ID, user); err != nil {
		if c.logger != nil {
			c.logger.Warn("failed to remove stale push tokens", "user_id", user.ID, "error", err)
		}
		return
	}
	if c.logger != nil {
		c.logger.Info("removed unregistered push tokens", "user_id", user.ID, "count", len(stale))
	}
}
