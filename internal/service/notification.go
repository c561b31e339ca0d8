package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/errors"
	"github.com/literahq/litera-server/internal/store"
)

// NotificationService exposes the in-app notification feed and device
// token registration.
type NotificationService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(store *store.Store, logger *slog.Logger) *NotificationService {
	return &NotificationService{store: store, logger: logger}
}

// List returns a user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	notifs, err := s.store.NotificationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(notifs, func(a, b *domain.Notification) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return notifs, nil
}

// UnreadCount returns how many notifications the user has not read.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	notifs, err := s.store.NotificationsByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifs {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

// MarkRead flips a notification to read. Only the owner may do it.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notifID string) (*domain.Notification, error) {
	n, err := s.store.Notifications.Get(ctx, notifID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, errors.Forbidden("notification belongs to another user")
	}
	if n.IsRead {
		return n, nil
	}

	n.IsRead = true
	if err := s.store.Notifications.Update(ctx, n.ID, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead flips every unread notification for the user.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	notifs, err := s.store.NotificationsByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, n := range notifs {
		if n.IsRead {
			continue
		}
		n.IsRead = true
		if err := s.store.Notifications.Update(ctx, n.ID, n); err != nil {
			s.logger.Warn("failed to mark notification read", "notification_id", n.ID, "error", err)
			continue
		}
		marked++
	}
	return marked, nil
}

// RegisterDeviceToken attaches a push token to the user's account.
func (s *NotificationService) RegisterDeviceToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return errors.Validation("device token must not be empty")
	}

	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !user.AddDeviceToken(token) {
		return nil // already registered
	}
	user.UpdatedAt = time.Now()
	return s.store.Users.Update(ctx, user.ID, user)
}

// RemoveDeviceToken detaches a push token, typically on logout.
func (s *NotificationService) RemoveDeviceToken(ctx context.Context, userID, token string) error {
	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !user.RemoveDeviceToken(token) {
		return nil
	}
	return s.store.Users.Update(ctx, user.ID, user)
}
