package notify

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/push"
	"github.com/literahq/litera-server/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(t.TempDir(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testNotification(userID string) *domain.Notification {
	return &domain.Notification{
		ID:               "notif-1",
		UserID:           userID,
		Kind:             domain.NotificationReturnReminder,
		Title:            "Return reminder",
		Message:          "Dune is due in 3 days",
		RelatedItemID:    "loan-1",
		RelatedItemTitle: "Dune",
		Timestamp:        time.Now(),
	}
}

type fakeSender struct {
	sent   []push.Message
	errFor map[string]error
}

func (f *fakeSender) Send(_ context.Context, msg push.Message) (string, error) {
	f.sent = append(f.sent, msg)
	if err, ok := f.errFor[msg.Token]; ok {
		return "", err
	}
	return "messages/" + msg.Token, nil
}

func TestLocalChannel_PersistsRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ch := NewLocalChannel(s)
	require.NoError(t, ch.Deliver(ctx, testNotification("user-1")))

	got, err := s.Notifications.Get(ctx, "notif-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, domain.NotificationReturnReminder, got.Kind)
	assert.False(t, got.IsRead)
}

func TestPushChannel_SendsToEveryToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &domain.User{ID: "user-1", Email: "reader@example.com", DeviceTokens: []string{"tok-a", "tok-b"}}
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	sender := &fakeSender{}
	ch := NewPushChannel(s, sender, slog.New(slog.DiscardHandler))

	require.NoError(t, ch.Deliver(ctx, testNotification("user-1")))
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "tok-a", sender.sent[0].Token)
	assert.Equal(t, "Return reminder", sender.sent[0].Title)
	assert.Equal(t, "loan-1", sender.sent[0].Data["related_item_id"])
}

func TestPushChannel_NoTokensIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &domain.User{ID: "user-1", Email: "reader@example.com"}
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	sender := &fakeSender{}
	ch := NewPushChannel(s, sender, slog.New(slog.DiscardHandler))

	require.NoError(t, ch.Deliver(ctx, testNotification("user-1")))
	assert.Empty(t, sender.sent)
}

func TestPushChannel_RemovesUnregisteredTokens(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &domain.User{ID: "user-1", Email: "reader@example.com", DeviceTokens: []string{"stale", "live"}}
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	sender := &fakeSender{errFor: map[string]error{"stale": push.ErrUnregistered}}
	ch := NewPushChannel(s, sender, slog.New(slog.DiscardHandler))

	require.NoError(t, ch.Deliver(ctx, testNotification("user-1")))

	got, err := s.Users.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"live"}, got.DeviceTokens)
}

func TestPushChannel_OtherSendErrorsDoNotDropTokens(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &domain.User{ID: "user-1", Email: "reader@example.com", DeviceTokens: []string{"tok-a"}}
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	sender := &fakeSender{errFor: map[string]error{"tok-a": errors.New("transport down")}}
	ch := NewPushChannel(s, sender, slog.New(slog.DiscardHandler))

	err := ch.Deliver(ctx, testNotification("user-1"))
	require.Error(t, err)

	got, err := s.Users.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-a"}, got.DeviceTokens)
}

func TestDispatcher_ChannelFailureDoesNotStopOthers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	failing := &failingChannel{}
	local := NewLocalChannel(s)
	d := NewDispatcher(slog.New(slog.DiscardHandler), failing, local)

	d.Dispatch(ctx, testNotification("user-1"))

	_, err := s.Notifications.Get(ctx, "notif-1")
	assert.NoError(t, err)
}

type failingChannel struct{}

func (f *failingChannel) Name() string { return "failing" }

func (f *failingChannel) Deliver(context.Context, *domain.Notification) error {
	return errors.New("boom")
}
