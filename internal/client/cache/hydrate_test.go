package cache

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-app/vitrine/internal/client/events"
	"github.com/vitrine-app/vitrine/internal/client/models"
	"github.com/vitrine-app/vitrine/internal/client/store"
	"github.com/vitrine-app/vitrine/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestGateway(t *testing.T) *store.Gateway {
	t.Helper()
	log := testLogger()
	s := store.New(filepath.Join(t.TempDir(), "vitrine.db"), log)
	t.Cleanup(func() { _ = s.Close() })
	return store.NewGateway(s, log)
}

func TestContent_LoadsAndDemuxes(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(t)

	gw.PutExhibit(ctx, &models.Exhibit{ID: "old", Timestamp: 1})
	gw.PutExhibit(ctx, &models.Exhibit{ID: "new", Timestamp: 2})
	gw.PutCollection(ctx, &models.Collection{ID: "c1", Owner: "bob"})

	w, err := models.WrapGeneric(models.TableWishlist, "w1", models.WishlistItem{ID: "w1"})
	require.NoError(t, err)
	g, err := models.WrapGeneric(models.TableGuestbook, "g1", models.GuestbookEntry{ID: "g1"})
	require.NoError(t, err)
	gw.PutGeneric(ctx, &w)
	gw.PutGeneric(ctx, &g)

	c := New()
	var changed events.Emitter[struct{}]
	notified := 0
	changed.Subscribe(func(struct{}) { notified++ })

	h := NewHydrator(gw, c, &changed, testLogger())
	h.Content(ctx)

	snap := c.Snapshot()
	require.Len(t, snap.Exhibits, 2)
	assert.Equal(t, "new", snap.Exhibits[0].ID)
	assert.Len(t, snap.Collections, 1)

	// wishlist and guestbook views are disjoint
	require.Len(t, snap.Wishlist, 1)
	require.Len(t, snap.Guestbook, 1)
	assert.Equal(t, "w1", snap.Wishlist[0].ID)
	assert.Equal(t, "g1", snap.Guestbook[0].ID)
	assert.Empty(t, snap.Guilds)
	assert.Empty(t, snap.TradeRequests)

	assert.Equal(t, 1, notified)
}

func TestContent_Idempotent(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(t)

	gw.PutExhibit(ctx, &models.Exhibit{ID: "a1", Timestamp: 5})
	gw.PutUser(ctx, &models.UserProfile{Username: "bob"})

	c := New()
	var changed events.Emitter[struct{}]
	h := NewHydrator(gw, c, &changed, testLogger())

	h.Critical(ctx)
	h.Content(ctx)
	first := c.Snapshot()

	h.Critical(ctx)
	h.Content(ctx)
	second := c.Snapshot()

	assert.Equal(t, first, second)
}

func TestHydration_BrokenStoreYieldsEmptyCache(t *testing.T) {
	ctx := context.Background()
	log := testLogger()
	// DSN points at a directory: the store can never open
	gw := store.NewGateway(store.New(t.TempDir(), log), log)

	c := New()
	var changed events.Emitter[struct{}]
	h := NewHydrator(gw, c, &changed, log)

	h.Critical(ctx)
	h.Content(ctx)

	snap := c.Snapshot()
	assert.Empty(t, snap.Exhibits)
	assert.Empty(t, snap.Users)
	assert.Empty(t, snap.Wishlist)
}

func TestCritical_LoadsIdentityCollections(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(t)

	gw.PutUser(ctx, &models.UserProfile{Username: "bob"})
	gw.PutNotification(ctx, &models.Notification{ID: "n1", Recipient: "bob"})
	gw.PutMessage(ctx, &models.Message{ID: "m1", Sender: "alice", Recipient: "bob"})

	c := New()
	var changed events.Emitter[struct{}]
	h := NewHydrator(gw, c, &changed, testLogger())
	h.Critical(ctx)

	snap := c.Snapshot()
	assert.Len(t, snap.Users, 1)
	assert.Len(t, snap.Notifications, 1)
	assert.Len(t, snap.Messages, 1)
	// content tier untouched
	assert.Empty(t, snap.Exhibits)
}
