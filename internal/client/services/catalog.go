// Package services contains the public surface of the engine: the optimistic
// mutation API, the background reconciliation pass, and the bootstrap/session
// controller.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/vitrine-app/vitrine/internal/client/cache"
	"github.com/vitrine-app/vitrine/internal/client/events"
	"github.com/vitrine-app/vitrine/internal/client/models"
	"github.com/vitrine-app/vitrine/internal/client/remote"
	"github.com/vitrine-app/vitrine/internal/client/store"
	"github.com/vitrine-app/vitrine/internal/logging"
)

// persistTimeout bounds the background persist+propagate step of one
// mutation.
const persistTimeout = 10 * time.Second

// Catalog is the mutation API. Every write follows the same optimistic
// sequence: apply to the hot cache and fire the data-changed notification
// synchronously, then persist to the store and propagate to the service in
// the background, best-effort. There is no rollback: a failed persist or
// propagate step is logged and the in-memory state stands. Callers needing
// confirmed durability must not read this API's return as such.
type Catalog struct {
	cache   *cache.Cache
	gw      *store.Gateway
	remote  *remote.Client
	changed *events.Emitter[struct{}]
	toasts  *events.Emitter[models.Event]
	log     logging.Logger

	pending sync.WaitGroup
}

func NewCatalog(
	c *cache.Cache,
	gw *store.Gateway,
	rc *remote.Client,
	changed *events.Emitter[struct{}],
	toasts *events.Emitter[models.Event],
	log logging.Logger,
) *Catalog {
	return &Catalog{cache: c, gw: gw, remote: rc, changed: changed, toasts: toasts, log: log}
}

// Snapshot returns the current hot-cache contents.
func (s *Catalog) Snapshot() cache.Snapshot {
	return s.cache.Snapshot()
}

// Subscribe registers a data-changed listener; it is invoked with no
// payload after every cache mutation and must re-read the snapshot itself.
func (s *Catalog) Subscribe(fn func()) func() {
	return s.changed.Subscribe(func(struct{}) { fn() })
}

// SubscribeToToasts registers a transient-event listener.
func (s *Catalog) SubscribeToToasts(fn func(models.Event)) func() {
	return s.toasts.Subscribe(fn)
}

// PushToast emits a one-shot transient event.
func (s *Catalog) PushToast(kind, message string) models.Event {
	ev := models.Event{
		ID:        ulid.Make().String(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.toasts.Emit(ev)
	return ev
}

// Wait blocks until every spawned persist/propagate task has settled. Used
// at shutdown and by tests; the mutation API itself never waits on it.
func (s *Catalog) Wait() {
	s.pending.Wait()
}

// apply runs the optimistic sequence: applyCache and the data-changed
// notification synchronously, then background runs the persist/propagate
// steps.
func (s *Catalog) apply(applyCache func(), background func(ctx context.Context)) {
	applyCache()
	s.changed.Emit(struct{}{})

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		background(ctx)
	}()
}

// propagate runs one remote call, logging instead of surfacing the failure.
func (s *Catalog) propagate(ctx context.Context, op string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		s.log.Warn(ctx, "remote propagation failed", "op", op, "error", err)
	}
}

// SaveExhibit applies e optimistically and returns it with generated fields
// filled in.
func (s *Catalog) SaveExhibit(e models.Exhibit) models.Exhibit {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}

	s.apply(
		func() { s.cache.UpsertExhibit(e) },
		func(ctx context.Context) {
			s.gw.PutExhibit(ctx, &e)
			s.propagate(ctx, "exhibits.push", func(ctx context.Context) error {
				return s.remote.PushExhibit(ctx, &e)
			})
		},
	)
	return e
}

// UpdateExhibit is SaveExhibit for a record that already has an id.
func (s *Catalog) UpdateExhibit(e models.Exhibit) models.Exhibit {
	return s.SaveExhibit(e)
}

func (s *Catalog) DeleteExhibit(id string) {
	s.apply(
		func() { s.cache.RemoveExhibit(id) },
		func(ctx context.Context) {
			s.gw.DeleteExhibit(ctx, id)
			s.propagate(ctx, "exhibits.drop", func(ctx context.Context) error {
				return s.remote.DropExhibit(ctx, id)
			})
		},
	)
}

// EnsureExhibitDetail upgrades a lite record by fetching the detail
// endpoint. A record already held in full is returned as-is without a
// network call. Unlike the mutation methods, the fetch failure surfaces to
// the caller, who asked for detail explicitly.
func (s *Catalog) EnsureExhibitDetail(ctx context.Context, id string) (*models.Exhibit, error) {
	if cached := s.cache.ExhibitByID(id); cached != nil && !cached.Lite {
		return cached, nil
	}

	full, err := s.remote.ExhibitDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	s.apply(
		func() { s.cache.UpsertExhibit(*full) },
		func(ctx context.Context) { s.gw.PutExhibit(ctx, full) },
	)
	return full, nil
}

// EnsureCollectionDetail returns the collection, fetching it from the
// service when it is not held locally. Collections have no lite form, so a
// cached copy is always authoritative enough to return.
func (s *Catalog) EnsureCollectionDetail(ctx context.Context, id string) (*models.Collection, error) {
	if cached := s.cache.CollectionByID(id); cached != nil {
		return cached, nil
	}

	full, err := s.remote.CollectionDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	s.apply(
		func() { s.cache.UpsertCollection(*full) },
		func(ctx context.Context) { s.gw.PutCollection(ctx, full) },
	)
	return full, nil
}

func (s *Catalog) SaveCollection(v models.Collection) models.Collection {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}

	s.apply(
		func() { s.cache.UpsertCollection(v) },
		func(ctx context.Context) {
			s.gw.PutCollection(ctx, &v)
			s.propagate(ctx, "collections.push", func(ctx context.Context) error {
				return s.remote.PushCollection(ctx, &v)
			})
		},
	)
	return v
}

func (s *Catalog) UpdateCollection(v models.Collection) models.Collection {
	return s.SaveCollection(v)
}

func (s *Catalog) DeleteCollection(id string) {
	s.apply(
		func() { s.cache.RemoveCollection(id) },
		func(ctx context.Context) {
			s.gw.DeleteCollection(ctx, id)
			s.propagate(ctx, "collections.drop", func(ctx context.Context) error {
				return s.remote.DropCollection(ctx, id)
			})
		},
	)
}

// SaveUser upserts a profile, keyed by username. Profiles are never deleted
// from this layer.
func (s *Catalog) SaveUser(v models.UserProfile) models.UserProfile {
	s.apply(
		func() { s.cache.UpsertUser(v) },
		func(ctx context.Context) {
			s.gw.PutUser(ctx, &v)
			s.propagate(ctx, "users.push", func(ctx context.Context) error {
				return s.remote.PushUser(ctx, &v)
			})
		},
	)
	return v
}

func (s *Catalog) UpdateUser(v models.UserProfile) models.UserProfile {
	return s.SaveUser(v)
}

func (s *Catalog) SaveNotification(v models.Notification) models.Notification {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt == 0 {
		v.CreatedAt = time.Now().UnixMilli()
	}

	s.apply(
		func() { s.cache.UpsertNotification(v) },
		func(ctx context.Context) {
			s.gw.PutNotification(ctx, &v)
			s.propagate(ctx, "notifications.push", func(ctx context.Context) error {
				return s.remote.PushNotification(ctx, &v)
			})
		},
	)
	return v
}

func (s *Catalog) SaveMessage(v models.Message) models.Message {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt == 0 {
		v.CreatedAt = time.Now().UnixMilli()
	}

	s.apply(
		func() { s.cache.UpsertMessage(v) },
		func(ctx context.Context) {
			s.gw.PutMessage(ctx, &v)
			s.propagate(ctx, "messages.push", func(ctx context.Context) error {
				return s.remote.PushMessage(ctx, &v)
			})
		},
	)
	return v
}

func (s *Catalog) SaveWishlistItem(v models.WishlistItem) models.WishlistItem {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}

	s.apply(
		func() { s.cache.UpsertWishlistItem(v) },
		func(ctx context.Context) {
			s.putGeneric(ctx, models.TableWishlist, v.ID, v)
			s.propagate(ctx, "wishlist.push", func(ctx context.Context) error {
				return s.remote.PushWishlistItem(ctx, &v)
			})
		},
	)
	return v
}

func (s *Catalog) DeleteWishlistItem(id string) {
	s.apply(
		func() { s.cache.RemoveWishlistItem(id) },
		func(ctx context.Context) {
			s.gw.DeleteGeneric(ctx, id)
			s.propagate(ctx, "wishlist.drop", func(ctx context.Context) error {
				return s.remote.DropWishlistItem(ctx, id)
			})
		},
	)
}

func (s *Catalog) SaveGuestbookEntry(v models.GuestbookEntry) models.GuestbookEntry {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt == 0 {
		v.CreatedAt = time.Now().UnixMilli()
	}

	s.apply(
		func() { s.cache.UpsertGuestbookEntry(v) },
		func(ctx context.Context) {
			s.putGeneric(ctx, models.TableGuestbook, v.ID, v)
			s.propagate(ctx, "guestbook.push", func(ctx context.Context) error {
				return s.remote.PushGuestbookEntry(ctx, &v)
			})
		},
	)
	return v
}

func (s *Catalog) DeleteGuestbookEntry(id string) {
	s.apply(
		func() { s.cache.RemoveGuestbookEntry(id) },
		func(ctx context.Context) {
			s.gw.DeleteGeneric(ctx, id)
			s.propagate(ctx, "guestbook.drop", func(ctx context.Context) error {
				return s.remote.DropGuestbookEntry(ctx, id)
			})
		},
	)
}

// SaveGuildRecord persists locally only; the service exposes no guild
// upsert endpoint, guild data arrives via sync.
func (s *Catalog) SaveGuildRecord(v models.GuildRecord) models.GuildRecord {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}

	s.apply(
		func() { s.cache.UpsertGuildRecord(v) },
		func(ctx context.Context) { s.putGeneric(ctx, models.TableGuilds, v.ID, v) },
	)
	return v
}

// SaveTradeRequest persists locally only, like SaveGuildRecord.
func (s *Catalog) SaveTradeRequest(v models.TradeRequest) models.TradeRequest {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt == 0 {
		v.CreatedAt = time.Now().UnixMilli()
	}

	s.apply(
		func() { s.cache.UpsertTradeRequest(v) },
		func(ctx context.Context) { s.putGeneric(ctx, models.TableTradeRequests, v.ID, v) },
	)
	return v
}

func (s *Catalog) putGeneric(ctx context.Context, tbl models.GenericTable, id string, v any) {
	rec, err := models.WrapGeneric(tbl, id, v)
	if err != nil {
		s.log.Warn(ctx, "failed to wrap generic record", "table", tbl, "id", id, "error", err)
		return
	}
	s.gw.PutGeneric(ctx, &rec)
}
