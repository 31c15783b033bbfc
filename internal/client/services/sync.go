package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vitrine-app/vitrine/internal/client/cache"
	"github.com/vitrine-app/vitrine/internal/client/models"
	"github.com/vitrine-app/vitrine/internal/client/remote"
	"github.com/vitrine-app/vitrine/internal/client/store"
	"github.com/vitrine-app/vitrine/internal/logging"
)

// Syncer runs the background reconciliation pass: fetch every remote data
// source concurrently, treat each failed source as empty, merge the results
// into the durable store and re-hydrate the hot cache. It never returns an
// error; reachability is reported through the shared offline flag.
type Syncer struct {
	gw      *store.Gateway
	remote  *remote.Client
	hyd     *cache.Hydrator
	log     logging.Logger
	offline *atomic.Bool

	// session supplies the current session, nil when signed out. Private
	// per-user sources are fetched only when one exists.
	session func() *models.Session

	running atomic.Bool
}

func NewSyncer(
	gw *store.Gateway,
	rc *remote.Client,
	hyd *cache.Hydrator,
	offline *atomic.Bool,
	session func() *models.Session,
	log logging.Logger,
) *Syncer {
	return &Syncer{gw: gw, remote: rc, hyd: hyd, offline: offline, session: session, log: log}
}

// Run executes one pass immediately and then one per interval until ctx is
// cancelled.
func (s *Syncer) Run(ctx context.Context, interval time.Duration) {
	s.RunPass(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunPass(ctx)
		}
	}
}

// RunPass executes a single settle-all reconciliation pass. Concurrent
// invocations are coalesced: if a pass is already in flight the call
// returns without doing anything.
func (s *Syncer) RunPass(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Debug(ctx, "sync pass already in flight, skipping")
		return
	}
	defer s.running.Store(false)

	defer func() {
		if r := recover(); r != nil {
			s.log.Error(ctx, "sync pass panicked", "panic", r)
		}
	}()

	var (
		feed        []models.Exhibit
		users       []models.UserProfile
		wishlist    []models.WishlistItem
		collections []models.Collection
		guestbook   []models.GuestbookEntry

		userSync      *remote.UserSync
		notifications []models.Notification
		messages      []models.Message
	)

	var (
		wg      sync.WaitGroup
		reached atomic.Bool
	)
	fetch := func(source string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				// A rejection still proves the service answered; only a
				// transport failure or timeout counts against reachability.
				var se *remote.StatusError
				if errors.As(err, &se) {
					reached.Store(true)
				}
				s.log.Warn(ctx, "sync source failed, treating as empty", "source", source, "error", err)
				return
			}
			reached.Store(true)
		}()
	}

	fetch("feed", func() (err error) { feed, err = s.remote.Feed(ctx); return })
	fetch("users", func() (err error) { users, err = s.remote.Users(ctx); return })
	fetch("wishlist", func() (err error) { wishlist, err = s.remote.Wishlist(ctx); return })
	fetch("collections", func() (err error) { collections, err = s.remote.Collections(ctx); return })
	fetch("guestbook", func() (err error) { guestbook, err = s.remote.Guestbook(ctx); return })

	if sess := s.session(); sess != nil {
		fetch("user-sync", func() (err error) { userSync, err = s.remote.SyncForUser(ctx, sess.Username); return })
		fetch("notifications", func() (err error) { notifications, err = s.remote.Notifications(ctx, sess.Username); return })
		fetch("messages", func() (err error) { messages, err = s.remote.Messages(ctx, sess.Username); return })
	}

	wg.Wait()
	s.offline.Store(!reached.Load())

	// Feed entries carry summary fields only; mark them lite so a full
	// record already held locally is never downgraded by the merge.
	for i := range feed {
		e := feed[i]
		e.Lite = true
		s.gw.PutExhibit(ctx, &e)
	}
	for i := range users {
		s.gw.PutUser(ctx, &users[i])
	}
	for i := range collections {
		s.gw.PutCollection(ctx, &collections[i])
	}
	for _, v := range wishlist {
		s.mergeGeneric(ctx, models.TableWishlist, v.ID, v)
	}
	for _, v := range guestbook {
		s.mergeGeneric(ctx, models.TableGuestbook, v.ID, v)
	}

	if userSync != nil {
		for i := range userSync.Users {
			s.gw.PutUser(ctx, &userSync.Users[i])
		}
		for i := range userSync.Collections {
			s.gw.PutCollection(ctx, &userSync.Collections[i])
		}
	}
	for i := range notifications {
		s.gw.PutNotification(ctx, &notifications[i])
	}
	for i := range messages {
		s.gw.PutMessage(ctx, &messages[i])
	}

	// Critical first so badge data lands before the content tier fires the
	// data-changed notification.
	s.hyd.Critical(ctx)
	s.hyd.Content(ctx)
}

func (s *Syncer) mergeGeneric(ctx context.Context, tbl models.GenericTable, id string, v any) {
	rec, err := models.WrapGeneric(tbl, id, v)
	if err != nil {
		s.log.Warn(ctx, "failed to wrap synced record", "table", tbl, "id", id, "error", err)
		return
	}
	s.gw.PutGeneric(ctx, &rec)
}
