package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-app/vitrine/internal/client/cache"
	"github.com/vitrine-app/vitrine/internal/client/events"
	"github.com/vitrine-app/vitrine/internal/client/models"
	"github.com/vitrine-app/vitrine/internal/client/remote"
	"github.com/vitrine-app/vitrine/internal/client/store"
	"github.com/vitrine-app/vitrine/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// requestLog records the method+path of every request a test server saw.
type requestLog struct {
	mu   sync.Mutex
	seen []string
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen = append(l.seen, r.Method+" "+r.URL.Path)
}

func (l *requestLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.seen...)
}

// newTestServer starts a server that records every request before handing
// it to h.
func newTestServer(t *testing.T, reqs *requestLog, h http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqs.add(r)
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

type fixture struct {
	catalog  *Catalog
	cache    *cache.Cache
	gw       *store.Gateway
	requests *requestLog
}

func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()
	log := testLogger()

	s := store.New(filepath.Join(t.TempDir(), "vitrine.db"), log)
	t.Cleanup(func() { _ = s.Close() })
	gw := store.NewGateway(s, log)

	reqs := &requestLog{}
	srv := newTestServer(t, reqs, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler != nil {
			handler(w, r)
			return
		}
		_, _ = w.Write([]byte("{}"))
	}))

	c := cache.New()
	changed := &events.Emitter[struct{}]{}
	toasts := &events.Emitter[models.Event]{}
	return &fixture{
		catalog:  NewCatalog(c, gw, remote.New(srv.URL, log), changed, toasts, log),
		cache:    c,
		gw:       gw,
		requests: reqs,
	}
}

func TestSaveExhibit_VisibleBeforePersist(t *testing.T) {
	f := newFixture(t, nil)

	var notified int
	f.catalog.Subscribe(func() { notified++ })

	saved := f.catalog.SaveExhibit(models.Exhibit{Title: "Astrolabe", Owner: "bob"})
	assert.NotEmpty(t, saved.ID)
	assert.NotZero(t, saved.Timestamp)

	// The snapshot reflects the write immediately, regardless of the
	// background persist.
	snap := f.catalog.Snapshot()
	require.Len(t, snap.Exhibits, 1)
	assert.Equal(t, "Astrolabe", snap.Exhibits[0].Title)
	assert.Equal(t, 1, notified)

	f.catalog.Wait()
	got := f.gw.ExhibitByID(context.Background(), saved.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Astrolabe", got.Title)
	assert.Contains(t, f.requests.all(), "POST /exhibits")
}

func TestSaveExhibit_KeepsExplicitID(t *testing.T) {
	f := newFixture(t, nil)

	saved := f.catalog.SaveExhibit(models.Exhibit{ID: "ex1", Title: "Sextant", Timestamp: 42})
	assert.Equal(t, "ex1", saved.ID)
	assert.Equal(t, int64(42), saved.Timestamp)
}

func TestDeleteExhibit_RemovesEverywhere(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	saved := f.catalog.SaveExhibit(models.Exhibit{Title: "Orrery"})
	f.catalog.Wait()

	f.catalog.DeleteExhibit(saved.ID)
	assert.Nil(t, f.cache.ExhibitByID(saved.ID))

	f.catalog.Wait()
	assert.Nil(t, f.gw.ExhibitByID(ctx, saved.ID))
	assert.Contains(t, f.requests.all(), "DELETE /exhibits/"+saved.ID)
}

func TestMutation_RemoteFailureDoesNotRollBack(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	saved := f.catalog.SaveExhibit(models.Exhibit{Title: "Celestial Globe"})
	f.catalog.Wait()

	// The push failed but both local tiers keep the record.
	assert.NotNil(t, f.cache.ExhibitByID(saved.ID))
	assert.NotNil(t, f.gw.ExhibitByID(context.Background(), saved.ID))
}

func TestSaveWishlistItem_PersistedAsGeneric(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	saved := f.catalog.SaveWishlistItem(models.WishlistItem{Title: "Armillary Sphere", Owner: "bob"})
	assert.NotEmpty(t, saved.ID)

	f.catalog.Wait()
	recs := f.gw.GenericByTable(ctx, models.TableWishlist)
	require.Len(t, recs, 1)
	v, err := recs[0].Unwrap()
	require.NoError(t, err)
	assert.Equal(t, saved, v.(models.WishlistItem))

	f.catalog.DeleteWishlistItem(saved.ID)
	f.catalog.Wait()
	assert.Empty(t, f.gw.GenericByTable(ctx, models.TableWishlist))
	assert.Contains(t, f.requests.all(), "DELETE /wishlist/"+saved.ID)
}

func TestSaveGuildRecord_NoRemotePropagation(t *testing.T) {
	f := newFixture(t, nil)

	f.catalog.SaveGuildRecord(models.GuildRecord{Name: "Horologists"})
	f.catalog.SaveTradeRequest(models.TradeRequest{From: "bob", To: "alice"})
	f.catalog.Wait()

	assert.Empty(t, f.requests.all())
	assert.Len(t, f.gw.GenericByTable(context.Background(), models.TableGuilds), 1)
	assert.Len(t, f.gw.GenericByTable(context.Background(), models.TableTradeRequests), 1)
}

func TestEnsureExhibitDetail_SkipsFetchWhenFull(t *testing.T) {
	f := newFixture(t, nil)

	f.cache.UpsertExhibit(models.Exhibit{ID: "ex1", Title: "Quadrant", Lite: false})

	got, err := f.catalog.EnsureExhibitDetail(context.Background(), "ex1")
	require.NoError(t, err)
	assert.Equal(t, "Quadrant", got.Title)
	assert.Empty(t, f.requests.all())
}

func TestEnsureExhibitDetail_UpgradesLite(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/exhibits/ex1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.Exhibit{
			ID: "ex1", Title: "Quadrant", Description: "brass, 18th century",
		})
	})

	f.cache.UpsertExhibit(models.Exhibit{ID: "ex1", Title: "Quadrant", Lite: true})

	got, err := f.catalog.EnsureExhibitDetail(context.Background(), "ex1")
	require.NoError(t, err)
	assert.False(t, got.Lite)
	assert.Equal(t, "brass, 18th century", got.Description)

	cached := f.cache.ExhibitByID("ex1")
	require.NotNil(t, cached)
	assert.False(t, cached.Lite)

	f.catalog.Wait()
	stored := f.gw.ExhibitByID(context.Background(), "ex1")
	require.NotNil(t, stored)
	assert.False(t, stored.Lite)
}

func TestEnsureCollectionDetail_SkipsFetchWhenCached(t *testing.T) {
	f := newFixture(t, nil)

	f.cache.UpsertCollection(models.Collection{ID: "c1", Name: "Navigation"})

	got, err := f.catalog.EnsureCollectionDetail(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Navigation", got.Name)
	assert.Empty(t, f.requests.all())
}

func TestEnsureCollectionDetail_FetchesMissing(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/c1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.Collection{
			ID: "c1", Owner: "alice", Name: "Navigation", ExhibitIDs: []string{"ex1"},
		})
	})

	got, err := f.catalog.EnsureCollectionDetail(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Owner)

	require.NotNil(t, f.cache.CollectionByID("c1"))

	f.catalog.Wait()
	stored := f.gw.Collections(context.Background())
	require.Len(t, stored, 1)
	assert.Equal(t, []string{"ex1"}, stored[0].ExhibitIDs)
}

func TestEnsureExhibitDetail_FetchErrorSurfaces(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := f.catalog.EnsureExhibitDetail(context.Background(), "missing")
	var se *remote.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestPushToast_DeliversAndOrders(t *testing.T) {
	f := newFixture(t, nil)

	var got []models.Event
	unsub := f.catalog.SubscribeToToasts(func(ev models.Event) { got = append(got, ev) })
	defer unsub()

	first := f.catalog.PushToast("info", "saved")
	second := f.catalog.PushToast("error", "sync failed")

	require.Len(t, got, 2)
	assert.Equal(t, "saved", got[0].Message)
	assert.Equal(t, "sync failed", got[1].Message)
	// ulids order lexicographically by creation time.
	assert.LessOrEqual(t, first.ID, second.ID)
}

func TestSubscribe_UnsubscribeStopsDelivery(t *testing.T) {
	f := newFixture(t, nil)

	var notified int
	unsub := f.catalog.Subscribe(func() { notified++ })

	f.catalog.SaveExhibit(models.Exhibit{Title: "a"})
	unsub()
	f.catalog.SaveExhibit(models.Exhibit{Title: "b"})

	f.catalog.Wait()
	assert.Equal(t, 1, notified)
}
