package generic

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-app/vitrine/internal/client/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE generic (
  id   TEXT PRIMARY KEY,
  tbl  TEXT NOT NULL,
  data TEXT NOT NULL
);
CREATE INDEX idx_generic_tbl ON generic (tbl);
`)
	require.NoError(t, err)

	return db
}

func TestGetByTable_PartitionsByTag(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	w, err := models.WrapGeneric(models.TableWishlist, "w1", models.WishlistItem{ID: "w1", Owner: "bob", Title: "astrolabe"})
	require.NoError(t, err)
	g, err := models.WrapGeneric(models.TableGuestbook, "g1", models.GuestbookEntry{ID: "g1", Author: "alice", Profile: "bob", Text: "hi"})
	require.NoError(t, err)

	require.NoError(t, r.Upsert(ctx, &w))
	require.NoError(t, r.Upsert(ctx, &g))

	wishlist, err := r.GetByTable(ctx, models.TableWishlist)
	require.NoError(t, err)
	guestbook, err := r.GetByTable(ctx, models.TableGuestbook)
	require.NoError(t, err)

	require.Len(t, wishlist, 1)
	require.Len(t, guestbook, 1)
	assert.Equal(t, "w1", wishlist[0].ID)
	assert.Equal(t, "g1", guestbook[0].ID)

	guilds, err := r.GetByTable(ctx, models.TableGuilds)
	require.NoError(t, err)
	assert.Empty(t, guilds)
}

func TestUpsert_ReplacesById(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	w1, err := models.WrapGeneric(models.TableWishlist, "w1", models.WishlistItem{ID: "w1", Title: "astrolabe"})
	require.NoError(t, err)
	require.NoError(t, r.Upsert(ctx, &w1))

	w1b, err := models.WrapGeneric(models.TableWishlist, "w1", models.WishlistItem{ID: "w1", Title: "orrery"})
	require.NoError(t, err)
	require.NoError(t, r.Upsert(ctx, &w1b))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got, err := all[0].Unwrap()
	require.NoError(t, err)
	assert.Equal(t, "orrery", got.(models.WishlistItem).Title)
}

func TestDeleteByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	w, err := models.WrapGeneric(models.TableTradeRequests, "t1", models.TradeRequest{ID: "t1", From: "a", To: "b"})
	require.NoError(t, err)
	require.NoError(t, r.Upsert(ctx, &w))
	require.NoError(t, r.DeleteByID(ctx, "t1"))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
