package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-app/vitrine/internal/client/models"
)

func TestSnapshot_DoesNotAliasInternalState(t *testing.T) {
	c := New()
	c.UpsertExhibit(models.Exhibit{ID: "a1", Title: "sextant"})
	c.UpsertWishlistItem(models.WishlistItem{ID: "w1"})

	snap := c.Snapshot()
	require.Len(t, snap.Exhibits, 1)
	snap.Exhibits[0].Title = "mutated"
	snap.Wishlist[0].ID = "mutated"

	again := c.Snapshot()
	assert.Equal(t, "sextant", again.Exhibits[0].Title)
	assert.Equal(t, "w1", again.Wishlist[0].ID)
}

func TestUpsertExhibit_NewGoesFirst(t *testing.T) {
	c := New()
	c.UpsertExhibit(models.Exhibit{ID: "a1"})
	c.UpsertExhibit(models.Exhibit{ID: "a2"})

	snap := c.Snapshot()
	require.Len(t, snap.Exhibits, 2)
	assert.Equal(t, "a2", snap.Exhibits[0].ID)
}

func TestUpsertExhibit_ReplacesInPlace(t *testing.T) {
	c := New()
	c.UpsertExhibit(models.Exhibit{ID: "a1", Title: "old"})
	c.UpsertExhibit(models.Exhibit{ID: "a2"})
	c.UpsertExhibit(models.Exhibit{ID: "a1", Title: "new"})

	snap := c.Snapshot()
	require.Len(t, snap.Exhibits, 2)
	assert.Equal(t, "a2", snap.Exhibits[0].ID)
	assert.Equal(t, "new", snap.Exhibits[1].Title)
}

func TestUpsertExhibit_LiteNeverReplacesFull(t *testing.T) {
	c := New()
	c.UpsertExhibit(models.Exhibit{ID: "a1", Description: "full detail"})
	c.UpsertExhibit(models.Exhibit{ID: "a1", Lite: true})

	got := c.ExhibitByID("a1")
	require.NotNil(t, got)
	assert.False(t, got.Lite)
	assert.Equal(t, "full detail", got.Description)

	// full replaces lite
	c.UpsertExhibit(models.Exhibit{ID: "a2", Lite: true})
	c.UpsertExhibit(models.Exhibit{ID: "a2", Description: "upgraded"})
	got = c.ExhibitByID("a2")
	require.NotNil(t, got)
	assert.False(t, got.Lite)
}

func TestRemoveExhibit(t *testing.T) {
	c := New()
	c.UpsertExhibit(models.Exhibit{ID: "a1"})
	c.RemoveExhibit("a1")
	c.RemoveExhibit("missing")

	assert.Empty(t, c.Snapshot().Exhibits)
	assert.Nil(t, c.ExhibitByID("a1"))
}

func TestUpsert_ArrivalOrderPreserved(t *testing.T) {
	c := New()
	c.UpsertWishlistItem(models.WishlistItem{ID: "w1", Title: "one"})
	c.UpsertWishlistItem(models.WishlistItem{ID: "w2", Title: "two"})
	c.UpsertWishlistItem(models.WishlistItem{ID: "w1", Title: "one again"})

	snap := c.Snapshot()
	require.Len(t, snap.Wishlist, 2)
	assert.Equal(t, "w1", snap.Wishlist[0].ID)
	assert.Equal(t, "one again", snap.Wishlist[0].Title)
	assert.Equal(t, "w2", snap.Wishlist[1].ID)
}

func TestUserByUsername(t *testing.T) {
	c := New()
	c.UpsertUser(models.UserProfile{Username: "bob", DisplayName: "Bob"})

	got := c.UserByUsername("bob")
	require.NotNil(t, got)
	assert.Equal(t, "Bob", got.DisplayName)
	assert.Nil(t, c.UserByUsername("alice"))
}
