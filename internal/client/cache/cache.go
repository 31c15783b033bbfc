// Package cache holds the hot cache: a process-lifetime, synchronously
// readable mirror of the durable store. All presentation reads go through
// this mirror, never through the store directly; only hydration and the
// mutation API write into it.
package cache

import (
	"sync"

	"github.com/vitrine-app/vitrine/internal/client/models"
)

// Snapshot is a shallow copy of every cached collection, safe to hand out:
// mutating a snapshot does not alias the cache's internal slices.
type Snapshot struct {
	Exhibits      []models.Exhibit
	Collections   []models.Collection
	Users         []models.UserProfile
	Notifications []models.Notification
	Messages      []models.Message
	Wishlist      []models.WishlistItem
	Guestbook     []models.GuestbookEntry
	Guilds        []models.GuildRecord
	TradeRequests []models.TradeRequest
}

// Cache is the in-memory working set, one ordered collection per entity
// kind. Exhibits are kept newest-first; the other collections preserve
// arrival order. A single mutex guards all collections, reads under it are
// snapshot copies.
type Cache struct {
	mu sync.Mutex

	exhibits      []models.Exhibit
	collections   []models.Collection
	users         []models.UserProfile
	notifications []models.Notification
	messages      []models.Message
	wishlist      []models.WishlistItem
	guestbook     []models.GuestbookEntry
	guilds        []models.GuildRecord
	tradeRequests []models.TradeRequest
}

func New() *Cache {
	return &Cache{}
}

// Snapshot returns a shallow copy of all collections.
func (c *Cache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Exhibits:      copySlice(c.exhibits),
		Collections:   copySlice(c.collections),
		Users:         copySlice(c.users),
		Notifications: copySlice(c.notifications),
		Messages:      copySlice(c.messages),
		Wishlist:      copySlice(c.wishlist),
		Guestbook:     copySlice(c.guestbook),
		Guilds:        copySlice(c.guilds),
		TradeRequests: copySlice(c.tradeRequests),
	}
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// upsert replaces the element with the same key in place, or appends,
// preserving arrival order.
func upsert[T any](list []T, key func(T) string, v T) []T {
	k := key(v)
	for i := range list {
		if key(list[i]) == k {
			list[i] = v
			return list
		}
	}
	return append(list, v)
}

func remove[T any](list []T, key func(T) string, id string) []T {
	for i := range list {
		if key(list[i]) == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// UpsertExhibit replaces an exhibit in place, or prepends a new one (a
// fresh write is the newest record; full ordering is re-established at the
// next hydration). A lite record never replaces a full record.
func (c *Cache) UpsertExhibit(e models.Exhibit) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.exhibits {
		if c.exhibits[i].ID == e.ID {
			if e.Lite && !c.exhibits[i].Lite {
				return
			}
			c.exhibits[i] = e
			return
		}
	}
	c.exhibits = append([]models.Exhibit{e}, c.exhibits...)
}

func (c *Cache) RemoveExhibit(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exhibits = remove(c.exhibits, func(e models.Exhibit) string { return e.ID }, id)
}

// ExhibitByID returns the cached record, if any.
func (c *Cache) ExhibitByID(id string) *models.Exhibit {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.exhibits {
		if c.exhibits[i].ID == id {
			e := c.exhibits[i]
			return &e
		}
	}
	return nil
}

func (c *Cache) UpsertCollection(v models.Collection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collections = upsert(c.collections, func(x models.Collection) string { return x.ID }, v)
}

func (c *Cache) CollectionByID(id string) *models.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.collections {
		if c.collections[i].ID == id {
			v := c.collections[i]
			return &v
		}
	}
	return nil
}

func (c *Cache) RemoveCollection(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collections = remove(c.collections, func(x models.Collection) string { return x.ID }, id)
}

func (c *Cache) UpsertUser(v models.UserProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = upsert(c.users, func(x models.UserProfile) string { return x.Username }, v)
}

func (c *Cache) UserByUsername(username string) *models.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.users {
		if c.users[i].Username == username {
			u := c.users[i]
			return &u
		}
	}
	return nil
}

func (c *Cache) UpsertNotification(v models.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = upsert(c.notifications, func(x models.Notification) string { return x.ID }, v)
}

func (c *Cache) UpsertMessage(v models.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = upsert(c.messages, func(x models.Message) string { return x.ID }, v)
}

func (c *Cache) UpsertWishlistItem(v models.WishlistItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wishlist = upsert(c.wishlist, func(x models.WishlistItem) string { return x.ID }, v)
}

func (c *Cache) RemoveWishlistItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wishlist = remove(c.wishlist, func(x models.WishlistItem) string { return x.ID }, id)
}

func (c *Cache) UpsertGuestbookEntry(v models.GuestbookEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.guestbook = upsert(c.guestbook, func(x models.GuestbookEntry) string { return x.ID }, v)
}

func (c *Cache) RemoveGuestbookEntry(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.guestbook = remove(c.guestbook, func(x models.GuestbookEntry) string { return x.ID }, id)
}

func (c *Cache) UpsertGuildRecord(v models.GuildRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.guilds = upsert(c.guilds, func(x models.GuildRecord) string { return x.ID }, v)
}

func (c *Cache) UpsertTradeRequest(v models.TradeRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tradeRequests = upsert(c.tradeRequests, func(x models.TradeRequest) string { return x.ID }, v)
}

// ReplaceCritical swaps in the critical-tier collections wholesale.
func (c *Cache) ReplaceCritical(users []models.UserProfile, notifications []models.Notification, messages []models.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = users
	c.notifications = notifications
	c.messages = messages
}

// ReplaceContent swaps in the content-tier collections wholesale.
func (c *Cache) ReplaceContent(
	exhibits []models.Exhibit,
	collections []models.Collection,
	wishlist []models.WishlistItem,
	guestbook []models.GuestbookEntry,
	guilds []models.GuildRecord,
	tradeRequests []models.TradeRequest,
) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exhibits = exhibits
	c.collections = collections
	c.wishlist = wishlist
	c.guestbook = guestbook
	c.guilds = guilds
	c.tradeRequests = tradeRequests
}
