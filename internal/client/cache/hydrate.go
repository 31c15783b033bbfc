package cache

import (
	"context"

	"github.com/vitrine-app/vitrine/internal/client/events"
	"github.com/vitrine-app/vitrine/internal/client/models"
	"github.com/vitrine-app/vitrine/internal/client/store"
	"github.com/vitrine-app/vitrine/internal/logging"
)

// Hydrator fills the hot cache from the durable store, in two tiers. It
// never fails: every read goes through the gateway, so a broken store
// hydrates to empty collections instead of blocking app start. Re-running
// either tier is idempotent.
type Hydrator struct {
	gw      *store.Gateway
	cache   *Cache
	changed *events.Emitter[struct{}]
	log     logging.Logger
}

func NewHydrator(gw *store.Gateway, c *Cache, changed *events.Emitter[struct{}], log logging.Logger) *Hydrator {
	return &Hydrator{gw: gw, cache: c, changed: changed, log: log}
}

// Critical loads the small identity/communication collections needed
// immediately at startup: users, notifications, messages.
func (h *Hydrator) Critical(ctx context.Context) {
	h.cache.ReplaceCritical(
		h.gw.Users(ctx),
		h.gw.Notifications(ctx),
		h.gw.Messages(ctx),
	)
}

// Content loads the bulk collections: exhibits (newest first, straight off
// the timestamp index), collections, and the generic collection demuxed by
// table tag. Finishes with a data-changed broadcast.
func (h *Hydrator) Content(ctx context.Context) {
	exhibits := h.gw.Exhibits(ctx)
	collections := h.gw.Collections(ctx)

	var wishlist []models.WishlistItem
	for _, rec := range h.gw.GenericByTable(ctx, models.TableWishlist) {
		v, err := rec.Unwrap()
		if err != nil {
			h.log.Warn(ctx, "skipping malformed generic record", "id", rec.ID, "table", rec.Table, "error", err)
			continue
		}
		wishlist = append(wishlist, v.(models.WishlistItem))
	}

	var guestbook []models.GuestbookEntry
	for _, rec := range h.gw.GenericByTable(ctx, models.TableGuestbook) {
		v, err := rec.Unwrap()
		if err != nil {
			h.log.Warn(ctx, "skipping malformed generic record", "id", rec.ID, "table", rec.Table, "error", err)
			continue
		}
		guestbook = append(guestbook, v.(models.GuestbookEntry))
	}

	var guilds []models.GuildRecord
	for _, rec := range h.gw.GenericByTable(ctx, models.TableGuilds) {
		v, err := rec.Unwrap()
		if err != nil {
			h.log.Warn(ctx, "skipping malformed generic record", "id", rec.ID, "table", rec.Table, "error", err)
			continue
		}
		guilds = append(guilds, v.(models.GuildRecord))
	}

	var trades []models.TradeRequest
	for _, rec := range h.gw.GenericByTable(ctx, models.TableTradeRequests) {
		v, err := rec.Unwrap()
		if err != nil {
			h.log.Warn(ctx, "skipping malformed generic record", "id", rec.ID, "table", rec.Table, "error", err)
			continue
		}
		trades = append(trades, v.(models.TradeRequest))
	}

	h.cache.ReplaceContent(exhibits, collections, wishlist, guestbook, guilds, trades)
	h.changed.Emit(struct{}{})
}
