package models

import (
	"encoding/json"
	"errors"
)

// GenericTable names one logical entity kind multiplexed into the single
// physical "generic" collection. The schema keeps minor entity kinds in one
// store partitioned by this tag rather than paying for a table each.
type GenericTable string

const (
	TableWishlist      GenericTable = "wishlist"
	TableGuestbook     GenericTable = "guestbook"
	TableGuilds        GenericTable = "guilds"
	TableTradeRequests GenericTable = "trade_requests"
)

var ErrUnknownTable = errors.New("unknown generic table")

// GenericRecord is one row of the generic collection: an id unique across
// all logical tables, the table tag, and the raw payload.
type GenericRecord struct {
	ID    string          `json:"id"`
	Table GenericTable    `json:"table"`
	Data  json.RawMessage `json:"data"`
}

// WishlistItem is an artifact a collector is looking for.
type WishlistItem struct {
	ID       string `json:"id"`
	Owner    string `json:"owner"`
	Title    string `json:"title"`
	Note     string `json:"note,omitempty"`
	Priority int    `json:"priority,omitempty"`
}

// GuestbookEntry is a public note left on a collector's profile.
type GuestbookEntry struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Profile   string `json:"profile"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}

// GuildRecord is a membership or charter record of a collectors' guild.
type GuildRecord struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`
	Charter string   `json:"charter,omitempty"`
}

// TradeRequest is a proposed exchange between two collectors.
type TradeRequest struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	OfferID   string `json:"offerId"`
	WantID    string `json:"wantId"`
	Status    string `json:"status,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// WrapGeneric marshals a typed payload into a GenericRecord tagged with tbl.
// The record id must match the id inside the payload; callers pass it
// explicitly because the payload is opaque at this layer.
func WrapGeneric(tbl GenericTable, id string, v any) (GenericRecord, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return GenericRecord{}, err
	}
	return GenericRecord{ID: id, Table: tbl, Data: b}, nil
}

// Unwrap decodes the record payload into the type matching its table tag.
func (r GenericRecord) Unwrap() (any, error) {
	switch r.Table {
	case TableWishlist:
		var v WishlistItem
		return v, json.Unmarshal(r.Data, &v)
	case TableGuestbook:
		var v GuestbookEntry
		return v, json.Unmarshal(r.Data, &v)
	case TableGuilds:
		var v GuildRecord
		return v, json.Unmarshal(r.Data, &v)
	case TableTradeRequests:
		var v TradeRequest
		return v, json.Unmarshal(r.Data, &v)
	default:
		return nil, ErrUnknownTable
	}
}
