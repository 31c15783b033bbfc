package store

import (
	"context"

	"github.com/vitrine-app/vitrine/internal/client/models"
	"github.com/vitrine-app/vitrine/internal/logging"
)

// Gateway is the only path through which the rest of the client touches the
// durable store. Every operation degrades a storage failure (open error,
// locked file, quota, corruption) to an empty result after a warning log, so
// a broken store leaves the application running memory-only instead of
// crashing it.
//
// The cost, accepted by design: callers cannot distinguish "no such record"
// from "storage is broken" — both look empty.
type Gateway struct {
	store *Store
	log   logging.Logger
}

func NewGateway(s *Store, log logging.Logger) *Gateway {
	return &Gateway{store: s, log: log}
}

// query runs a read against the repository set and degrades any failure to
// the zero value.
func query[T any](ctx context.Context, g *Gateway, op string, fn func(r *Repositories) (T, error)) T {
	var zero T
	db, err := g.store.DB(ctx)
	if err != nil {
		g.log.Warn(ctx, "store unavailable, returning empty result", "op", op, "error", err)
		return zero
	}
	v, err := fn(NewRepositories(db))
	if err != nil {
		g.log.Warn(ctx, "store read failed, returning empty result", "op", op, "error", err)
		return zero
	}
	return v
}

// exec runs a write against the repository set, swallowing any failure.
func (g *Gateway) exec(ctx context.Context, op string, fn func(r *Repositories) error) {
	db, err := g.store.DB(ctx)
	if err != nil {
		g.log.Warn(ctx, "store unavailable, write dropped", "op", op, "error", err)
		return
	}
	if err := fn(NewRepositories(db)); err != nil {
		g.log.Warn(ctx, "store write failed", "op", op, "error", err)
	}
}

func (g *Gateway) Exhibits(ctx context.Context) []models.Exhibit {
	return query(ctx, g, "exhibits.getAll", func(r *Repositories) ([]models.Exhibit, error) {
		return r.Exhibits.GetAll(ctx)
	})
}

func (g *Gateway) ExhibitByID(ctx context.Context, id string) *models.Exhibit {
	return query(ctx, g, "exhibits.getByID", func(r *Repositories) (*models.Exhibit, error) {
		return r.Exhibits.GetByID(ctx, id)
	})
}

func (g *Gateway) PutExhibit(ctx context.Context, e *models.Exhibit) {
	g.exec(ctx, "exhibits.upsert", func(r *Repositories) error {
		return r.Exhibits.Upsert(ctx, e)
	})
}

func (g *Gateway) DeleteExhibit(ctx context.Context, id string) {
	g.exec(ctx, "exhibits.delete", func(r *Repositories) error {
		return r.Exhibits.DeleteByID(ctx, id)
	})
}

func (g *Gateway) Collections(ctx context.Context) []models.Collection {
	return query(ctx, g, "collections.getAll", func(r *Repositories) ([]models.Collection, error) {
		return r.Collections.GetAll(ctx)
	})
}

func (g *Gateway) PutCollection(ctx context.Context, c *models.Collection) {
	g.exec(ctx, "collections.upsert", func(r *Repositories) error {
		return r.Collections.Upsert(ctx, c)
	})
}

func (g *Gateway) DeleteCollection(ctx context.Context, id string) {
	g.exec(ctx, "collections.delete", func(r *Repositories) error {
		return r.Collections.DeleteByID(ctx, id)
	})
}

func (g *Gateway) Users(ctx context.Context) []models.UserProfile {
	return query(ctx, g, "users.getAll", func(r *Repositories) ([]models.UserProfile, error) {
		return r.Users.GetAll(ctx)
	})
}

func (g *Gateway) UserByUsername(ctx context.Context, username string) *models.UserProfile {
	return query(ctx, g, "users.getByUsername", func(r *Repositories) (*models.UserProfile, error) {
		return r.Users.GetByUsername(ctx, username)
	})
}

func (g *Gateway) PutUser(ctx context.Context, u *models.UserProfile) {
	g.exec(ctx, "users.upsert", func(r *Repositories) error {
		return r.Users.Upsert(ctx, u)
	})
}

func (g *Gateway) Notifications(ctx context.Context) []models.Notification {
	return query(ctx, g, "notifications.getAll", func(r *Repositories) ([]models.Notification, error) {
		return r.Notifications.GetAll(ctx)
	})
}

func (g *Gateway) PutNotification(ctx context.Context, n *models.Notification) {
	g.exec(ctx, "notifications.upsert", func(r *Repositories) error {
		return r.Notifications.Upsert(ctx, n)
	})
}

func (g *Gateway) Messages(ctx context.Context) []models.Message {
	return query(ctx, g, "messages.getAll", func(r *Repositories) ([]models.Message, error) {
		return r.Messages.GetAll(ctx)
	})
}

func (g *Gateway) PutMessage(ctx context.Context, m *models.Message) {
	g.exec(ctx, "messages.upsert", func(r *Repositories) error {
		return r.Messages.Upsert(ctx, m)
	})
}

func (g *Gateway) GenericByTable(ctx context.Context, tbl models.GenericTable) []models.GenericRecord {
	return query(ctx, g, "generic.getByTable", func(r *Repositories) ([]models.GenericRecord, error) {
		return r.Generic.GetByTable(ctx, tbl)
	})
}

func (g *Gateway) PutGeneric(ctx context.Context, rec *models.GenericRecord) {
	g.exec(ctx, "generic.upsert", func(r *Repositories) error {
		return r.Generic.Upsert(ctx, rec)
	})
}

func (g *Gateway) DeleteGeneric(ctx context.Context, id string) {
	g.exec(ctx, "generic.delete", func(r *Repositories) error {
		return r.Generic.DeleteByID(ctx, id)
	})
}

// SystemGet returns the value for key, or "" when missing or unavailable.
func (g *Gateway) SystemGet(ctx context.Context, key string) string {
	return query(ctx, g, "system.get", func(r *Repositories) (string, error) {
		return r.System.Get(ctx, key)
	})
}

func (g *Gateway) SystemPut(ctx context.Context, key, value string) {
	g.exec(ctx, "system.put", func(r *Repositories) error {
		return r.System.Put(ctx, key, value)
	})
}

func (g *Gateway) SystemDelete(ctx context.Context, key string) {
	g.exec(ctx, "system.delete", func(r *Repositories) error {
		return r.System.Delete(ctx, key)
	})
}

// Reset wipes every entity collection, best-effort.
func (g *Gateway) Reset(ctx context.Context) {
	if err := g.store.Reset(ctx); err != nil {
		g.log.Warn(ctx, "store reset failed", "error", err)
	}
}
