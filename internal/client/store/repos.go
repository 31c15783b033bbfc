package store

import (
	"github.com/vitrine-app/vitrine/internal/client/repositories/collections"
	"github.com/vitrine-app/vitrine/internal/client/repositories/exhibits"
	"github.com/vitrine-app/vitrine/internal/client/repositories/generic"
	"github.com/vitrine-app/vitrine/internal/client/repositories/messages"
	"github.com/vitrine-app/vitrine/internal/client/repositories/notifications"
	"github.com/vitrine-app/vitrine/internal/client/repositories/system"
	"github.com/vitrine-app/vitrine/internal/client/repositories/users"
	"github.com/vitrine-app/vitrine/internal/dbx"
)

// Repositories bundles one repository per entity collection, all bound to
// the same database handle.
type Repositories struct {
	Exhibits      exhibits.Repository
	Collections   collections.Repository
	Users         users.Repository
	Notifications notifications.Repository
	Messages      messages.Repository
	System        system.Repository
	Generic       generic.Repository
}

// NewRepositories binds the full repository set to db.
func NewRepositories(db dbx.DBTX) *Repositories {
	return &Repositories{
		Exhibits:      exhibits.NewSQLiteRepository(db),
		Collections:   collections.NewSQLiteRepository(db),
		Users:         users.NewSQLiteRepository(db),
		Notifications: notifications.NewSQLiteRepository(db),
		Messages:      messages.NewSQLiteRepository(db),
		System:        system.NewSQLiteRepository(db),
		Generic:       generic.NewSQLiteRepository(db),
	}
}
