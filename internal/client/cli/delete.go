package cli

import (
	"context"
	"os"
)

// Delete removes one of the signed-in user's exhibits.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first")
		return nil
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		id, err = GetSimpleText(a.reader, "Exhibit id", os.Stdout)
		if err != nil {
			return err
		}
	}

	a.catalog.DeleteExhibit(id)
	printlnFn("Deleted exhibit", id)
	return nil
}

// Sync triggers a reconciliation pass immediately.
func (a *App) Sync(ctx context.Context) error {
	a.syncer.RunPass(ctx)
	if a.ctrl.IsOffline() {
		printlnFn("Sync finished: service unreachable, local data unchanged")
	} else {
		printlnFn("Sync finished")
	}
	return nil
}
