package cli

import (
	"context"
	"os"

	"github.com/vitrine-app/vitrine/internal/client/models"
)

// Login records a session from a username and an access token issued by
// the service.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	token, err := GetSecret("Access token", os.Stdout)
	if err != nil {
		return err
	}

	a.ctrl.Login(ctx, username, token)
	a.userName = username
	printlnFn("Signed in as", username)
	return nil
}

// Register creates a local profile and signs in with it.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	display, err := GetSimpleText(a.reader, "Display name", os.Stdout)
	if err != nil {
		return err
	}
	token, err := GetSecret("Access token", os.Stdout)
	if err != nil {
		return err
	}

	a.catalog.SaveUser(models.UserProfile{Username: username, DisplayName: display})
	a.ctrl.Login(ctx, username, token)
	a.userName = username
	printlnFn("Registered and signed in as", username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.ctrl.Logout(ctx)
	a.userName = ""
	printlnFn("Signed out")
	return nil
}
