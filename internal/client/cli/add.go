package cli

import (
	"context"
	"os"

	"github.com/vitrine-app/vitrine/internal/client/models"
)

// Add catalogues a new exhibit interactively.
func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first")
		return nil
	}

	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}
	category, err := GetSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		return err
	}

	saved := a.catalog.SaveExhibit(models.Exhibit{
		Owner:       a.userName,
		Title:       title,
		Description: description,
		Category:    category,
	})
	printlnFn("Added exhibit", saved.ID)
	return nil
}

// AddWish adds an item to the wishlist.
func (a *App) AddWish(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first")
		return nil
	}

	title, err := GetSimpleText(a.reader, "Looking for", os.Stdout)
	if err != nil {
		return err
	}
	note, err := GetSimpleText(a.reader, "Note", os.Stdout)
	if err != nil {
		return err
	}

	saved := a.catalog.SaveWishlistItem(models.WishlistItem{
		Owner: a.userName,
		Title: title,
		Note:  note,
	})
	printlnFn("Added wish", saved.ID)
	return nil
}
