package cli

import (
	"context"
	"fmt"
)

// List prints one cached collection; with no argument it prints the exhibit
// feed.
func (a *App) List(ctx context.Context, args []string) error {
	kind := "exhibits"
	if len(args) > 0 {
		kind = args[0]
	}

	snap := a.catalog.Snapshot()

	switch kind {
	case "exhibits", "feed":
		for _, e := range snap.Exhibits {
			marker := ""
			if e.Lite {
				marker = " (summary)"
			}
			printlnFn(fmt.Sprintf("%s  %-24s %s%s", e.ID, e.Title, e.Owner, marker))
		}
		printlnFn(len(snap.Exhibits), "exhibit(s)")

	case "collections":
		for _, c := range snap.Collections {
			printlnFn(fmt.Sprintf("%s  %-24s %s", c.ID, c.Name, c.Owner))
		}

	case "users":
		for _, u := range snap.Users {
			printlnFn(fmt.Sprintf("%-16s %s", u.Username, u.DisplayName))
		}

	case "wishlist":
		for _, w := range snap.Wishlist {
			printlnFn(fmt.Sprintf("%s  %-24s %s", w.ID, w.Title, w.Owner))
		}

	case "guestbook":
		for _, g := range snap.Guestbook {
			printlnFn(fmt.Sprintf("%s  %s -> %s: %s", g.ID, g.Author, g.Profile, g.Text))
		}

	case "notifications":
		for _, n := range snap.Notifications {
			printlnFn(fmt.Sprintf("%s  %s", n.ID, n.Text))
		}

	case "messages":
		for _, m := range snap.Messages {
			printlnFn(fmt.Sprintf("%s  %s -> %s: %s", m.ID, m.Sender, m.Recipient, m.Text))
		}

	default:
		printlnFn("Usage: list [exhibits|collections|users|wishlist|guestbook|notifications|messages]")
	}
	return nil
}
