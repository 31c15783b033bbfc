package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// Show prints one exhibit in full, fetching detail if only the summary is
// held locally. "show collection <id>" prints a collection instead.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "collection" {
		return a.showCollection(ctx, args[1:])
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

	e, err := a.catalog.EnsureExhibitDetail(ctx, id)
	if err != nil {
		printlnFn("Could not load exhibit:", err.Error())
		return err
	}

	printlnFn("Title:      ", e.Title)
	printlnFn("Owner:      ", e.Owner)
	printlnFn("Category:   ", e.Category)
	printlnFn("Description:", e.Description)
	if len(e.Tags) > 0 {
		printlnFn("Tags:       ", strings.Join(e.Tags, ", "))
	}
	if e.Timestamp > 0 {
		ts := time.UnixMilli(e.Timestamp)
		printlnFn("Published:  ", ts.Format(time.RFC1123))
	}
	printlnFn(fmt.Sprintf("Id:          %s", e.ID))
	return nil
}

func (a *App) showCollection(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		id, err = GetSimpleText(a.reader, "Collection id", os.Stdout)
		if err != nil {
			return err
		}
	}

	c, err := a.catalog.EnsureCollectionDetail(ctx, id)
	if err != nil {
		printlnFn("Could not load collection:", err.Error())
		return err
	}

	printlnFn("Name:       ", c.Name)
	printlnFn("Owner:      ", c.Owner)
	printlnFn("Description:", c.Description)
	printlnFn(fmt.Sprintf("Exhibits:    %d", len(c.ExhibitIDs)))
	for _, eid := range c.ExhibitIDs {
		printlnFn("  -", eid)
	}
	return nil
}
