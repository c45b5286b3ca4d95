package serverapi

import (
	"context"
	"fmt"

	"github.com/dataplume/joplingo/pkg/itemid"
	"github.com/dataplume/joplingo/pkg/joplin"
)

// CreateNote stores a note on the sync target and returns its ID. A
// missing ID is assigned; the parent notebook ID is required, without
// it the note would end up outside every notebook.
func (c *Client) CreateNote(ctx context.Context, note *joplin.Note) (string, error) {
	if note.ParentID == "" {
		return "", fmt.Errorf("creating note: parent notebook ID is required")
	}
	if note.ID == "" {
		note.ID = itemid.New().String()
	}
	note.Type = joplin.ItemTypeNote
	if err := c.putItem(ctx, note.ID, note); err != nil {
		return "", fmt.Errorf("creating note: %w", err)
	}
	return note.ID, nil
}

// Note fetches a note.
func (c *Client) Note(ctx context.Context, id string) (*joplin.Note, error) {
	item, err := c.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	note, ok := item.(*joplin.Note)
	if !ok {
		return nil, fmt.Errorf("item %s is not a note", id)
	}
	return note, nil
}

// Notes lists notes, one page at a time. Paging applies to the raw
// item listing, so a page may hold fewer notes than its limit.
func (c *Client) Notes(ctx context.Context, opts *ListOptions) (*joplin.Page[joplin.Note], error) {
	return listItems[joplin.Note](ctx, c, opts)
}

// AllNotes lists notes across all pages.
func (c *Client) AllNotes(ctx context.Context) ([]joplin.Note, error) {
	return collectAll(func(page int) (*joplin.Page[joplin.Note], error) {
		return c.Notes(ctx, &ListOptions{Page: page})
	})
}

// UpdateNote applies modify to the stored note and writes it back.
func (c *Client) UpdateNote(ctx context.Context, id string, modify func(*joplin.Note)) error {
	note, err := c.Note(ctx, id)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	modify(note)
	if err := c.putItem(ctx, id, note); err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	return nil
}

// DeleteNote deletes a note.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.deleteItem(ctx, id)
}
