package serverapi

import (
	"context"
	"fmt"

	"github.com/dataplume/joplingo/pkg/itemid"
	"github.com/dataplume/joplingo/pkg/joplin"
)

// CreateNotebook stores a notebook on the sync target and returns its
// ID. A missing ID is assigned.
func (c *Client) CreateNotebook(ctx context.Context, notebook *joplin.Notebook) (string, error) {
	if notebook.ID == "" {
		notebook.ID = itemid.New().String()
	}
	notebook.Type = joplin.ItemTypeFolder
	if err := c.putItem(ctx, notebook.ID, notebook); err != nil {
		return "", fmt.Errorf("creating notebook: %w", err)
	}
	return notebook.ID, nil
}

// Notebook fetches a notebook.
func (c *Client) Notebook(ctx context.Context, id string) (*joplin.Notebook, error) {
	item, err := c.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	notebook, ok := item.(*joplin.Notebook)
	if !ok {
		return nil, fmt.Errorf("item %s is not a notebook", id)
	}
	return notebook, nil
}

// Notebooks lists notebooks, one page at a time.
func (c *Client) Notebooks(ctx context.Context, opts *ListOptions) (*joplin.Page[joplin.Notebook], error) {
	return listItems[joplin.Notebook](ctx, c, opts)
}

// AllNotebooks lists notebooks across all pages.
func (c *Client) AllNotebooks(ctx context.Context) ([]joplin.Notebook, error) {
	return collectAll(func(page int) (*joplin.Page[joplin.Notebook], error) {
		return c.Notebooks(ctx, &ListOptions{Page: page})
	})
}

// UpdateNotebook applies modify to the stored notebook and writes it
// back.
func (c *Client) UpdateNotebook(ctx context.Context, id string, modify func(*joplin.Notebook)) error {
	notebook, err := c.Notebook(ctx, id)
	if err != nil {
		return fmt.Errorf("updating notebook: %w", err)
	}
	modify(notebook)
	if err := c.putItem(ctx, id, notebook); err != nil {
		return fmt.Errorf("updating notebook: %w", err)
	}
	return nil
}

// DeleteNotebook deletes a notebook. Notes inside it are not removed.
func (c *Client) DeleteNotebook(ctx context.Context, id string) error {
	return c.deleteItem(ctx, id)
}
