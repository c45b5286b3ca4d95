package serverapi

import (
	"context"
	"fmt"

	"github.com/dataplume/joplingo/pkg/joplin"
)

// Revision fetches a revision.
func (c *Client) Revision(ctx context.Context, id string) (*joplin.Revision, error) {
	item, err := c.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	revision, ok := item.(*joplin.Revision)
	if !ok {
		return nil, fmt.Errorf("item %s is not a revision", id)
	}
	return revision, nil
}

// Revisions lists revisions, one page at a time.
func (c *Client) Revisions(ctx context.Context, opts *ListOptions) (*joplin.Page[joplin.Revision], error) {
	return listItems[joplin.Revision](ctx, c, opts)
}

// AllRevisions lists revisions across all pages.
func (c *Client) AllRevisions(ctx context.Context) ([]joplin.Revision, error) {
	return collectAll(func(page int) (*joplin.Page[joplin.Revision], error) {
		return c.Revisions(ctx, &ListOptions{Page: page})
	})
}

// DeleteRevision deletes a revision.
func (c *Client) DeleteRevision(ctx context.Context, id string) error {
	return c.deleteItem(ctx, id)
}
