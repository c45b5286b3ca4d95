package serverapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dataplume/joplingo/pkg/joplin"
)

// putItem writes an item's serialized text to the sync target.
func (c *Client) putItem(ctx context.Context, id string, item any) error {
	serialized, err := Serialize(item)
	if err != nil {
		return err
	}
	if _, err := c.do(ctx, "PUT", itemContentPath(id), "",
		contentTypeOctetStream, []byte(serialized)); err != nil {
		return fmt.Errorf("writing item %s: %w", id, err)
	}
	return nil
}

// getItem fetches and deserializes the item with the given ID.
func (c *Client) getItem(ctx context.Context, id string) (any, error) {
	body, err := c.do(ctx, "GET", itemContentPath(id), "", "", nil)
	if err != nil {
		return nil, fmt.Errorf("getting item %s: %w", id, err)
	}
	item, err := Deserialize(string(body))
	if err != nil {
		return nil, fmt.Errorf("deserializing item %s: %w", id, err)
	}
	return item, nil
}

// deleteItem removes the item file with the given ID.
func (c *Client) deleteItem(ctx context.Context, id string) error {
	if _, err := c.do(ctx, "DELETE", itemPath(id), "", "", nil); err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	return nil
}

// childItem is one entry of the sync target's root listing.
type childItem struct {
	Name string `json:"name"`
}

// children lists the files at the root of the sync target, one page at
// a time.
func (c *Client) children(ctx context.Context, opts *ListOptions) (*joplin.Page[childItem], error) {
	body, err := c.do(ctx, "GET", "/api/items/root:/:/children", opts.rawQuery(), "", nil)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	var page joplin.Page[childItem]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding item listing: %w", err)
	}
	return &page, nil
}

// listItems pages through the root listing and keeps the items that
// deserialize to T. The target stores every item kind in one flat
// directory, so filtering happens client-side after fetching each
// item. Items deleted between listing and fetching are skipped.
func listItems[T any](ctx context.Context, c *Client, opts *ListOptions) (*joplin.Page[T], error) {
	children, err := c.children(ctx, opts)
	if err != nil {
		return nil, err
	}

	page := &joplin.Page[T]{HasMore: children.HasMore, Cursor: children.Cursor}
	for _, child := range children.Items {
		if !strings.HasSuffix(child.Name, ".md") {
			continue
		}
		item, err := c.getItem(ctx, strings.TrimSuffix(child.Name, ".md"))
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, errUnsupportedItemType) {
				continue
			}
			return nil, err
		}
		if typed, ok := item.(*T); ok {
			page.Items = append(page.Items, *typed)
		}
	}
	return page, nil
}
