package joplin

import (
	"context"
	"fmt"
	"net/url"
)

// searchAs runs /search with the query escaped, so Joplin search
// operators (wildcards, "tag:" filters, quoted phrases) survive the
// outer query string.
func searchAs[T any](ctx context.Context, c *Client, query string, typ ItemType, opts *ListOptions) (*Page[T], error) {
	params := []queryParam{{"query", url.QueryEscape(query)}}
	if typ != ItemTypeNote {
		params = append(params, queryParam{"type", typ.String()})
	}
	params = append(params, opts.query()...)

	var page Page[T]
	if err := c.do(ctx, "GET", "/search", params, nil, &page); err != nil {
		return nil, fmt.Errorf("searching %ss: %w", typ, err)
	}
	return &page, nil
}

func searchAll[T any](ctx context.Context, c *Client, query string, typ ItemType, opts *ListOptions) ([]T, error) {
	return collectAll(func(page int) (*Page[T], error) {
		return searchAs[T](ctx, c, query, typ, opts.withPage(page))
	})
}

// SearchNotes searches notes. The query uses Joplin's search syntax,
// e.g. "tag:project title:draft".
func (c *Client) SearchNotes(ctx context.Context, query string, opts *ListOptions) (*Page[Note], error) {
	return searchAs[Note](ctx, c, query, ItemTypeNote, opts)
}

// SearchAllNotes searches notes across all result pages.
func (c *Client) SearchAllNotes(ctx context.Context, query string, opts *ListOptions) ([]Note, error) {
	return searchAll[Note](ctx, c, query, ItemTypeNote, opts)
}

// SearchNotebooks searches notebooks by title.
func (c *Client) SearchNotebooks(ctx context.Context, query string, opts *ListOptions) (*Page[Notebook], error) {
	return searchAs[Notebook](ctx, c, query, ItemTypeFolder, opts)
}

// SearchAllNotebooks searches notebooks across all result pages.
func (c *Client) SearchAllNotebooks(ctx context.Context, query string, opts *ListOptions) ([]Notebook, error) {
	return searchAll[Notebook](ctx, c, query, ItemTypeFolder, opts)
}

// SearchResources searches resources by title.
func (c *Client) SearchResources(ctx context.Context, query string, opts *ListOptions) (*Page[Resource], error) {
	return searchAs[Resource](ctx, c, query, ItemTypeResource, opts)
}

// SearchAllResources searches resources across all result pages.
func (c *Client) SearchAllResources(ctx context.Context, query string, opts *ListOptions) ([]Resource, error) {
	return searchAll[Resource](ctx, c, query, ItemTypeResource, opts)
}

// SearchTags searches tags by title.
func (c *Client) SearchTags(ctx context.Context, query string, opts *ListOptions) (*Page[Tag], error) {
	return searchAs[Tag](ctx, c, query, ItemTypeTag, opts)
}

// SearchAllTags searches tags across all result pages.
func (c *Client) SearchAllTags(ctx context.Context, query string, opts *ListOptions) ([]Tag, error) {
	return searchAll[Tag](ctx, c, query, ItemTypeTag, opts)
}

// SearchMasterKeys searches master keys; results only carry IDs.
func (c *Client) SearchMasterKeys(ctx context.Context, query string, opts *ListOptions) (*Page[string], error) {
	return searchAs[string](ctx, c, query, ItemTypeMasterKey, opts)
}
