package serverapi

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dataplume/joplingo/pkg/itemid"
	"github.com/dataplume/joplingo/pkg/joplin"
)

// CreateResource uploads the file at filename as a new resource and
// returns the resource ID. The resource consists of two files on the
// target: the metadata item and the blob under .resource/.
func (c *Client) CreateResource(ctx context.Context, filename string, resource *joplin.Resource) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("opening resource file: %w", err)
	}
	defer f.Close()
	return c.CreateResourceFromReader(ctx, filepath.Base(filename), f, resource)
}

// CreateResourceFromReader uploads resource data from an arbitrary
// reader. The filename is recorded in the metadata and used as the
// default title.
func (c *Client) CreateResourceFromReader(ctx context.Context, filename string, data io.Reader, resource *joplin.Resource) (string, error) {
	if resource == nil {
		resource = &joplin.Resource{}
	}
	if resource.ID == "" {
		resource.ID = itemid.New().String()
	}
	if resource.Title == "" {
		resource.Title = filename
	}
	resource.Filename = filename
	resource.Type = joplin.ItemTypeResource

	blob, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("reading resource data: %w", err)
	}

	if err := c.putItem(ctx, resource.ID, resource); err != nil {
		return "", fmt.Errorf("creating resource: %w", err)
	}
	if _, err := c.do(ctx, "PUT", resourceBlobPath(resource.ID)+"/content", "",
		contentTypeOctetStream, blob); err != nil {
		return "", fmt.Errorf("uploading resource blob: %w", err)
	}
	return resource.ID, nil
}

// Resource fetches resource metadata.
func (c *Client) Resource(ctx context.Context, id string) (*joplin.Resource, error) {
	item, err := c.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	resource, ok := item.(*joplin.Resource)
	if !ok {
		return nil, fmt.Errorf("item %s is not a resource", id)
	}
	return resource, nil
}

// ResourceFile fetches the raw blob bytes of a resource.
func (c *Client) ResourceFile(ctx context.Context, id string) ([]byte, error) {
	body, err := c.do(ctx, "GET", resourceBlobPath(id)+"/content", "", "", nil)
	if err != nil {
		return nil, fmt.Errorf("getting resource blob %s: %w", id, err)
	}
	return body, nil
}

// Resources lists resources, one page at a time.
func (c *Client) Resources(ctx context.Context, opts *ListOptions) (*joplin.Page[joplin.Resource], error) {
	return listItems[joplin.Resource](ctx, c, opts)
}

// AllResources lists resources across all pages.
func (c *Client) AllResources(ctx context.Context) ([]joplin.Resource, error) {
	return collectAll(func(page int) (*joplin.Page[joplin.Resource], error) {
		return c.Resources(ctx, &ListOptions{Page: page})
	})
}

// UpdateResource is not offered by the server API; splitting an update
// between metadata and blob is an open problem upstream.
func (c *Client) UpdateResource(ctx context.Context, id string, modify func(*joplin.Resource)) error {
	return fmt.Errorf("updating resource %s: %w", id, ErrNotSupported)
}

// DeleteResource removes a resource's metadata item and its blob.
func (c *Client) DeleteResource(ctx context.Context, id string) error {
	if err := c.deleteItem(ctx, id); err != nil {
		return err
	}
	if _, err := c.do(ctx, "DELETE", resourceBlobPath(id), "", "", nil); err != nil {
		return fmt.Errorf("deleting resource blob %s: %w", id, err)
	}
	return nil
}
