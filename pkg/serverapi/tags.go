package serverapi

import (
	"context"
	"fmt"

	"github.com/dataplume/joplingo/pkg/itemid"
	"github.com/dataplume/joplingo/pkg/joplin"
)

// CreateTag stores a tag on the sync target and returns its ID. A
// missing ID is assigned.
func (c *Client) CreateTag(ctx context.Context, tag *joplin.Tag) (string, error) {
	if tag.ID == "" {
		tag.ID = itemid.New().String()
	}
	tag.Type = joplin.ItemTypeTag
	if err := c.putItem(ctx, tag.ID, tag); err != nil {
		return "", fmt.Errorf("creating tag: %w", err)
	}
	return tag.ID, nil
}

// Tag fetches a tag.
func (c *Client) Tag(ctx context.Context, id string) (*joplin.Tag, error) {
	item, err := c.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	tag, ok := item.(*joplin.Tag)
	if !ok {
		return nil, fmt.Errorf("item %s is not a tag", id)
	}
	return tag, nil
}

// Tags lists tags, one page at a time.
func (c *Client) Tags(ctx context.Context, opts *ListOptions) (*joplin.Page[joplin.Tag], error) {
	return listItems[joplin.Tag](ctx, c, opts)
}

// AllTags lists tags across all pages.
func (c *Client) AllTags(ctx context.Context) ([]joplin.Tag, error) {
	return collectAll(func(page int) (*joplin.Page[joplin.Tag], error) {
		return c.Tags(ctx, &ListOptions{Page: page})
	})
}

// UpdateTag applies modify to the stored tag and writes it back.
func (c *Client) UpdateTag(ctx context.Context, id string, modify func(*joplin.Tag)) error {
	tag, err := c.Tag(ctx, id)
	if err != nil {
		return fmt.Errorf("updating tag: %w", err)
	}
	modify(tag)
	if err := c.putItem(ctx, id, tag); err != nil {
		return fmt.Errorf("updating tag: %w", err)
	}
	return nil
}

// DeleteTag deletes a tag.
func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.deleteItem(ctx, id)
}

// TagNote links a tag to a note by creating a note_tag item; the
// returned ID is the link's, not the tag's.
func (c *Client) TagNote(ctx context.Context, tagID, noteID string) (string, error) {
	link := &NoteTag{
		ID:     itemid.New().String(),
		NoteID: noteID,
		TagID:  tagID,
		Type:   joplin.ItemTypeNoteTag,
	}
	if err := c.putItem(ctx, link.ID, link); err != nil {
		return "", fmt.Errorf("tagging note: %w", err)
	}
	return link.ID, nil
}
