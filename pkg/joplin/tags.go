package joplin

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TagProperties are the writable tag fields.
type TagProperties struct {
	ID       *string `json:"id,omitempty"`
	Title    *string `json:"title,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
}

func (p *TagProperties) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.By(validateOptionalItemID)),
		validation.Field(&p.ParentID, validation.By(validateOptionalItemID)),
	)
}

// CreateTag adds a tag and returns its ID. Note that Joplin lowercases
// tag titles and rejects duplicates.
func (c *Client) CreateTag(ctx context.Context, props *TagProperties) (string, error) {
	if err := props.Validate(); err != nil {
		return "", fmt.Errorf("invalid tag properties: %w", err)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, "POST", "/tags", nil, props, &created); err != nil {
		return "", fmt.Errorf("creating tag: %w", err)
	}
	return created.ID, nil
}

// Tag fetches a single tag.
func (c *Client) Tag(ctx context.Context, id string, fields ...string) (*Tag, error) {
	var tag Tag
	opts := &ListOptions{Fields: fields}
	if err := c.do(ctx, "GET", "/tags/"+id, opts.query(), nil, &tag); err != nil {
		return nil, fmt.Errorf("getting tag %s: %w", id, err)
	}
	return &tag, nil
}

// Tags lists tags, one page at a time. A non-empty noteID limits the
// listing to the tags of that note.
func (c *Client) Tags(ctx context.Context, noteID string, opts *ListOptions) (*Page[Tag], error) {
	path := "/tags"
	if noteID != "" {
		path = "/notes/" + noteID + "/tags"
	}
	var page Page[Tag]
	if err := c.do(ctx, "GET", path, opts.query(), nil, &page); err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return &page, nil
}

// AllTags lists tags across all pages.
func (c *Client) AllTags(ctx context.Context, noteID string, opts *ListOptions) ([]Tag, error) {
	return collectAll(func(page int) (*Page[Tag], error) {
		return c.Tags(ctx, noteID, opts.withPage(page))
	})
}

// UpdateTag modifies the set fields of an existing tag.
func (c *Client) UpdateTag(ctx context.Context, id string, props *TagProperties) error {
	if err := props.Validate(); err != nil {
		return fmt.Errorf("invalid tag properties: %w", err)
	}
	if err := c.do(ctx, "PUT", "/tags/"+id, nil, props, nil); err != nil {
		return fmt.Errorf("updating tag %s: %w", id, err)
	}
	return nil
}

// DeleteTag deletes a tag from all notes.
func (c *Client) DeleteTag(ctx context.Context, id string) error {
	if err := c.do(ctx, "DELETE", "/tags/"+id, nil, nil, nil); err != nil {
		return fmt.Errorf("deleting tag %s: %w", id, err)
	}
	return nil
}

// TagNote attaches an existing tag to a note.
func (c *Client) TagNote(ctx context.Context, tagID, noteID string) error {
	body := map[string]string{"id": noteID}
	if err := c.do(ctx, "POST", "/tags/"+tagID+"/notes", nil, body, nil); err != nil {
		return fmt.Errorf("tagging note %s with tag %s: %w", noteID, tagID, err)
	}
	return nil
}

// UntagNote removes a tag from a note without deleting the tag.
func (c *Client) UntagNote(ctx context.Context, tagID, noteID string) error {
	if err := c.do(ctx, "DELETE", "/tags/"+tagID+"/notes/"+noteID, nil, nil, nil); err != nil {
		return fmt.Errorf("untagging note %s from tag %s: %w", noteID, tagID, err)
	}
	return nil
}
