package joplin

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NoteProperties are the writable note fields. Nil fields are omitted
// from the request, so an update only touches what is set. ID may be
// given on creation to choose the item ID client-side.
type NoteProperties struct {
	ID                *string         `json:"id,omitempty"`
	ParentID          *string         `json:"parent_id,omitempty"`
	Title             *string         `json:"title,omitempty"`
	Body              *string         `json:"body,omitempty"`
	BodyHTML          *string         `json:"body_html,omitempty"`
	BaseURL           *string         `json:"base_url,omitempty"`
	ImageDataURL      *string         `json:"image_data_url,omitempty"`
	CropRect          *string         `json:"crop_rect,omitempty"`
	IsTodo            *Bool           `json:"is_todo,omitempty"`
	TodoDue           *Timestamp      `json:"todo_due,omitempty"`
	TodoCompleted     *Timestamp      `json:"todo_completed,omitempty"`
	Latitude          *float64        `json:"latitude,omitempty"`
	Longitude         *float64        `json:"longitude,omitempty"`
	Altitude          *float64        `json:"altitude,omitempty"`
	Author            *string         `json:"author,omitempty"`
	SourceURL         *string         `json:"source_url,omitempty"`
	Source            *string         `json:"source,omitempty"`
	SourceApplication *string         `json:"source_application,omitempty"`
	ApplicationData   *string         `json:"application_data,omitempty"`
	Order             *float64        `json:"order,omitempty"`
	MarkupLanguage    *MarkupLanguage `json:"markup_language,omitempty"`
	UserCreatedTime   *Timestamp      `json:"user_created_time,omitempty"`
	UserUpdatedTime   *Timestamp      `json:"user_updated_time,omitempty"`
	UserData          *string         `json:"user_data,omitempty"`
}

// Validate checks value ranges before the payload goes on the wire.
func (p *NoteProperties) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.By(validateOptionalItemID)),
		validation.Field(&p.ParentID, validation.By(validateOptionalItemID)),
		validation.Field(&p.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&p.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// NoteScope narrows a note listing to the notes of one notebook, tag
// or resource. At most one field may be set.
type NoteScope struct {
	NotebookID string
	TagID      string
	ResourceID string
}

func (s *NoteScope) path() (string, error) {
	if s == nil {
		return "/notes", nil
	}
	set := 0
	prefix := ""
	if s.NotebookID != "" {
		set++
		prefix = "/folders/" + s.NotebookID
	}
	if s.TagID != "" {
		set++
		prefix = "/tags/" + s.TagID
	}
	if s.ResourceID != "" {
		set++
		prefix = "/resources/" + s.ResourceID
	}
	if set > 1 {
		return "", fmt.Errorf("note scope: at most one of NotebookID, TagID, ResourceID may be set")
	}
	return prefix + "/notes", nil
}

// CreateNote adds a note and returns its ID.
func (c *Client) CreateNote(ctx context.Context, props *NoteProperties) (string, error) {
	if err := props.Validate(); err != nil {
		return "", fmt.Errorf("invalid note properties: %w", err)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, "POST", "/notes", nil, props, &created); err != nil {
		return "", fmt.Errorf("creating note: %w", err)
	}
	return created.ID, nil
}

// Note fetches a single note. Pass field names to receive more than
// the server's default field set.
func (c *Client) Note(ctx context.Context, id string, fields ...string) (*Note, error) {
	var note Note
	opts := &ListOptions{Fields: fields}
	if err := c.do(ctx, "GET", "/notes/"+id, opts.query(), nil, &note); err != nil {
		return nil, fmt.Errorf("getting note %s: %w", id, err)
	}
	return &note, nil
}

// Notes lists notes, one page at a time. A scope limits the listing to
// the notes of one notebook, tag or resource.
func (c *Client) Notes(ctx context.Context, scope *NoteScope, opts *ListOptions) (*Page[Note], error) {
	path, err := scope.path()
	if err != nil {
		return nil, err
	}
	var page Page[Note]
	if err := c.do(ctx, "GET", path, opts.query(), nil, &page); err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return &page, nil
}

// AllNotes lists notes across all pages.
func (c *Client) AllNotes(ctx context.Context, scope *NoteScope, opts *ListOptions) ([]Note, error) {
	return collectAll(func(page int) (*Page[Note], error) {
		return c.Notes(ctx, scope, opts.withPage(page))
	})
}

// UpdateNote modifies the set fields of an existing note.
func (c *Client) UpdateNote(ctx context.Context, id string, props *NoteProperties) error {
	if err := props.Validate(); err != nil {
		return fmt.Errorf("invalid note properties: %w", err)
	}
	if err := c.do(ctx, "PUT", "/notes/"+id, nil, props, nil); err != nil {
		return fmt.Errorf("updating note %s: %w", id, err)
	}
	return nil
}

// DeleteNote moves a note to the trash.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	if err := c.do(ctx, "DELETE", "/notes/"+id, nil, nil, nil); err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	return nil
}
