package joplin

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NotebookProperties are the writable notebook fields.
type NotebookProperties struct {
	ID       *string `json:"id,omitempty"`
	Title    *string `json:"title,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	UserData *string `json:"user_data,omitempty"`
}

func (p *NotebookProperties) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.By(validateOptionalItemID)),
		validation.Field(&p.ParentID, validation.By(validateOptionalItemID)),
	)
}

// CreateNotebook adds a notebook and returns its ID.
func (c *Client) CreateNotebook(ctx context.Context, props *NotebookProperties) (string, error) {
	if err := props.Validate(); err != nil {
		return "", fmt.Errorf("invalid notebook properties: %w", err)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, "POST", "/folders", nil, props, &created); err != nil {
		return "", fmt.Errorf("creating notebook: %w", err)
	}
	return created.ID, nil
}

// Notebook fetches a single notebook.
func (c *Client) Notebook(ctx context.Context, id string, fields ...string) (*Notebook, error) {
	var notebook Notebook
	opts := &ListOptions{Fields: fields}
	if err := c.do(ctx, "GET", "/folders/"+id, opts.query(), nil, &notebook); err != nil {
		return nil, fmt.Errorf("getting notebook %s: %w", id, err)
	}
	return &notebook, nil
}

// Notebooks lists notebooks, one page at a time.
func (c *Client) Notebooks(ctx context.Context, opts *ListOptions) (*Page[Notebook], error) {
	var page Page[Notebook]
	if err := c.do(ctx, "GET", "/folders", opts.query(), nil, &page); err != nil {
		return nil, fmt.Errorf("listing notebooks: %w", err)
	}
	return &page, nil
}

// AllNotebooks lists notebooks across all pages.
func (c *Client) AllNotebooks(ctx context.Context, opts *ListOptions) ([]Notebook, error) {
	return collectAll(func(page int) (*Page[Notebook], error) {
		return c.Notebooks(ctx, opts.withPage(page))
	})
}

// UpdateNotebook modifies the set fields of an existing notebook.
func (c *Client) UpdateNotebook(ctx context.Context, id string, props *NotebookProperties) error {
	if err := props.Validate(); err != nil {
		return fmt.Errorf("invalid notebook properties: %w", err)
	}
	if err := c.do(ctx, "PUT", "/folders/"+id, nil, props, nil); err != nil {
		return fmt.Errorf("updating notebook %s: %w", id, err)
	}
	return nil
}

// DeleteNotebook deletes a notebook; its notes and child notebooks go
// with it.
func (c *Client) DeleteNotebook(ctx context.Context, id string) error {
	if err := c.do(ctx, "DELETE", "/folders/"+id, nil, nil, nil); err != nil {
		return fmt.Errorf("deleting notebook %s: %w", id, err)
	}
	return nil
}
