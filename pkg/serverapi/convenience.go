package serverapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/dataplume/joplingo/pkg/joplin"
)

// AttachResourceToNote appends a markdown link for the resource to the
// note body. Image resources get the "!" inline-image prefix.
func (c *Client) AttachResourceToNote(ctx context.Context, resourceID, noteID string) error {
	resource, err := c.Resource(ctx, resourceID)
	if err != nil {
		return err
	}
	prefix := ""
	if strings.HasPrefix(resource.Mime, "image/") {
		prefix = "!"
	}
	return c.UpdateNote(ctx, noteID, func(note *joplin.Note) {
		note.Body = fmt.Sprintf("%s\n%s[%s](:/%s)", note.Body, prefix, resource.Title, resourceID)
	})
}

// DeleteAllNotes deletes every note. Failures are collected so one bad
// item doesn't stop the sweep.
func (c *Client) DeleteAllNotes(ctx context.Context) error {
	notes, err := c.AllNotes(ctx)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, note := range notes {
		if err := c.DeleteNote(ctx, note.ID); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// DeleteAllNotebooks deletes every notebook. The target has no
// cascading deletes, so each notebook is removed individually.
func (c *Client) DeleteAllNotebooks(ctx context.Context) error {
	notebooks, err := c.AllNotebooks(ctx)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, notebook := range notebooks {
		if err := c.DeleteNotebook(ctx, notebook.ID); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// DeleteAllResources deletes every resource.
func (c *Client) DeleteAllResources(ctx context.Context) error {
	resources, err := c.AllResources(ctx)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, resource := range resources {
		if err := c.DeleteResource(ctx, resource.ID); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// DeleteAllRevisions deletes every revision.
func (c *Client) DeleteAllRevisions(ctx context.Context) error {
	revisions, err := c.AllRevisions(ctx)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, revision := range revisions {
		if err := c.DeleteRevision(ctx, revision.ID); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// DeleteAllTags deletes every tag.
func (c *Client) DeleteAllTags(ctx context.Context) error {
	tags, err := c.AllTags(ctx)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, tag := range tags {
		if err := c.DeleteTag(ctx, tag.ID); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
