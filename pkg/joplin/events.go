package joplin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// EventListOptions control the events endpoint, which is paginated
// with a cursor instead of page numbers.
type EventListOptions struct {
	Fields []string
	Limit  int
	Cursor int64
}

func (o *EventListOptions) query() []queryParam {
	if o == nil {
		return nil
	}
	var params []queryParam
	if len(o.Fields) > 0 {
		params = append(params, queryParam{"fields", strings.Join(o.Fields, ",")})
	}
	if o.Limit > 0 {
		params = append(params, queryParam{"limit", strconv.Itoa(o.Limit)})
	}
	if o.Cursor > 0 {
		params = append(params, queryParam{"cursor", strconv.FormatInt(o.Cursor, 10)})
	}
	return params
}

// Event fetches a single event by its numeric ID.
func (c *Client) Event(ctx context.Context, id int64, fields ...string) (*Event, error) {
	var event Event
	opts := &EventListOptions{Fields: fields}
	path := "/events/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, "GET", path, opts.query(), nil, &event); err != nil {
		return nil, fmt.Errorf("getting event %d: %w", id, err)
	}
	return &event, nil
}

// Events lists item change events, one page at a time. Pass the cursor
// from the previous page to continue where it left off; a zero cursor
// starts from the oldest available event.
func (c *Client) Events(ctx context.Context, opts *EventListOptions) (*Page[Event], error) {
	var page Page[Event]
	if err := c.do(ctx, "GET", "/events", opts.query(), nil, &page); err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return &page, nil
}

// AllEvents follows the event cursor until the server reports no more
// data and returns all events in one slice.
func (c *Client) AllEvents(ctx context.Context, opts *EventListOptions) ([]Event, error) {
	var next EventListOptions
	if opts != nil {
		next = *opts
	}
	var events []Event
	for {
		page, err := c.Events(ctx, &next)
		if err != nil {
			return nil, err
		}
		events = append(events, page.Items...)
		if !page.HasMore || page.Cursor == nil {
			return events, nil
		}
		next.Cursor = *page.Cursor
	}
}
