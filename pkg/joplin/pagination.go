package joplin

import (
	"strconv"
	"strings"
)

// Page is one page of a paged list endpoint. HasMore signals that more
// pages follow; Cursor is only populated by the events endpoint.
type Page[T any] struct {
	Items   []T    `json:"items"`
	HasMore bool   `json:"has_more"`
	Cursor  *int64 `json:"cursor,omitempty"`
}

// ListOptions control paged list endpoints. The zero value asks for
// the server defaults (fields id, parent_id, title; 10 items per
// page; first page).
type ListOptions struct {
	// Fields restricts which item fields the server returns.
	Fields []string

	// OrderBy is a field name to sort by; OrderDir is "ASC" or "DESC".
	OrderBy  string
	OrderDir string

	// Limit is the page size, capped by the server at 100.
	Limit int

	// Page selects a page, one-based. Zero means the first page.
	Page int
}

func (o *ListOptions) query() []queryParam {
	if o == nil {
		return nil
	}
	var params []queryParam
	if len(o.Fields) > 0 {
		params = append(params, queryParam{"fields", strings.Join(o.Fields, ",")})
	}
	if o.OrderBy != "" {
		params = append(params, queryParam{"order_by", o.OrderBy})
	}
	if o.OrderDir != "" {
		params = append(params, queryParam{"order_dir", o.OrderDir})
	}
	if o.Limit > 0 {
		params = append(params, queryParam{"limit", strconv.Itoa(o.Limit)})
	}
	if o.Page > 0 {
		params = append(params, queryParam{"page", strconv.Itoa(o.Page)})
	}
	return params
}

// withPage returns a copy of the options pointing at the given page.
func (o *ListOptions) withPage(page int) *ListOptions {
	var copied ListOptions
	if o != nil {
		copied = *o
	}
	copied.Page = page
	return &copied
}

// collectAll drains a paged endpoint: pages are one-based and fetched
// until the server reports no more data, merging all items into one
// slice.
func collectAll[T any](fetch func(page int) (*Page[T], error)) ([]T, error) {
	var items []T
	for page := 1; ; page++ {
		resp, err := fetch(page)
		if err != nil {
			return nil, err
		}
		items = append(items, resp.Items...)
		if !resp.HasMore {
			return items, nil
		}
	}
}
