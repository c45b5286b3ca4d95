package serverapi

import (
	"strconv"
	"strings"

	"github.com/dataplume/joplingo/pkg/joplin"
)

// NoteTag links a tag to a note. The desktop data API manages these
// implicitly; on the sync target they are items of their own.
type NoteTag struct {
	ID              string           `json:"id"`
	NoteID          string           `json:"note_id"`
	TagID           string           `json:"tag_id"`
	CreatedTime     joplin.Timestamp `json:"created_time"`
	UpdatedTime     joplin.Timestamp `json:"updated_time"`
	UserCreatedTime joplin.Timestamp `json:"user_created_time"`
	UserUpdatedTime joplin.Timestamp `json:"user_updated_time"`
	IsShared        joplin.Bool      `json:"is_shared"`
	Type            joplin.ItemType  `json:"type_"`
}

// User is a server account.
type User struct {
	ID       string      `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	IsAdmin  joplin.Bool `json:"is_admin"`
	Enabled  joplin.Bool `json:"enabled"`
}

// ListOptions control the paged server endpoints. The zero value asks
// for the server defaults.
type ListOptions struct {
	// Limit is the page size.
	Limit int

	// Page selects a page, one-based. Zero means the first page.
	Page int
}

func (o *ListOptions) rawQuery() string {
	if o == nil {
		return ""
	}
	var parts []string
	if o.Limit > 0 {
		parts = append(parts, "limit="+strconv.Itoa(o.Limit))
	}
	if o.Page > 0 {
		parts = append(parts, "page="+strconv.Itoa(o.Page))
	}
	return strings.Join(parts, "&")
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

// collectAll drains a paged endpoint, fetching one-based pages until
// the server reports no more data.
func collectAll[T any](fetch func(page int) (*joplin.Page[T], error)) ([]T, error) {
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
