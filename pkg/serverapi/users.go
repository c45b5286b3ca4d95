package serverapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dataplume/joplingo/pkg/joplin"
)

// Users lists the server's accounts, one page at a time.
func (c *Client) Users(ctx context.Context, opts *ListOptions) (*joplin.Page[User], error) {
	body, err := c.do(ctx, "GET", "/api/users", opts.rawQuery(), "", nil)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	var page joplin.Page[User]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return &page, nil
}

// AllUsers lists the server's accounts across all pages.
func (c *Client) AllUsers(ctx context.Context) ([]User, error) {
	return collectAll(func(page int) (*joplin.Page[User], error) {
		return c.Users(ctx, &ListOptions{Page: page})
	})
}

// CurrentUser returns the account this client is logged in as, or nil
// when the login email matches no account.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	users, err := c.AllUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.Email == c.email {
			return &user, nil
		}
	}
	return nil, nil
}
