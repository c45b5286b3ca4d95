package joplin

import (
	"context"
	"fmt"
)

// pingResponse is the fixed body the clipper service answers with.
const pingResponse = "JoplinClipperServer"

// Ping checks that the data API is reachable and actually is Joplin.
func (c *Client) Ping(ctx context.Context) error {
	raw, err := c.doRaw(ctx, "GET", "/ping", nil, nil)
	if err != nil {
		return fmt.Errorf("pinging API: %w", err)
	}
	if string(raw) != pingResponse {
		return fmt.Errorf("unexpected ping response %q", string(raw))
	}
	return nil
}
