package google

import (
	"context"
	"net/http"
)

// Userinfo fetches the authenticated user's profile and returns the body
// verbatim for the caller to relay.
func (c *Client) Userinfo(ctx context.Context, token string) (string, error) {
	return c.text(ctx, http.MethodGet, c.apiURL+"/oauth2/v2/userinfo", token, "", nil)
}
