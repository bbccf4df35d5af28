package api

import (
	"context"
	"net/http"

	"github.com/forkline-dev/forkline/internal/client/gateway"
)

// Profile fetches the authenticated user's own record.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	res, err := call[Profile](ctx, c, "/users/profile", gateway.CallOptions{})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateProfile updates the authenticated user's record.
func (c *Client) UpdateProfile(ctx context.Context, input ProfileInput) (*Profile, error) {
	res, err := call[Profile](ctx, c, "/users/profile", gateway.CallOptions{
		Method: http.MethodPut,
		Body:   input,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
