package api

import (
	"context"
	"net/http"

	"github.com/forkline-dev/forkline/internal/client/gateway"
)

// Menu lists the menu of one restaurant.
func (c *Client) Menu(ctx context.Context, restaurantID string) ([]MenuItem, error) {
	return call[[]MenuItem](ctx, c, "/menu/"+restaurantID, gateway.CallOptions{})
}

// CreateMenuItem adds a dish to a restaurant's menu (admin only).
func (c *Client) CreateMenuItem(ctx context.Context, input MenuItemInput) (*MenuItem, error) {
	res, err := call[MenuItem](ctx, c, "/menu", gateway.CallOptions{
		Method: http.MethodPost,
		Body:   input,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteMenuItem removes a dish from a menu (admin only).
func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	_, err := call[struct{}](ctx, c, "/menu/"+id, gateway.CallOptions{
		Method: http.MethodDelete,
	})
	return err
}
