package api

import (
	"context"
	"net/http"

	"github.com/forkline-dev/forkline/internal/client/gateway"
)

// Restaurants lists all restaurants.
func (c *Client) Restaurants(ctx context.Context) ([]Restaurant, error) {
	return call[[]Restaurant](ctx, c, "/restaurants", gateway.CallOptions{})
}

// Restaurant fetches one restaurant by ID.
func (c *Client) Restaurant(ctx context.Context, id string) (*Restaurant, error) {
	res, err := call[Restaurant](ctx, c, "/restaurants/"+id, gateway.CallOptions{})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateRestaurant creates a restaurant (admin only).
func (c *Client) CreateRestaurant(ctx context.Context, input RestaurantInput) (*Restaurant, error) {
	res, err := call[Restaurant](ctx, c, "/restaurants", gateway.CallOptions{
		Method: http.MethodPost,
		Body:   input,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteRestaurant removes a restaurant (admin only).
func (c *Client) DeleteRestaurant(ctx context.Context, id string) error {
	_, err := call[struct{}](ctx, c, "/restaurants/"+id, gateway.CallOptions{
		Method: http.MethodDelete,
	})
	return err
}
