package api

import (
	"context"
	"net/http"

	"github.com/forkline-dev/forkline/internal/client/gateway"
)

// PlaceOrder creates an order for the authenticated user.
func (c *Client) PlaceOrder(ctx context.Context, input OrderInput) (*Order, error) {
	res, err := call[Order](ctx, c, "/orders", gateway.CallOptions{
		Method: http.MethodPost,
		Body:   input,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// MyOrders lists the authenticated user's orders, newest first.
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	return call[[]Order](ctx, c, "/orders/my-orders", gateway.CallOptions{})
}
