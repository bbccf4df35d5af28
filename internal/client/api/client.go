// Package api is the typed call surface over the gateway: one small method
// per backend operation, each a fixed method/path/body binding with no logic
// beyond delegation.
package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/forkline-dev/forkline/internal/client/gateway"
	"github.com/forkline-dev/forkline/internal/client/session"
)

// Client bundles the gateway with the session store it feeds on login.
type Client struct {
	gw      *gateway.Gateway
	session *session.Store
}

// New creates an API client. The same session store must back the gateway's
// token source, so that a recorded login is attached to the very next call.
func New(gw *gateway.Gateway, store *session.Store) *Client {
	return &Client{gw: gw, session: store}
}

// Session exposes the session store for auth checks at call sites.
func (c *Client) Session() *session.Store {
	return c.session
}

// call performs the exchange and decodes the payload into T. A nil payload
// (confirmation-only endpoints) leaves the zero value.
func call[T any](ctx context.Context, c *Client, endpoint string, opts gateway.CallOptions) (T, error) {
	var out T

	payload, err := c.gw.Call(ctx, endpoint, opts)
	if err != nil {
		return out, err
	}
	if payload == nil {
		return out, nil
	}

	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}
