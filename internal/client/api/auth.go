package api

import (
	"context"
	"net/http"

	"github.com/forkline-dev/forkline/internal/client/gateway"
)

// Register creates an account. Like Login, it records the session when the
// response carries both token and user.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	res, err := call[AuthResult](ctx, c, "/auth/register", gateway.CallOptions{
		Method: http.MethodPost,
		Body:   input,
	})
	if err != nil {
		return nil, err
	}

	c.maybeRecordLogin(&res)
	return &res, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	res, err := call[AuthResult](ctx, c, "/auth/login", gateway.CallOptions{
		Method: http.MethodPost,
		Body: map[string]string{
			"email":    email,
			"password": password,
		},
	})
	if err != nil {
		return nil, err
	}

	c.maybeRecordLogin(&res)
	return &res, nil
}

// Logout clears the stored session and triggers the navigation hook.
func (c *Client) Logout() {
	c.session.Logout()
}

// maybeRecordLogin persists the session as a side effect of a successful
// auth response. A response missing the token or the user leaves the store
// untouched, so the two fields never diverge.
func (c *Client) maybeRecordLogin(res *AuthResult) {
	if res.Token == "" || res.User == nil {
		return
	}
	_ = c.session.RecordLogin(res.Token, *res.User)
}
