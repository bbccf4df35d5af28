// Package gateway is the single chokepoint for all Forkline API traffic.
// Every feature-level call funnels through Gateway.Call, which builds the
// request, attaches the session credential, performs the exchange and
// classifies the response.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// LocalBase is used when the configured host is a development loopback.
	LocalBase = "http://localhost:5000/api"
	// DeployedBase is the fixed production backend address.
	DeployedBase = "https://forkline-app.onrender.com/api"
)

// ResolveBase maps a host name to the API base address. Loopback hosts route
// to the local development backend, everything else to the deployed one. The
// result is resolved once at startup and handed to New; it is never
// re-evaluated per call.
func ResolveBase(host string) string {
	if host == "localhost" || host == "127.0.0.1" {
		return LocalBase
	}
	return DeployedBase
}

// TokenSource yields the current session token, if any. The Gateway reads it
// on every call; it never writes it.
type TokenSource interface {
	Token() (string, bool)
}

// CallOptions describes one outgoing call. Method defaults to GET. Headers
// are merged over the defaults, caller wins on conflict. Body may be a
// pre-serialized string (passed through unmodified) or any JSON-serializable
// value; nil means no body.
type CallOptions struct {
	Method  string
	Headers map[string]string
	Body    any
}

// Gateway issues authenticated JSON requests against a fixed base address.
// Calls are independent and safe for concurrent use; the only shared state
// is the read-mostly session token.
type Gateway struct {
	base   string
	tokens TokenSource
	client *http.Client
	log    zerolog.Logger
}

// New creates a Gateway bound to the given base address and token source.
// The underlying http.Client carries no timeout: a hung exchange suspends
// its caller until the server gives up or the caller's context is canceled.
// Use SetHTTPClient to install a client with different limits.
func New(base string, tokens TokenSource, log zerolog.Logger) *Gateway {
	return &Gateway{
		base:   base,
		tokens: tokens,
		client: &http.Client{},
		log:    log,
	}
}

// SetHTTPClient sets a custom HTTP client.
func (g *Gateway) SetHTTPClient(client *http.Client) {
	g.client = client
}

// Base returns the resolved base address.
func (g *Gateway) Base() string {
	return g.base
}

// Call performs one exchange against base+endpoint and returns the parsed
// JSON payload, or nil when the server answered success with no JSON body.
// Failures are returned as *RequestError; they are logged here and never
// swallowed or retried.
func (g *Gateway) Call(ctx context.Context, endpoint string, opts CallOptions) (json.RawMessage, error) {
	payload, err := g.call(ctx, endpoint, opts)
	if err != nil {
		g.log.Error().
			Str("method", methodOf(opts)).
			Str("endpoint", endpoint).
			Err(err).
			Msg("API call failed")
		return nil, err
	}
	return payload, nil
}

func (g *Gateway) call(ctx context.Context, endpoint string, opts CallOptions) (json.RawMessage, error) {
	method := methodOf(opts)

	body, err := serializeBody(opts.Body)
	if err != nil {
		return nil, &RequestError{
			Kind:    KindTransport,
			Message: fmt.Sprintf("failed to serialize request body: %v", err),
			Cause:   err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base+endpoint, body)
	if err != nil {
		return nil, &RequestError{
			Kind:    KindTransport,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Cause:   err,
		}
	}

	// Defaults first, then caller-supplied headers on top.
	req.Header.Set("Content-Type", "application/json")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	// The token rides along on every call, public endpoints included; the
	// server ignores credentials it does not need.
	if token, ok := g.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	g.log.Debug().Str("method", method).Str("endpoint", endpoint).Msg("API call")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &RequestError{
			Kind:    KindTransport,
			Message: err.Error(),
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	return classify(resp)
}

// classify inspects the declared content type and status and turns the
// response into either a payload or a RequestError.
func classify(resp *http.Response) (json.RawMessage, error) {
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		if !ok {
			return nil, &RequestError{
				Kind:    KindProtocol,
				Status:  resp.StatusCode,
				Message: fmt.Sprintf("HTTP %d", resp.StatusCode),
			}
		}
		// Some endpoints intentionally answer with no body; callers that
		// only need confirmation rely on a nil payload here.
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{
			Kind:    KindTransport,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("failed to read response: %v", err),
			Cause:   err,
		}
	}

	if !ok {
		return nil, failureFromBody(resp.StatusCode, data)
	}

	if !json.Valid(data) {
		return nil, &RequestError{
			Kind:    KindDecode,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("malformed JSON response (HTTP %d)", resp.StatusCode),
		}
	}

	return json.RawMessage(data), nil
}

// failureFromBody extracts the failure text from a JSON error body, in
// priority order: error field, message field, generic fallback.
func failureFromBody(status int, data []byte) *RequestError {
	var detail struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	// A malformed error body still yields the generic fallback.
	_ = json.Unmarshal(data, &detail)

	message := detail.Error
	kind := KindApplication
	if message == "" {
		message = detail.Message
	}
	if message == "" {
		message = "Request failed"
		kind = KindProtocol
	}

	return &RequestError{
		Kind:    kind,
		Status:  status,
		Message: message,
	}
}

func serializeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		// Pre-serialized payloads pass through unmodified.
		return strings.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}

func methodOf(opts CallOptions) string {
	if opts.Method == "" {
		return http.MethodGet
	}
	return opts.Method
}
