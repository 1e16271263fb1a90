// Package rest adapts the ERP REST backend to the types.Source and
// types.Gateway interfaces: it unwraps list envelopes, attaches the session
// token, throttles requests, and turns non-2xx responses into errors that
// carry the server's message for display.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/mesh-intelligence/erpdesk/internal/logging"
	"github.com/mesh-intelligence/erpdesk/pkg/listview"
	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// Defaults for New.
const (
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 20 // requests per second
	DefaultBurst     = 5
)

// maxMessageLen bounds the server message kept in a StatusError.
const maxMessageLen = 200

// envelopeKeys are the list wrappers the backend uses, in lookup order.
var envelopeKeys = []string{"results", "data"}

// Client talks to the ERP REST API.
type Client struct {
	base    *url.URL
	http    *http.Client
	session *types.Session
	limiter *rate.Limiter
	logger  *log.Logger
}

var _ types.Store = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithSession attaches the session whose token authorizes requests. The
// session is read on every request, so a logout takes effect immediately.
func WithSession(s *types.Session) Option {
	return func(c *Client) { c.session = s }
}

// WithLimiter replaces the default request rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, types.ErrAPIURLEmpty
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api url %q: unsupported scheme %q", baseURL, u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &Client{
		base:    u,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultBurst),
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch GETs the entity collection and unwraps it. A payload that is not a
// list, such as an error object returned with a 200, yields an empty
// collection and a warning rather than an error.
func (c *Client) Fetch(ctx context.Context, entity string) ([]types.Record, error) {
	endpoint, err := c.endpoint(entity, "")
	if err != nil {
		return nil, err
	}

	var payload any
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &payload, types.ErrFetchFailed); err != nil {
		return nil, err
	}

	records, ok := Unwrap(payload)
	if !ok {
		c.logger.Warn("malformed collection payload", "entity", entity, "type", fmt.Sprintf("%T", payload))
	}
	c.logger.Debug("fetched collection", "entity", entity, "count", len(records))
	return records, nil
}

// Create POSTs a new record and returns the identifier the server assigned,
// falling back to the record's own identifier.
func (c *Client) Create(ctx context.Context, entity string, rec types.Record) (string, error) {
	if rec == nil {
		return "", types.ErrInvalidData
	}
	endpoint, err := c.endpoint(entity, "")
	if err != nil {
		return "", err
	}

	var created types.Record
	if err := c.do(ctx, http.MethodPost, endpoint, rec, &created, types.ErrMutationFailed); err != nil {
		return "", err
	}
	if id, ok := created.ID(types.DefaultIDField); ok {
		return id, nil
	}
	id, _ := rec.ID(types.DefaultIDField)
	return id, nil
}

// Update PUTs the record to its detail endpoint.
func (c *Client) Update(ctx context.Context, entity, id string, rec types.Record) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if rec == nil {
		return types.ErrInvalidData
	}
	endpoint, err := c.endpoint(entity, id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, endpoint, rec, nil, types.ErrMutationFailed)
}

// Delete removes the record at its detail endpoint.
func (c *Client) Delete(ctx context.Context, entity, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	endpoint, err := c.endpoint(entity, id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil, types.ErrMutationFailed)
}

// endpoint builds the collection URL, or the detail URL when id is set.
// Paths end with a slash, as the backend routes expect.
func (c *Client) endpoint(entity, id string) (string, error) {
	p, ok := types.EntityPath(entity)
	if !ok {
		return "", fmt.Errorf("%q: %w", entity, types.ErrEntityNotFound)
	}
	u := *c.base
	u.Path = u.Path + "/" + p + "/"
	if id != "" {
		u.Path += url.PathEscape(id) + "/"
	}
	return u.String(), nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any, kind error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", types.ErrInvalidData)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Active() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed", "method", method, "url", endpoint, "err", err)
		return fmt.Errorf("%s %s: %w: %w", method, endpoint, kind, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{
			Method:  method,
			URL:     endpoint,
			Code:    resp.StatusCode,
			Message: serverMessage(data),
			kind:    kind,
		}
		c.logger.Warn("request rejected", "method", method, "url", endpoint, "status", resp.StatusCode)
		return serr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		if kind == types.ErrFetchFailed {
			// A non-JSON body on a list endpoint is a malformed collection.
			c.logger.Warn("undecodable response", "url", endpoint, "err", err)
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Unwrap extracts the record list from a decoded payload: a bare array or a
// {"results": [...]} / {"data": [...]} envelope. The second result is false
// when the payload has neither shape; the records are then empty.
func Unwrap(payload any) ([]types.Record, bool) {
	switch p := payload.(type) {
	case []any:
		return listview.Normalize(p), true
	case map[string]any:
		for _, key := range envelopeKeys {
			if inner, ok := p[key].([]any); ok {
				return listview.Normalize(inner), true
			}
		}
	}
	return []types.Record{}, false
}

// serverMessage pulls a human-readable message out of an error body.
func serverMessage(data []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return truncate(s)
			}
		}
	}
	return truncate(strings.TrimSpace(string(data)))
}

func truncate(s string) string {
	if len(s) <= maxMessageLen {
		return s
	}
	cut := maxMessageLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
