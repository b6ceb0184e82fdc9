package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// Client maps Grocy endpoints onto typed records. It holds no mutable state
// beyond its transport and is safe for concurrent use when the transport is.
type Client struct {
	transport Transport
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used by the client and, through New, by the
// HTTP transport.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient wraps an existing transport.
func NewClient(t Transport, opts ...Option) *Client {
	c := &Client{transport: t, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New builds a Client backed by an HTTPTransport for cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	c := NewClient(nil, opts...)
	t, err := NewHTTPTransport(cfg, c.logger)
	if err != nil {
		return nil, err
	}
	c.transport = t
	return c, nil
}

// Filters are Grocy query conditions such as "name=Milk" or "amount>2".
// Each one is sent verbatim as a query[] parameter.
type Filters []string

func (f Filters) values() url.Values {
	if len(f) == 0 {
		return nil
	}
	v := url.Values{}
	for _, cond := range f {
		v.Add("query[]", cond)
	}
	return v
}

// get decodes the response at path into dst. It reports false when the
// server answered with an empty body.
func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("client is nil")
	}
	body, err := c.transport.Get(ctx, path, query)
	if err != nil {
		return false, err
	}
	return decodeInto(path, body, dst)
}

func (c *Client) post(ctx context.Context, path string, body any, dst any) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("client is nil")
	}
	resp, err := c.transport.Post(ctx, path, body)
	if err != nil {
		return false, err
	}
	return decodeInto(path, resp, dst)
}

func (c *Client) put(ctx context.Context, path string, body any, kind ContentKind) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	_, err := c.transport.Put(ctx, path, body, kind)
	return err
}

func (c *Client) delete(ctx context.Context, path string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	_, err := c.transport.Delete(ctx, path)
	return err
}

func decodeInto(path string, body json.RawMessage, dst any) (bool, error) {
	if dst == nil || len(body) == 0 || string(body) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			return false, err
		}
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// decodeBookings accepts the object or array Grocy returns from stock
// mutations.
func decodeBookings(path string, body json.RawMessage) ([]StockLogResponse, error) {
	if len(body) == 0 || string(body) == "null" {
		return nil, nil
	}
	if body[0] == '[' {
		var out []StockLogResponse
		if _, err := decodeInto(path, body, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var one StockLogResponse
	if _, err := decodeInto(path, body, &one); err != nil {
		return nil, err
	}
	return []StockLogResponse{one}, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
