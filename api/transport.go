package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultPort is Grocy's conventional port.
	DefaultPort = 9192
	// DemoAPIKey disables the API key header, for the public demo server.
	DemoAPIKey = "demo_mode"

	apiKeyHeader     = "GROCY-API-KEY"
	defaultUserAgent = "pantry/0.1"
	defaultTimeout   = 10 * time.Second
)

// ContentKind selects the request body encoding for Put.
type ContentKind int

const (
	ContentJSON ContentKind = iota
	ContentOctetStream
)

// Transport executes requests against paths relative to the Grocy API root.
// A nil RawMessage with a nil error means the server sent an empty body.
// Responses with status >= 400 come back as *Error.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any, kind ContentKind) (json.RawMessage, error)
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}

// Ensure HTTPTransport implements Transport at compile time.
var _ Transport = (*HTTPTransport)(nil)

// Config describes how to reach a Grocy server.
type Config struct {
	// URL is the scheme and host, e.g. "https://grocy.example".
	URL string
	// Port defaults to DefaultPort when zero.
	Port int
	// Path is an optional sub-path the server is mounted under.
	Path   string
	APIKey string
	// InsecureSkipVerify disables TLS certificate checks.
	InsecureSkipVerify bool
	Timeout            time.Duration
	UserAgent          string
}

// BaseURL composes the API root exactly as Grocy clients expect:
// "{url}:{port}/api/" or "{url}:{port}/{path}/api/".
func BaseURL(host string, port int, path string) string {
	if port == 0 {
		port = DefaultPort
	}
	if path != "" {
		return fmt.Sprintf("%s:%d/%s/api/", host, port, path)
	}
	return fmt.Sprintf("%s:%d/api/", host, port)
}

// HTTPTransport is the net/http Transport.
type HTTPTransport struct {
	baseURL   *url.URL
	http      *http.Client
	apiKey    string
	userAgent string
	logger    *zap.Logger
}

// NewHTTPTransport validates cfg and builds a transport. A nil logger is
// replaced by a no-op logger.
func NewHTTPTransport(cfg Config, logger *zap.Logger) (*HTTPTransport, error) {
	host := strings.TrimSpace(cfg.URL)
	if host == "" {
		return nil, fmt.Errorf("grocy url is required")
	}
	raw := BaseURL(host, cfg.Port, cfg.Path)
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q needs a scheme and host", raw)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := &http.Client{Timeout: timeout}
	if cfg.InsecureSkipVerify {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via verify_ssl=false
		client.Transport = tr
	}
	return &HTTPTransport{
		baseURL:   base,
		http:      client,
		apiKey:    cfg.APIKey,
		userAgent: userAgent,
		logger:    logger,
	}, nil
}

// BaseURL returns the resolved API root.
func (t *HTTPTransport) BaseURL() string {
	return t.baseURL.String()
}

func (t *HTTPTransport) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	rel, err := relativeURL(path)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		rel.RawQuery = query.Encode()
	}
	return t.doURL(ctx, http.MethodGet, rel, nil, "")
}

func (t *HTTPTransport) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	reader, contentType, err := encodeBody(body, ContentJSON)
	if err != nil {
		return nil, err
	}
	rel, err := relativeURL(path)
	if err != nil {
		return nil, err
	}
	return t.doURL(ctx, http.MethodPost, rel, reader, contentType)
}

func (t *HTTPTransport) Put(ctx context.Context, path string, body any, kind ContentKind) (json.RawMessage, error) {
	reader, contentType, err := encodeBody(body, kind)
	if err != nil {
		return nil, err
	}
	rel, err := relativeURL(path)
	if err != nil {
		return nil, err
	}
	return t.doURL(ctx, http.MethodPut, rel, reader, contentType)
}

func (t *HTTPTransport) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	rel, err := relativeURL(path)
	if err != nil {
		return nil, err
	}
	return t.doURL(ctx, http.MethodDelete, rel, nil, "")
}

// relativeURL parses an API path whose caller-supplied segments are already
// escaped with url.PathEscape, so an escaped "/" or ".." stays inside its
// segment when resolved against the base URL.
func relativeURL(path string) (*url.URL, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	if rel.IsAbs() || rel.Host != "" {
		return nil, fmt.Errorf("path %q must be relative", path)
	}
	return rel, nil
}

func (t *HTTPTransport) doURL(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string) (json.RawMessage, error) {
	reqURL := t.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t.apiKey != DemoAPIKey {
		req.Header.Set(apiKeyHeader, t.apiKey)
	}

	start := time.Now()
	resp, err := t.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	t.logger.Debug("grocy request",
		zap.String("method", method),
		zap.String("path", rel.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		apiErr := newError(resp.StatusCode, payload)
		t.logger.Debug("grocy request failed",
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, nil
	}
	return json.RawMessage(trimmed), nil
}

func encodeBody(body any, kind ContentKind) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch kind {
	case ContentOctetStream:
		switch v := body.(type) {
		case io.Reader:
			return v, "application/octet-stream", nil
		case []byte:
			return bytes.NewReader(v), "application/octet-stream", nil
		default:
			return nil, "", fmt.Errorf("octet-stream body must be io.Reader or []byte, got %T", body)
		}
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encode request: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}
