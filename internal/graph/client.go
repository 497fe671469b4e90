package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "https://sparql.crssnky.xyz/spql/imas/query"

	AcceptJSON = "application/sparql-results+json"
	AcceptText = "text/plain"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds a single request. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing sparql endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parsing sparql endpoint: unsupported scheme %q", u.Scheme)
	}

	c := &Client{endpoint: endpoint, httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Execute sends query to the endpoint and returns the body as-is: decoded
// SPARQL JSON results when accept names a JSON type, raw text otherwise.
// Caller cancellation does not abort a request that has been issued.
func (c *Client) Execute(ctx context.Context, query, accept string) (*Response, error) {
	if accept == "" {
		accept = AcceptJSON
	}

	ctx = context.WithoutCancel(ctx)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.endpoint + separator(c.endpoint) + "query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	out := &Response{ContentType: resp.Header.Get("Content-Type")}
	if !strings.Contains(accept, "json") {
		out.Text = string(body)
		return out, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("decoding sparql results: %w", err)
	}
	return out, nil
}

// Select runs a SELECT query and returns its binding rows.
func (c *Client) Select(ctx context.Context, query string) ([]Binding, error) {
	resp, err := c.Execute(ctx, query, AcceptJSON)
	if err != nil {
		return nil, err
	}
	return resp.Results.Bindings, nil
}

func separator(endpoint string) string {
	if strings.Contains(endpoint, "?") {
		return "&"
	}
	return "?"
}
