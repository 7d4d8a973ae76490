package prestashop

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/erp/syncbridge/internal/domain/integration"
)

const (
	// maxResponseSize is the maximum allowed response size from the webservice (10MB)
	maxResponseSize = 10 * 1024 * 1024
	// maxErrorBodyLen bounds the upstream body kept on a StatusError
	maxErrorBodyLen = 300

	contentTypeXML = "application/xml"
)

// Client talks to the PrestaShop webservice. It implements both
// integration.StorefrontCatalog and integration.StorefrontSales.
type Client struct {
	config     *Config
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

var (
	_ integration.StorefrontCatalog = (*Client)(nil)
	_ integration.StorefrontSales   = (*Client)(nil)
)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a PrestaShop client. An unconfigured client is valid;
// every call then fails with a NotConfiguredError without touching the network.
func NewClient(cfg *Config, opts ...Option) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.applyDefaults()

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	c := &Client{
		config:     cfg,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(limit, max(cfg.Burst, 1)),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsConfigured reports whether the client has a base URL and key
func (c *Client) IsConfigured() bool {
	return c.config.IsConfigured()
}

// request describes one webservice call
type request struct {
	method string
	path   string
	query  url.Values
	body   []byte
	accept string
}

// doRequest performs a webservice call. Only 200 and 201 count as success;
// any other status is returned as *integration.StatusError.
func (c *Client) doRequest(ctx context.Context, r request) ([]byte, error) {
	if !c.IsConfigured() {
		return nil, integration.NewNotConfiguredError(integration.SystemStorefront)
	}

	timeout := c.config.Timeout
	if override, ok := integration.UpstreamTimeout(ctx); ok {
		timeout = override
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
	}

	query := url.Values{}
	for k, v := range r.query {
		query[k] = v
	}
	query.Set("ws_key", c.config.APIKey)
	endpoint := c.config.BaseURL + r.path + "?" + query.Encode()

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("prestashop: failed to create request: %w", err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", contentTypeXML)
	}
	if r.accept != "" {
		req.Header.Set("Accept", r.accept)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("prestashop: failed to read response: %w", err)
	}

	c.logger.Debug("prestashop request",
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if !isSuccess(resp.StatusCode) {
		return nil, &integration.StatusError{
			System:     integration.SystemStorefront,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(data), maxErrorBodyLen),
		}
	}
	return data, nil
}

// getJSON reads a resource list with display=full and JSON output
func (c *Client) getJSON(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("display", "full")
	query.Set("output_format", "JSON")
	return c.doRequest(ctx, request{method: http.MethodGet, path: path, query: query})
}

// getXML reads a resource as an XML document
func (c *Client) getXML(ctx context.Context, path string, query url.Values) (*Node, error) {
	data, err := c.doRequest(ctx, request{method: http.MethodGet, path: path, query: query, accept: contentTypeXML})
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
	}
	return doc, nil
}

// sendXML writes an XML document with the given method
func (c *Client) sendXML(ctx context.Context, method, path string, doc *Node) error {
	body, err := MarshalDocument(doc)
	if err != nil {
		return fmt.Errorf("prestashop: failed to encode document: %w", err)
	}
	_, err = c.doRequest(ctx, request{method: method, path: path, body: body, accept: contentTypeXML})
	return err
}

// filterValue renders an exact-match webservice filter, e.g. [ABC-1]. The
// filter grammar has no escaping: "|" means OR and brackets delimit the value,
// so values carrying them are refused.
func filterValue(value string) (string, error) {
	if strings.ContainsAny(value, "|[]") {
		return "", fmt.Errorf("%w: %q", integration.ErrUnfilterableReference, value)
	}
	return "[" + value + "]", nil
}

func isSuccess(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
