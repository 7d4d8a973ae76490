package odoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/rpc"
	"time"

	"github.com/kolo/xmlrpc"
	"go.uber.org/zap"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// Client talks to the Odoo external API over XML-RPC. Every operation
// authenticates anew; the uid is never cached.
type Client struct {
	config    *Config
	transport http.RoundTripper
	logger    *zap.Logger
}

var (
	_ integration.ERPCatalog   = (*Client)(nil)
	_ integration.ERPDirectory = (*Client)(nil)
)

// Option configures a Client
type Option func(*Client)

// WithTransport replaces the HTTP transport used for XML-RPC calls
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates an Odoo client. An unconfigured client is valid;
// every call then fails with a NotConfiguredError without touching the network.
func NewClient(cfg *Config, opts ...Option) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.applyDefaults()

	c := &Client{
		config:    cfg,
		transport: http.DefaultTransport,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsConfigured reports whether the client has every credential
func (c *Client) IsConfigured() bool {
	return c.config.IsConfigured()
}

// session is one authenticated operation against the object endpoint
type session struct {
	client *Client
	uid    int64
	object *xmlrpc.Client
}

// connect authenticates against the common endpoint and opens the object endpoint
func (c *Client) connect(ctx context.Context) (*session, error) {
	if !c.IsConfigured() {
		return nil, integration.NewNotConfiguredError(integration.SystemERP)
	}

	common, err := xmlrpc.NewClient(c.config.commonURL(), c.transport)
	if err != nil {
		return nil, fmt.Errorf("odoo: failed to create common client: %w", err)
	}
	defer common.Close()

	var result interface{}
	args := []interface{}{c.config.DB, c.config.Username, c.config.Password, map[string]interface{}{}}
	if err := c.call(ctx, common, "authenticate", args, &result); err != nil {
		return nil, err
	}

	uid, ok := asInt64(result)
	if !ok || uid == 0 {
		c.logger.Warn("odoo authentication rejected",
			zap.String("db", c.config.DB),
			zap.String("username", c.config.Username),
		)
		return nil, integration.ErrPlatformAuthFailed
	}

	object, err := xmlrpc.NewClient(c.config.objectURL(), c.transport)
	if err != nil {
		return nil, fmt.Errorf("odoo: failed to create object client: %w", err)
	}
	return &session{client: c, uid: uid, object: object}, nil
}

func (s *session) close() {
	_ = s.object.Close()
}

// executeKw calls execute_kw(db, uid, password, model, method, args, kwargs)
func (s *session) executeKw(ctx context.Context, model, method string, args []interface{}, kwargs map[string]interface{}, reply interface{}) error {
	cfg := s.client.config
	params := []interface{}{cfg.DB, s.uid, cfg.Password, model, method, args}
	if kwargs != nil {
		params = append(params, kwargs)
	}
	return s.client.call(ctx, s.object, "execute_kw", params, reply)
}

// call performs one XML-RPC call and gives up when ctx is done
func (c *Client) call(ctx context.Context, client *xmlrpc.Client, method string, args []interface{}, reply interface{}) error {
	start := time.Now()
	call := client.Go(method, args, reply, nil)

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, ctx.Err())
	case done := <-call.Done:
		c.logger.Debug("odoo call",
			zap.String("method", method),
			zap.Duration("duration", time.Since(start)),
			zap.Error(done.Error),
		)
		return classifyError(done.Error)
	}
}

// classifyError maps XML-RPC faults to request failures and everything else to unavailability.
// net/rpc surfaces faults as rpc.ServerError carrying the fault text.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var serverErr rpc.ServerError
	if errors.As(err, &serverErr) {
		return fmt.Errorf("%w: odoo %s", integration.ErrPlatformRequestFailed, string(serverErr))
	}
	return fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
}

// withTimeout bounds one operation by the configured timeout unless ctx carries its own
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.config.Timeout
	if override, ok := integration.UpstreamTimeout(ctx); ok {
		timeout = override
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// searchRead authenticates and runs search_read on model
func (c *Client) searchRead(ctx context.Context, model string, domain []interface{}, fields []string) ([]map[string]interface{}, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	s, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer s.close()

	if domain == nil {
		domain = []interface{}{}
	}
	var result []interface{}
	kwargs := map[string]interface{}{"fields": fields}
	if err := s.executeKw(ctx, model, "search_read", []interface{}{domain}, kwargs, &result); err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, 0, len(result))
	for _, item := range result {
		row, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s row is %T", integration.ErrPlatformInvalidResponse, model, item)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// condition builds a domain leaf such as ("default_code", "=", sku)
func condition(field, operator string, value interface{}) []interface{} {
	return []interface{}{field, operator, value}
}
