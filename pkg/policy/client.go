// SPDX-License-Identifier: BSD-2-Clause

package policy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"
)

// maxErrorBody bounds how much of an error response ends up in a StatusError.
const maxErrorBody = 4 << 10

// Options configure a Client.
type Options struct {
	// BaseURL of the policy service, e.g. http://localhost:8002/api/v1.
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// HTTPClient defaults to a pooled client from go-cleanhttp.
	HTTPClient *http.Client
}

func (o *Options) defaults() {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.HTTPClient == nil {
		o.HTTPClient = cleanhttp.DefaultPooledClient()
	}
}

// A Client for the policy service.
type Client struct {
	base    *url.URL
	token   string
	timeout time.Duration
	log     *zap.Logger
	hc      *http.Client
}

// NewClient returns a client for the service at opts.BaseURL.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("policy service URL not set")
	}
	u, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("policy service URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("policy service URL %q: unsupported scheme %q", opts.BaseURL, u.Scheme)
	}
	opts.defaults()
	return &Client{
		base:    u,
		token:   opts.Token,
		timeout: opts.Timeout,
		log:     opts.Logger.With(zap.String("service", "policy")),
		hc:      opts.HTTPClient,
	}, nil
}

// List returns all the policies known to the service.
func (c *Client) List(ctx context.Context) ([]Policy, error) {
	var res []Policy
	if err := c.do(ctx, http.MethodGet, "policies", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Get returns a policy by id.
func (c *Client) Get(ctx context.Context, id string) (*Policy, error) {
	var res Policy
	if err := c.do(ctx, http.MethodGet, "policies/"+url.PathEscape(id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Apply applies a policy to a cluster.
func (c *Client) Apply(ctx context.Context, id string, req ApplyRequest) (*ApplyResult, error) {
	var res ApplyResult
	if err := c.do(ctx, http.MethodPost, "policies/"+url.PathEscape(id)+"/apply", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.base.String() + "/" + path

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("url", u), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, URL: u, Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, u, err)
	}
	return nil
}
