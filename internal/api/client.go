// Package api talks to the remote to-do service over HTTP/JSON.
package api

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

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
)

// ItemsPath is the collection resource, relative to the base URL.
const ItemsPath = "/api/todoItems"

// Client is a thin wrapper over the three endpoints the app uses.
// No timeouts and no retries: callers cancel through the context.
type Client struct {
	base      *url.URL
	http      *http.Client
	log       *log.Logger
	userAgent string
}

// Option tweaks a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }
func WithLogger(l *log.Logger) Option      { return func(c *Client) { c.log = l } }
func WithUserAgent(ua string) Option       { return func(c *Client) { c.userAgent = ua } }

// NewClient builds a client for the service rooted at baseURL
// (e.g. http://localhost:7000).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}
	c := &Client{
		base:      u,
		http:      &http.Client{},
		log:       log.New(io.Discard),
		userAgent: "tada",
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the configured endpoint root.
func (c *Client) BaseURL() string { return c.base.String() }

// List fetches every item, in server order.
func (c *Client) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := c.do(ctx, http.MethodGet, c.itemsURL(), nil, &items); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Create posts a new item and returns the server's copy (with its id).
// Only description and the completion flag are sent.
func (c *Client) Create(ctx context.Context, it model.Item) (model.Item, error) {
	body := model.Item{Description: it.Description, IsCompleted: it.IsCompleted}
	var out model.Item
	if err := c.do(ctx, http.MethodPost, c.itemsURL(), body, &out); err != nil {
		return model.Item{}, fmt.Errorf("create item: %w", err)
	}
	return out, nil
}

// Update replaces the item keyed by it.ID and returns the server's copy.
func (c *Client) Update(ctx context.Context, it model.Item) (model.Item, error) {
	if it.ID == "" {
		return model.Item{}, fmt.Errorf("update item: empty id")
	}
	var out model.Item
	u := c.itemsURL() + "/" + url.PathEscape(it.ID.String())
	if err := c.do(ctx, http.MethodPut, u, it, &out); err != nil {
		return model.Item{}, fmt.Errorf("update item %s: %w", it.ID, err)
	}
	return out, nil
}

func (c *Client) itemsURL() string {
	return c.base.JoinPath(ItemsPath).String()
}

func (c *Client) do(ctx context.Context, method, u string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "url", u, "err", err)
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("request", "method", method, "url", u, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{
			Method:     method,
			URL:        u,
			StatusCode: resp.StatusCode,
			Detail:     detailFromBody(raw),
		}
		c.log.Error("request rejected", "method", method, "url", u, "status", resp.StatusCode, "detail", serr.Detail)
		return serr
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
