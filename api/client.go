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

	"github.com/jrsteele09/go-budget-console/notify"
)

const contentTypeJSON = "application/json"

// Session is what the pipeline needs from the session store
type Session interface {
	TokenSource
	Teardowner
}

// Client resolves endpoint paths against a base URL and sends them through
// the pipeline
type Client struct {
	baseURL string
	doer    Doer
}

// NewClient uses doer as-is; use New for the full pipeline
func NewClient(baseURL string, doer Doer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
	}
}

// New builds the standard pipeline: classification outermost, then logging,
// request ids, credentials, and finally an http.Client bounded by timeout.
func New(baseURL string, timeout time.Duration, sess Session, nav Redirector, notifier notify.Notifier) *Client {
	return NewClient(baseURL, Chain(
		&http.Client{Timeout: timeout},
		WithResponseClassifier(Reactor{Session: sess, Navigator: nav, Notifier: notifier}, sess),
		WithLogging(),
		WithRequestID(),
		WithCredentials(sess),
	))
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Do sends body as JSON when non-nil and decodes a successful response into
// out when non-nil. Pipeline failures come back as *Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[Client Do] encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("[Client Do] build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("[Client Do] decode %s %s: %w", method, path, err)
	}
	return nil
}
