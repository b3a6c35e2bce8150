// Package feed retrieves the dashboard's JSON resources from their static
// hosting location and validates them defensively. Static hosts are known to
// serve stale, empty, or mislabeled files, so every response goes through the
// same pipeline: status check, empty-body check, tolerant JSON decode.
package feed

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

// headLen is how much of an undecodable body is kept for diagnostics.
const headLen = 120

// DefaultTimeout bounds a single resource retrieval.
const DefaultTimeout = 15 * time.Second

// HTTPError reports a non-2xx response for a resource.
type HTTPError struct {
	Path   string
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch %s: HTTP %d", e.Path, e.Status)
}

// EmptyBodyError reports a blank or whitespace-only response body.
type EmptyBodyError struct {
	Path string
}

func (e *EmptyBodyError) Error() string {
	return fmt.Sprintf("fetch %s: empty body", e.Path)
}

// NotJSONError reports a body that could not be decoded as JSON even after a
// tolerant attempt. ContentType is whatever the host declared; Head is the
// leading fragment of the raw body.
type NotJSONError struct {
	Path        string
	ContentType string
	Head        string
}

func (e *NotJSONError) Error() string {
	return fmt.Sprintf("fetch %s: not JSON (content-type %q): %s", e.Path, e.ContentType, e.Head)
}

// Client fetches resources relative to a base URL. A single attempt per call;
// the producer job owns retry policy.
type Client struct {
	base *url.URL
	hc   *http.Client
}

// NewClient creates a fetcher for resources under base.
func NewClient(base string) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	return &Client{
		base: u,
		hc:   &http.Client{Timeout: DefaultTimeout},
	}, nil
}

// NewClientWith creates a fetcher using the provided http.Client. Tests use
// this to point at an httptest server with a short timeout.
func NewClientWith(base string, hc *http.Client) (*Client, error) {
	c, err := NewClient(base)
	if err != nil {
		return nil, err
	}
	if hc != nil {
		c.hc = hc
	}
	return c, nil
}

// FetchJSON retrieves path relative to the client's base and decodes the body
// into v. Validation order: HTTP status, empty body, JSON decode. The declared
// Content-Type never gates decoding; it is carried into diagnostics only.
func (c *Client) FetchJSON(ctx context.Context, path string, v any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid resource path %q: %w", path, err)
	}
	target := c.base.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	// Always read the freshest copy; the producer rewrites these files in place.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Path: path, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("fetch %s: read body: %w", path, err)
	}
	if strings.TrimSpace(string(body)) == "" {
		return &EmptyBodyError{Path: path}
	}

	ct := resp.Header.Get("Content-Type")

	// Two-stage decode: a declared-JSON body is decoded directly, anything
	// else gets the same decode anyway because static hosts mislabel JSON as
	// octet streams. The declared type only survives into the diagnostic.
	if err := json.Unmarshal(body, v); err != nil {
		return &NotJSONError{
			Path:        path,
			ContentType: ct,
			Head:        head(string(body)),
		}
	}
	return nil
}

// head returns exactly the first headLen characters of s.
func head(s string) string {
	r := []rune(s)
	if len(r) > headLen {
		r = r[:headLen]
	}
	return string(r)
}
