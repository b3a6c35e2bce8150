// Package lawgo talks to the law.go.kr DRF OPEN API (administrative rules).
// The API is flaky: it returns HTML error pages with 200 status, empty bodies,
// and mislabeled content types, so every response is classified before use and
// failures are recorded as structured diagnostics rather than bare errors.
package lawgo

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultSearchURL  = "https://www.law.go.kr/DRF/lawSearch.do"
	defaultServiceURL = "https://www.law.go.kr/DRF/lawService.do"

	requestTimeout = 30 * time.Second
	maxRetries     = 4

	// apiHeadLen is the diagnostic head kept from an unusable API response.
	apiHeadLen = 200
)

// Diagnostic kinds. These flow verbatim into ErrorEntry.Kind in the run log.
const (
	KindHTTPError     = "http_error"
	KindEmptyBody     = "empty_body"
	KindNotJSON       = "not_json"
	KindJSONParseFail = "json_parse_fail"
	KindRequestFailed = "request_exception"
	KindMockEnabled   = "mock_enabled"
	KindNoResults     = "no_results"
	KindIDMissing     = "id_missing"
)

// APIError is a structured diagnostic for one failed API interaction.
type APIError struct {
	Kind        string
	Status      int
	ContentType string
	Head        string
	URL         string
	Detail      string
}

// Client calls the DRF API with the caller's OC credential. When Mock is set
// it never touches the network and returns canned payloads.
type Client struct {
	OC   string
	Mock bool

	SearchURL  string
	ServiceURL string
	MaxRetries int

	hc    *http.Client
	sleep func(time.Duration)
}

// New creates a client. An empty oc is allowed here; the checker decides what
// a missing credential means.
func New(oc string, mock bool) *Client {
	return &Client{
		OC:         oc,
		Mock:       mock,
		SearchURL:  defaultSearchURL,
		ServiceURL: defaultServiceURL,
		MaxRetries: maxRetries,
		hc:         &http.Client{Timeout: requestTimeout},
		sleep:      time.Sleep,
	}
}

// SetTimeout replaces the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.hc.Timeout = d
	}
}

// Search queries administrative rules matching query. knd narrows the rule
// kind, display caps the result count.
func (c *Client) Search(ctx context.Context, query string, knd, display int) (map[string]any, *APIError) {
	if c.Mock {
		return mockSearch(), nil
	}
	params := url.Values{
		"OC":      {c.OC},
		"target":  {"admrul"},
		"type":    {"JSON"},
		"query":   {query},
		"knd":     {strconv.Itoa(knd)},
		"display": {strconv.Itoa(display)},
		"sort":    {"ddes"},
	}
	return c.requestJSON(ctx, c.SearchURL, params)
}

// Detail fetches the full payload for one rule by its serial number.
func (c *Client) Detail(ctx context.Context, id string) (map[string]any, *APIError) {
	if c.Mock {
		return mockDetail(), nil
	}
	params := url.Values{
		"OC":     {c.OC},
		"target": {"admrul"},
		"type":   {"JSON"},
		"ID":     {id},
	}
	return c.requestJSON(ctx, c.ServiceURL, params)
}

// requestJSON performs one API call with retries. Transient failures (429,
// 5xx, empty or undecodable bodies, transport errors) back off and retry;
// anything else returns immediately.
func (c *Client) requestJSON(ctx context.Context, base string, params url.Values) (map[string]any, *APIError) {
	full := base + "?" + params.Encode()
	var lastErr *APIError

	for attempt := 1; attempt <= c.MaxRetries; attempt++ {
		js, apiErr := c.once(ctx, full)
		if apiErr == nil {
			return js, nil
		}
		lastErr = apiErr

		if !retryable(apiErr) {
			return nil, apiErr
		}
		if err := c.backoff(ctx, attempt); err != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (c *Client) once(ctx context.Context, full string) (map[string]any, *APIError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, &APIError{Kind: KindRequestFailed, URL: full, Detail: err.Error()}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindRequestFailed, URL: full, Detail: err.Error()}
	}
	defer resp.Body.Close()

	return classify(resp, full)
}

// classify applies the response taxonomy: status, emptiness, declared type,
// decodability. The original pipeline gates on the declared content type here,
// unlike the dashboard's feed layer, because a non-JSON declaration from this
// API reliably means an HTML error page.
func classify(resp *http.Response, full string) (map[string]any, *APIError) {
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	text := string(body)
	h := apiHead(text)

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Kind: KindHTTPError, Status: resp.StatusCode, ContentType: ct, Head: h, URL: full}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &APIError{Kind: KindEmptyBody, Status: resp.StatusCode, ContentType: ct, Head: h, URL: full}
	}
	if !strings.Contains(ct, "json") {
		return nil, &APIError{Kind: KindNotJSON, Status: resp.StatusCode, ContentType: ct, Head: h, URL: full}
	}

	var js map[string]any
	if err := json.Unmarshal(body, &js); err != nil {
		return nil, &APIError{Kind: KindJSONParseFail, Status: resp.StatusCode, ContentType: ct, Head: h, URL: full, Detail: err.Error()}
	}
	return js, nil
}

func retryable(e *APIError) bool {
	switch e.Status {
	case 429, 500, 502, 503, 504:
		return true
	}
	switch e.Kind {
	case KindEmptyBody, KindNotJSON, KindJSONParseFail, KindRequestFailed:
		return true
	}
	return false
}

// backoff sleeps 0.6s * 2^(attempt-1) plus jitter, or returns early when the
// context is done.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	base := 600 * time.Millisecond * (1 << (attempt - 1))
	jitter := time.Duration(rand.Int63n(int64(400 * time.Millisecond)))
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	c.sleep(base + jitter)
	return nil
}

// apiHead flattens newlines and keeps the leading fragment.
func apiHead(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) > apiHeadLen {
		r = r[:apiHeadLen]
	}
	return string(r)
}

