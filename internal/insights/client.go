package insights

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultURLTemplate targets the public Application Insights REST API.
// Placeholders: {0} app id, {1} resource, {2} resource type, {3} query.
const DefaultURLTemplate = "https://api.applicationinsights.io/v1/apps/{0}/{1}/{2}?{3}"

const (
	resourceEvents     = "events"
	resourceExceptions = "exceptions"
	apiKeyHeader       = "x-api-key"
)

// Endpoint holds the settings needed to reach the telemetry backend.
type Endpoint struct {
	URLTemplate string
	AppID       string
	APIKey      string
}

// String describes the endpoint with the API key redacted.
func (e Endpoint) String() string {
	key := "<unset>"
	if e.APIKey != "" {
		key = "<redacted>"
	}
	return fmt.Sprintf("Endpoint{URLTemplate: %q, AppID: %q, APIKey: %s}", e.URLTemplate, e.AppID, key)
}

// TransportError means the request could not be completed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("insights %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client looks up exception events for one configured application.
type Client struct {
	endpoint Endpoint
	http     Doer
}

// NewClient constructs a client. A nil doer uses NewHTTPClient(0).
func NewClient(endpoint Endpoint, doer Doer) *Client {
	if endpoint.URLTemplate == "" {
		endpoint.URLTemplate = DefaultURLTemplate
	}
	if doer == nil {
		doer = NewHTTPClient(0)
	}
	return &Client{endpoint: endpoint, http: doer}
}

// NewHTTPClient returns a client with its own pooled transport. A zero
// timeout leaves the transport defaults in place.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: http.DefaultTransport.(*http.Transport).Clone(),
		Timeout:   timeout,
	}
}

// RequestURL builds the exceptions URL for the given parameters.
func (c *Client) RequestURL(params QueryParameters) string {
	r := strings.NewReplacer(
		"{0}", url.PathEscape(c.endpoint.AppID),
		"{1}", resourceEvents,
		"{2}", resourceExceptions,
		"{3}", params.Encode(),
	)
	return r.Replace(c.endpoint.URLTemplate)
}

// Lookup issues a single GET for the parameters and classifies the response.
// Only failures to complete the exchange are returned as errors, always as
// *TransportError.
func (c *Client) Lookup(ctx context.Context, params QueryParameters) (Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RequestURL(params), nil)
	if err != nil {
		return Outcome{}, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.endpoint.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Outcome{}, &TransportError{Op: "get exceptions", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		return NotFound(reasonPhrase(resp)), nil
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, &TransportError{Op: "read response", Err: err}
	}
	body := string(b)
	if strings.TrimSpace(body) == "" {
		return NotFound(""), nil
	}
	return Found(body), nil
}

// reasonPhrase extracts "Not Found" from a status line like "404 Not Found".
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
