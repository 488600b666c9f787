package catalog

import (
	"net/http"
	"time"
)

// HTTPDoer is the subset of *http.Client the catalog client uses
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
// The client is shared across calls and must be safe for concurrent use.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
// It has no effect when a custom client is set with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if hc, ok := c.httpClient.(*http.Client); ok && timeout > 0 {
			hc.Timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}
