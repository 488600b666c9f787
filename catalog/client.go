package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the Watchmode v1 API root
	DefaultBaseURL = "https://api.watchmode.com/v1"

	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "titlewatch"
	maxErrorBody     = 512
)

// Client represents a Watchmode catalog API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new catalog client. Unlike a connection test, this
// performs no network I/O; use TestConnection to verify the key.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, invalidRequest("configure", fmt.Errorf("catalog URL is required"))
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, invalidRequest("configure", fmt.Errorf("invalid catalog URL %q", baseURL))
	}
	if apiKey == "" {
		return nil, invalidRequest("configure", ErrMissingAPIKey)
	}

	client := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTitles retrieves up to limit titles of the given category, in the order
// the API returns them.
func (c *Client) ListTitles(ctx context.Context, category Category, limit int) ([]TitleSummary, error) {
	const op = "list titles"

	if !category.Valid() {
		return nil, invalidRequest(op, fmt.Errorf("%w: %q", ErrInvalidCategory, category))
	}
	if limit < 1 {
		return nil, invalidRequest(op, fmt.Errorf("%w: %d", ErrInvalidLimit, limit))
	}

	params := url.Values{}
	params.Set("types", category.APIType())
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.doRequest(ctx, op, "/list-titles/", params)
	if err != nil {
		return nil, err
	}

	var response listTitlesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, decodeError(op, err)
	}
	if response.Titles == nil {
		return nil, decodeError(op, fmt.Errorf("response has no titles array"))
	}

	titles := make([]TitleSummary, 0, len(*response.Titles))
	for _, entry := range *response.Titles {
		if err := entry.validate(); err != nil {
			return nil, decodeError(op, err)
		}
		titles = append(titles, entry.toSummary())
	}

	c.logger.Debug().
		Str("category", string(category)).
		Int("limit", limit).
		Int("count", len(titles)).
		Msg("Retrieved titles from catalog")

	return titles, nil
}

// GetTitleDetails retrieves the full record for a single title
func (c *Client) GetTitleDetails(ctx context.Context, id int64) (TitleDetails, error) {
	const op = "title details"

	if id < 1 {
		return TitleDetails{}, invalidRequest(op, fmt.Errorf("%w: %d", ErrInvalidID, id))
	}

	body, err := c.doRequest(ctx, op, fmt.Sprintf("/title/%d/details/", id), nil)
	if err != nil {
		return TitleDetails{}, err
	}

	var response apiTitleDetails
	if err := json.Unmarshal(body, &response); err != nil {
		return TitleDetails{}, decodeError(op, err)
	}
	if response.ID != id {
		return TitleDetails{}, decodeError(op, fmt.Errorf("requested title %d, got %d", id, response.ID))
	}

	return response.toDetails(), nil
}

// TestConnection verifies the API key with a minimal listing request
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.ListTitles(ctx, CategoryMovie, 1)
	return err
}

// doRequest performs a GET request with the API key attached and returns the
// body of a 2xx response.
func (c *Client) doRequest(ctx context.Context, op, endpoint string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("apiKey", c.apiKey)

	requestURL := c.baseURL + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, invalidRequest(op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().
		Str("url", c.redact(requestURL)).
		Msg("Making catalog API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(op, c.redactErr(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, statusError(op, resp.StatusCode, c.redact(strings.TrimSpace(string(snippet))))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(op, fmt.Errorf("failed to read response body: %w", err))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, decodeError(op, fmt.Errorf("empty response body"))
	}

	return body, nil
}

// redact hides the API key in anything that may end up in logs or errors
func (c *Client) redact(s string) string {
	return strings.ReplaceAll(s, url.QueryEscape(c.apiKey), "REDACTED")
}

func (c *Client) redactErr(err error) error {
	if e, ok := err.(*url.Error); ok {
		return &url.Error{Op: e.Op, URL: c.redact(e.URL), Err: e.Err}
	}
	return err
}
