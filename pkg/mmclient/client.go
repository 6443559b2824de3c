package mmclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// API endpoints, relative to the /api/v4 prefix.
const (
	EndpointMe               = "users/me"
	EndpointIncomingWebhooks = "hooks/incoming"
	EndpointOutgoingWebhooks = "hooks/outgoing"
	EndpointBots             = "bots"
)

// perPage is the page size used when walking paginated collections.
const perPage = 200

// defaults for the retry policy on idempotent requests. maxRetries counts
// retries after the initial attempt, so a transient failure is tried four
// times in total before giving up.
const (
	defaultMaxRetries = 3
	defaultRetryBase  = 500 * time.Millisecond
	defaultRetryMax   = 10 * time.Second
)

// Client talks to the Mattermost REST API (v4) with bearer-token
// authentication. Idempotent requests (GET, HEAD, OPTIONS) are retried with
// exponential backoff on transient failures; mutating requests are never
// retried automatically, a failed create must surface rather than risk a
// duplicate.
type Client struct {
	serverURL  string
	apiURL     string
	token      string
	httpClient *http.Client

	maxRetries int
	retryBase  time.Duration
	retryMax   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout for the client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetryBackoff overrides the retry backoff window. Mostly useful in
// tests to keep retries fast.
func WithRetryBackoff(base, max time.Duration) Option {
	return func(c *Client) {
		c.retryBase = base
		c.retryMax = max
	}
}

// New creates a client for the given server. The server URL is the plain
// instance URL ("https://chat.example.com"); the /api/v4 prefix is appended
// internally. The token is sent as a bearer token on every call.
func New(serverURL, token string, opts ...Option) *Client {
	serverURL = strings.TrimRight(serverURL, "/")
	c := &Client{
		serverURL: serverURL,
		apiURL:    serverURL + "/api/v4",
		token:     token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: defaultMaxRetries,
		retryBase:  defaultRetryBase,
		retryMax:   defaultRetryMax,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ServerURL returns the server base URL the client was created with.
func (c *Client) ServerURL() string {
	return c.serverURL
}

// GetMe fetches the authenticated user. Used as a connectivity probe.
func (c *Client) GetMe() (*User, error) {
	var user User
	if err := c.Get(EndpointMe, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListIncomingWebhooks returns all incoming webhooks, walking pagination.
func (c *Client) ListIncomingWebhooks() ([]IncomingWebhook, error) {
	return listPaged[IncomingWebhook](c, EndpointIncomingWebhooks)
}

// CreateIncomingWebhook creates an incoming webhook and returns the
// server-assigned record.
func (c *Client) CreateIncomingWebhook(hook *IncomingWebhook) (*IncomingWebhook, error) {
	var created IncomingWebhook
	if err := c.Post(EndpointIncomingWebhooks, hook, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListOutgoingWebhooks returns all outgoing webhooks, walking pagination.
func (c *Client) ListOutgoingWebhooks() ([]OutgoingWebhook, error) {
	return listPaged[OutgoingWebhook](c, EndpointOutgoingWebhooks)
}

// CreateOutgoingWebhook creates an outgoing webhook and returns the
// server-assigned record, including the freshly issued token.
func (c *Client) CreateOutgoingWebhook(hook *OutgoingWebhook) (*OutgoingWebhook, error) {
	var created OutgoingWebhook
	if err := c.Post(EndpointOutgoingWebhooks, hook, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListBots returns all bot accounts, walking pagination.
func (c *Client) ListBots() ([]Bot, error) {
	return listPaged[Bot](c, EndpointBots)
}

// CreateBot creates a bot account owned by the authenticated user.
func (c *Client) CreateBot(bot *Bot) (*Bot, error) {
	var created Bot
	if err := c.Post(EndpointBots, bot, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(endpoint string, out any) error {
	return c.do(http.MethodGet, endpoint, nil, out)
}

// Post performs a POST request with a JSON body, decoding the response into
// out when out is non-nil.
func (c *Client) Post(endpoint string, in, out any) error {
	return c.do(http.MethodPost, endpoint, in, out)
}

// Put performs a PUT request with a JSON body, decoding the response into
// out when out is non-nil.
func (c *Client) Put(endpoint string, in, out any) error {
	return c.do(http.MethodPut, endpoint, in, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(endpoint string) error {
	return c.do(http.MethodDelete, endpoint, nil, nil)
}

// listPaged walks a paginated collection endpoint until a short page.
func listPaged[T any](c *Client, endpoint string) ([]T, error) {
	all := make([]T, 0)
	for page := 0; ; page++ {
		var batch []T
		paged := fmt.Sprintf("%s?page=%d&per_page=%d", endpoint, page, perPage)
		if err := c.Get(paged, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			return all, nil
		}
	}
}

// idempotent reports whether a method is safe to retry automatically.
func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// do runs one request, retrying idempotent methods on transient failures
// with exponential backoff and full jitter.
func (c *Client) do(method, endpoint string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	attempts := 1
	if idempotent(method) {
		attempts = 1 + c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			exp := min(c.retryBase<<(attempt-1), c.retryMax)
			time.Sleep(time.Duration(rand.Int63n(int64(max(exp, 1)))))
		}

		err := c.roundTrip(method, endpoint, body, out)
		if err == nil {
			return nil
		}
		lastErr = err

		apiErr := AsAPIError(err)
		if apiErr == nil || !apiErr.IsTransient() {
			return err
		}
	}
	return lastErr
}

// roundTrip performs a single HTTP exchange.
func (c *Client) roundTrip(method, endpoint string, body []byte, out any) error {
	fullURL := c.apiURL + "/" + strings.TrimLeft(endpoint, "/")

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{
			Endpoint: endpoint,
			Message:  fmt.Sprintf("cannot connect to %s: %v", c.serverURL, err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.parseError(endpoint, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", endpoint, err)
	}
	return nil
}

// parseError builds an APIError from a non-success response. Mattermost
// error bodies look like {"id": "...", "message": "...", "status_code": 403}.
func (c *Client) parseError(endpoint string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			ID:         errResp.ID,
			Message:    errResp.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
		Message:    strings.TrimSpace(string(body)),
	}
}
