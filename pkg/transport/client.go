// Package transport is the thin HTTP layer connectors use to talk to onboard APIs.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/onboard/pkg/ctdf"
	"github.com/travigo/onboard/pkg/dataconnector"
	"golang.org/x/net/publicsuffix"
)

// Version is reported in the user agent of every request
const Version = "1.0.0"

const defaultTimeout = 5 * time.Second
const defaultRetryElapsedTime = 10 * time.Second

type Client struct {
	BaseURL   string
	UserAgent string

	HTTPClient *http.Client

	// MaxRetryElapsedTime bounds GetJSONWithRetry
	MaxRetryElapsedTime time.Duration
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.HTTPClient.Timeout = timeout
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = httpClient
	}
}

func WithMaxRetryElapsedTime(maxElapsedTime time.Duration) Option {
	return func(c *Client) {
		c.MaxRetryElapsedTime = maxElapsedTime
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	// Captive portals on board keep their session in cookies
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	c := &Client{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		UserAgent: fmt.Sprintf("onboard/%s", Version),
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
		MaxRetryElapsedTime: defaultRetryElapsedTime,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) URL(endpoint string, query url.Values) string {
	requestURL := fmt.Sprintf("%s/%s", c.BaseURL, strings.TrimPrefix(endpoint, "/"))

	if len(query) > 0 {
		requestURL = fmt.Sprintf("%s?%s", requestURL, query.Encode())
	}

	return requestURL
}

// Get performs a GET request against endpoint.
// Network failures and non 2xx responses are returned as a dataconnector.ConnectivityError.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	requestURL := c.URL(endpoint, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, dataconnector.NewConnectivityError(requestURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dataconnector.NewConnectivityError(requestURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, dataconnector.NewConnectivityError(requestURL, &StatusError{StatusCode: resp.StatusCode})
	}

	return body, nil
}

// GetJSON performs a GET request against endpoint and decodes the JSON response into out
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	body, err := c.Get(ctx, endpoint, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %s", ctdf.ErrDataInvalid, c.URL(endpoint, query), err)
	}

	return nil
}

// GetJSONWithRetry is GetJSON retrying connectivity errors with an exponential backoff
func (c *Client) GetJSONWithRetry(ctx context.Context, endpoint string, query url.Values, out any) error {
	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = c.MaxRetryElapsedTime

	operation := func() error {
		err := c.GetJSON(ctx, endpoint, query, out)
		if err != nil && !dataconnector.IsConnectivityError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		log.Debug().Err(err).Str("endpoint", endpoint).Dur("wait", wait).Msg("Retrying request")
	}

	return backoff.RetryNotify(operation, backoff.WithContext(retryBackoff, ctx), notify)
}

type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
