package joplin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
)

// Client talks to the data API of a running Joplin application.
//
// All methods take a context and return wrapped errors; non-2xx
// responses surface as *APIError. Requests that fail with transport
// errors or 5xx responses are retried with a constant backoff.
type Client struct {
	baseURL       string
	token         string
	httpClient    *http.Client
	maxRetries    uint64
	retryInterval time.Duration
	logger        hclog.Logger
}

// New creates a data API client. Zero Config fields get defaults; see
// Config for which fields are required.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryInterval == 0 {
		cfg.RetryInterval = defaultRetryInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		token:         cfg.Token,
		httpClient:    httpClient,
		maxRetries:    uint64(cfg.MaxRetries),
		retryInterval: cfg.RetryInterval,
		logger:        cfg.Logger.Named("joplin"),
	}, nil
}

// queryParam is a single key=value pair. The data API receives its
// query string raw-joined in caller order; values are expected to be
// URL-safe (the search endpoint escapes its free-form query itself).
type queryParam struct {
	key   string
	value string
}

func encodeQuery(params []queryParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.key+"="+p.value)
	}
	return strings.Join(parts, "&")
}

// do issues a request against the data API. The token is always
// appended to the query. A non-nil body is sent as JSON; a non-nil
// result receives the decoded JSON response.
func (c *Client) do(ctx context.Context, method, path string, query []queryParam, body, result any) error {
	raw, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if result != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// doRaw is do without response decoding; it returns the raw body.
func (c *Client) doRaw(ctx context.Context, method, path string, query []queryParam, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	newRequest := func() (*http.Request, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.requestURL(path, query), reader)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req, nil
	}

	return c.send(ctx, method, path, newRequest)
}

// send runs the request with retries. newRequest is called per attempt
// so the body reader is fresh each time.
func (c *Client) send(ctx context.Context, method, path string, newRequest func() (*http.Request, error)) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		req, err := newRequest()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		c.logger.Debug("request", "method", method, "path", path)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		c.logger.Debug("response", "method", method, "path", path,
			"status", resp.StatusCode, "bytes", len(respBody))

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		apiErr := newAPIError(resp.StatusCode, respBody)
		if resp.StatusCode == http.StatusNotFound {
			return backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, apiErr.Error()))
		}
		if resp.StatusCode >= 500 {
			// Server errors are worth retrying.
			return apiErr
		}
		return backoff.Permanent(apiErr)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryInterval), c.maxRetries),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("retrying request", "method", method, "path", path,
			"wait", wait, "error", err)
	}
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}
	return respBody, nil
}

// requestURL assembles the full URL with the token attached.
func (c *Client) requestURL(path string, query []queryParam) string {
	all := append([]queryParam{}, query...)
	all = append(all, queryParam{"token", c.token})
	return c.baseURL + path + "?" + encodeQuery(all)
}
