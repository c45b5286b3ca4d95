package serverapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/dataplume/joplingo/pkg/joplin"
)

// syncTargetVersion is the only sync target format this client speaks.
const syncTargetVersion = 3

const contentTypeOctetStream = "application/octet-stream"

// Client talks to the experimental sync API of a Joplin Server
// instance. The server stores items as serialized text files; this
// client handles the session cookie, the sync lock protocol and the
// item text format.
//
// Call Connect before issuing requests, and hold a sync lock (see
// AcquireSyncLock and WithSyncLock) for every item operation.
type Client struct {
	baseURL    string
	email      string
	password   string
	httpClient *http.Client
	logger     hclog.Logger

	clientID        string
	lockTTL         time.Duration
	lockRefreshAge  time.Duration
	lockWaitTimeout time.Duration

	mu          sync.Mutex
	currentLock *Lock
}

// New creates a server API client. Zero Config fields get defaults.
// The returned client is not logged in yet; call Connect.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Email == "" {
		cfg.Email = DefaultEmail
	}
	if cfg.Password == "" {
		cfg.Password = DefaultPassword
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.LockWaitTimeout == 0 {
		cfg.LockWaitTimeout = defaultLockWaitTimeout
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
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("creating cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		email:           cfg.Email,
		password:        cfg.Password,
		httpClient:      httpClient,
		logger:          cfg.Logger.Named("joplin-server"),
		clientID:        newClientID(),
		lockTTL:         lockTTL,
		lockRefreshAge:  lockRefreshAge,
		lockWaitTimeout: cfg.LockWaitTimeout,
	}, nil
}

// Connect logs in and verifies the sync target. The session cookie is
// kept in the client's cookie jar for subsequent requests. A sync
// target without version information gets a fresh version-3 info.json;
// any other version than 3 is rejected.
func (c *Client) Connect(ctx context.Context) error {
	form := url.Values{
		"email":    {c.email},
		"password": {c.password},
	}
	_, err := c.do(ctx, "POST", "/login", "",
		"application/x-www-form-urlencoded", []byte(form.Encode()))
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	version, found, err := c.syncVersion(ctx)
	if err != nil {
		return fmt.Errorf("reading sync target version: %w", err)
	}
	if !found {
		c.logger.Warn("sync target version not found, initializing the target")
		return c.initSyncTarget(ctx)
	}
	if version != syncTargetVersion {
		return fmt.Errorf("unsupported sync target version %d, only version %d is supported",
			version, syncTargetVersion)
	}
	return nil
}

// syncVersion reads the sync target version from info.json, falling
// back to the legacy .sync/version.txt file. found is false when
// neither exists.
func (c *Client) syncVersion(ctx context.Context) (version int, found bool, err error) {
	body, err := c.do(ctx, "GET", "/api/items/root:/info.json:/content", "", "", nil)
	if err == nil {
		var info struct {
			Version int `json:"version"`
		}
		if err := json.Unmarshal(body, &info); err != nil {
			return 0, false, fmt.Errorf("decoding info.json: %w", err)
		}
		return info.Version, true, nil
	}
	if !isNotFound(err) {
		return 0, false, err
	}

	body, err = c.do(ctx, "GET", "/api/items/root:/.sync/version.txt:/content", "", "", nil)
	if err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	version, convErr := strconv.Atoi(strings.TrimSpace(string(body)))
	if convErr != nil {
		return 0, false, fmt.Errorf("parsing version.txt: %w", convErr)
	}
	return version, true, nil
}

// initSyncTarget writes a fresh info.json describing an empty,
// unencrypted version-3 sync target.
// https://joplinapp.org/help/dev/spec/sync#sync-target-properties
func (c *Client) initSyncTarget(ctx context.Context) error {
	now := time.Now().UnixMilli()
	info := map[string]any{
		"version":           syncTargetVersion,
		"e2ee":              map[string]any{"value": false, "updatedTime": now},
		"activeMasterKeyId": map[string]any{"value": false, "updatedTime": now},
		"masterKeys":        []any{},
		"ppk":               map[string]any{},
		"appMinVersion":     "3.0.0",
	}
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshaling sync target info: %w", err)
	}
	if _, err := c.do(ctx, "PUT", "/api/items/root:/info.json:/content", "",
		contentTypeOctetStream, payload); err != nil {
		return fmt.Errorf("writing info.json: %w", err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.do(ctx, "GET", "/api/ping", "", "", nil); err != nil {
		return fmt.Errorf("pinging server: %w", err)
	}
	return nil
}

// do issues a request. Item requests are gated behind an active sync
// lock, which is refreshed transparently as it ages; login, lock and
// sync-info requests bypass the gate.
func (c *Client) do(ctx context.Context, method, path, rawQuery, contentType string, body []byte) ([]byte, error) {
	if !lockExempt(path) {
		if err := c.ensureLock(ctx); err != nil {
			return nil, err
		}
	}

	requestURL := c.baseURL + path
	if rawQuery != "" {
		requestURL += "?" + rawQuery
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.logger.Debug("request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	c.logger.Debug("response", "method", method, "path", path,
		"status", resp.StatusCode, "bytes", len(respBody))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}
	apiErr := newAPIError(resp.StatusCode, respBody)
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, apiErr.Error())
	}
	return nil, apiErr
}

// lockExempt reports whether a path may be requested without holding a
// sync lock.
func lockExempt(path string) bool {
	return path == "/login" ||
		strings.HasPrefix(path, "/api/locks") ||
		strings.Contains(path, "info.json") ||
		strings.Contains(path, ".sync/version.txt")
}

func newAPIError(statusCode int, body []byte) *joplin.APIError {
	apiErr := &joplin.APIError{StatusCode: statusCode, Body: string(body)}
	var wire struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error != "" {
		apiErr.Message = wire.Error
	}
	return apiErr
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Item files are addressed by their full path on the sync target.
// https://joplinapp.org/help/dev/spec/server_file_url_format

// itemPath is the API path of the item file for an ID.
func itemPath(id string) string {
	return "/api/items/root:/" + id + ".md:"
}

// itemContentPath is the API path of the item file's content.
func itemContentPath(id string) string {
	return itemPath(id) + "/content"
}

// resourceBlobPath is the API path of a resource's binary blob.
func resourceBlobPath(id string) string {
	return "/api/items/root:/.resource/" + id + ":"
}
