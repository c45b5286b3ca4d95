package serverapi

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
)

// Defaults for a locally running Joplin Server in its out-of-the-box
// configuration.
const (
	DefaultBaseURL  = "http://localhost:22300"
	DefaultEmail    = "admin@localhost"
	DefaultPassword = "admin"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultLockWaitTimeout = 30 * time.Second
)

// Config configures a server API client.
type Config struct {
	// BaseURL of the Joplin Server. Defaults to DefaultBaseURL.
	BaseURL string

	// Email and Password of the server account. Default to the
	// server's initial admin credentials.
	Email    string
	Password string

	// Timeout for individual HTTP requests. Defaults to 30s.
	Timeout time.Duration

	// LockWaitTimeout bounds how long AcquireSyncLock keeps retrying
	// while another client holds the sync target. Defaults to 30s.
	LockWaitTimeout time.Duration

	// HTTPClient overrides the default HTTP client. A cookie jar is
	// installed if it has none; Timeout is ignored when this is set.
	HTTPClient *http.Client

	// Logger for request/response tracing. Defaults to a null logger.
	Logger hclog.Logger
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(validateHTTPURL)),
		validation.Field(&c.Email, validation.Required),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.Timeout, validation.Required),
		validation.Field(&c.LockWaitTimeout, validation.Required),
	)
}

func validateHTTPURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https scheme, got %q", u.Scheme)
	}
	return nil
}
