package joplin

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
)

// DefaultBaseURL is where the Joplin desktop application serves its
// data API ("web clipper service") by default.
const DefaultBaseURL = "http://localhost:41184"

const (
	defaultTimeout       = 30 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

// Config configures a data API client.
type Config struct {
	// BaseURL of the data API. Defaults to DefaultBaseURL.
	BaseURL string

	// Token is the API authorization token shown in the desktop
	// application under web clipper options. Required.
	Token string

	// Timeout for individual HTTP requests. Defaults to 30s.
	Timeout time.Duration

	// MaxRetries is the number of retries after a failed attempt.
	// Only transport errors and 5xx responses are retried.
	MaxRetries int

	// RetryInterval is the wait between retries. Defaults to 1s.
	RetryInterval time.Duration

	// HTTPClient overrides the default HTTP client. Timeout is
	// ignored when this is set.
	HTTPClient *http.Client

	// Logger for request/response tracing. Defaults to a null logger.
	Logger hclog.Logger
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(validateHTTPURL)),
		validation.Field(&c.Token, validation.Required),
		validation.Field(&c.Timeout, validation.Required),
		validation.Field(&c.MaxRetries, validation.Min(0)),
		validation.Field(&c.RetryInterval, validation.Min(time.Duration(0))),
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
