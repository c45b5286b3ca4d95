// Package config resolves the CLI's connection settings. Values come
// from flags first, then environment variables, then an optional HCL
// profile file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/dataplume/joplingo/pkg/joplin"
)

// Environment variables the CLI honors.
const (
	EnvBaseURL = "JOPLIN_BASE_URL"
	EnvToken   = "JOPLIN_TOKEN"
)

// DefaultProfilePath is where the CLI looks for a profile when no
// -config flag is given, relative to the home directory.
const DefaultProfilePath = ".joplin-cli.hcl"

// Profile is the HCL profile file:
//
//	base_url = "http://localhost:41184"
//	token    = "abc123..."
type Profile struct {
	BaseURL string `hcl:"base_url,optional"`
	Token   string `hcl:"token,optional"`
}

// Load reads a profile file. explicit marks a user-chosen path, which
// must exist; the default path may be absent and yields an empty
// profile.
func Load(path string, explicit bool) (*Profile, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Profile{}, nil
		}
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	var profile Profile
	if err := hclsimple.DecodeFile(path, nil, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return &profile, nil
}

// Resolve merges flag values, environment variables and the profile
// into a data API client config, in that order of precedence.
func (p *Profile) Resolve(flagBaseURL, flagToken string) joplin.Config {
	baseURL := firstNonEmpty(flagBaseURL, os.Getenv(EnvBaseURL), p.BaseURL)
	token := firstNonEmpty(flagToken, os.Getenv(EnvToken), p.Token)
	return joplin.Config{
		BaseURL: baseURL,
		Token:   token,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
