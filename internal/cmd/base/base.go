// Package base carries the pieces shared by all CLI commands: the UI,
// the logger and the connection flags for the data API.
package base

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/dataplume/joplingo/internal/config"
	"github.com/dataplume/joplingo/pkg/joplin"
)

// Command is embedded by every CLI command.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger
}

// FlagSet wraps flag.FlagSet with help rendering.
type FlagSet struct {
	*flag.FlagSet
}

func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// Help renders the flag set as an options block for command help text.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	f.SetOutput(&buf)
	f.PrintDefaults()
	return "\n\nOptions:\n" + buf.String()
}

// ClientFlags are the connection flags of commands that talk to the
// data API. Flags win over environment variables, which win over the
// profile file.
type ClientFlags struct {
	ConfigPath string
	BaseURL    string
	Token      string
}

func (c *ClientFlags) Register(f *FlagSet) {
	f.StringVar(
		&c.ConfigPath, "config", "",
		"Path to an HCL profile file (default ~/"+config.DefaultProfilePath+")",
	)
	f.StringVar(
		&c.BaseURL, "base-url", "",
		"["+config.EnvBaseURL+"] Base URL of the Joplin data API",
	)
	f.StringVar(
		&c.Token, "token", "",
		"["+config.EnvToken+"] Data API authorization token",
	)
}

// Client builds a data API client from the resolved configuration.
func (c *ClientFlags) Client(log hclog.Logger) (*joplin.Client, error) {
	path := c.ConfigPath
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locating home directory: %w", err)
		}
		path = filepath.Join(home, config.DefaultProfilePath)
	}

	profile, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}
	cfg := profile.Resolve(c.BaseURL, c.Token)
	cfg.Logger = log
	return joplin.New(cfg)
}
