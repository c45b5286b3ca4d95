package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/dataplume/joplingo/internal/cmd/base"
	"github.com/dataplume/joplingo/internal/cmd/commands/backup"
	"github.com/dataplume/joplingo/internal/cmd/commands/notebooks"
	"github.com/dataplume/joplingo/internal/cmd/commands/notes"
	"github.com/dataplume/joplingo/internal/cmd/commands/ping"
	"github.com/dataplume/joplingo/internal/cmd/commands/tags"
	versioncmd "github.com/dataplume/joplingo/internal/cmd/commands/version"
)

// Commands is the CLI command registry, filled by initCommands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	baseCommand := &base.Command{
		UI:  ui,
		Log: log,
	}

	Commands = map[string]cli.CommandFactory{
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: baseCommand}, nil
		},
		"ping": func() (cli.Command, error) {
			return &ping.Command{Command: baseCommand}, nil
		},
		"notes list": func() (cli.Command, error) {
			return &notes.ListCommand{Command: baseCommand}, nil
		},
		"notebooks list": func() (cli.Command, error) {
			return &notebooks.ListCommand{Command: baseCommand}, nil
		},
		"tags list": func() (cli.Command, error) {
			return &tags.ListCommand{Command: baseCommand}, nil
		},
		"backup": func() (cli.Command, error) {
			return &backup.Command{Command: baseCommand}, nil
		},
	}
}
