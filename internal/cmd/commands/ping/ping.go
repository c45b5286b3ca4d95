package ping

import (
	"context"
	"flag"
	"fmt"

	"github.com/dataplume/joplingo/internal/cmd/base"
)

type Command struct {
	*base.Command

	clientFlags base.ClientFlags
}

func (c *Command) Synopsis() string {
	return "Check that the data API is reachable"
}

func (c *Command) Help() string {
	return `Usage: joplin-cli ping

Checks that the Joplin desktop application is running and its web
clipper service answers.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("ping", flag.ExitOnError))
	c.clientFlags.Register(f)
	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	client, err := c.clientFlags.Client(c.Log)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	if err := client.Ping(context.Background()); err != nil {
		c.UI.Error(fmt.Sprintf("ping failed: %v", err))
		return 1
	}
	c.UI.Output("Joplin is running.")
	return 0
}
