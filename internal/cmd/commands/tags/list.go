package tags

import (
	"context"
	"flag"
	"fmt"

	"github.com/dataplume/joplingo/internal/cmd/base"
	"github.com/dataplume/joplingo/pkg/joplin"
)

type ListCommand struct {
	*base.Command

	clientFlags base.ClientFlags
}

func (c *ListCommand) Synopsis() string {
	return "List tags"
}

func (c *ListCommand) Help() string {
	return `Usage: joplin-cli tags list

Lists all tags.` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("tags list", flag.ExitOnError))
	c.clientFlags.Register(f)
	return f
}

func (c *ListCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	client, err := c.clientFlags.Client(c.Log)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	tags, err := client.AllTags(context.Background(), "",
		&joplin.ListOptions{Fields: []string{"id", "title"}})
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listing tags: %v", err))
		return 1
	}

	for _, tag := range tags {
		c.UI.Output(fmt.Sprintf("%s  %s", tag.ID, tag.Title))
	}
	return 0
}
