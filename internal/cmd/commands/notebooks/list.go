package notebooks

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/dataplume/joplingo/internal/cmd/base"
	"github.com/dataplume/joplingo/pkg/joplin"
)

type ListCommand struct {
	*base.Command

	clientFlags base.ClientFlags
}

func (c *ListCommand) Synopsis() string {
	return "List notebooks"
}

func (c *ListCommand) Help() string {
	return `Usage: joplin-cli notebooks list

Lists all notebooks as an indented tree.` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("notebooks list", flag.ExitOnError))
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

	notebooks, err := client.AllNotebooks(context.Background(),
		&joplin.ListOptions{Fields: []string{"id", "title", "parent_id"}})
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listing notebooks: %v", err))
		return 1
	}

	children := make(map[string][]joplin.Notebook)
	for _, notebook := range notebooks {
		children[notebook.ParentID] = append(children[notebook.ParentID], notebook)
	}
	for _, siblings := range children {
		sort.Slice(siblings, func(i, j int) bool {
			return siblings[i].Title < siblings[j].Title
		})
	}

	var walk func(parentID string, depth int)
	walk = func(parentID string, depth int) {
		for _, notebook := range children[parentID] {
			c.UI.Output(fmt.Sprintf("%s%s  %s",
				strings.Repeat("  ", depth), notebook.ID, notebook.Title))
			walk(notebook.ID, depth+1)
		}
	}
	walk("", 0)
	return 0
}
