package version

import (
	"github.com/dataplume/joplingo/internal/cmd/base"
	buildversion "github.com/dataplume/joplingo/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the CLI version"
}

func (c *Command) Help() string {
	return "Usage: joplin-cli version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output(buildversion.Version)
	return 0
}
