package notes

import (
	"context"
	"flag"
	"fmt"

	"github.com/dataplume/joplingo/internal/cmd/base"
	"github.com/dataplume/joplingo/pkg/joplin"
)

type ListCommand struct {
	*base.Command

	clientFlags  base.ClientFlags
	flagNotebook string
	flagTag      string
	flagSearch   string
}

func (c *ListCommand) Synopsis() string {
	return "List notes"
}

func (c *ListCommand) Help() string {
	return `Usage: joplin-cli notes list

Lists notes, optionally restricted to a notebook, a tag or a search
query.` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("notes list", flag.ExitOnError))
	c.clientFlags.Register(f)
	f.StringVar(&c.flagNotebook, "notebook", "", "Only notes in this notebook ID")
	f.StringVar(&c.flagTag, "tag", "", "Only notes carrying this tag ID")
	f.StringVar(&c.flagSearch, "search", "", "Only notes matching this search query")
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
	ctx := context.Background()

	var notes []joplin.Note
	opts := &joplin.ListOptions{Fields: []string{"id", "title", "updated_time"}}
	if c.flagSearch != "" {
		notes, err = client.SearchAllNotes(ctx, c.flagSearch, opts)
	} else {
		scope := joplin.NoteScope{NotebookID: c.flagNotebook, TagID: c.flagTag}
		notes, err = client.AllNotes(ctx, &scope, opts)
	}
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listing notes: %v", err))
		return 1
	}

	for _, note := range notes {
		c.UI.Output(fmt.Sprintf("%s  %s", note.ID, note.Title))
	}
	c.UI.Info(fmt.Sprintf("%d notes", len(notes)))
	return 0
}
