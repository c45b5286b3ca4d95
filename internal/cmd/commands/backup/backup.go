// Package backup exports all notes as markdown files, mirroring the
// notebook hierarchy as directories.
package backup

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dataplume/joplingo/internal/cmd/base"
	"github.com/dataplume/joplingo/pkg/joplin"
)

type Command struct {
	*base.Command

	clientFlags base.ClientFlags
	flagOut     string
}

func (c *Command) Synopsis() string {
	return "Export all notes as markdown files"
}

func (c *Command) Help() string {
	return `Usage: joplin-cli backup

Exports every note to a directory tree on disk. Notebooks become
directories, notes become markdown files named after their title.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("backup", flag.ExitOnError))
	c.clientFlags.Register(f)
	f.StringVar(&c.flagOut, "out", "joplin-backup", "Output directory")
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
	ctx := context.Background()

	count, err := c.export(ctx, client)
	if err != nil {
		c.UI.Error(fmt.Sprintf("backup failed: %v", err))
		return 1
	}
	c.UI.Info(fmt.Sprintf("Exported %d notes to %s", count, c.flagOut))
	return 0
}

func (c *Command) export(ctx context.Context, client *joplin.Client) (int, error) {
	notebooks, err := client.AllNotebooks(ctx,
		&joplin.ListOptions{Fields: []string{"id", "title", "parent_id"}})
	if err != nil {
		return 0, fmt.Errorf("listing notebooks: %w", err)
	}
	dirs := notebookDirs(notebooks)

	notes, err := client.AllNotes(ctx, nil,
		&joplin.ListOptions{Fields: []string{"id", "parent_id", "title", "body"}})
	if err != nil {
		return 0, fmt.Errorf("listing notes: %w", err)
	}

	used := make(map[string]bool)
	for _, note := range notes {
		dir := filepath.Join(c.flagOut, dirs[note.ParentID])
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating %s: %w", dir, err)
		}
		path := filepath.Join(dir, noteFilename(note))
		if used[path] {
			// title collision, fall back to the unique ID
			path = filepath.Join(dir, note.ID+".md")
		}
		used[path] = true
		content := fmt.Sprintf("# %s\n\n%s\n", note.Title, note.Body)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return 0, fmt.Errorf("writing %s: %w", path, err)
		}
		c.Log.Debug("exported note", "id", note.ID, "path", path)
	}
	return len(notes), nil
}

// notebookDirs maps each notebook ID to its directory path, following
// parent links up to the root.
func notebookDirs(notebooks []joplin.Notebook) map[string]string {
	byID := make(map[string]joplin.Notebook, len(notebooks))
	for _, notebook := range notebooks {
		byID[notebook.ID] = notebook
	}

	dirs := make(map[string]string, len(notebooks))
	var resolve func(id string) string
	resolve = func(id string) string {
		notebook, ok := byID[id]
		if !ok {
			return ""
		}
		if dir, done := dirs[id]; done {
			return dir
		}
		dir := filepath.Join(resolve(notebook.ParentID), safeName(notebook.Title))
		dirs[id] = dir
		return dir
	}
	for _, notebook := range notebooks {
		resolve(notebook.ID)
	}
	return dirs
}

func noteFilename(note joplin.Note) string {
	name := safeName(note.Title)
	if name == "" {
		name = note.ID
	}
	return name + ".md"
}

// safeName strips path separators and other characters that make poor
// file names.
func safeName(title string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		default:
			return r
		}
	}, title)
	return strings.TrimSpace(mapped)
}
