package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todocli/internal/api"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/session"
	"todocli/internal/tasks"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only the flags the user actually
// passed go into the patch; the service leaves the rest untouched.
type EditCmd struct {
	title       string
	description string
	titleSet    bool
	descSet     bool
	fs          *flag.FlagSet
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) {
	c.title = title
	c.titleSet = true
}

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(desc string) {
	c.description = desc
	c.descSet = true
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Update a task's title or description" }
func (c *EditCmd) Usage() string     { return "todocli edit [--title <t>] [--desc <d>] <n>" }
func (c *EditCmd) NeedsAuth() bool   { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.description, "desc", "", "")
	c.fs = fs
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc api.Service, args []string, out, errOut io.Writer) int {
	if c.fs != nil {
		c.fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "title":
				c.titleSet = true
			case "desc":
				c.descSet = true
			}
		})
	}

	num, err := ParseRef(args)
	if err != nil {
		if err == ErrRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	if !c.titleSet && !c.descSet {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}
	if c.titleSet && strings.TrimSpace(c.title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	var patch api.TaskPatch
	if c.titleSet {
		patch.Title = &c.title
	}
	if c.descSet {
		patch.Description = &c.description
	}

	store := tasks.NewStore(svc)
	task, err := resolveRef(ctx, store, num)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return printError(errOut, err)
	}

	if _, err := store.Update(ctx, task.ID, patch); err != nil {
		return printError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
