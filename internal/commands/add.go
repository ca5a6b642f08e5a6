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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(desc string) {
	c.description = desc
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "todocli add [--desc <text>] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc api.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	store := tasks.NewStore(svc)
	created, err := store.Create(ctx, api.TaskFields{
		Title:       title,
		Description: c.description,
	})
	if err != nil {
		return printError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created %d\n", created.ID)
	}
	return exitcode.Success
}
