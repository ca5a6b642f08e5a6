package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/api"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/output"
	"todocli/internal/session"
	"todocli/internal/tasks"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todocli` (no args) and `todocli list`.
type ListCmd struct {
	openOnly bool
}

// SetOpenOnly sets the open-only filter (for testing).
func (c *ListCmd) SetOpenOnly(open bool) {
	c.openOnly = open
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todocli list [--open]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.openOnly, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc api.Service, args []string, out, errOut io.Writer) int {
	store := tasks.NewStore(svc)
	if err := store.Load(ctx); err != nil {
		return printError(errOut, err)
	}

	shown := 0
	for i, task := range store.Tasks() {
		if c.openOnly && task.Completed {
			continue
		}
		output.FormatTask(out, i+1, task)
		shown++
	}

	if shown == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
