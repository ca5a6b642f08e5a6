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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles: running it on a
// completed task reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle task completion" }
func (c *DoneCmd) Usage() string     { return "todocli done <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc api.Service, args []string, out, errOut io.Writer) int {
	num, err := ParseRef(args)
	if err != nil {
		if err == ErrRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
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

	if _, err := store.ToggleComplete(ctx, task); err != nil {
		return printError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
