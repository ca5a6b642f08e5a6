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
	"todocli/internal/output"
	"todocli/internal/session"
	"todocli/internal/tasks"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command. It refetches the task by ID so
// the detail output reflects the service, not the cache.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show one task in full" }
func (c *ShowCmd) Usage() string     { return "todocli show <n>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc api.Service, args []string, out, errOut io.Writer) int {
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

	fresh, err := svc.GetTask(ctx, task.ID)
	if err != nil {
		return printError(errOut, err)
	}

	output.FormatTaskDetail(out, fresh)
	return exitcode.Success
}
