package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/api"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/session"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todocli help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc api.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todocli                                        List all tasks
  todocli list [common flags] [--open]           List tasks (--open hides completed)
  todocli add [common flags] [--desc <text>] <title...>
  todocli done [common flags] <n>                Toggle task completion
  todocli edit [common flags] [--title <t>] [--desc <d>] <n>
  todocli rm [common flags] <n>
  todocli show [common flags] <n>
  todocli register [common flags] <username> <password>
  todocli login [common flags] <username> <password>
  todocli logout [common flags]
  todocli help
  todocli version

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override service base URL (or TODOCLI_API_URL)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
