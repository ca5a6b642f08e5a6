// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todocli/internal/api"
	"todocli/internal/config"
	"todocli/internal/session"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a logged-in
	// session. Commands like help, version, register, login and logout
	// return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, base URL).
	// sess is the restored session manager.
	// svc is the service gateway; it attaches the stored credential to
	// every call on its own.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc api.Service, args []string, out, errOut io.Writer) int
}
