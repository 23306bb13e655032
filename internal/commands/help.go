package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"mstodo/internal/config"
	"mstodo/internal/exitcode"
	"mstodo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd prints usage.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "mstodo help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  mstodo                                            Export all task lists (same as 'export')
  mstodo export [common flags] [--format markdown|text] [--attachments] [--out <dir>]
  mstodo lists [common flags]
  mstodo login [common flags]
  mstodo logout [common flags]
  mstodo help
  mstodo version

Common flags:
  --config <dir>   Override config directory
  --strict         Fail on non-success API reads instead of treating them as empty
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  MSTODO_CLIENT_ID     Azure app registration client ID (required for auth)
  MSTODO_TENANT        Identity tenant (default: consumers)
  MSTODO_GRAPH_URL     Graph task-list base URL override
  MSTODO_REDIRECT_URI  Redirect URI for the manual sign-in fallback

A .env file in the working directory is loaded if present.
`
