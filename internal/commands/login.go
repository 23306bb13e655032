package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"mstodo/internal/auth"
	"mstodo/internal/config"
	"mstodo/internal/exitcode"
	"mstodo/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd forces a token acquisition and persists the cache. Export runs
// the same cascade on its own, so login is a convenience, not a
// prerequisite.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with Microsoft" }
func (c *LoginCmd) Usage() string     { return "mstodo login [common flags]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if cfg.ClientID == "" {
		printClientIDHelp(errOut)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	authn, err := auth.NewAuthenticator(cfg, os.Stdin, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if _, err := authn.Acquire(ctx); err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func printClientIDHelp(errOut io.Writer) {
	fmt.Fprintln(errOut, "error: MSTODO_CLIENT_ID is not set")
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "To authenticate with Microsoft To Do, you need an Azure app registration:")
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "1. Create an app registration at https://portal.azure.com")
	fmt.Fprintln(errOut, "   - Supported account type: personal Microsoft accounts")
	fmt.Fprintln(errOut, "   - Redirect URI (public client/native): http://localhost")
	fmt.Fprintln(errOut, "2. Under 'Authentication', allow public client flows")
	fmt.Fprintln(errOut, "3. Under 'API permissions', add the delegated permission Tasks.Read")
	fmt.Fprintln(errOut, "4. Export the 'Application (client) ID' as MSTODO_CLIENT_ID,")
	fmt.Fprintln(errOut, "   either in the environment or in a .env file")
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "Then run 'mstodo login' again.")
}
