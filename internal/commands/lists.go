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
	Register(&ListsCmd{})
}

// ListsCmd prints the display names of all task lists.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return []string{"ls"} }
func (c *ListsCmd) Synopsis() string  { return "Print all task lists" }
func (c *ListsCmd) Usage() string     { return "mstodo lists [common flags]" }
func (c *ListsCmd) NeedsAuth() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	lists, err := svc.ListTaskLists(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	for _, list := range lists {
		fmt.Fprintln(out, list.DisplayName)
	}
	return exitcode.Success
}
