package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"mstodo/internal/config"
	"mstodo/internal/exitcode"
	"mstodo/internal/export"
	"mstodo/internal/output"
	"mstodo/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command, the default when mstodo is
// invoked without arguments.
type ExportCmd struct {
	format      string
	attachments bool
	outDir      string
}

// SetFormat sets the output format (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

// SetOutDir sets the output directory (for testing).
func (c *ExportCmd) SetOutDir(dir string) {
	c.outDir = dir
}

// SetAttachments toggles attachment downloads (for testing).
func (c *ExportCmd) SetAttachments(on bool) {
	c.attachments = on
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export all task lists to files" }
func (c *ExportCmd) Usage() string {
	return "mstodo export [common flags] [--format markdown|text] [--attachments] [--out <dir>]"
}
func (c *ExportCmd) NeedsAuth() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "markdown", "")
	fs.BoolVar(&c.attachments, "attachments", false, "")
	fs.StringVar(&c.outDir, "out", ".", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	format := c.format
	if format == "" {
		format = "markdown"
	}
	renderer, err := output.ForFormat(format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	outDir := c.outDir
	if outDir == "" {
		outDir = "."
	}
	if info, err := os.Stat(outDir); err != nil || !info.IsDir() {
		fmt.Fprintf(errOut, "error: output directory not found: %s\n", outDir)
		return exitcode.UserError
	}

	exp := &export.Exporter{
		Service:         svc,
		Renderer:        renderer,
		OutDir:          outDir,
		SaveAttachments: c.attachments,
		Now:             time.Now,
		Out:             out,
		Quiet:           cfg.Quiet,
	}

	if err := exp.Run(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
