package terminal

import (
	"context"
	"io"
	"os"

	"github.com/perf-tools/lightaudit/pkg/runtime/terminal/commands"
	"github.com/perf-tools/lightaudit/pkg/runtime/terminal/export"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	auditor  commands.Auditor
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Auditor commands.Auditor
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		auditor:  opts.Auditor,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// ExecuteContext runs the CLI with ctx, so a context logger reaches the
// commands.
func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lightaudit",
		Short: "Lighthouse audit triage tool",
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.auditor, cli.reporter))
	cmd.AddCommand(commands.NewRemediationsCmd(cli.reporter))

	return cmd
}
