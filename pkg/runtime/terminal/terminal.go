package terminal

import (
	"io"
	"os"

	"github.com/de-tools/audit-atlas/pkg/runtime/terminal/commands"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	prompter *commands.Prompter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Input  io.Reader
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	cli := &CLI{
		prompter: commands.NewPrompter(opts.Input, opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Point-in-time compliance assessment for AWS accounts",
	}

	cmd.AddCommand(commands.NewAssessCmd(cli.prompter))
	cmd.AddCommand(commands.NewPreflightCmd(cli.prompter))

	return cmd
}
