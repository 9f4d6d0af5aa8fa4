package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/monkeys/internal/cli"
	"github.com/example/monkeys/internal/version"
	"github.com/example/monkeys/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "monkeys",
		Short:   "Monkeys - browse a catalog of monkey species",
		Version: version.String(),
		Long: `Monkeys is a console catalog of monkey species.
Run it without a command to open the interactive browser, or use the
subcommands to list, search, and export the catalog.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: cli.Setup,
		RunE:              cli.RunBrowser,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	cli.AddGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(cli.BrowseCmd())
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.RandomCmd())
	rootCmd.AddCommand(cli.FindCmd())
	rootCmd.AddCommand(cli.ShowCmd())
	rootCmd.AddCommand(cli.StatsCmd())
	rootCmd.AddCommand(cli.ExportCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	err := rootCmd.Execute()
	wire.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
