package cli

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	cliadapter "github.com/example/monkeys/internal/adapters/cli"
	"github.com/example/monkeys/internal/wire"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively",
	Long: `Open the interactive menu: pick a random monkey, list all monkeys,
search by name, or view access statistics for this session.`,
	Args: cobra.NoArgs,
	RunE: RunBrowser,
}

// RunBrowser runs the interactive menu on stdin and stdout.
// It is also the root command's default action.
func RunBrowser(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	adapter := wire.CatalogAdapterWithOutput(cmd.OutOrStdout(), effective.ArtEnabled())

	// only wipe the screen on a real terminal
	wipe := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	browser := cliadapter.NewBrowser(adapter, cmd.InOrStdin(), cmd.OutOrStdout(), wipe)
	return browser.Run(ctx)
}

// BrowseCmd returns the browse command
func BrowseCmd() *cobra.Command {
	return browseCmd
}
