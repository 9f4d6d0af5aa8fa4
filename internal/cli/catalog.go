package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/monkeys/internal/adapters/dataset"
	"github.com/example/monkeys/internal/wire"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all monkeys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		wire.CatalogAdapterWithOutput(cmd.OutOrStdout(), effective.ArtEnabled()).List(ctx)
		return nil
	},
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random monkey",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return wire.CatalogAdapterWithOutput(cmd.OutOrStdout(), effective.ArtEnabled()).Random(ctx)
	},
}

var findCmd = &cobra.Command{
	Use:   "find [name]",
	Short: "Show a monkey by common name",
	Long:  "Show a monkey by common name. Matching ignores case; multiple words are joined with spaces.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name := strings.Join(args, " ")
		return wire.CatalogAdapterWithOutput(cmd.OutOrStdout(), effective.ArtEnabled()).Find(ctx, name)
	},
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a monkey by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return wire.CatalogAdapterWithOutput(cmd.OutOrStdout(), effective.ArtEnabled()).Show(ctx, args[0])
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show access statistics",
	Long: `Show how often each monkey has been viewed.

Counts live only as long as the process, so a standalone run starts empty.
Use --sample to make that many random picks first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sample, _ := cmd.Flags().GetInt("sample")
		if sample < 0 {
			return fmt.Errorf("--sample must not be negative")
		}

		service := wire.CatalogService()
		for i := 0; i < sample; i++ {
			service.GetRandom(ctx)
		}

		wire.CatalogAdapterWithOutput(cmd.OutOrStdout(), effective.ArtEnabled()).Stats(ctx)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		formatName, _ := cmd.Flags().GetString("format")
		format, err := dataset.ParseFormat(formatName)
		if err != nil {
			return err
		}

		adapter := wire.CatalogAdapterWithOutput(cmd.OutOrStdout(), effective.ArtEnabled())
		return adapter.Export(ctx, format, !color.NoColor)
	},
}

func init() {
	statsCmd.Flags().Int("sample", 0, "Number of random picks to make before printing")
	exportCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml or json)")
}

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	return listCmd
}

// RandomCmd returns the random command
func RandomCmd() *cobra.Command {
	return randomCmd
}

// FindCmd returns the find command
func FindCmd() *cobra.Command {
	return findCmd
}

// ShowCmd returns the show command
func ShowCmd() *cobra.Command {
	return showCmd
}

// StatsCmd returns the stats command
func StatsCmd() *cobra.Command {
	return statsCmd
}

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	return exportCmd
}
