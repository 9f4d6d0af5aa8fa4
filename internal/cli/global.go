package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/monkeys/internal/config"
	"github.com/example/monkeys/internal/wire"
)

// effective is the configuration after flags have been applied.
var effective = config.DefaultConfig()

// AddGlobalFlags registers the flags shared by every command.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().String("dataset", "", "YAML dataset to browse instead of the builtin species")
	root.PersistentFlags().Uint64("seed", 0, "Seed for random picks (0 = unseeded)")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostics to stderr")
}

// Setup loads the config file, applies flag overrides and configures wiring.
// It is installed as the root command's PersistentPreRunE.
func Setup(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfigOrDefault(cwd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dataset") {
		cfg.Dataset, _ = flags.GetString("dataset")
	}
	if flags.Changed("seed") {
		cfg.RandomSeed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("no-color") {
		cfg.NoColor, _ = flags.GetBool("no-color")
	}
	if cfg.NoColor {
		color.NoColor = true
	}
	effective = cfg

	var logger *slog.Logger
	if verbose, _ := flags.GetBool("verbose"); verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	wire.Configure(wire.Options{
		DatasetPath: cfg.Dataset,
		Seed:        cfg.RandomSeed,
		Logger:      logger,
	})
	return nil
}
