package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ellavondegurechaff/dungeon-bot/dungeonbot"
	"github.com/ellavondegurechaff/dungeon-bot/dungeonbot/logger"
	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *dungeonbot.Config
)

var rootCmd = &cobra.Command{
	Use:           "dungeonctl",
	Short:         "Administer the dungeon bot database",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := dungeonbot.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Setup(cmd.ErrOrStderr(), logger.Options{
			Level:     cfg.Log.Level,
			Color:     cfg.Log.Color,
			AddSource: cfg.Log.AddSource,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to config")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openDatabase(ctx context.Context) (*database.DB, error) {
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
