package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database"
	"github.com/spf13/cobra"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Create the dungeon tables and seed levels and encounters",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ref, err := database.LoadReference(cfg.Dungeon.ReferenceFile)
		if err != nil {
			return err
		}

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx, ref); err != nil {
			slog.Error("Migration failed", slog.String("type", "db"), slog.Any("error", err))
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "schema ready: %d levels, %d positive and %d negative encounters in reference data\n",
			len(ref.Levels), len(ref.Encounters.Positive), len(ref.Encounters.Negative))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCMD)
}
