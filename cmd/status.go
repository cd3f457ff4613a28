package cmd

import (
	"fmt"

	"github.com/ellavondegurechaff/dungeon-bot/internal/domain/dungeon"
	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database/repositories"
	"github.com/spf13/cobra"
)

var statusCMD = &cobra.Command{
	Use:   "status <user-id>",
	Short: "Print a user's dungeon level and experience",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		refs, err := dungeon.NewReferenceCache(cfg.Dungeon.CacheSize)
		if err != nil {
			return err
		}
		svc := dungeon.NewService(repositories.NewDungeonRepository(db.BunDB()), refs,
			dungeon.WithCooldown(cfg.Dungeon.Cooldown.Duration))

		report, err := svc.Status(ctx, dungeon.Player{ID: args[0], DisplayName: args[0]})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dungeon.RenderStatus(report))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCMD)
}
