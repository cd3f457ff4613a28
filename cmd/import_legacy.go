package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/ellavondegurechaff/dungeon-bot/internal/domain/dungeon"
	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database/legacy"
	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database/repositories"
	"github.com/spf13/cobra"
)

var importFlags struct {
	from              string
	batchSize         int
	utc               bool
	replaceEncounters bool
}

var importLegacyCMD = &cobra.Command{
	Use:   "import-legacy",
	Short: "Copy users, levels and encounters from the old bot's SQLite file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx, nil); err != nil {
			return err
		}

		imp := legacy.NewImporter(db.BunDB())
		imp.SetBatchSize(importFlags.batchSize)
		imp.SetReplaceEncounters(importFlags.replaceEncounters)
		if importFlags.utc {
			imp.SetLocation(time.UTC)
		}

		stats, err := imp.ImportFile(ctx, importFlags.from)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		names := make([]string, 0, len(stats.Tables))
		for name := range stats.Tables {
			names = append(names, name)
		}
		sort.Strings(names)

		out := cmd.OutOrStdout()
		for _, name := range names {
			t := stats.Tables[name]
			fmt.Fprintf(out, "%-24s processed=%d imported=%d skipped=%d\n", name, t.Processed, t.Imported, t.Skipped)
		}
		fmt.Fprintf(out, "took %s\n", stats.EndTime.Sub(stats.StartTime).Round(time.Millisecond))

		// the merged level table must still be usable by the bot
		thresholds, err := repositories.NewDungeonRepository(db.BunDB()).ListThresholds(ctx)
		if err != nil {
			return err
		}
		if _, err := dungeon.NewLevelTable(thresholds); err != nil {
			return fmt.Errorf("imported level table is invalid: %w", err)
		}
		return nil
	},
}

func init() {
	importLegacyCMD.Flags().StringVar(&importFlags.from, "from", "bot.db", "legacy SQLite file")
	importLegacyCMD.Flags().IntVar(&importFlags.batchSize, "batch-size", 500, "rows per insert")
	importLegacyCMD.Flags().BoolVar(&importFlags.utc, "utc", false, "read zone-less last_check values as UTC instead of local time")
	importLegacyCMD.Flags().BoolVar(&importFlags.replaceEncounters, "replace-encounters", false, "replace existing encounter texts")
	rootCmd.AddCommand(importLegacyCMD)
}
