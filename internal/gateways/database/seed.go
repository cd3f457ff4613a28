package database

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ellavondegurechaff/dungeon-bot/internal/domain/dungeon"
	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database/models"
	"github.com/pelletier/go-toml/v2"
	"github.com/uptrace/bun"
)

//go:embed reference.toml
var defaultReference []byte

// Reference is the static game data: level thresholds and encounter texts.
type Reference struct {
	Levels     []LevelSeed `toml:"levels"`
	Encounters struct {
		Positive []string `toml:"positive"`
		Negative []string `toml:"negative"`
	} `toml:"encounters"`
}

type LevelSeed struct {
	Level    int   `toml:"level"`
	TotalExp int64 `toml:"total_exp"`
}

func DefaultReference() (*Reference, error) {
	return decodeReference(defaultReference)
}

// LoadReference reads reference data from path, or the embedded defaults when path is empty.
func LoadReference(path string) (*Reference, error) {
	if path == "" {
		return DefaultReference()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference file: %w", err)
	}
	return decodeReference(data)
}

func decodeReference(data []byte) (*Reference, error) {
	var ref Reference
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&ref); err != nil {
		return nil, fmt.Errorf("failed to decode reference data: %w", err)
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *Reference) Thresholds() []dungeon.Threshold {
	out := make([]dungeon.Threshold, 0, len(r.Levels))
	for _, l := range r.Levels {
		out = append(out, dungeon.Threshold{Level: l.Level, TotalExp: l.TotalExp})
	}
	return out
}

func (r *Reference) Validate() error {
	table, err := dungeon.NewLevelTable(r.Thresholds())
	if err != nil {
		return fmt.Errorf("invalid level table: %w", err)
	}
	if _, ok := table.Threshold(1); !ok {
		return errors.New("invalid level table: level 1 is missing")
	}
	if len(r.Encounters.Positive) == 0 {
		return errors.New("positive encounter table is empty")
	}
	if len(r.Encounters.Negative) == 0 {
		return errors.New("negative encounter table is empty")
	}
	return nil
}

// SeedReferenceData upserts thresholds and fills encounter tables that are still empty.
func (db *DB) SeedReferenceData(ctx context.Context, ref *Reference) error {
	return db.bunDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return SeedReference(ctx, tx, ref)
	})
}

func SeedReference(ctx context.Context, idb bun.IDB, ref *Reference) error {
	levels := make([]models.DungeonLevel, 0, len(ref.Levels))
	for _, l := range ref.Levels {
		levels = append(levels, models.DungeonLevel{Level: l.Level, TotalExp: l.TotalExp})
	}
	if _, err := idb.NewInsert().
		Model(&levels).
		On("CONFLICT (level) DO UPDATE").
		Set("total_exp = EXCLUDED.total_exp").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to upsert levels: %w", err)
	}

	positive := make([]models.PositiveEncounter, 0, len(ref.Encounters.Positive))
	for _, msg := range ref.Encounters.Positive {
		positive = append(positive, models.PositiveEncounter{Message: msg})
	}
	if err := seedIfEmpty(ctx, idb, (*models.PositiveEncounter)(nil), &positive); err != nil {
		return fmt.Errorf("failed to seed positive encounters: %w", err)
	}

	negative := make([]models.NegativeEncounter, 0, len(ref.Encounters.Negative))
	for _, msg := range ref.Encounters.Negative {
		negative = append(negative, models.NegativeEncounter{Message: msg})
	}
	if err := seedIfEmpty(ctx, idb, (*models.NegativeEncounter)(nil), &negative); err != nil {
		return fmt.Errorf("failed to seed negative encounters: %w", err)
	}

	slog.Info("Reference data seeded",
		slog.String("type", "db"),
		slog.Int("levels", len(levels)),
		slog.Int("positive_encounters", len(positive)),
		slog.Int("negative_encounters", len(negative)))
	return nil
}

func seedIfEmpty(ctx context.Context, idb bun.IDB, model interface{}, rows interface{}) error {
	count, err := idb.NewSelect().Model(model).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = idb.NewInsert().Model(rows).Exec(ctx)
	return err
}
