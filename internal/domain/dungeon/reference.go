package dungeon

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"
)

const defaultReferenceCacheSize = 512

const levelsKey = "levels"

// ReferenceCache keeps the read-only tables (thresholds, encounter counts and messages) in memory.
// Lookups take the repository to read through so callers inside a transaction reuse its connection.
type ReferenceCache struct {
	cache *lru.Cache
}

func NewReferenceCache(size int) (*ReferenceCache, error) {
	if size <= 0 {
		size = defaultReferenceCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create reference cache: %w", err)
	}
	return &ReferenceCache{cache: cache}, nil
}

func (c *ReferenceCache) Levels(ctx context.Context, repo Repository) (*LevelTable, error) {
	if v, ok := c.cache.Get(levelsKey); ok {
		return v.(*LevelTable), nil
	}

	thresholds, err := repo.ListThresholds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load level thresholds: %w", err)
	}
	table, err := NewLevelTable(thresholds)
	if err != nil {
		return nil, err
	}
	if table.MaxLevel() == 0 {
		return nil, fmt.Errorf("level 1: %w", ErrThresholdNotFound)
	}

	c.cache.Add(levelsKey, table)
	return table, nil
}

func (c *ReferenceCache) EncounterCount(ctx context.Context, repo Repository, table EncounterTable) (int, error) {
	key := "count:" + table.String()
	if v, ok := c.cache.Get(key); ok {
		return v.(int), nil
	}

	count, err := repo.CountEncounters(ctx, table)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s encounters: %w", table, err)
	}
	if count == 0 {
		return 0, fmt.Errorf("%s table: %w", table, ErrNoEncounters)
	}

	c.cache.Add(key, count)
	return count, nil
}

// RandomEncounter picks a uniformly random message from table.
func (c *ReferenceCache) RandomEncounter(ctx context.Context, repo Repository, table EncounterTable, rng RNG) (string, error) {
	count, err := c.EncounterCount(ctx, repo, table)
	if err != nil {
		return "", err
	}

	position := rng.IntN(count)
	key := fmt.Sprintf("msg:%s:%d", table, position)
	if v, ok := c.cache.Get(key); ok {
		return v.(string), nil
	}

	msg, err := repo.GetEncounter(ctx, table, position)
	if err != nil {
		return "", fmt.Errorf("failed to load %s encounter %d: %w", table, position, err)
	}

	c.cache.Add(key, msg)
	return msg, nil
}

// Warm loads the thresholds and both encounter counts concurrently.
func (c *ReferenceCache) Warm(ctx context.Context, repo Repository) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := c.Levels(ctx, repo)
		return err
	})
	for _, table := range []EncounterTable{EncounterPositive, EncounterNegative} {
		g.Go(func() error {
			_, err := c.EncounterCount(ctx, repo, table)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("Reference data cached",
		slog.String("type", "sys"),
		slog.Int("entries", c.cache.Len()))
	return nil
}

// Purge drops everything so the next lookup rereads the store.
func (c *ReferenceCache) Purge() {
	c.cache.Purge()
}
